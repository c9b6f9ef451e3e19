package container

import (
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// Dict is a field -> byte-string map, used as the backing container for
// both the Hash kind (field/value pairs) and the Set kind (fields present,
// value ignored), the way the original cache reuses one dict_lsa for both.
type Dict struct {
	m map[string][]byte
}

// NewDict returns an empty Dict.
func NewDict() *Dict {
	return &Dict{m: make(map[string][]byte)}
}

// Len returns the number of fields.
func (d *Dict) Len() int {
	return len(d.m)
}

// Set stores value under field, reporting whether the field already
// existed.
func (d *Dict) Set(field string, value []byte) bool {
	_, existed := d.m[field]
	d.m[field] = value
	return existed
}

// Get returns the value stored for field, if any.
func (d *Dict) Get(field string) ([]byte, bool) {
	v, ok := d.m[field]
	return v, ok
}

// Delete removes field, reporting whether it was present.
func (d *Dict) Delete(field string) bool {
	_, existed := d.m[field]
	if existed {
		delete(d.m, field)
	}
	return existed
}

// Has reports whether field is present, for Set-kind membership tests.
func (d *Dict) Has(field string) bool {
	_, ok := d.m[field]
	return ok
}

// Keys returns the fields/members in a stable, sorted order.
func (d *Dict) Keys() []string {
	ks := maps.Keys(d.m)
	slices.Sort(ks)
	return ks
}

// Values returns the stored values in the same order Keys() would return
// their fields.
func (d *Dict) Values() [][]byte {
	ks := d.Keys()
	out := make([][]byte, len(ks))
	for i, k := range ks {
		out[i] = d.m[k]
	}
	return out
}
