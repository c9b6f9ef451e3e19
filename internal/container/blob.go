package container

// Blob is an owned, resizable byte buffer backing the Bytes kind.
type Blob struct {
	data []byte
}

// NewBlob copies data into a new Blob.
func NewBlob(data []byte) *Blob {
	b := &Blob{data: make([]byte, len(data))}
	copy(b.data, data)
	return b
}

// NewZeroBlob returns a Blob of n zero bytes.
func NewZeroBlob(n int) *Blob {
	return &Blob{data: make([]byte, n)}
}

// Bytes returns the live underlying buffer.
func (b *Blob) Bytes() []byte {
	return b.data
}

// Len returns the buffer length.
func (b *Blob) Len() int {
	return len(b.data)
}

// Set replaces the buffer contents with a copy of data.
func (b *Blob) Set(data []byte) {
	b.data = make([]byte, len(data))
	copy(b.data, data)
}

// Append grows the buffer by appending data, returning the new length.
func (b *Blob) Append(data []byte) int {
	b.data = append(b.data, data...)
	return len(b.data)
}
