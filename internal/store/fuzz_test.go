package store

import (
	"bytes"
	"fmt"
	"testing"
	"time"

	"github.com/corekv/corekv/internal/clock"
	"github.com/corekv/corekv/internal/entry"
)

// modelEntry mirrors a reference implementation's idea of what a key
// currently holds, so the fuzz loop can check the facade against it
// independent of the real index/expiry machinery under test.
type modelEntry struct {
	val      string
	deadline int64 // clock.Never if persistent
	deleted  bool
}

func FuzzStoreOperations(f *testing.F) {
	seedCorpus := [][]byte{
		{0x00, 3, 3, 0},
		{0x01, 3, 3, 5},
		{0x02, 3, 0, 0},
		{0x03, 3, 0, 0},
		{0x04, 3, 0, 10},
	}
	for _, c := range seedCorpus {
		f.Add(c)
	}

	f.Fuzz(func(t *testing.T, data []byte) {
		if len(data) < 4 {
			t.Skip()
		}

		clk := clock.NewManual(0)
		st := New(
			WithClock(clk),
			WithInitialBuckets(8),
			WithTimerResolution(time.Hour, 2),
		)
		defer st.Close()

		var released []string
		st.SetExpiredEntryReleaser(func(key []byte, _ string) {
			released = append(released, string(key))
		})

		model := map[string]*modelEntry{}

		const (
			opSet      = 0
			opSetTTL   = 1
			opGet      = 2
			opErase    = 3
			opAdvance  = 4
			numOps     = 5
			maxOpCount = 2000
		)

		reader := bytes.NewReader(data)
		chunk := make([]byte, 4)
		opCount := 0

		for {
			if _, err := reader.Read(chunk); err != nil {
				break
			}
			op := int(chunk[0]) % numOps
			kLen := int(chunk[1]%8) + 1
			flag := chunk[3]
			key := fmt.Sprintf("k%02d", int(chunk[2])%16)
			if len(key) > kLen+1 {
				key = key[:kLen+1]
			}
			h := KeyHash([]byte(key))

			switch op {
			case opSet:
				val := fmt.Sprintf("v%d", flag)
				st.Replace(entry.NewBytes([]byte(key), h, []byte(val)))
				model[key] = &modelEntry{val: val, deadline: clock.Never}

			case opSetTTL:
				val := fmt.Sprintf("v%d", flag)
				ttl := int64(flag%50) + 1
				applied, err := st.InsertIf(entry.NewBytes([]byte(key), h, []byte(val)), ttl, false, false)
				if err != nil || !applied {
					t.Fatalf("unconditional insert_if must always apply: %v", err)
				}
				model[key] = &modelEntry{val: val, deadline: clk.NowMillis() + ttl}

			case opGet:
				type getResult struct {
					val string
					ok  bool
				}
				got := View(st, []byte(key), h, func(v *entry.View) getResult {
					if v == nil {
						return getResult{}
					}
					b, _ := v.ValueBytes()
					return getResult{val: string(b), ok: true}
				})
				gotVal, gotOK := got.val, got.ok
				me := model[key]
				live := me != nil && !me.deleted && (me.deadline == clock.Never || me.deadline > clk.NowMillis())
				if gotOK != live {
					t.Fatalf("presence mismatch key=%s got=%v want=%v", key, gotOK, live)
				}
				if gotOK && gotVal != me.val {
					t.Fatalf("value mismatch key=%s got=%s want=%s", key, gotVal, me.val)
				}

			case opErase:
				st.Erase([]byte(key), h)
				if me := model[key]; me != nil {
					me.deleted = true
				}

			case opAdvance:
				clk.Advance(time.Duration(flag%60) * time.Millisecond)
				if err := st.Sweep(); err != nil {
					t.Fatalf("sweep failed: %v", err)
				}
			}

			opCount++
			if opCount > maxOpCount {
				break
			}
		}

		for k, me := range model {
			if me.deleted || me.deadline != clock.Never {
				continue
			}
			if !st.Exists([]byte(k), KeyHash([]byte(k))) {
				t.Fatalf("persistent key %s unexpectedly absent at end", k)
			}
		}
	})
}
