package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/corekv/corekv/internal/clock"
	"github.com/corekv/corekv/internal/entry"
	"github.com/corekv/corekv/internal/metrics"
)

func TestMetricsCountInsertsAndHits(t *testing.T) {
	m := metrics.NewSimple()
	clk := clock.NewManual(0)
	s := New(WithClock(clk), WithMetrics(m), WithInitialBuckets(8), WithTimerResolution(time.Hour, 2))
	defer s.Close()

	k, h := []byte("a"), hash("a")
	s.Replace(entry.NewBytes(k, h, []byte("1")))
	s.Replace(entry.NewBytes(k, h, []byte("2")))

	View(s, k, h, func(v *entry.View) struct{} { return struct{}{} })
	View(s, []byte("missing"), hash("missing"), func(v *entry.View) struct{} { return struct{}{} })

	assert.EqualValues(t, 1, m.InsertNew.Load())
	assert.EqualValues(t, 1, m.Replace.Load())
	assert.EqualValues(t, 1, m.GetHit.Load())
	assert.EqualValues(t, 1, m.GetMiss.Load())
	assert.EqualValues(t, 1, m.Size.Load())
}

func TestMetricsCountExpiredAndRejected(t *testing.T) {
	m := metrics.NewSimple()
	clk := clock.NewManual(0)
	s := New(WithClock(clk), WithMetrics(m), WithInitialBuckets(8), WithTimerResolution(time.Hour, 2))
	defer s.Close()
	s.SetExpiredEntryReleaser(func(_ []byte, _ string) {})

	k, h := []byte("k"), hash("k")
	s.InsertIf(entry.NewBytes(k, h, []byte("v")), 100, true, false)
	s.InsertIf(entry.NewBytes(k, h, []byte("w")), 0, true, false) // rejected: present

	clk.Advance(200 * time.Millisecond)
	assert.NoError(t, s.Sweep())

	assert.EqualValues(t, 1, m.RejectedByPredicate.Load())
	assert.EqualValues(t, 1, m.Expired.Load())
}
