package metrics

import (
	"sync/atomic"
	"time"

	movingaverage "github.com/RobinUS2/golang-moving-average"
)

// OpsRate samples a counter once per tick and feeds the rate into a
// rolling moving average, giving a smoothed operations-per-second figure
// independent of the single-threaded store facade. Grounded on
// github.com/RobinUS2/golang-moving-average, a direct dependency of the
// cometkv pack member.
type OpsRate struct {
	total atomic.Uint64
	ma    *movingaverage.MovingAverage

	stopCh chan struct{}
}

// NewOpsRate starts sampling into a window-sample moving average every
// tick.
func NewOpsRate(window int, tick time.Duration, sink func(float64)) *OpsRate {
	r := &OpsRate{
		ma:     movingaverage.New(window),
		stopCh: make(chan struct{}),
	}
	go r.run(tick, sink)
	return r
}

// Tick records one more completed operation.
func (r *OpsRate) Tick() {
	r.total.Add(1)
}

func (r *OpsRate) run(tick time.Duration, sink func(float64)) {
	t := time.NewTicker(tick)
	defer t.Stop()
	var last uint64
	for {
		select {
		case <-t.C:
			cur := r.total.Load()
			delta := float64(cur - last)
			last = cur
			r.ma.Add(delta / tick.Seconds())
			sink(r.ma.Avg())
		case <-r.stopCh:
			return
		}
	}
}

// Stop halts the sampling goroutine.
func (r *OpsRate) Stop() { close(r.stopCh) }
