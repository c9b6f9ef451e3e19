package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Prom is a Prometheus-backed Interface implementation.
type Prom struct {
	insertNew           prometheus.Counter
	replace             prometheus.Counter
	rejectedByPredicate prometheus.Counter
	getHit              prometheus.Counter
	getMiss             prometheus.Counter
	expired             prometheus.Counter
	rehash              prometheus.Counter
	expiringSize        prometheus.Gauge
	size                prometheus.Gauge
	opsPerSecond        prometheus.Gauge
}

// NewProm builds and registers a Prom metrics implementation under
// namespace.
func NewProm(namespace string) *Prom {
	makeC := func(name, help string) prometheus.Counter {
		return prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		})
	}
	makeG := func(name, help string) prometheus.Gauge {
		return prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		})
	}

	p := &Prom{
		insertNew:           makeC("insert_new_total", "Number of keys inserted where no prior entry existed"),
		replace:             makeC("replace_total", "Number of keys inserted where a prior entry was overwritten"),
		rejectedByPredicate: makeC("rejected_by_predicate_total", "Number of insert_if calls that did not apply due to NX/XX"),
		getHit:              makeC("get_hit_total", "Number of lookups that found a live entry"),
		getMiss:             makeC("get_miss_total", "Number of lookups that found no entry"),
		expired:             makeC("expired_total", "Number of entries released by the expiration sweep"),
		rehash:              makeC("rehash_total", "Number of times the primary index doubled its bucket count"),
		expiringSize:        makeG("expiring_size", "Current number of entries with a finite deadline"),
		size:                makeG("size", "Current number of live entries"),
		opsPerSecond:        makeG("ops_per_second", "Rolling average of facade operations per second"),
	}

	prometheus.MustRegister(
		p.insertNew, p.replace, p.rejectedByPredicate, p.getHit, p.getMiss,
		p.expired, p.rehash, p.expiringSize, p.size, p.opsPerSecond,
	)
	return p
}

func (p *Prom) IncInsertNew()           { p.insertNew.Inc() }
func (p *Prom) IncReplace()             { p.replace.Inc() }
func (p *Prom) IncRejectedByPredicate() { p.rejectedByPredicate.Inc() }
func (p *Prom) IncGetHit()              { p.getHit.Inc() }
func (p *Prom) IncGetMiss()             { p.getMiss.Inc() }

func (p *Prom) AddExpired(n int) {
	if n > 0 {
		p.expired.Add(float64(n))
	}
}

func (p *Prom) IncRehash() { p.rehash.Inc() }

func (p *Prom) SetExpiringSize(n int) {
	if n >= 0 {
		p.expiringSize.Set(float64(n))
	}
}

func (p *Prom) SetSize(n int) {
	if n >= 0 {
		p.size.Set(float64(n))
	}
}

func (p *Prom) ObserveOpsPerSecond(v float64) {
	p.opsPerSecond.Set(v)
}
