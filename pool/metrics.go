package pool

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exposes a Pool's counters as Prometheus gauges, alongside the
// plain-text view PrintStats already provides. The two are independent
// readers of the same underlying counts.
type Metrics[T any] struct {
	pool *Pool[T]

	free      prometheus.GaugeFunc
	total     prometheus.GaugeFunc
	allocated prometheus.GaugeFunc
}

// NewMetrics builds a Metrics collector for p, labeling every exported
// gauge with name so multiple pools can be registered against the same
// Prometheus registry without collision.
func NewMetrics[T any](p *Pool[T], name string) *Metrics[T] {
	m := &Metrics[T]{pool: p}

	labels := prometheus.Labels{"pool": name}
	m.free = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name:        "pool_free_blocks",
		Help:        "Number of free slots currently available in the pool.",
		ConstLabels: labels,
	}, func() float64 { return float64(p.FreeCount()) })

	m.total = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name:        "pool_total_blocks",
		Help:        "Total number of slots the pool currently owns.",
		ConstLabels: labels,
	}, func() float64 { return float64(p.TotalCount()) })

	m.allocated = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name:        "pool_allocated_blocks",
		Help:        "Number of slots currently allocated from the pool.",
		ConstLabels: labels,
	}, func() float64 { return float64(p.AllocatedCount()) })

	return m
}

// Register registers all of m's gauges against reg.
func (m *Metrics[T]) Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{m.free, m.total, m.allocated} {
		if err := reg.Register(c); err != nil {
			return err
		}
	}
	return nil
}
