// Package promobserver exports parange scheduling events as Prometheus
// metrics.
//
//	obs, err := promobserver.New(prometheus.DefaultRegisterer)
//	if err != nil {
//		return err
//	}
//	sum, err := parange.DriveUnindexed(ctx, it, collect.Sum[int64](), parange.WithMetricsObserver(obs))
package promobserver

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hupe1980/parange/plumbing"
)

const namespace = "parange"

// Observer implements plumbing.Observer (and thus parange.MetricsObserver)
// on top of Prometheus collectors.
type Observer struct {
	splits    *prometheus.CounterVec
	leaves    *prometheus.CounterVec
	leafItems *prometheus.HistogramVec
	items     prometheus.Counter
	forks     prometheus.Counter
	inline    prometheus.Counter
	steals    prometheus.Counter
}

var _ plumbing.Observer = (*Observer)(nil)

// New creates an Observer and registers its collectors with reg.
// A nil reg uses prometheus.DefaultRegisterer.
func New(reg prometheus.Registerer) (*Observer, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	o := &Observer{
		splits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "splits_total",
			Help:      "Total producer splits",
		}, []string{"kind"}),
		leaves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leaves_total",
			Help:      "Total producers folded sequentially",
		}, []string{"kind"}),
		leafItems: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "leaf_items",
			Help:      "Elements folded per leaf",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 12),
		}, []string{"kind"}),
		items: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "items_total",
			Help:      "Total elements folded",
		}),
		forks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "forks_total",
			Help:      "Halves handed to a new goroutine",
		}),
		inline: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "inline_joins_total",
			Help:      "Joins that found no free worker slot at split time",
		}),
		steals: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steals_total",
			Help:      "Right halves taken over by a worker that waited for a slot",
		}),
	}

	for _, c := range []prometheus.Collector{o.splits, o.leaves, o.leafItems, o.items, o.forks, o.inline, o.steals} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("promobserver: register: %w", err)
		}
	}
	return o, nil
}

func (o *Observer) OnSplit(kind plumbing.Kind) {
	o.splits.WithLabelValues(kind.String()).Inc()
}

func (o *Observer) OnLeaf(kind plumbing.Kind, items uint) {
	o.leaves.WithLabelValues(kind.String()).Inc()
	o.leafItems.WithLabelValues(kind.String()).Observe(float64(items))
	o.items.Add(float64(items))
}

func (o *Observer) OnFork() { o.forks.Inc() }

func (o *Observer) OnInline() { o.inline.Inc() }

func (o *Observer) OnSteal() { o.steals.Inc() }
