package hydrate

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	islandsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "isla",
		Subsystem: "hydrate",
		Name:      "islands_total",
		Help:      "Island hydration outcomes by result.",
	}, []string{"result"})

	mismatchesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "isla",
		Subsystem: "hydrate",
		Name:      "mismatches_total",
		Help:      "Hydration mismatches by classification.",
	}, []string{"kind"})

	durationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "isla",
		Subsystem: "hydrate",
		Name:      "duration_seconds",
		Help:      "Wall time spent hydrating one island.",
		Buckets:   prometheus.DefBuckets,
	})
)
