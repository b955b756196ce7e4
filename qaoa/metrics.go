package qaoa

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	metricsNamespace = "qaoatn"
	subsystem        = "network"
)

// Contraction kinds.
const (
	kindApex     = "apex"
	kindInternal = "internal"
	kindLeaf     = "leaf"
)

var (
	LayersBuilt = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "layers_built_total",
			Help:      "Total number of layer passes built",
		},
		[]string{"parity", "direction"}, // even/odd, forward/adjoint
	)

	TensorsBuilt = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "tensors_built_total",
			Help:      "Total number of gate tensors built",
		},
	)

	ContractionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "contractions_total",
			Help:      "Total number of subtree contractions",
		},
		[]string{"kind"}, // apex, internal, leaf
	)

	ContractionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "contraction_duration_seconds",
			Help:      "Time taken to contract one node's stack with its children",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	ContractionCost = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "contraction_cost_flops",
			Help:      "Planned complex multiply-adds per stack contraction",
			Buckets:   prometheus.ExponentialBuckets(64, 4, 12),
		},
	)

	GateCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Subsystem: subsystem,
			Name:      "gate_cache_lookups_total",
			Help:      "Total number of gate matrix cache lookups",
		},
		[]string{"gate", "result"}, // ising/mixer, hit/miss
	)
)

func observeCacheLookup(kind string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	GateCacheLookups.WithLabelValues(kind, result).Inc()
}
