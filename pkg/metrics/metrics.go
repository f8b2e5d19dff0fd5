package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Payment routing and collection counters. Labels stay low-cardinality:
// processor is the closed enum, outcome is success/declined/unavailable/error.
var (
	ChargeAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bookedbarber",
		Subsystem: "router",
		Name:      "charge_attempts_total",
		Help:      "Gateway charge attempts by processor and outcome",
	}, []string{"processor", "outcome"})

	Fallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "bookedbarber",
		Subsystem: "router",
		Name:      "fallbacks_total",
		Help:      "Charges retried on the platform processor after an unavailable primary",
	})

	CollectionRuns = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "bookedbarber",
		Subsystem: "collections",
		Name:      "cycles_total",
		Help:      "Collection scheduler cycles executed",
	})

	CollectionOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "bookedbarber",
		Subsystem: "collections",
		Name:      "outcomes_total",
		Help:      "Collection attempts by method and outcome",
	}, []string{"method", "outcome"})
)
