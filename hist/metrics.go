// SPDX-License-Identifier: MIT

package hist

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	growthComputations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "panacus_growth_computations_total",
		Help: "Number of growth curves computed, by regime",
	}, []string{"regime"})

	growthSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "panacus_growth_seconds",
		Help:    "Duration of one growth curve computation, by regime",
		Buckets: prometheus.DefBuckets,
	}, []string{"regime"})
)
