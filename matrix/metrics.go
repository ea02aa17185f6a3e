// SPDX-License-Identifier: MIT

package matrix

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	buildSeconds = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "panacus_matrix_build_seconds",
		Help:    "Duration of coverage matrix construction",
		Buckets: prometheus.DefBuckets,
	}, []string{"count"})

	nonZeroEntries = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "panacus_matrix_nonzero_entries",
		Help: "Number of stored (item, group) entries of the last built coverage matrix",
	}, []string{"count"})
)
