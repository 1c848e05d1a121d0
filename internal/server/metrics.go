package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lattice_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "lattice_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Page processing metrics
	pagesProcessedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lattice_pages_processed_total",
			Help: "Total number of pages processed",
		},
		[]string{"status"},
	)

	pageProcessingDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lattice_page_processing_duration_seconds",
			Help:    "Page processing duration in seconds",
			Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 25},
		},
	)

	tablesDetected = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lattice_tables_detected",
			Help:    "Number of table regions detected per page",
			Buckets: []float64{0, 1, 2, 3, 5, 10, 20},
		},
	)

	markupLength = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "lattice_markup_length_bytes",
			Help:    "Length of serialized page markup",
			Buckets: []float64{100, 500, 1000, 5000, 10000, 50000, 100000, 500000},
		},
	)
)
