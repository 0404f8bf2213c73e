// Package observability provides Prometheus metrics for the application.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "melodygram"

// Metrics holds all application metrics.
type Metrics struct {
	// Download metrics
	DownloadsStarted   prometheus.Counter
	DownloadsCompleted prometheus.Counter
	DownloadsFailed    *prometheus.CounterVec
	DownloadsInFlight  prometheus.Gauge
	DownloadDuration   prometheus.Histogram

	// Collection metrics
	CollectionTracks     prometheus.Counter
	CollectionsCompleted prometheus.Counter

	// Catalog metrics
	CatalogRequests *prometheus.CounterVec

	// Workspace metrics
	CleanupFiles prometheus.Counter

	// Transport metrics
	TelegramSends *prometheus.CounterVec
}

// New creates and registers all application metrics.
func New() *Metrics {
	return &Metrics{
		DownloadsStarted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "downloads",
			Name:      "started_total",
			Help:      "Total number of download jobs started",
		}),
		DownloadsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "downloads",
			Name:      "completed_total",
			Help:      "Total number of download jobs completed successfully",
		}),
		DownloadsFailed: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "downloads",
			Name:      "failed_total",
			Help:      "Total number of download jobs that failed, by reason",
		}, []string{"reason"}),
		DownloadsInFlight: promauto.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "downloads",
			Name:      "in_flight",
			Help:      "Number of download jobs currently occupying a worker slot",
		}),
		DownloadDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "downloads",
			Name:      "duration_seconds",
			Help:      "Histogram of download job duration in seconds",
			Buckets:   []float64{1, 5, 10, 20, 30, 45, 60, 90},
		}),

		CollectionTracks: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "collections",
			Name:      "tracks_total",
			Help:      "Total number of tracks attempted as part of collection jobs",
		}),
		CollectionsCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "collections",
			Name:      "completed_total",
			Help:      "Total number of collection jobs run to completion",
		}),

		CatalogRequests: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "catalog",
			Name:      "requests_total",
			Help:      "Total number of catalog metadata requests",
		}, []string{"kind", "status"}),

		CleanupFiles: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "workspace",
			Name:      "cleanup_files_total",
			Help:      "Total number of workspace files cleaned up",
		}),

		TelegramSends: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "telegram",
			Name:      "sends_total",
			Help:      "Total number of outbound telegram operations",
		}, []string{"type", "status"}),
	}
}

// Handler returns the Prometheus HTTP handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// All Record methods tolerate a nil receiver so tests can run components
// without registering collectors in the default registry.

// DownloadTimer returns a function to record the duration of one download job.
func (m *Metrics) DownloadTimer() func() {
	if m == nil {
		return func() {}
	}

	start := time.Now()

	return func() {
		m.DownloadDuration.Observe(time.Since(start).Seconds())
	}
}

// RecordDownloadStarted marks a job as occupying a worker slot.
func (m *Metrics) RecordDownloadStarted() {
	if m == nil {
		return
	}

	m.DownloadsStarted.Inc()
	m.DownloadsInFlight.Inc()
}

// RecordDownloadCompleted records a successful job.
func (m *Metrics) RecordDownloadCompleted() {
	if m == nil {
		return
	}

	m.DownloadsCompleted.Inc()
	m.DownloadsInFlight.Dec()
}

// RecordDownloadFailed records a failed job with its taxonomy reason.
func (m *Metrics) RecordDownloadFailed(reason string) {
	if m == nil {
		return
	}

	m.DownloadsFailed.WithLabelValues(reason).Inc()
	m.DownloadsInFlight.Dec()
}

// RecordCollectionTrack counts one attempted track within a collection job.
func (m *Metrics) RecordCollectionTrack() {
	if m == nil {
		return
	}

	m.CollectionTracks.Inc()
}

// RecordCollectionCompleted counts one collection job run to completion.
func (m *Metrics) RecordCollectionCompleted() {
	if m == nil {
		return
	}

	m.CollectionsCompleted.Inc()
}

// RecordCatalogRequest records a catalog metadata request.
func (m *Metrics) RecordCatalogRequest(kind, status string) {
	if m == nil {
		return
	}

	m.CatalogRequests.WithLabelValues(kind, status).Inc()
}

// RecordCleanupFiles counts removed workspace files.
func (m *Metrics) RecordCleanupFiles(count int) {
	if m == nil {
		return
	}

	m.CleanupFiles.Add(float64(count))
}

// RecordTelegramSend records an outbound telegram operation.
func (m *Metrics) RecordTelegramSend(opType, status string) {
	if m == nil {
		return
	}

	m.TelegramSends.WithLabelValues(opType, status).Inc()
}
