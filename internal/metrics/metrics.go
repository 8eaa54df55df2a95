// Package metrics holds the prometheus instruments for the ingestion
// pipeline. Everything registers on the default registry; the /metrics
// endpoint exposes it.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	IngestedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "propmedia",
		Name:      "ingested_total",
		Help:      "Media items stored, by media type and storage tier.",
	}, []string{"type", "storage"})

	IngestFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "propmedia",
		Name:      "ingest_failures_total",
		Help:      "Files that failed ingestion, by pipeline stage.",
	}, []string{"stage"})

	UploadRetries = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "propmedia",
		Name:      "upload_retries_total",
		Help:      "Remote upload attempts beyond the first.",
	})

	CompressionSavedBytes = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "propmedia",
		Name:      "compression_saved_bytes_total",
		Help:      "Bytes trimmed from originals by compression.",
	})

	CompressionFallbacks = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "propmedia",
		Name:      "compression_fallbacks_total",
		Help:      "Compressions that fell back to the original file.",
	})

	ThumbnailFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "propmedia",
		Name:      "thumbnail_failures_total",
		Help:      "Thumbnail generations that failed; uploads proceed without one.",
	})
)
