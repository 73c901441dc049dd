package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// IngestRuns counts ingestion runs by provider and outcome
	// (success, empty, provider_error, storage_error, verify_error).
	IngestRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "adpulse",
		Name:      "ingest_runs_total",
		Help:      "Ingestion runs by provider and outcome.",
	}, []string{"provider", "outcome"})

	// CreativesUpserted counts raw ad rows written by ingestion.
	CreativesUpserted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "adpulse",
		Name:      "creatives_upserted_total",
		Help:      "Raw ad creative rows upserted.",
	})

	// ProviderErrors counts hard fetch failures per provider.
	ProviderErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "adpulse",
		Name:      "provider_errors_total",
		Help:      "Hard provider fetch failures.",
	}, []string{"provider"})

	// SummaryRows counts aggregate rows written per summary kind.
	SummaryRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "adpulse",
		Name:      "summary_rows_written_total",
		Help:      "Summary rows written by kind.",
	}, []string{"kind"})

	// IngestDuration observes wall-clock time of whole ingestion runs.
	IngestDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "adpulse",
		Name:      "ingest_duration_seconds",
		Help:      "Duration of ingestion runs.",
		Buckets:   prometheus.DefBuckets,
	})
)
