package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Caption pipeline metrics
var (
	DiscoveryAttemptsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caption_discovery_attempts_total",
			Help: "Total number of caption discovery strategy attempts.",
		},
		[]string{"strategy", "outcome"},
	)

	CaptionDownloadsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caption_downloads_total",
			Help: "Total number of caption download operations.",
		},
		[]string{"status"},
	)

	ParsedDocumentsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "caption_parsed_documents_total",
			Help: "Total number of caption documents parsed, by detected format.",
		},
		[]string{"format"},
	)
)

func init() {
	prometheus.MustRegister(
		DiscoveryAttemptsTotal,
		CaptionDownloadsTotal,
		ParsedDocumentsTotal,
	)
}
