package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"go-seo-analyzer/pkg/models"
)

// Metrics records analysis outcomes and the keyword frequencies of the latest
// analysis.
type Metrics struct {
	registry      *prometheus.Registry
	analyses      *prometheus.CounterVec
	fetchDuration prometheus.Histogram
	wordFrequency *prometheus.GaugeVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		analyses: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "seo_analyzer_analyses_total",
				Help: "Analyses run, by outcome",
			},
			[]string{"outcome"},
		),
		fetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "seo_analyzer_fetch_duration_seconds",
			Help:    "Time spent fetching the analysed page",
			Buckets: prometheus.DefBuckets,
		}),
		wordFrequency: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "seo_analyzer_word_frequency",
				Help: "The frequency of each top keyword in the latest analysis",
			},
			[]string{"word"},
		),
	}
}

// ObserveAnalysis counts one finished analysis. outcome is "ok" or an error kind.
func (m *Metrics) ObserveAnalysis(outcome string) {
	m.analyses.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveFetch(d time.Duration) {
	m.fetchDuration.Observe(d.Seconds())
}

// UpdateKeywords replaces every keyword gauge with the top keywords of the
// latest analysis.
func (m *Metrics) UpdateKeywords(top []models.TermCount) {
	m.wordFrequency.Reset()
	for _, tc := range top {
		m.wordFrequency.WithLabelValues(tc.Term).Set(float64(tc.Count))
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
