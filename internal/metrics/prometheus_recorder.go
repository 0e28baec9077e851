package metrics

import (
	"strconv"
	"sync"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
)

// PrometheusRecorder implements Recorder using Prometheus metrics.
type PrometheusRecorder struct {
	once             sync.Once
	lookups          *prom.CounterVec
	resolveTiers     *prom.CounterVec
	equations        *prom.CounterVec
	documentDuration prom.Histogram
	indexSize        *prom.GaugeVec
}

// NewPrometheusRecorder constructs and registers Prometheus metrics (idempotent).
func NewPrometheusRecorder(reg *prom.Registry) *PrometheusRecorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	pr := &PrometheusRecorder{}
	pr.once.Do(func() {
		pr.lookups = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docbind",
			Name:      "lookups_total",
			Help:      "Documentation lookups by profile and outcome",
		}, []string{"profile", "result"})
		pr.resolveTiers = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docbind",
			Name:      "resolve_tier_total",
			Help:      "Which fallback tier resolved a documentation file",
		}, []string{"profile", "tier"})
		pr.equations = prom.NewCounterVec(prom.CounterOpts{
			Namespace: "docbind",
			Name:      "equations_total",
			Help:      "Equation markup blocks by replacement outcome",
		}, []string{"outcome"})
		pr.documentDuration = prom.NewHistogram(prom.HistogramOpts{
			Namespace: "docbind",
			Name:      "document_duration_seconds",
			Help:      "Time to read, normalize and parse one documentation file",
			Buckets:   prom.ExponentialBuckets(0.0005, 2, 12),
		})
		pr.indexSize = prom.NewGaugeVec(prom.GaugeOpts{
			Namespace: "docbind",
			Name:      "index_files",
			Help:      "Number of documentation files in the profile index",
		}, []string{"profile"})
		reg.MustRegister(pr.lookups, pr.resolveTiers, pr.equations, pr.documentDuration, pr.indexSize)
	})
	return pr
}

func (p *PrometheusRecorder) IncLookup(profile string, result LookupResult) {
	if p == nil || p.lookups == nil {
		return
	}
	p.lookups.WithLabelValues(profile, string(result)).Inc()
}

func (p *PrometheusRecorder) IncResolveTier(profile string, tier int) {
	if p == nil || p.resolveTiers == nil {
		return
	}
	p.resolveTiers.WithLabelValues(profile, strconv.Itoa(tier)).Inc()
}

func (p *PrometheusRecorder) IncEquation(outcome EquationOutcome) {
	if p == nil || p.equations == nil {
		return
	}
	p.equations.WithLabelValues(string(outcome)).Inc()
}

func (p *PrometheusRecorder) ObserveDocumentDuration(d time.Duration) {
	if p == nil || p.documentDuration == nil {
		return
	}
	p.documentDuration.Observe(d.Seconds())
}

func (p *PrometheusRecorder) SetIndexSize(profile string, n int) {
	if p == nil || p.indexSize == nil {
		return
	}
	p.indexSize.WithLabelValues(profile).Set(float64(n))
}
