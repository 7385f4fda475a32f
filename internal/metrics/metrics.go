// Package metrics exposes Prometheus counters for page renders and form
// submissions.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "airbear"

// Submission outcomes, used as the "outcome" label value.
const (
	OutcomeAccepted   = "accepted"
	OutcomeIncomplete = "incomplete"
	OutcomeInvalid    = "invalid"
	OutcomeFailed     = "failed"
)

// Metrics groups the app's collectors. A nil *Metrics is valid and records
// nothing.
type Metrics struct {
	registry    *prometheus.Registry
	submissions *prometheus.CounterVec
	renders     *prometheus.CounterVec
}

// New builds the collectors on a fresh registry, alongside the Go runtime
// and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()

	m := &Metrics{
		registry: reg,
		submissions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "form_submissions_total",
				Help:      "Form submissions by form and outcome.",
			},
			[]string{"form", "outcome"},
		),
		renders: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "page_renders_total",
				Help:      "Rendered pages by page name and status code class.",
			},
			[]string{"page", "code"},
		),
	}

	reg.MustRegister(
		m.submissions,
		m.renders,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// ObserveSubmission counts one submission of form with the given outcome.
func (m *Metrics) ObserveSubmission(form, outcome string) {
	if m == nil {
		return
	}
	m.submissions.WithLabelValues(form, outcome).Inc()
}

// ObserveRender counts one rendered page.
func (m *Metrics) ObserveRender(page string, status int) {
	if m == nil {
		return
	}
	m.renders.WithLabelValues(page, codeClass(status)).Inc()
}

// Submissions exposes the submission counter for inspection in tests.
func (m *Metrics) Submissions() *prometheus.CounterVec { return m.submissions }

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func codeClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
