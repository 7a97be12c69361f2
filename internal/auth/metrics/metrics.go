// Package metrics holds the Prometheus collectors for the auth service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "sessiond"

// Outcome labels.
const (
	OutcomeSuccess      = "success"
	OutcomeInvalid      = "invalid"
	OutcomeMissing      = "missing"
	OutcomeExpired      = "expired"
	OutcomeWrongScope   = "wrong_scope"
	OutcomeRateLimited  = "rate_limited"
	OutcomeUnavailable  = "unavailable"
	OutcomeBadRequest   = "bad_request"
	OutcomeConflict     = "conflict"
	OutcomeInternalFail = "error"
)

type Metrics struct {
	Logins        *prometheus.CounterVec
	Refreshes     *prometheus.CounterVec
	Registrations *prometheus.CounterVec
	GuardDecision *prometheus.CounterVec
	RateLimited   *prometheus.CounterVec

	registry *prometheus.Registry
}

// New creates the auth collectors on a private registry, alongside the
// standard Go and process collectors.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	m := NewMetrics(reg)
	m.registry = reg
	return m
}

// NewMetrics creates and registers the auth collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts by outcome",
		}, []string{"outcome"}),
		Refreshes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "refreshes_total",
			Help:      "Access token refreshes by outcome",
		}, []string{"outcome"}),
		Registrations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "registrations_total",
			Help:      "User registrations by outcome",
		}, []string{"outcome"}),
		GuardDecision: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "guard_decisions_total",
			Help:      "Bearer token checks on protected routes by outcome",
		}, []string{"outcome"}),
		RateLimited: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rate_limit_rejections_total",
			Help:      "Requests refused by the fixed-window limiter by route and reason",
		}, []string{"route", "reason"}),
	}

	reg.MustRegister(m.Logins, m.Refreshes, m.Registrations, m.GuardDecision, m.RateLimited)
	return m
}

// Handler exposes the private registry. It is nil-safe for metrics built
// with NewMetrics against an external registerer.
func (m *Metrics) Handler() http.Handler {
	if m.registry == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
