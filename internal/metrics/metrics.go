// Package metrics exposes Prometheus collectors for store operations, LLM
// calls and record counts.
package metrics

import (
	"context"
	"strconv"
	"time"

	"github.com/alexanderramin/spirulina/internal/llm"
	"github.com/alexanderramin/spirulina/internal/service"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "spirulina_"

	resultSuccess = "success"
	resultError   = "error"
)

// Metrics bundles the application collectors.
type Metrics struct {
	UseCasesTotal   *prometheus.CounterVec
	UseCaseDuration *prometheus.HistogramVec
	LLMCallsTotal   *prometheus.CounterVec
	LLMCallDuration *prometheus.HistogramVec
	HTTPRequests    *prometheus.CounterVec
	HTTPDuration    *prometheus.HistogramVec
}

// New constructs the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		UseCasesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "use_case_total",
				Help: "Total store operations by use case and result",
			},
			[]string{"use_case", "result"},
		),
		UseCaseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "use_case_duration_seconds",
				Help:    "Store operation latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"use_case"},
		),
		LLMCallsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "llm_calls_total",
				Help: "Total LLM calls by task, provider and result",
			},
			[]string{"task", "provider", "result"},
		),
		LLMCallDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "llm_call_duration_seconds",
				Help:    "LLM call latency in seconds",
				Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
			},
			[]string{"task", "provider"},
		),
		HTTPRequests: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "http_requests_total",
				Help: "Total API requests by method, route and status code",
			},
			[]string{"method", "route", "code"},
		),
		HTTPDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "http_request_duration_seconds",
				Help:    "API request latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"route"},
		),
	}
	reg.MustRegister(
		m.UseCasesTotal,
		m.UseCaseDuration,
		m.LLMCallsTotal,
		m.LLMCallDuration,
		m.HTTPRequests,
		m.HTTPDuration,
	)
	return m
}

// ObserveUseCase implements service.UseCaseObserver.
func (m *Metrics) ObserveUseCase(_ context.Context, event service.UseCaseEvent) {
	result := resultSuccess
	if !event.Success {
		result = resultError
	}
	m.UseCasesTotal.WithLabelValues(event.Name, result).Inc()
	m.UseCaseDuration.WithLabelValues(event.Name).Observe(event.Duration.Seconds())
}

// OnCallComplete implements llm.Observer. Failed calls are labelled with
// their error code.
func (m *Metrics) OnCallComplete(event llm.LLMCallEvent) {
	result := resultSuccess
	if !event.Success {
		result = event.ErrorCode
		if result == "" {
			result = resultError
		}
	}
	m.LLMCallsTotal.WithLabelValues(string(event.Task), string(event.Provider), result).Inc()
	latency := time.Duration(event.LatencyMs) * time.Millisecond
	m.LLMCallDuration.WithLabelValues(string(event.Task), string(event.Provider)).Observe(latency.Seconds())
}

// ObserveHTTP records one API request. route is the registered path
// pattern, not the raw URL.
func (m *Metrics) ObserveHTTP(method, route string, code int, duration time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	m.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.HTTPDuration.WithLabelValues(route).Observe(duration.Seconds())
}

var (
	_ service.UseCaseObserver = (*Metrics)(nil)
	_ llm.Observer            = (*Metrics)(nil)
)
