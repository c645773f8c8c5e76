package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	RequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "http_requests_total", Help: "Total HTTP requests"},
		[]string{"route", "method", "status"},
	)
	ReqDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Request duration seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route", "method"},
	)
	InFlight = prometheus.NewGauge(
		prometheus.GaugeOpts{Name: "http_in_flight_requests", Help: "In-flight HTTP requests"},
	)
	StoreOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "thoughts_store_ops_total", Help: "Storage calls by outcome"},
		[]string{"op", "outcome"}, // outcome: ok|not_found|invalid|timeout|error
	)
	EventsPublished = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "thoughts_events_published_total", Help: "Domain events handed to the broker"},
		[]string{"key", "status"},
	)
)

var once sync.Once

// MustRegister registers every collector on the default registry. Safe to call more than once.
func MustRegister() {
	once.Do(func() {
		prometheus.MustRegister(RequestsTotal, ReqDuration, InFlight, StoreOps, EventsPublished)
	})
}
