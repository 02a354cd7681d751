package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce                   sync.Once
	apiRequestsTotal               *prometheus.CounterVec
	apiLatencySeconds              *prometheus.HistogramVec
	apiErrorsTotal                 *prometheus.CounterVec
	tasksAssignedTotal             *prometheus.CounterVec
	notificationsDispatchedTotal   *prometheus.CounterVec
)

// RegisterMetrics initialises the Prometheus collectors used by the API.
func RegisterMetrics() {
	registerOnce.Do(func() {
		apiRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests served.",
		}, []string{"method", "route", "status"})

		apiLatencySeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "api_latency_seconds",
			Help:    "Latency distribution for API requests.",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.0},
		}, []string{"method", "route"})

		apiErrorsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "api_errors_total",
			Help: "Total number of error responses returned by the API.",
		}, []string{"method", "route", "status"})

		tasksAssignedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tasks_assigned_total",
			Help: "Total number of tasks assigned to students.",
		}, []string{"priority"})

		notificationsDispatchedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "notifications_dispatched_total",
			Help: "Total number of notifications created by the fan-out.",
		}, []string{"type"})

		prometheus.MustRegister(
			apiRequestsTotal,
			apiLatencySeconds,
			apiErrorsTotal,
			tasksAssignedTotal,
			notificationsDispatchedTotal,
		)
	})
}

// APIRequests exposes the counter for served requests.
func APIRequests() *prometheus.CounterVec {
	RegisterMetrics()
	return apiRequestsTotal
}

// APILatency exposes the latency histogram for served requests.
func APILatency() *prometheus.HistogramVec {
	RegisterMetrics()
	return apiLatencySeconds
}

// APIErrors exposes the counter for error responses.
func APIErrors() *prometheus.CounterVec {
	RegisterMetrics()
	return apiErrorsTotal
}

// TasksAssignedTotal exposes the counter for created tasks.
func TasksAssignedTotal() *prometheus.CounterVec {
	RegisterMetrics()
	return tasksAssignedTotal
}

// NotificationsDispatchedTotal exposes the counter for fanned-out notifications.
func NotificationsDispatchedTotal() *prometheus.CounterVec {
	RegisterMetrics()
	return notificationsDispatchedTotal
}
