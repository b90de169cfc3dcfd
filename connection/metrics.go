package connection

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	totalRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sfrest_requests_total",
		Help: "Total number of requests to the Site Factory API",
	}, []string{"method", "status"})
	responseTimeMillis = promauto.NewSummaryVec(prometheus.SummaryOpts{
		Name:       "sfrest_response_time_milliseconds",
		Help:       "Duration of Site Factory API requests in milliseconds",
		Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
	}, []string{"method"})
)

func observe(method string, code int, elapsed time.Duration) {
	millis := float64(elapsed) / float64(time.Millisecond)
	responseTimeMillis.WithLabelValues(method).Observe(millis)
	totalRequests.With(prometheus.Labels{"method": method, "status": statusLabel(code)}).Inc()
}

func statusLabel(code int) string {
	switch {
	case code == 0:
		return "error"
	case code >= 100 && code < 300:
		return "success"
	default:
		return "fail"
	}
}
