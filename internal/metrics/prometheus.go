package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "rewear_admin_requests_total",
		Help: "API requests issued through the authenticated gateway.",
	}, []string{"method", "path", "status"})

	authFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "rewear_admin_auth_failures_total",
		Help: "Requests rejected by the backend with 401/403, each tearing down the session.",
	})
)

func ObserveRequest(method, path string, status int) {
	requestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
}

func RecordAuthFailure() {
	authFailuresTotal.Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
