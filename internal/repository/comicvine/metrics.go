package comicvine

import "github.com/prometheus/client_golang/prometheus"

var (
	CircuitBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "catalog_circuit_breaker_state",
			Help: "Catalog circuit breaker state (0 closed, 1 half-open, 2 open).",
		},
		[]string{"name"},
	)

	CatalogRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_requests_total",
			Help: "Catalog searches through the circuit breaker by result.",
		},
		[]string{"name", "result"},
	)
)

func init() {
	prometheus.MustRegister(CircuitBreakerState, CatalogRequestsTotal)
}
