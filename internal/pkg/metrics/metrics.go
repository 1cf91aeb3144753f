package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "biblioteca"

// Registry holds every metric exported on /metrics
var Registry = NewRegistry(true)

var (
	// PrestamosCreados counts committed loans
	PrestamosCreados = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "prestamos_creados_total",
		Help:      "Loans created.",
	})

	// DetallesDevueltos counts returned loan details by final physical state
	DetallesDevueltos = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "detalles_devueltos_total",
		Help:      "Loan details returned, by final state of the copy.",
	}, []string{"estado_final"})

	// BarridoVencidos counts rows moved to VENCIDO by the expiration sweep
	BarridoVencidos = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "barrido_vencidos_total",
		Help:      "Rows expired by the overdue sweep, by table.",
	}, []string{"tabla"})

	// HTTPRequests counts served requests by method, route and status
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "HTTP requests served.",
	}, []string{"method", "route", "status"})
)

func init() {
	Registry.MustRegister(PrestamosCreados, DetallesDevueltos, BarridoVencidos, HTTPRequests)
}

// NewRegistry creates a new registry. If collectProcessMetrics is set, the Go
// and process collectors are registered.
func NewRegistry(collectProcessMetrics bool) *prometheus.Registry {
	registry := prometheus.NewRegistry()
	if collectProcessMetrics {
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
	return registry
}

// Handler serves Registry in the prometheus exposition format
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}
