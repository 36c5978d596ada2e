// Package metrics agrupa los collectors de Prometheus del catálogo.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Metrics contiene todos los collectors. Un nil *Metrics es válido y no registra nada,
// así los tests de dominio no necesitan registry.
type Metrics struct {
	CatalogOperationsTotal   *prometheus.CounterVec   // op, status
	CatalogOperationDuration *prometheus.HistogramVec // op
	HerdSize                 *prometheus.GaugeVec     // status (Active, In Treatment, Deceased)
	StoreOperationsTotal     *prometheus.CounterVec   // driver, op, status
	HTTPRequestsTotal        *prometheus.CounterVec   // method, route, code

	registry *prometheus.Registry
}

// New crea y registra los collectors en registry.
func New(registry *prometheus.Registry) (*Metrics, error) {
	m := &Metrics{registry: registry}

	m.CatalogOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cowcatalog_operations_total",
			Help: "Catalog operations by name and outcome",
		},
		[]string{"op", "status"},
	)
	m.CatalogOperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cowcatalog_operation_duration_seconds",
			Help:    "Latency of catalog operations, including persistence",
			Buckets: []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"op"},
	)
	m.HerdSize = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cowcatalog_cows",
			Help: "Cows currently in the catalog by status",
		},
		[]string{"status"},
	)
	m.StoreOperationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cowcatalog_store_operations_total",
			Help: "Key-value store operations by driver, operation and outcome",
		},
		[]string{"driver", "op", "status"},
	)
	m.HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cowcatalog_http_requests_total",
			Help: "HTTP requests by method, route pattern and status code",
		},
		[]string{"method", "route", "code"},
	)

	for _, c := range []prometheus.Collector{
		m.CatalogOperationsTotal,
		m.CatalogOperationDuration,
		m.HerdSize,
		m.StoreOperationsTotal,
		m.HTTPRequestsTotal,
	} {
		if err := registry.Register(c); err != nil {
			return nil, fmt.Errorf("failed to register catalog metrics: %w", err)
		}
	}
	return m, nil
}

// Registry devuelve el registry usado (para exponer /metrics).
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

// ObserveOperation registra resultado y duración de una operación del catálogo.
func (m *Metrics) ObserveOperation(op string, started time.Time, err error) {
	if m == nil {
		return
	}
	m.CatalogOperationsTotal.WithLabelValues(op, outcome(err)).Inc()
	m.CatalogOperationDuration.WithLabelValues(op).Observe(time.Since(started).Seconds())
}

// ObserveStore registra una operación del kv store.
func (m *Metrics) ObserveStore(driver, op string, err error) {
	if m == nil {
		return
	}
	m.StoreOperationsTotal.WithLabelValues(driver, op, outcome(err)).Inc()
}

// SetHerdSize reemplaza los valores del gauge por status.
func (m *Metrics) SetHerdSize(byStatus map[string]int) {
	if m == nil {
		return
	}
	m.HerdSize.Reset()
	for status, n := range byStatus {
		m.HerdSize.WithLabelValues(status).Set(float64(n))
	}
}

func (m *Metrics) ObserveHTTP(method, route string, code int) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, route, fmt.Sprintf("%d", code)).Inc()
}

func outcome(err error) string {
	if err != nil {
		return StatusError
	}
	return StatusSuccess
}
