package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics contadores Prometheus del motor de inventario.
type Metrics struct {
	MovementsTotal           *prometheus.CounterVec
	TransferTransitionsTotal *prometheus.CounterVec
}

// Resultados usados como label "result" en movements_total.
const (
	MetricResultOK                = "ok"
	MetricResultInsufficientStock = "insufficient_stock"
	MetricResultError             = "error"
)

// NewMetrics crea y registra los contadores en el registro global.
func NewMetrics() *Metrics {
	movements := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kardex_movements_total",
			Help: "Movimientos de kardex registrados, por tipo y resultado",
		},
		[]string{"type", "result"},
	)
	transitions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "kardex_transfer_transitions_total",
			Help: "Transiciones de estado de traslados, por estado destino",
		},
		[]string{"to_status"},
	)
	prometheus.MustRegister(movements)
	prometheus.MustRegister(transitions)
	return &Metrics{
		MovementsTotal:           movements,
		TransferTransitionsTotal: transitions,
	}
}

// MetricsHandler expone /metrics en formato Prometheus.
func MetricsHandler() fiber.Handler {
	return adaptor.HTTPHandler(promhttp.Handler())
}
