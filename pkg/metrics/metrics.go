// Package metrics define y registra las métricas Prometheus del controlador de estoque.
// Las variables se registran en el registry por defecto vía promauto al importar el paquete.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "confeitaria"

// Resultados posibles de una operación de estoque.
const (
	OutcomeOK         = "ok"
	OutcomeForbidden  = "forbidden"
	OutcomeValidation = "validation"
	OutcomeNotFound   = "not_found"
	OutcomeRepository = "repository_error"
)

// StockOperationsTotal cuenta operaciones de estoque por capacidad (create, listAll, ...) y resultado.
var StockOperationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "stock_operations_total",
		Help:      "Total de operaciones de estoque, por operación y resultado.",
	},
	[]string{"operation", "outcome"},
)

// StockOperationDuration mide la duración de cada operación del caso de uso.
var StockOperationDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "stock_operation_duration_seconds",
		Help:      "Duración de las operaciones de estoque.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// LowStockReadsTotal cuenta cada ingrediente devuelto en nivel mínimo o por debajo. Una misma
// fila leída varias veces suma varias veces: mide lecturas, no transiciones.
var LowStockReadsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "low_stock_reads_total",
		Help:      "Lecturas de ingredientes con unitCount <= minimumThreshold.",
	},
)

// CacheRequestsTotal cuenta aciertos y fallos del caché de ingredientes.
var CacheRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "ingredient_cache_requests_total",
		Help:      "Consultas al caché Redis de ingredientes, por resultado (hit/miss/error).",
	},
	[]string{"result"},
)
