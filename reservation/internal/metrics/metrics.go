package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/Astemirdum/hotel-reservation/reservation/internal/errs"
)

const Namespace = "hotel"

const (
	ResultOK       = "ok"
	ResultRejected = "rejected"
	ResultError    = "error"
)

type Metrics struct {
	operations *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		operations: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "reservation_operations_total",
			Help:      "Count of reservation operations by outcome.",
		}, []string{"operation", "result"}),
	}
}

// Observe counts one operation; input errors are rejections, the rest are failures.
func (m *Metrics) Observe(operation string, err error) {
	if m == nil {
		return
	}
	result := ResultOK
	switch {
	case err == nil:
	case errs.IsBadRequest(err):
		result = ResultRejected
	default:
		result = ResultError
	}
	m.operations.WithLabelValues(operation, result).Inc()
}
