package demo

import (
	"errors"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// MetricsObserver counts the notifications it receives, labelled by listener
// interface and operation.
type MetricsObserver struct {
	deliveries *prometheus.CounterVec
}

// NewMetricsObserver registers the notification counter with reg. If an
// identical counter is already registered there, it is reused. A nil reg
// leaves the counter unregistered.
func NewMetricsObserver(reg prometheus.Registerer) (*MetricsObserver, error) {
	cv := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "observerkit",
			Subsystem: "demo",
			Name:      "notifications_total",
			Help:      "Total number of notifications delivered to the metrics observer",
		},
		[]string{"interface", "operation"},
	)
	if reg != nil {
		if err := reg.Register(cv); err != nil {
			var are prometheus.AlreadyRegisteredError
			if !errors.As(err, &are) {
				return nil, fmt.Errorf("register notification counter: %w", err)
			}
			existing, ok := are.ExistingCollector.(*prometheus.CounterVec)
			if !ok {
				return nil, fmt.Errorf("register notification counter: %w", err)
			}
			cv = existing
		}
	}
	return &MetricsObserver{deliveries: cv}, nil
}

func (m *MetricsObserver) OnLeftMouseButton(x, y int) {
	m.deliveries.WithLabelValues("MouseListener", "OnLeftMouseButton").Inc()
}

func (m *MetricsObserver) OnKeyPressed(code int) {
	m.deliveries.WithLabelValues("KeyboardListener", "OnKeyPressed").Inc()
}

// Counter exposes the underlying counter vector.
func (m *MetricsObserver) Counter() *prometheus.CounterVec { return m.deliveries }
