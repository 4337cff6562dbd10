package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all application metrics
type Metrics struct {
	BookingsTotal      *prometheus.CounterVec
	StatusTransitions  *prometheus.CounterVec
	NotificationsTotal *prometheus.CounterVec
}

// New creates and registers all application metrics on a fresh registry-free
// promauto set (default registerer).
func New(namespace string) *Metrics {
	return &Metrics{
		BookingsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_total",
			Help:      "Booking attempts by outcome",
		}, []string{"outcome"}),
		StatusTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "status_transitions_total",
			Help:      "Appointment status transitions by target status",
		}, []string{"to"}),
		NotificationsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "notifications_total",
			Help:      "Booking events emitted by kind",
		}, []string{"kind"}),
	}
}
