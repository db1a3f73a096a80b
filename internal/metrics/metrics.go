// Package metrics defines the Prometheus instruments for the reservation
// service. Register is idempotent; handlers call the tiny Inc helpers so the
// rest of the code never touches prometheus types directly.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	reservationCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "canteen",
			Name:      "reservation_created_total",
			Help:      "Count of reservations successfully committed.",
		},
	)

	reservationRejected = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "canteen",
			Name:      "reservation_rejected_total",
			Help:      "Count of reservation requests rejected, by reason.",
		},
		[]string{"reason"},
	)

	reservationCancelled = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "canteen",
			Name:      "reservation_cancelled_total",
			Help:      "Count of reservations cancelled, cascades included.",
		},
	)

	canteenMutations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "canteen",
			Name:      "canteen_mutation_total",
			Help:      "Count of canteen directory mutations, by operation.",
		},
		[]string{"op"},
	)
)

// Register registers all instruments with the default registry (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(reservationCreated, reservationRejected, reservationCancelled, canteenMutations)
	})
}

func IncReservationCreated() {
	reservationCreated.Inc()
}

func IncReservationRejected(reason string) {
	reservationRejected.WithLabelValues(reason).Inc()
}

func IncReservationCancelled() {
	reservationCancelled.Inc()
}

func IncCanteenMutation(op string) {
	canteenMutations.WithLabelValues(op).Inc()
}
