// Package observability exposes Prometheus metrics for the signup service.
package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Reservation attempt outcomes used as label values.
const (
	OutcomeConfirmed       = "confirmed"
	OutcomeDuplicate       = "duplicate"
	OutcomeFull            = "full"
	OutcomeUnknownActivity = "unknown_activity"
	OutcomeNotRegistered   = "not_registered"
	OutcomeError           = "error"
)

var (
	// ReservationAttempts counts reserve calls by outcome. The confirmed
	// series equals the number of reservation rows ever inserted.
	ReservationAttempts = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "signup_reservation_attempts_total",
		Help: "Reservation attempts partitioned by outcome.",
	}, []string{"outcome"})

	// Registrations counts successful register upserts, first-time and
	// repeat alike.
	Registrations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signup_registrations_total",
		Help: "Successful participant registrations (including re-registrations).",
	})

	// CatalogSyncs counts admin catalog resynchronizations.
	CatalogSyncs = promauto.NewCounter(prometheus.CounterOpts{
		Name: "signup_catalog_syncs_total",
		Help: "Catalog synchronizations applied.",
	})
)

// ObserveReservation records one reserve attempt with the given outcome.
func ObserveReservation(outcome string) {
	ReservationAttempts.WithLabelValues(outcome).Inc()
}
