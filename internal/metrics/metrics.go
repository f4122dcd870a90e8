package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Counters for reservation lifecycle operations. Registered on the default
// registry and served by promhttp on /metrics.
var (
	ReservationsCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sefer_reservations_created_total",
		Help: "Number of reservations created.",
	})

	ReservationsCancelled = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sefer_reservations_cancelled_total",
		Help: "Number of reservations cancelled, by origin of the cancellation.",
	}, []string{"source"})

	SeatClaimConflicts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sefer_seat_claim_conflicts_total",
		Help: "Number of reservation attempts rejected because the seat was held.",
	})

	PaymentsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sefer_payments_completed_total",
		Help: "Number of successfully completed payments.",
	})

	PaymentsRejected = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sefer_payments_rejected_total",
		Help: "Number of rejected payment attempts, by reason.",
	}, []string{"reason"})

	SweeperRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sefer_sweeper_runs_total",
		Help: "Number of expiry sweeper passes.",
	})
)
