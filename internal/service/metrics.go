package service

import (
	"errors"

	"tasktracker/internal/domain"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	AchievementsAwarded = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_achievements_awarded_total",
			Help: "Achievements minted by the milestone evaluator",
		},
		[]string{"type"},
	)
	StoreErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracker_store_errors_total",
			Help: "Record store calls that failed with a transport error",
		},
		[]string{"op"},
	)
)

func init() {
	prometheus.MustRegister(AchievementsAwarded)
	prometheus.MustRegister(StoreErrors)
}

// observe counts transport failures and returns err unchanged
func observe(op string, err error) error {
	if err != nil && errors.Is(err, domain.ErrUnavailable) {
		StoreErrors.WithLabelValues(op).Inc()
	}
	return err
}
