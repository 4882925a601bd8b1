package service

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ActivitiesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "character_activities_total",
			Help: "Character activities by kind and outcome",
		},
		[]string{"activity", "outcome"},
	)
	LevelUpsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "character_level_ups_total",
			Help: "Levels gained across all characters",
		},
	)
	EvolutionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "character_evolutions_total",
			Help: "Characters that evolved from egg to duck",
		},
	)
	BonusesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "daily_bonus_granted_total",
			Help: "All-complete bonuses granted",
		},
	)
	PointsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "points_moved_total",
			Help: "Points credited or debited by ledger type",
		},
		[]string{"type", "direction"},
	)
)

func init() {
	prometheus.MustRegister(ActivitiesTotal)
	prometheus.MustRegister(LevelUpsTotal)
	prometheus.MustRegister(EvolutionsTotal)
	prometheus.MustRegister(BonusesTotal)
	prometheus.MustRegister(PointsTotal)
}

func recordPoints(txType string, amount int64) {
	if amount < 0 {
		PointsTotal.WithLabelValues(txType, "debit").Add(float64(-amount))
		return
	}
	PointsTotal.WithLabelValues(txType, "credit").Add(float64(amount))
}
