package game

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	outcomesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "trivia",
		Name:      "question_outcomes_total",
		Help:      "Resolved question outcomes by result.",
	}, []string{"result"})

	runsCompleted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "trivia",
		Name:      "runs_completed_total",
		Help:      "Full passes over all sections.",
	})
)

func observeOutcome(o Outcome) {
	result := "timeout"
	if o.Answered {
		result = "answered"
	}
	outcomesTotal.WithLabelValues(result).Inc()
}
