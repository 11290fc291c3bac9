package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LoginOutcomes counts /login and /api/login results by outcome label
	LoginOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "student_intake",
		Name:      "login_outcomes_total",
		Help:      "Login attempts by outcome.",
	}, []string{"flow", "outcome"})

	// TokenRejections counts tokens that failed to decode, by reason
	TokenRejections = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "student_intake",
		Name:      "token_rejections_total",
		Help:      "Bearer tokens rejected, by decode status.",
	}, []string{"reason"})

	SubmissionsAccepted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "student_intake",
		Name:      "submissions_accepted_total",
		Help:      "Questionnaire results appended to the pending queue.",
	})

	SubmissionsDrained = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "student_intake",
		Name:      "submissions_drained_total",
		Help:      "Questionnaire results handed to the export job.",
	})

	RosterSize = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "student_intake",
		Name:      "roster_students",
		Help:      "Students currently loaded in the directory.",
	})
)
