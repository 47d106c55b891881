// SPDX-License-Identifier: MIT

package solver

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cbls_solver_runs_total",
		Help: "Finished Solve calls by final status",
	}, []string{"status"})

	iterationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cbls_solver_iterations_total",
		Help: "Search iterations performed",
	})

	evaluationsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cbls_solver_evaluations_total",
		Help: "Constraint and objective evaluations performed while scoring candidate moves",
	})

	restartsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cbls_solver_restarts_total",
		Help: "Random restarts after stagnation",
	})

	evaluationErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cbls_solver_evaluation_errors_total",
		Help: "Runs aborted by a failing constraint or objective",
	})

	runDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "cbls_solver_run_duration_seconds",
		Help:    "Wall time of Solve calls",
		Buckets: prometheus.ExponentialBuckets(0.0005, 4, 10),
	}, []string{"mode"})
)
