// internal/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HttpRequestsTotal counts requests served by the development backend.
	HttpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_http_requests_total",
			Help: "Total number of http requests handled by the job API.",
		},
		[]string{"path", "method", "code"},
	)

	// MutationsTotal counts create/update/delete calls issued by the client.
	MutationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_mutations_total",
			Help: "Total number of job mutations dispatched to the backend.",
		},
		[]string{"operation", "outcome"}, // outcome: success | failed
	)

	// FormSubmissionsTotal counts form submit triggers by how they ended.
	FormSubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_form_submissions_total",
			Help: "Total number of job form submissions by result.",
		},
		[]string{"result"}, // invalid | rejected | in_flight | failed | succeeded
	)

	// ConfirmationsTotal counts destructive-action prompts by resolution.
	ConfirmationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "jobboard_confirmations_total",
			Help: "Total number of confirmation prompts by resolution.",
		},
		[]string{"resolution"}, // confirmed | cancelled | dismissed | failed
	)
)
