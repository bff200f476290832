// Package metrics defines the Prometheus collectors exported by the relay.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Outcome label values for UpstreamRequestsTotal.
const (
	OutcomeOK                  = "ok"
	OutcomeUpstreamUnreachable = "upstream_unreachable"
	OutcomeBodyUnreadable      = "body_unreadable"
	OutcomeMalformedBody       = "malformed_body"
)

// Upstream Slack API metrics
var (
	// UpstreamRequestsTotal counts relayed upstream calls by operation and normalized outcome.
	UpstreamRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "slack_relay_upstream_requests_total",
			Help: "Total upstream Slack API calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	// UpstreamRequestDuration tracks upstream call latency in seconds, body read included.
	UpstreamRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "slack_relay_upstream_request_duration_seconds",
			Help:    "Upstream Slack API call duration in seconds",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"operation"},
	)
)
