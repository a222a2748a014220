package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gym_http_requests_total",
		Help: "Total HTTP requests",
	}, []string{"method", "route", "status"})

	ReportBuildsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gym_report_builds_total",
		Help: "Analytics report builds by outcome",
	}, []string{"report", "outcome"})

	ReportBuildDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "gym_report_build_duration_seconds",
		Help:    "Snapshot pull plus aggregation duration",
		Buckets: prometheus.DefBuckets,
	}, []string{"report"})

	ReportAuditPublishesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "gym_report_audit_publishes_total",
		Help: "Report audit events published to Kafka",
	}, []string{"outcome"})
)
