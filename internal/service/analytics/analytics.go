package analytics

import (
	"context"
	"encoding/json"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/zinoo-dez/gym-api/internal/analytics"
	kafkax "github.com/zinoo-dez/gym-api/internal/kafka"
	"github.com/zinoo-dez/gym-api/internal/metrics"
)

// AnalyticsService builds reports from a single snapshot pull. Each call is
// stateless: now is taken once, the snapshot loads via a concurrent fan-out
// and the aggregation runs in memory on the joined result. There is no
// cache; a request deadline bounds the whole build through ctx.
type AnalyticsService struct {
	log      *zap.Logger
	source   analytics.Source
	windows  analytics.Windows
	producer *kafkax.Producer
}

func NewAnalyticsService(log *zap.Logger, source analytics.Source, windows analytics.Windows, producer *kafkax.Producer) *AnalyticsService {
	return &AnalyticsService{log: log, source: source, windows: windows, producer: producer}
}

// Report builds the full reporting-and-analytics payload. A failed source
// pull fails the whole report; partial data is never returned.
func (s *AnalyticsService) Report(ctx context.Context) (*analytics.Report, error) {
	now := time.Now().UTC()
	timer := prometheus.NewTimer(metrics.ReportBuildDuration.WithLabelValues("report"))
	defer timer.ObserveDuration()

	snap, err := analytics.LoadSnapshot(ctx, s.source, now, s.windows)
	if err != nil {
		metrics.ReportBuildsTotal.WithLabelValues("report", "error").Inc()
		s.log.Error("snapshot load failed", zap.Error(err))
		return nil, err
	}
	rep := analytics.BuildReport(now, snap)
	metrics.ReportBuildsTotal.WithLabelValues("report", "ok").Inc()
	s.publishAudit("report", now)
	return rep, nil
}

// Dashboard builds the operator dashboard summary.
func (s *AnalyticsService) Dashboard(ctx context.Context) (*analytics.Dashboard, error) {
	now := time.Now().UTC()
	timer := prometheus.NewTimer(metrics.ReportBuildDuration.WithLabelValues("dashboard"))
	defer timer.ObserveDuration()

	snap, err := analytics.LoadSnapshot(ctx, s.source, now, s.windows)
	if err != nil {
		metrics.ReportBuildsTotal.WithLabelValues("dashboard", "error").Inc()
		s.log.Error("snapshot load failed", zap.Error(err))
		return nil, err
	}
	dash := analytics.BuildDashboard(now, snap)
	metrics.ReportBuildsTotal.WithLabelValues("dashboard", "ok").Inc()
	s.publishAudit("dashboard", now)
	return dash, nil
}

type auditEvent struct {
	Report      string    `json:"report"`
	GeneratedAt time.Time `json:"generated_at"`
}

// publishAudit emits a report-generated event, fire and forget. The build
// already succeeded, so a publish failure is only logged.
func (s *AnalyticsService) publishAudit(report string, generatedAt time.Time) {
	if s.producer == nil {
		return
	}
	payload, _ := json.Marshal(auditEvent{Report: report, GeneratedAt: generatedAt})
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := s.producer.Publish(ctx, []byte(report), payload); err != nil {
			metrics.ReportAuditPublishesTotal.WithLabelValues("error").Inc()
			s.log.Warn("audit publish failed", zap.String("report", report), zap.Error(err))
			return
		}
		metrics.ReportAuditPublishesTotal.WithLabelValues("ok").Inc()
	}()
}
