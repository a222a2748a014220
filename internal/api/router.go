package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/zinoo-dez/gym-api/internal/analytics"
	analyticsHandler "github.com/zinoo-dez/gym-api/internal/api/analytics"
	"github.com/zinoo-dez/gym-api/internal/config"
	kafkax "github.com/zinoo-dez/gym-api/internal/kafka"
	"github.com/zinoo-dez/gym-api/internal/middleware"
	redisx "github.com/zinoo-dez/gym-api/internal/redis"
	analyticsService "github.com/zinoo-dez/gym-api/internal/service/analytics"
	"github.com/zinoo-dez/gym-api/internal/store"
	storeAnalytics "github.com/zinoo-dez/gym-api/internal/store/analytics"
)

// RegisterRoutes wires all HTTP routes.
func RegisterRoutes(r *gin.Engine, log *zap.Logger) {
	r.Use(middleware.MetricsMiddleware())
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":        "Gym API",
			"description": "Gym management backend with an aggregated reporting and analytics engine.",
			"version":     "1.0.0",
			"endpoints":   []string{"/v1/health", "/admin/analytics/report", "/admin/analytics/dashboard"},
		})
	})
	r.GET("/v1/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	cfg := config.Load()
	r.Use(middleware.HybridRateLimit(redisx.NewClient(cfg.RedisAddr), 50, 100))

	db, err := store.NewDB(context.Background(), cfg.PostgresURL, int32(cfg.MaxDBConnections))
	if err != nil {
		log.Warn("db init failed", zap.Error(err))
		return
	}

	repo := storeAnalytics.NewRepository(db, log)
	producer := kafkax.NewProducer([]string{cfg.KafkaBrokers}, cfg.AnalyticsAuditTopic)
	windows := analytics.Windows{
		TrendMonths: cfg.TrendMonths,
		Ops:         time.Duration(cfg.OpsWindowDays) * 24 * time.Hour,
		Active:      time.Duration(cfg.ActiveWindowDays) * 24 * time.Hour,
	}
	svc := analyticsService.NewAnalyticsService(log, repo, windows, producer)

	analyticsHandler.NewAnalyticsHandler(log, svc, cfg.JWTSigningSecret).Register(r)
}
