package analytics

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	jwtMiddleware "github.com/zinoo-dez/gym-api/internal/middleware"
	"github.com/zinoo-dez/gym-api/internal/service/analytics"
)

type AnalyticsHandler struct {
	log    *zap.Logger
	svc    *analytics.AnalyticsService
	secret string
}

func NewAnalyticsHandler(log *zap.Logger, svc *analytics.AnalyticsService, secret string) *AnalyticsHandler {
	return &AnalyticsHandler{log: log, svc: svc, secret: secret}
}

func (h *AnalyticsHandler) Register(r *gin.Engine) {
	g := r.Group("/admin/analytics")
	g.Use(jwtMiddleware.Middleware(h.secret, true))
	{
		g.GET("/report", h.report)
		g.GET("/dashboard", h.dashboard)
	}
}

func (h *AnalyticsHandler) report(c *gin.Context) {
	rep, err := h.svc.Report(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, rep)
}

func (h *AnalyticsHandler) dashboard(c *gin.Context) {
	dash, err := h.svc.Dashboard(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, dash)
}
