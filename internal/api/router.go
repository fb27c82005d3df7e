package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"retention-workers/internal/assessment"
	"retention-workers/internal/common/config"
	"retention-workers/internal/common/logger"
)

// Readiness reports whether the classifier can serve scores.
type Readiness interface {
	Ready(ctx context.Context) error
}

type Dependencies struct {
	Service   *assessment.Service
	Readiness Readiness
	Logger    logger.Logger
	Version   string
}

// NewRouter wires every HTTP route. mode is a gin mode (debug, release, test).
func NewRouter(mode string, deps Dependencies) *gin.Engine {
	if mode != "" {
		gin.SetMode(mode)
	}

	h := newHandler(deps)

	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(h.logger))

	r.GET("/health", h.health)
	r.GET("/ready", h.ready)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	{
		v1.GET("/form", h.form)
		v1.GET("/contacts", h.contacts)
		v1.POST("/assessments", h.assess)
		v1.POST("/assessments/evaluate", h.evaluate)
	}
	return r
}

func NewServer(cfg config.HTTPConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              cfg.Address,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      30 * time.Second,
	}
}

func requestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.FullPath(),
			"status":     c.Writer.Status(),
			"durationMs": time.Since(start).Milliseconds(),
		}
		if c.Writer.Status() >= http.StatusInternalServerError {
			log.Error("request failed", fields)
			return
		}
		log.Debug("request served", fields)
	}
}
