package api

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"retention-workers/internal/assessment"
	apperrors "retention-workers/internal/common/errors"
	"retention-workers/internal/common/logger"
	"retention-workers/internal/models"
	"retention-workers/internal/render"
)

const readyTimeout = 3 * time.Second

type handler struct {
	service   *assessment.Service
	readiness Readiness
	logger    logger.Logger
	version   string
}

func newHandler(deps Dependencies) *handler {
	log := deps.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &handler{
		service:   deps.Service,
		readiness: deps.Readiness,
		logger:    log.WithFields(map[string]interface{}{"component": "api"}),
		version:   deps.Version,
	}
}

type evaluateRequest struct {
	Record      json.RawMessage `json:"record" binding:"required"`
	Probability *float64        `json:"probability" binding:"required"`
}

type assessmentResponse struct {
	Assessment assessment.Assessment `json:"assessment"`
	View       render.View           `json:"view"`
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"version": h.version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *handler) ready(c *gin.Context) {
	if h.readiness != nil {
		ctx, cancel := context.WithTimeout(c.Request.Context(), readyTimeout)
		defer cancel()
		if err := h.readiness.Ready(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "error": err.Error()})
			return
		}
	}
	c.JSON(http.StatusOK, gin.H{"status": "ready"})
}

func (h *handler) form(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"fields": models.FormFields()})
}

func (h *handler) contacts(c *gin.Context) {
	c.JSON(http.StatusOK, render.SupportContacts())
}

// assess takes a bare Feature Record and scores it with the classifier.
func (h *handler) assess(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		writeError(c, apperrors.NewInputParsingFailedError(err))
		return
	}
	record, err := models.DecodeRecord(body)
	if err != nil {
		writeError(c, assessment.DecodeError(err))
		return
	}

	result, err := h.service.Evaluate(c.Request.Context(), record, "api")
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, assessmentResponse{Assessment: result, View: render.NewView(result, record)})
}

// evaluate runs the engine on a caller-supplied probability.
func (h *handler) evaluate(c *gin.Context) {
	var req evaluateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, apperrors.NewInputParsingFailedError(err))
		return
	}
	record, err := models.DecodeRecord(req.Record)
	if err != nil {
		writeError(c, assessment.DecodeError(err))
		return
	}

	result, err := h.service.EvaluateWithProbability(c.Request.Context(), record, *req.Probability, "api")
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, assessmentResponse{Assessment: result, View: render.NewView(result, record)})
}
