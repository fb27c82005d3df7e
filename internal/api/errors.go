package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "retention-workers/internal/common/errors"
	"retention-workers/internal/models"
)

type errorResponse struct {
	Code    apperrors.ErrorCode `json:"code"`
	Message string              `json:"message"`
	Details string              `json:"details,omitempty"`
	Fields  []models.FieldError `json:"fields,omitempty"`
}

var statusByCode = map[apperrors.ErrorCode]int{
	apperrors.ErrCodeInputParsingFailed:     http.StatusBadRequest,
	apperrors.ErrCodeRecordValidationFailed: http.StatusUnprocessableEntity,
	apperrors.ErrCodeStudentNotFound:        http.StatusNotFound,
	apperrors.ErrCodeModelUnavailable:       http.StatusServiceUnavailable,
	apperrors.ErrCodeClassifierFailed:       http.StatusBadGateway,
	apperrors.ErrCodeClassifierTimeout:      http.StatusGatewayTimeout,
}

func writeError(c *gin.Context, err error) {
	stdErr := apperrors.AsStandardError(err)

	status, ok := statusByCode[stdErr.Code]
	if !ok {
		status = http.StatusInternalServerError
	}

	resp := errorResponse{
		Code:    stdErr.Code,
		Message: stdErr.Message,
		Details: stdErr.Details,
	}
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		resp.Fields = verr.Fields
	}
	c.AbortWithStatusJSON(status, resp)
}
