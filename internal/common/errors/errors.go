package errors

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

type ErrorCode string

const (
	ErrCodeInputParsingFailed     ErrorCode = "INPUT_PARSING_FAILED"
	ErrCodeRecordValidationFailed ErrorCode = "RECORD_VALIDATION_FAILED"
	ErrCodeStudentNotFound        ErrorCode = "STUDENT_NOT_FOUND"

	ErrCodeModelUnavailable  ErrorCode = "MODEL_UNAVAILABLE"
	ErrCodeClassifierFailed  ErrorCode = "CLASSIFIER_FAILED"
	ErrCodeClassifierTimeout ErrorCode = "CLASSIFIER_TIMEOUT"

	ErrCodeQueryExecutionFailed ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeQueryTimeout         ErrorCode = "QUERY_TIMEOUT"

	ErrCodeNotificationSendFailed ErrorCode = "NOTIFICATION_SEND_FAILED"

	ErrCodeBrokerUnavailable ErrorCode = "BROKER_UNAVAILABLE"
	ErrCodeBrokerTimeout     ErrorCode = "BROKER_TIMEOUT"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

type StandardError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	Details   string    `json:"details,omitempty"`
	Retryable bool      `json:"retryable"`
	Timestamp time.Time `json:"timestamp"`
	Cause     error     `json:"-"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

func (e *StandardError) Unwrap() error {
	return e.Cause
}

type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}

	for k, v := range e.ErrorVariables {
		vars[k] = v
	}

	return vars
}

func newError(code ErrorCode, message, details string, retryable bool, cause error) *StandardError {
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		Cause:     cause,
	}
}

func NewInputParsingFailedError(err error) *StandardError {
	return newError(ErrCodeInputParsingFailed, "Failed to parse job variables", err.Error(), false, err)
}

func NewRecordValidationFailedError(details string) *StandardError {
	return newError(ErrCodeRecordValidationFailed, "Student record is out of domain", details, false, nil)
}

func NewStudentNotFoundError(studentID string) *StandardError {
	return newError(ErrCodeStudentNotFound, "Student not found in roster",
		fmt.Sprintf("studentId: %s", studentID), false, nil)
}

// NewModelUnavailableError is fatal at startup; job workers never retry it.
func NewModelUnavailableError(err error) *StandardError {
	return newError(ErrCodeModelUnavailable, "Model not available, run training first", err.Error(), false, err)
}

func NewClassifierFailedError(err error) *StandardError {
	return newError(ErrCodeClassifierFailed, "Classifier call failed", err.Error(), true, err)
}

func NewClassifierTimeoutError(err error) *StandardError {
	return newError(ErrCodeClassifierTimeout, "Classifier call timeout", err.Error(), true, err)
}

func NewQueryExecutionFailedError(queryType string, err error) *StandardError {
	return newError(ErrCodeQueryExecutionFailed, "Database query execution error",
		fmt.Sprintf("queryType: %s, error: %s", queryType, err.Error()), true, err)
}

func NewQueryTimeoutError(queryType string) *StandardError {
	return newError(ErrCodeQueryTimeout, "Database query timeout",
		fmt.Sprintf("queryType: %s", queryType), true, nil)
}

func NewNotificationSendFailedError(channel string, err error) *StandardError {
	return newError(ErrCodeNotificationSendFailed, "Notification delivery failed",
		fmt.Sprintf("channel: %s, error: %s", channel, err.Error()), true, err)
}

func NewBrokerUnavailableError(err error) *StandardError {
	return newError(ErrCodeBrokerUnavailable, "Zeebe broker unavailable", err.Error(), true, err)
}

func NewBrokerTimeoutError(err error) *StandardError {
	return newError(ErrCodeBrokerTimeout, "Zeebe request timeout", err.Error(), true, err)
}

var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeInputParsingFailed:     "INPUT_PARSING_FAILED",
	ErrCodeRecordValidationFailed: "RECORD_VALIDATION_FAILED",
	ErrCodeStudentNotFound:        "STUDENT_NOT_FOUND",
	ErrCodeModelUnavailable:       "MODEL_UNAVAILABLE",
	ErrCodeClassifierFailed:       "CLASSIFIER_FAILED",
	ErrCodeClassifierTimeout:      "CLASSIFIER_TIMEOUT",
	ErrCodeQueryExecutionFailed:   "QUERY_EXECUTION_FAILED",
	ErrCodeQueryTimeout:           "QUERY_TIMEOUT",
	ErrCodeNotificationSendFailed: "NOTIFICATION_SEND_FAILED",
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeQueryExecutionFailed,
		ErrCodeClassifierFailed,
		ErrCodeNotificationSendFailed:
		return 3

	case ErrCodeQueryTimeout,
		ErrCodeClassifierTimeout:
		return 2

	default:
		return 0
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

// AsStandardError unwraps err into a StandardError, wrapping unknown errors as INTERNAL_ERROR.
func AsStandardError(err error) *StandardError {
	var stdErr *StandardError
	if errors.As(err, &stdErr) {
		return stdErr
	}
	return newError(ErrCodeInternal, "Unexpected error", err.Error(), false, err)
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "MODEL") || strings.Contains(codeStr, "CLASSIFIER"):
		return "CLASSIFIER"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY") || strings.Contains(codeStr, "STUDENT"):
		return "DATABASE"
	case strings.Contains(codeStr, "BROKER"):
		return "BROKER"
	case strings.Contains(codeStr, "NOTIFICATION"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "PARSING") || strings.Contains(codeStr, "VALIDATION"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
