package notifysupportteam

import (
	"time"

	"retention-workers/internal/assessment"
)

const (
	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

const (
	StatusSent     = "sent"
	StatusPartial  = "partial"
	StatusSkipped  = "skipped"
	StatusDisabled = "disabled"
)

type Input struct {
	StudentID    string                `json:"studentId"`
	AssessmentID string                `json:"assessmentId,omitempty"`
	Assessment   assessment.Assessment `json:"assessment"`
}

type Output struct {
	NotificationID string    `json:"notificationId"`
	Status         string    `json:"status"`
	Channels       []string  `json:"channels"`
	FailedChannels []string  `json:"failedChannels,omitempty"`
	SentAt         time.Time `json:"sentAt"`
}
