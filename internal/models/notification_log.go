package models

import "time"

const (
	NotificationStatusPending = "pending"
	NotificationStatusSent    = "sent"
	NotificationStatusFailed  = "failed"
)

type NotificationLog struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"index;not null" json:"appointment_id"`

	Type      string `gorm:"size:30;not null" json:"type"`
	Channel   string `gorm:"size:20;not null" json:"channel"`
	Recipient string `gorm:"size:100;not null" json:"recipient"`
	Content   string `gorm:"type:text" json:"content"`

	Status       string     `gorm:"size:20;index;default:'pending'" json:"status"`
	ErrorMessage string     `gorm:"size:1000" json:"error_message"`
	SentAt       *time.Time `json:"sent_at"`
	RetryCount   int        `gorm:"default:0" json:"retry_count"`

	CreatedAt time.Time `json:"created_at"`
}

func (n *NotificationLog) MarkAsSent(now time.Time) {
	n.Status = NotificationStatusSent
	n.SentAt = &now
}

func (n *NotificationLog) MarkAsFailed(reason string) {
	n.Status = NotificationStatusFailed
	n.ErrorMessage = reason
	n.RetryCount++
}
