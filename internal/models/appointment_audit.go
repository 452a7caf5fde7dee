package models

import "time"

// AppointmentAudit é append-only: uma linha por operação mutadora,
// nunca atualizada nem lida pela lógica de negócio.
type AppointmentAudit struct {
	ID uint `gorm:"primaryKey" json:"id"`

	AppointmentID uint `gorm:"index;not null" json:"appointment_id"`

	Action      string `gorm:"size:50;not null" json:"action"`
	PerformedBy string `gorm:"size:100" json:"performed_by"`

	PerformedAt time.Time `gorm:"not null" json:"performed_at"`

	BeforeState string `gorm:"type:text" json:"before_state"`
	AfterState  string `gorm:"type:text" json:"after_state"`
}
