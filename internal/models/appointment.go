package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	BarberID uint `gorm:"index:idx_appointment_barber_start;not null" json:"barber_id"`
	Barber   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"barber"`

	ServiceID uint    `gorm:"not null" json:"service_id"`
	Service   Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service"`

	ClientName  string `gorm:"size:100;not null" json:"client_name"`
	ClientPhone string `gorm:"size:20;not null;index" json:"client_phone"`
	ClientEmail string `gorm:"size:100" json:"client_email"`

	StartTime time.Time `gorm:"index:idx_appointment_barber_start;not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`

	Status string `gorm:"size:30;index;default:'confirmed'" json:"status"`

	// Preço capturado na criação; imutável depois.
	PriceAtBooking float64 `gorm:"not null" json:"price_at_booking"`

	Notes string `gorm:"size:500" json:"notes"`

	// Token público não adivinhável que permite ao cliente consultar,
	// cancelar e reagendar sem autenticação. Gerado uma única vez.
	CancellationToken string `gorm:"size:36;uniqueIndex" json:"cancellation_token"`

	CreatedByAdmin bool `gorm:"not null;default:false" json:"created_by_admin"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.CancellationToken == "" {
		a.CancellationToken = uuid.NewString()
	}
	return nil
}
