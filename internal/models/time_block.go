package models

import "time"

// TimeBlock é uma janela de indisponibilidade explícita (almoço, férias),
// independente de agendamentos. Bloqueia sempre, sem noção de status.
type TimeBlock struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"index;not null" json:"barber_id"`

	StartTime time.Time `gorm:"not null" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`
	Reason    string    `gorm:"size:255;not null" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
