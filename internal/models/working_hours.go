package models

import "time"

// WorkingHours guarda o expediente de um barbeiro por dia da semana.
// Horários em formato "15:04" (hora civil local). A ausência de linha
// para um dia equivale a "não trabalha".
type WorkingHours struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	BarberID uint `gorm:"uniqueIndex:idx_wh_barber_weekday;not null" json:"barber_id"`

	Weekday int `gorm:"uniqueIndex:idx_wh_barber_weekday;not null" json:"weekday"`

	StartTime string `gorm:"size:5" json:"start_time"`
	EndTime   string `gorm:"size:5" json:"end_time"`
	IsWorking bool   `gorm:"default:true" json:"is_working"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
