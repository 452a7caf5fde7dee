package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name        string  `gorm:"size:100;not null" json:"name"`
	Description string  `gorm:"size:500" json:"description"`
	DurationMin int     `gorm:"not null" json:"duration_min"`
	BufferMin   int     `gorm:"not null;default:0" json:"buffer_min"`
	Price       float64 `gorm:"not null" json:"price"`
	Active      bool    `gorm:"default:true" json:"active"`
	DisplayOrder int    `gorm:"default:0" json:"display_order"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TotalDurationMin é a única unidade usada em cálculo de intervalo:
// duração + buffer, nunca a duração sozinha.
func (s *Service) TotalDurationMin() int {
	return s.DurationMin + s.BufferMin
}
