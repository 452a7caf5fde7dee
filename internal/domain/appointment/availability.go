package appointment

import "time"

// TimeSlot é um horário candidato discreto dentro do expediente.
// A ordenação (DateTime, BarberName) é contrato da API: o cliente
// renderiza os slots exatamente nesta ordem.
type TimeSlot struct {
	DateTime   time.Time `json:"date_time"`
	Time       string    `json:"time"`
	Available  bool      `json:"available"`
	BarberID   uint      `json:"barber_id"`
	BarberName string    `json:"barber_name"`
}

// DayAvailability reduz o dia a um booleano; o detalhe por slot é
// omitido de propósito na visão mensal.
type DayAvailability struct {
	Date              string `json:"date"`
	HasAvailableSlots bool   `json:"has_available_slots"`
}
