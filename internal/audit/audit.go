package audit

import (
	"encoding/json"
	"time"

	"github.com/brunohmachado/barbearia-api/internal/models"
)

// Ações gravadas na trilha de auditoria.
const (
	ActionCreated           = "CREATED"
	ActionUpdated           = "UPDATED"
	ActionCancelledByClient = "CANCELLED_BY_CLIENT"
	ActionCancelledByAdmin  = "CANCELLED_BY_ADMIN"
	ActionRescheduled       = "RESCHEDULED"
	statusChangedPrefix     = "STATUS_CHANGED_TO_"
)

func ActionStatusChanged(status string) string {
	return statusChangedPrefix + status
}

// Snapshot captura os campos mutáveis do agendamento, sem id,
// para os estados before/after da auditoria.
func Snapshot(ap *models.Appointment) map[string]any {
	return map[string]any{
		"status":     ap.Status,
		"start_time": ap.StartTime.Format(time.RFC3339),
		"end_time":   ap.EndTime.Format(time.RFC3339),
		"barber_id":  ap.BarberID,
		"notes":      ap.Notes,
	}
}

// NewEntry monta a linha de auditoria de uma operação mutadora.
// before pode ser nil (criação); after é sempre capturado aqui.
func NewEntry(ap *models.Appointment, action, performedBy string, before map[string]any, now time.Time) *models.AppointmentAudit {
	entry := &models.AppointmentAudit{
		AppointmentID: ap.ID,
		Action:        action,
		PerformedBy:   performedBy,
		PerformedAt:   now,
		AfterState:    mustJSON(Snapshot(ap)),
	}
	if before != nil {
		entry.BeforeState = mustJSON(before)
	}
	return entry
}

func mustJSON(state map[string]any) string {
	b, err := json.Marshal(state)
	if err != nil {
		return "{}"
	}
	return string(b)
}
