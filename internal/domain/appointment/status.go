package appointment

import "github.com/brunohmachado/barbearia-api/internal/httperr"

// ===============================
// Appointment Status
// ===============================

type Status string

const (
	StatusScheduled         Status = "scheduled"
	StatusConfirmed         Status = "confirmed"
	StatusCancelledByClient Status = "cancelled_by_client"
	StatusCancelledByAdmin  Status = "cancelled_by_admin"
	StatusCompleted         Status = "completed"
	StatusNoShow            Status = "no_show"
)

// IsActive: apenas scheduled e confirmed bloqueiam a agenda.
// Os demais são estados terminais.
func (s Status) IsActive() bool {
	return s == StatusScheduled || s == StatusConfirmed
}

func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusConfirmed, StatusCancelledByClient,
		StatusCancelledByAdmin, StatusCompleted, StatusNoShow:
		return true
	}
	return false
}

func InitialStatus() Status {
	return StatusConfirmed
}

// ===============================
// Transition guards
// ===============================

// CanCancel vale tanto para cancelamento de cliente quanto de admin:
// só agendamentos ativos podem ser cancelados, idempotentemente
// rejeitando repetições com ALREADY_CANCELLED.
func CanCancel(current Status) error {
	if !current.IsActive() {
		return httperr.ErrBusiness(httperr.CodeAlreadyCancelled,
			"Agendamento já foi cancelado ou finalizado")
	}
	return nil
}

func CanReschedule(current Status) error {
	if !current.IsActive() {
		return httperr.ErrBusiness(httperr.CodeInvalidStatus,
			"Agendamento não pode ser reagendado")
	}
	return nil
}

// CanChangeStatus cobre completed/no_show. A versão original permitia
// remarcar agendamentos cancelados; aqui exigimos estado ativo.
func CanChangeStatus(current Status, next Status) error {
	if !next.IsValid() {
		return httperr.ErrBusiness(httperr.CodeInvalidStatus, "Status inválido")
	}
	if !current.IsActive() {
		return httperr.ErrBusiness(httperr.CodeAlreadyCancelled,
			"Agendamento já foi cancelado ou finalizado")
	}
	return nil
}
