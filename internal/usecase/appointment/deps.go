package appointment

import (
	"context"
	"time"

	domain "github.com/brunohmachado/barbearia-api/internal/domain/appointment"
	"github.com/brunohmachado/barbearia-api/internal/httperr"
	"github.com/brunohmachado/barbearia-api/internal/models"
	"github.com/brunohmachado/barbearia-api/internal/notification"
)

// Notifier é o colaborador de notificação visto pelos usecases.
// O envio acontece depois do commit e nunca falha a operação.
type Notifier interface {
	Notify(ctx context.Context, ap *models.Appointment, t notification.Type)
}

// ======================================================
// Helpers compartilhados de validação
// ======================================================

// validateBookingTime aplica a BookingPolicy para o barbeiro, buscando
// o expediente do dia da semana do início.
func validateBookingTime(
	ctx context.Context,
	repo domain.Repository,
	policy domain.BookingPolicy,
	now time.Time,
	start time.Time,
	barberID uint,
	svc *models.Service,
) error {
	wh, err := repo.GetWorkingHours(ctx, barberID, int(start.Weekday()))
	if err != nil {
		return err
	}
	return policy.Validate(now, start, wh, svc)
}

// validateNoConflicts é o detector de conflitos: agendamentos ativos e
// bloqueios com sobreposição meio-aberta ao intervalo candidato.
// excludeID > 0 omite o próprio agendamento (reschedule/update).
func validateNoConflicts(
	ctx context.Context,
	repo domain.Repository,
	barberID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) error {
	overlapping, err := repo.FindOverlappingAppointments(ctx, barberID, start, end, excludeID)
	if err != nil {
		return err
	}
	if len(overlapping) > 0 {
		return httperr.ErrConflict("Já existe um agendamento neste horário")
	}

	blocks, err := repo.FindOverlappingBlocks(ctx, barberID, start, end)
	if err != nil {
		return err
	}
	if len(blocks) > 0 {
		return httperr.ErrConflict("Horário bloqueado pelo barbeiro")
	}

	return nil
}
