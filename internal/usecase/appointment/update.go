package appointment

import (
	"context"
	"time"

	"github.com/brunohmachado/barbearia-api/internal/audit"
	domain "github.com/brunohmachado/barbearia-api/internal/domain/appointment"
	"github.com/brunohmachado/barbearia-api/internal/httperr"
	"github.com/brunohmachado/barbearia-api/internal/models"
	"go.uber.org/zap"
)

type UpdateInput struct {
	StartTime *time.Time
	BarberID  *uint
	Status    *string
	Notes     *string
}

// UpdateAppointment é a edição administrativa: subconjunto arbitrário
// de {horário, barbeiro, status, notas}. Mudança de horário ou de
// barbeiro revalida apenas conflitos, não a política completa — o
// admin pode encaixar dentro da janela de antecedência de propósito.
type UpdateAppointment struct {
	repo domain.Repository
	log  *zap.Logger

	now func() time.Time
}

func NewUpdateAppointment(
	repo domain.Repository,
	log *zap.Logger,
) *UpdateAppointment {
	return &UpdateAppointment{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

func (uc *UpdateAppointment) Execute(
	ctx context.Context,
	appointmentID uint,
	in UpdateInput,
	actor string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	before := audit.Snapshot(ap)

	timeChanged := false
	barberChanged := false
	barberID := ap.BarberID
	newStart := ap.StartTime
	newEnd := ap.EndTime

	if in.StartTime != nil {
		timeChanged = true
		newStart = *in.StartTime
		newEnd = domain.EndFor(newStart, &ap.Service)
	}

	if in.BarberID != nil && *in.BarberID != ap.BarberID {
		newBarber, err := uc.repo.GetBarber(ctx, *in.BarberID)
		if err != nil {
			return nil, err
		}
		barberChanged = true
		barberID = newBarber.ID
		ap.Barber = *newBarber
	}

	if in.Status != nil {
		status := domain.Status(*in.Status)
		if !status.IsValid() {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidStatus, "Status inválido")
		}
		ap.Status = string(status)
	}

	if in.Notes != nil {
		ap.Notes = *in.Notes
	}

	if timeChanged {
		ap.StartTime = newStart
		ap.EndTime = newEnd
	}
	ap.BarberID = barberID

	now := uc.now()
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if timeChanged || barberChanged {
			if err := validateNoConflicts(ctx, tx, barberID, newStart, newEnd, ap.ID); err != nil {
				return err
			}
		}

		if err := tx.SaveAppointment(ctx, ap); err != nil {
			return err
		}

		return tx.CreateAudit(ctx, audit.NewEntry(ap, audit.ActionUpdated, actor, before, now))
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("appointment updated",
		zap.Uint("appointment_id", ap.ID),
		zap.String("actor", actor),
	)
	return ap, nil
}
