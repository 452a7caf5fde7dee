package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/brunohmachado/barbearia-api/internal/audit"
	domain "github.com/brunohmachado/barbearia-api/internal/domain/appointment"
	"github.com/brunohmachado/barbearia-api/internal/httperr"
	"github.com/brunohmachado/barbearia-api/internal/models"
	"github.com/brunohmachado/barbearia-api/internal/notification"
	"go.uber.org/zap"
)

// Reschedule move um agendamento ativo (via token) para novo horário
// e, opcionalmente, outro barbeiro. Mutação in-place: mesma entidade,
// mesmo token. Re-passa pela política e pela checagem de conflito,
// excluindo o próprio agendamento.
type Reschedule struct {
	repo              domain.Repository
	notifier          Notifier
	policy            domain.BookingPolicy
	clientCancelHours int
	log               *zap.Logger

	now func() time.Time
}

func NewReschedule(
	repo domain.Repository,
	notifier Notifier,
	policy domain.BookingPolicy,
	clientCancelHours int,
	log *zap.Logger,
) *Reschedule {
	return &Reschedule{
		repo:              repo,
		notifier:          notifier,
		policy:            policy,
		clientCancelHours: clientCancelHours,
		log:               log,
		now:               time.Now,
	}
}

func (uc *Reschedule) Execute(
	ctx context.Context,
	token string,
	newStart time.Time,
	newBarberID *uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if err := domain.CanReschedule(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	now := uc.now()
	if !domain.CanBeCancelledByClient(ap, now, uc.clientCancelHours) {
		return nil, httperr.ErrBusiness(httperr.CodeRescheduleDeadline,
			fmt.Sprintf("Reagendamento permitido até %d horas antes do horário", uc.clientCancelHours))
	}

	barberID := ap.BarberID
	var newBarber *models.User
	if newBarberID != nil && *newBarberID != ap.BarberID {
		newBarber, err = uc.repo.GetBarber(ctx, *newBarberID)
		if err != nil {
			return nil, err
		}
		barberID = newBarber.ID
	}

	svc := &ap.Service
	if err := validateBookingTime(ctx, uc.repo, uc.policy, now, newStart, barberID, svc); err != nil {
		return nil, err
	}

	newEnd := domain.EndFor(newStart, svc)

	before := audit.Snapshot(ap)
	ap.StartTime = newStart
	ap.EndTime = newEnd
	ap.BarberID = barberID
	if newBarber != nil {
		ap.Barber = *newBarber
	}

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := validateNoConflicts(ctx, tx, barberID, newStart, newEnd, ap.ID); err != nil {
			return err
		}

		if err := tx.SaveAppointment(ctx, ap); err != nil {
			return err
		}

		return tx.CreateAudit(ctx, audit.NewEntry(ap, audit.ActionRescheduled, "client", before, now))
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, ap, notification.TypeReschedule)

	uc.log.Info("appointment rescheduled",
		zap.Uint("appointment_id", ap.ID),
		zap.Time("new_start", newStart),
	)
	return ap, nil
}
