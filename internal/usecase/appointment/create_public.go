package appointment

import (
	"context"
	"time"

	"github.com/brunohmachado/barbearia-api/internal/audit"
	domain "github.com/brunohmachado/barbearia-api/internal/domain/appointment"
	"github.com/brunohmachado/barbearia-api/internal/httperr"
	"github.com/brunohmachado/barbearia-api/internal/models"
	"github.com/brunohmachado/barbearia-api/internal/notification"
	"go.uber.org/zap"
)

// ======================================================
// INPUT
// ======================================================

type CreatePublicInput struct {
	ServiceID uint
	BarberID  *uint // nil = auto-assign

	ClientName  string
	ClientPhone string
	ClientEmail string

	StartTime time.Time
	Notes     string
}

// ======================================================
// USE CASE
// ======================================================

type CreatePublicAppointment struct {
	repo     domain.Repository
	notifier Notifier
	policy   domain.BookingPolicy
	log      *zap.Logger

	now func() time.Time
}

func NewCreatePublicAppointment(
	repo domain.Repository,
	notifier Notifier,
	policy domain.BookingPolicy,
	log *zap.Logger,
) *CreatePublicAppointment {
	return &CreatePublicAppointment{
		repo:     repo,
		notifier: notifier,
		policy:   policy,
		log:      log,
		now:      time.Now,
	}
}

func (uc *CreatePublicAppointment) Execute(
	ctx context.Context,
	in CreatePublicInput,
) (*models.Appointment, error) {

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}
	if !svc.Active {
		return nil, httperr.ErrBusiness(httperr.CodeServiceInactive,
			"Serviço não está ativo")
	}

	now := uc.now()

	// --------------------------------------------------
	// Barbeiro informado ou auto-assign (first-fit)
	// --------------------------------------------------
	var barber *models.User
	if in.BarberID != nil {
		barber, err = uc.repo.GetBarber(ctx, *in.BarberID)
		if err != nil {
			return nil, err
		}

		if err := validateBookingTime(ctx, uc.repo, uc.policy, now, in.StartTime, barber.ID, svc); err != nil {
			return nil, err
		}
	} else {
		barbers, err := uc.repo.ListActiveBarbers(ctx)
		if err != nil {
			return nil, err
		}
		if len(barbers) == 0 {
			return nil, httperr.ErrBusiness(httperr.CodeNoBarber,
				"Não há barbeiros disponíveis")
		}

		barber, err = findAvailableBarber(ctx, uc.repo, uc.policy, now, barbers, svc, in.StartTime)
		if err != nil {
			return nil, err
		}
	}

	end := domain.EndFor(in.StartTime, svc)

	ap := &models.Appointment{
		BarberID:       barber.ID,
		ServiceID:      svc.ID,
		ClientName:     in.ClientName,
		ClientPhone:    in.ClientPhone,
		ClientEmail:    in.ClientEmail,
		StartTime:      in.StartTime,
		EndTime:        end,
		Status:         string(domain.InitialStatus()),
		PriceAtBooking: svc.Price,
		Notes:          in.Notes,
		CreatedByAdmin: false,
	}

	// Checagem de conflito e escrita (estado + auditoria) numa única
	// transação: dois bookings concorrentes para o mesmo barbeiro e
	// intervalo não podem passar os dois.
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := validateNoConflicts(ctx, tx, barber.ID, in.StartTime, end, 0); err != nil {
			return err
		}

		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		return tx.CreateAudit(ctx, audit.NewEntry(ap, audit.ActionCreated, "client", nil, now))
	})
	if err != nil {
		return nil, err
	}

	ap.Barber = *barber
	ap.Service = *svc

	uc.notifier.Notify(ctx, ap, notification.TypeConfirmation)

	uc.log.Info("public appointment created",
		zap.Uint("appointment_id", ap.ID),
		zap.Uint("barber_id", barber.ID),
	)

	return ap, nil
}
