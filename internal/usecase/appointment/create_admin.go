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

type CreateAdminInput struct {
	ServiceID uint
	BarberID  uint

	ClientName  string
	ClientPhone string
	ClientEmail string

	StartTime time.Time
	Status    string // vazio = confirmed
	Notes     string
}

// CreateAdminAppointment é o fluxo interno: pula a política de
// antecedência/expediente (o admin encaixa horário de propósito),
// mas nunca pula a checagem de conflito.
type CreateAdminAppointment struct {
	repo     domain.Repository
	notifier Notifier
	log      *zap.Logger

	now func() time.Time
}

func NewCreateAdminAppointment(
	repo domain.Repository,
	notifier Notifier,
	log *zap.Logger,
) *CreateAdminAppointment {
	return &CreateAdminAppointment{
		repo:     repo,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

func (uc *CreateAdminAppointment) Execute(
	ctx context.Context,
	in CreateAdminInput,
	actor string,
) (*models.Appointment, error) {

	svc, err := uc.repo.GetService(ctx, in.ServiceID)
	if err != nil {
		return nil, err
	}

	barber, err := uc.repo.GetBarber(ctx, in.BarberID)
	if err != nil {
		return nil, err
	}

	status := domain.InitialStatus()
	if in.Status != "" {
		status = domain.Status(in.Status)
		if !status.IsValid() {
			return nil, httperr.ErrBusiness(httperr.CodeInvalidStatus, "Status inválido")
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
		Status:         string(status),
		PriceAtBooking: svc.Price,
		Notes:          in.Notes,
		CreatedByAdmin: true,
	}

	now := uc.now()

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := validateNoConflicts(ctx, tx, barber.ID, in.StartTime, end, 0); err != nil {
			return err
		}

		if err := tx.CreateAppointment(ctx, ap); err != nil {
			return err
		}

		return tx.CreateAudit(ctx, audit.NewEntry(ap, audit.ActionCreated, actor, nil, now))
	})
	if err != nil {
		return nil, err
	}

	ap.Barber = *barber
	ap.Service = *svc

	if ap.ClientEmail != "" {
		uc.notifier.Notify(ctx, ap, notification.TypeConfirmation)
	}

	uc.log.Info("admin appointment created",
		zap.Uint("appointment_id", ap.ID),
		zap.String("actor", actor),
	)

	return ap, nil
}
