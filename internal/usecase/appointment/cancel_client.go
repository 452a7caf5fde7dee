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

// CancelByClient cancela via token de cancelamento, respeitando o
// prazo limite configurado.
type CancelByClient struct {
	repo              domain.Repository
	notifier          Notifier
	clientCancelHours int
	log               *zap.Logger

	now func() time.Time
}

func NewCancelByClient(
	repo domain.Repository,
	notifier Notifier,
	clientCancelHours int,
	log *zap.Logger,
) *CancelByClient {
	return &CancelByClient{
		repo:              repo,
		notifier:          notifier,
		clientCancelHours: clientCancelHours,
		log:               log,
		now:               time.Now,
	}
}

func (uc *CancelByClient) Execute(
	ctx context.Context,
	token string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointmentByToken(ctx, token)
	if err != nil {
		return nil, err
	}

	if err := domain.CanCancel(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	now := uc.now()
	if !domain.CanBeCancelledByClient(ap, now, uc.clientCancelHours) {
		return nil, httperr.ErrBusiness(httperr.CodeCancellationDeadline,
			fmt.Sprintf("Cancelamento permitido até %d horas antes do horário", uc.clientCancelHours))
	}

	before := audit.Snapshot(ap)
	ap.Status = string(domain.StatusCancelledByClient)

	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.SaveAppointment(ctx, ap); err != nil {
			return err
		}
		return tx.CreateAudit(ctx, audit.NewEntry(ap, audit.ActionCancelledByClient, "client", before, now))
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, ap, notification.TypeCancellation)

	uc.log.Info("appointment cancelled by client", zap.Uint("appointment_id", ap.ID))
	return ap, nil
}
