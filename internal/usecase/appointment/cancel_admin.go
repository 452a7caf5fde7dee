package appointment

import (
	"context"
	"time"

	"github.com/brunohmachado/barbearia-api/internal/audit"
	domain "github.com/brunohmachado/barbearia-api/internal/domain/appointment"
	"github.com/brunohmachado/barbearia-api/internal/models"
	"github.com/brunohmachado/barbearia-api/internal/notification"
	"go.uber.org/zap"
)

// CancelByAdmin cancela por id, sem restrição de prazo.
type CancelByAdmin struct {
	repo     domain.Repository
	notifier Notifier
	log      *zap.Logger

	now func() time.Time
}

func NewCancelByAdmin(
	repo domain.Repository,
	notifier Notifier,
	log *zap.Logger,
) *CancelByAdmin {
	return &CancelByAdmin{
		repo:     repo,
		notifier: notifier,
		log:      log,
		now:      time.Now,
	}
}

func (uc *CancelByAdmin) Execute(
	ctx context.Context,
	appointmentID uint,
	actor string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanCancel(domain.Status(ap.Status)); err != nil {
		return nil, err
	}

	before := audit.Snapshot(ap)
	ap.Status = string(domain.StatusCancelledByAdmin)

	now := uc.now()
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.SaveAppointment(ctx, ap); err != nil {
			return err
		}
		return tx.CreateAudit(ctx, audit.NewEntry(ap, audit.ActionCancelledByAdmin, actor, before, now))
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.Notify(ctx, ap, notification.TypeCancellation)

	uc.log.Info("appointment cancelled by admin",
		zap.Uint("appointment_id", ap.ID),
		zap.String("actor", actor),
	)
	return ap, nil
}
