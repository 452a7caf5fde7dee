package appointment

import (
	"context"
	"strings"
	"time"

	"github.com/brunohmachado/barbearia-api/internal/audit"
	domain "github.com/brunohmachado/barbearia-api/internal/domain/appointment"
	"github.com/brunohmachado/barbearia-api/internal/models"
	"go.uber.org/zap"
)

// UpdateStatus cobre completed / no_show (e transições administrativas
// de status em geral), sempre com guarda de estado ativo.
type UpdateStatus struct {
	repo domain.Repository
	log  *zap.Logger

	now func() time.Time
}

func NewUpdateStatus(
	repo domain.Repository,
	log *zap.Logger,
) *UpdateStatus {
	return &UpdateStatus{
		repo: repo,
		log:  log,
		now:  time.Now,
	}
}

func (uc *UpdateStatus) Execute(
	ctx context.Context,
	appointmentID uint,
	status domain.Status,
	actor string,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanChangeStatus(domain.Status(ap.Status), status); err != nil {
		return nil, err
	}

	before := audit.Snapshot(ap)
	ap.Status = string(status)

	action := audit.ActionStatusChanged(strings.ToUpper(string(status)))

	now := uc.now()
	err = uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		if err := tx.SaveAppointment(ctx, ap); err != nil {
			return err
		}
		return tx.CreateAudit(ctx, audit.NewEntry(ap, action, actor, before, now))
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info("appointment status changed",
		zap.Uint("appointment_id", ap.ID),
		zap.String("status", string(status)),
		zap.String("actor", actor),
	)
	return ap, nil
}

func (uc *UpdateStatus) MarkCompleted(ctx context.Context, id uint, actor string) (*models.Appointment, error) {
	return uc.Execute(ctx, id, domain.StatusCompleted, actor)
}

func (uc *UpdateStatus) MarkNoShow(ctx context.Context, id uint, actor string) (*models.Appointment, error) {
	return uc.Execute(ctx, id, domain.StatusNoShow, actor)
}
