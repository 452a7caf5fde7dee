package notification

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/brunohmachado/barbearia-api/internal/config"
	"github.com/brunohmachado/barbearia-api/internal/models"
)

// Service registra e entrega notificações de agendamento. O envio
// acontece depois do commit da mutação; falha de entrega é registrada,
// nunca desfaz nem bloqueia o agendamento.
type Service struct {
	db       *gorm.DB
	provider Provider
	cfg      config.NotificationConfig
	business config.BusinessConfig
	log      *zap.Logger
}

func NewService(
	db *gorm.DB,
	provider Provider,
	cfg config.NotificationConfig,
	business config.BusinessConfig,
	log *zap.Logger,
) *Service {
	return &Service{
		db:       db,
		provider: provider,
		cfg:      cfg,
		business: business,
		log:      log,
	}
}

// Notify envia a notificação do tipo dado para o cliente do
// agendamento. ap precisa estar com Service e Barber carregados.
func (s *Service) Notify(ctx context.Context, ap *models.Appointment, t Type) {
	if !s.cfg.Enabled {
		return
	}

	recipient := ap.ClientEmail
	if recipient == "" {
		return
	}

	subject, body, err := Render(t, TemplateData{
		ClientName:      ap.ClientName,
		ServiceName:     ap.Service.Name,
		BarberName:      ap.Barber.Name,
		Date:            ap.StartTime.Format("02/01/2006"),
		Time:            ap.StartTime.Format("15:04"),
		BusinessName:    s.business.Name,
		BusinessAddress: s.business.Address,
		BusinessPhone:   s.business.Phone,
	})
	if err != nil {
		s.log.Error("failed to render notification", zap.Error(err))
		return
	}

	entry := models.NotificationLog{
		AppointmentID: ap.ID,
		Type:          string(t),
		Channel:       s.provider.Channel(),
		Recipient:     recipient,
		Content:       body,
		Status:        models.NotificationStatusPending,
	}

	if err := s.db.WithContext(ctx).Create(&entry).Error; err != nil {
		s.log.Error("failed to persist notification log", zap.Error(err))
		return
	}

	s.deliver(ctx, &entry, subject)
}

// HasSent diz se já existe notificação sent/pending deste tipo para o
// agendamento. Usado pelo sweep de lembretes para deduplicar.
func (s *Service) HasSent(ctx context.Context, appointmentID uint, t Type) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&models.NotificationLog{}).
		Where(
			"appointment_id = ? AND type = ? AND status IN ?",
			appointmentID, string(t),
			[]string{models.NotificationStatusSent, models.NotificationStatusPending},
		).
		Count(&count).Error
	return count > 0, err
}

func (s *Service) ListByAppointment(ctx context.Context, appointmentID uint) ([]models.NotificationLog, error) {
	var logs []models.NotificationLog
	err := s.db.WithContext(ctx).
		Where("appointment_id = ?", appointmentID).
		Order("created_at DESC").
		Find(&logs).Error
	return logs, err
}

// Resend reenvia uma notificação já registrada, com o conteúdo
// original.
func (s *Service) Resend(ctx context.Context, notificationID uint) (*models.NotificationLog, error) {
	var entry models.NotificationLog
	if err := s.db.WithContext(ctx).First(&entry, notificationID).Error; err != nil {
		return nil, err
	}

	var ap models.Appointment
	if err := s.db.WithContext(ctx).First(&ap, entry.AppointmentID).Error; err != nil {
		return nil, err
	}

	subject := s.business.Name + " - " + string(entry.Type)
	if tpl, ok := templates[Type(entry.Type)]; ok {
		subject = tpl.subject(TemplateData{BusinessName: s.business.Name})
	}

	s.deliver(ctx, &entry, subject)
	return &entry, nil
}

func (s *Service) deliver(ctx context.Context, entry *models.NotificationLog, subject string) {
	if err := s.provider.Send(entry.Recipient, subject, entry.Content); err != nil {
		s.log.Warn("notification delivery failed",
			zap.Uint("appointment_id", entry.AppointmentID),
			zap.String("type", entry.Type),
			zap.Error(err),
		)
		entry.MarkAsFailed(err.Error())
	} else {
		entry.MarkAsSent(time.Now())
	}

	if err := s.db.WithContext(ctx).Save(entry).Error; err != nil {
		s.log.Error("failed to update notification log", zap.Error(err))
	}
}
