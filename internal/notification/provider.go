package notification

import (
	"fmt"
	"net/smtp"

	"github.com/brunohmachado/barbearia-api/internal/config"
	"go.uber.org/zap"
)

// Provider é o canal de entrega. A falha de entrega nunca propaga para
// a mutação que a disparou: é registrada no NotificationLog e pronto.
type Provider interface {
	Channel() string
	Send(recipient, subject, body string) error
}

// ===============================
// SMTP
// ===============================

type SMTPProvider struct {
	cfg config.NotificationConfig
}

func NewSMTPProvider(cfg config.NotificationConfig) *SMTPProvider {
	return &SMTPProvider{cfg: cfg}
}

func (p *SMTPProvider) Channel() string {
	return "EMAIL"
}

func (p *SMTPProvider) Send(recipient, subject, body string) error {
	addr := fmt.Sprintf("%s:%d", p.cfg.SMTPHost, p.cfg.SMTPPort)

	msg := []byte(
		"From: " + p.cfg.FromEmail + "\r\n" +
			"To: " + recipient + "\r\n" +
			"Subject: " + subject + "\r\n" +
			"MIME-Version: 1.0\r\n" +
			"Content-Type: text/plain; charset=\"utf-8\"\r\n" +
			"\r\n" +
			body,
	)

	var auth smtp.Auth
	if p.cfg.SMTPUser != "" {
		auth = smtp.PlainAuth("", p.cfg.SMTPUser, p.cfg.SMTPPassword, p.cfg.SMTPHost)
	}

	return smtp.SendMail(addr, auth, p.cfg.FromEmail, []string{recipient}, msg)
}

// ===============================
// Log (dev / SMTP não configurado)
// ===============================

type LogProvider struct {
	log *zap.Logger
}

func NewLogProvider(log *zap.Logger) *LogProvider {
	return &LogProvider{log: log}
}

func (p *LogProvider) Channel() string {
	return "LOG"
}

func (p *LogProvider) Send(recipient, subject, body string) error {
	p.log.Info("notification (log provider)",
		zap.String("recipient", recipient),
		zap.String("subject", subject),
	)
	return nil
}
