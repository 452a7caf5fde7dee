package testutil

import (
	"context"

	"github.com/brunohmachado/barbearia-api/internal/models"
	"github.com/brunohmachado/barbearia-api/internal/notification"
)

type SentNotification struct {
	AppointmentID uint
	Type          notification.Type
}

// FakeNotifier registra o que seria enviado, sem entregar nada.
type FakeNotifier struct {
	Sent []SentNotification
}

func (n *FakeNotifier) Notify(_ context.Context, ap *models.Appointment, t notification.Type) {
	n.Sent = append(n.Sent, SentNotification{AppointmentID: ap.ID, Type: t})
}
