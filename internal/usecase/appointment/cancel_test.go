package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/brunohmachado/barbearia-api/internal/audit"
	domain "github.com/brunohmachado/barbearia-api/internal/domain/appointment"
	"github.com/brunohmachado/barbearia-api/internal/httperr"
	"github.com/brunohmachado/barbearia-api/internal/models"
	"github.com/brunohmachado/barbearia-api/internal/notification"
	"github.com/brunohmachado/barbearia-api/internal/testutil"
)

func seedAppointment(repo *testutil.FakeRepo, barberID uint, h, m int) *models.Appointment {
	ap := &models.Appointment{
		BarberID:    barberID,
		ServiceID:   1,
		ClientName:  "João",
		ClientPhone: "11999990000",
		StartTime:   startAt(h, m),
		EndTime:     startAt(h, m+40),
		Status:      string(domain.StatusConfirmed),
	}
	_ = repo.CreateAppointment(context.Background(), ap)
	return ap
}

// ======================================================
// Cancelamento do cliente (via token)
// ======================================================

func TestCancelByClient_OK(t *testing.T) {
	repo, notifier := newFixture()
	ap := seedAppointment(repo, 1, 14, 0) // 6h de antecedência às 08:00

	uc := NewCancelByClient(repo, notifier, 4, zap.NewNop())
	uc.now = fixedNow

	got, err := uc.Execute(context.Background(), ap.CancellationToken)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelledByClient), got.Status)

	audits := repo.AuditsFor(ap.ID)
	require.Len(t, audits, 1)
	assert.Equal(t, audit.ActionCancelledByClient, audits[0].Action)
	assert.NotEmpty(t, audits[0].BeforeState)

	require.Len(t, notifier.Sent, 1)
	assert.Equal(t, notification.TypeCancellation, notifier.Sent[0].Type)
}

func TestCancelByClient_DeadlinePassed(t *testing.T) {
	repo, notifier := newFixture()
	ap := seedAppointment(repo, 1, 11, 0) // 3h < limite de 4h

	uc := NewCancelByClient(repo, notifier, 4, zap.NewNop())
	uc.now = fixedNow

	_, err := uc.Execute(context.Background(), ap.CancellationToken)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeCancellationDeadline))

	// estado intacto
	assert.Equal(t, string(domain.StatusConfirmed), repo.Appointments[ap.ID].Status)
	assert.Empty(t, notifier.Sent)
}

func TestCancelByClient_AlreadyCancelled(t *testing.T) {
	repo, notifier := newFixture()
	ap := seedAppointment(repo, 1, 14, 0)

	uc := NewCancelByClient(repo, notifier, 4, zap.NewNop())
	uc.now = fixedNow

	_, err := uc.Execute(context.Background(), ap.CancellationToken)
	require.NoError(t, err)

	// repetição é rejeitada, não silenciosamente aceita
	_, err = uc.Execute(context.Background(), ap.CancellationToken)
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAlreadyCancelled))

	assert.Len(t, repo.AuditsFor(ap.ID), 1)
}

// ======================================================
// Cancelamento administrativo
// ======================================================

func TestCancelByAdmin_IgnoresDeadline(t *testing.T) {
	repo, notifier := newFixture()
	ap := seedAppointment(repo, 1, 8, 30) // 30min de antecedência

	uc := NewCancelByAdmin(repo, notifier, zap.NewNop())
	uc.now = fixedNow

	got, err := uc.Execute(context.Background(), ap.ID, "admin:1")
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelledByAdmin), got.Status)

	audits := repo.AuditsFor(ap.ID)
	require.Len(t, audits, 1)
	assert.Equal(t, audit.ActionCancelledByAdmin, audits[0].Action)
	assert.Equal(t, "admin:1", audits[0].PerformedBy)
}

func TestCancelByAdmin_Terminal(t *testing.T) {
	repo, notifier := newFixture()
	ap := seedAppointment(repo, 1, 14, 0)
	ap.Status = string(domain.StatusCompleted)

	uc := NewCancelByAdmin(repo, notifier, zap.NewNop())
	uc.now = fixedNow

	_, err := uc.Execute(context.Background(), ap.ID, "admin:1")
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeAlreadyCancelled))
}

// O horário de um cancelado volta a ficar livre.
func TestCancel_FreesTheSlot(t *testing.T) {
	repo, notifier := newFixture()
	ap := seedAppointment(repo, 1, 14, 0)

	cancelUC := NewCancelByAdmin(repo, notifier, zap.NewNop())
	cancelUC.now = fixedNow
	_, err := cancelUC.Execute(context.Background(), ap.ID, "admin:1")
	require.NoError(t, err)

	createUC := newCreatePublic(repo, notifier)
	_, err = createUC.Execute(context.Background(), CreatePublicInput{
		ServiceID: 1, BarberID: barberPtr(1),
		ClientName: "Maria", ClientPhone: "11988880000",
		StartTime: startAt(14, 0),
	})
	require.NoError(t, err)
}
