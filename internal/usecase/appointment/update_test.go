package appointment

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/brunohmachado/barbearia-api/internal/audit"
	"github.com/brunohmachado/barbearia-api/internal/httperr"
)

func TestUpdate_NotesOnly(t *testing.T) {
	repo, _ := newFixture()
	ap := seedWithService(repo, 1, 14, 0)
	// outro agendamento colado que tornaria qualquer recheck de horário
	// irrelevante: notas não mexem em tempo
	seedAppointment(repo, 1, 14, 40)

	uc := NewUpdateAppointment(repo, zap.NewNop())
	uc.now = fixedNow

	notes := "cliente pediu máquina 2"
	got, err := uc.Execute(context.Background(), ap.ID, UpdateInput{Notes: &notes}, "admin:1")
	require.NoError(t, err)
	assert.Equal(t, notes, got.Notes)
	assert.Equal(t, startAt(14, 0), got.StartTime)

	audits := repo.AuditsFor(ap.ID)
	require.Len(t, audits, 1)
	assert.Equal(t, audit.ActionUpdated, audits[0].Action)
}

func TestUpdate_TimeChange_RederivesEnd(t *testing.T) {
	repo, _ := newFixture()
	ap := seedWithService(repo, 1, 14, 0)

	uc := NewUpdateAppointment(repo, zap.NewNop())
	uc.now = fixedNow

	newStart := startAt(15, 0)
	got, err := uc.Execute(context.Background(), ap.ID, UpdateInput{StartTime: &newStart}, "admin:1")
	require.NoError(t, err)
	assert.Equal(t, startAt(15, 0), got.StartTime)
	assert.Equal(t, startAt(15, 40), got.EndTime)
}

func TestUpdate_TimeChange_ChecksConflicts(t *testing.T) {
	repo, _ := newFixture()
	ap := seedWithService(repo, 1, 14, 0)
	seedAppointment(repo, 1, 16, 0)

	uc := NewUpdateAppointment(repo, zap.NewNop())
	uc.now = fixedNow

	newStart := startAt(16, 20)
	_, err := uc.Execute(context.Background(), ap.ID, UpdateInput{StartTime: &newStart}, "admin:1")
	require.Error(t, err)
	assert.True(t, httperr.IsConflict(err))
}

func TestUpdate_SwitchBarber(t *testing.T) {
	repo, _ := newFixture()
	ap := seedWithService(repo, 1, 14, 0)

	uc := NewUpdateAppointment(repo, zap.NewNop())
	uc.now = fixedNow

	newBarber := uint(2)
	newStart := startAt(14, 0)
	got, err := uc.Execute(context.Background(), ap.ID, UpdateInput{
		StartTime: &newStart,
		BarberID:  &newBarber,
	}, "admin:1")
	require.NoError(t, err)
	assert.Equal(t, uint(2), got.BarberID)
}

func TestUpdate_InvalidStatus(t *testing.T) {
	repo, _ := newFixture()
	ap := seedWithService(repo, 1, 14, 0)

	uc := NewUpdateAppointment(repo, zap.NewNop())
	uc.now = fixedNow

	bad := "feito"
	_, err := uc.Execute(context.Background(), ap.ID, UpdateInput{Status: &bad}, "admin:1")
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidStatus))
}
