package appointment

import (
	"context"
	"testing"
	"time"

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

// ======================================================
// Fixture
// ======================================================

var testNow = time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC) // quinta-feira

func fixedNow() time.Time { return testNow }

var testPolicy = domain.BookingPolicy{MinAdvanceHours: 1, MaxDaysAhead: 30}

// newFixture monta um repositório com o serviço Corte (30+10min) e os
// barbeiros Ana (1) e Bruno (2), ambos com expediente 09:00-18:00.
func newFixture() (*testutil.FakeRepo, *testutil.FakeNotifier) {
	repo := testutil.NewFakeRepo()

	repo.AddService(models.Service{
		ID: 1, Name: "Corte", DurationMin: 30, BufferMin: 10, Price: 50, Active: true,
	})
	repo.AddBarber(models.User{ID: 1, Name: "Ana", Role: models.RoleBarber, Active: true})
	repo.AddBarber(models.User{ID: 2, Name: "Bruno", Role: models.RoleBarber, Active: true})
	repo.SetAllWeekWorkingHours(1, "09:00", "18:00")
	repo.SetAllWeekWorkingHours(2, "09:00", "18:00")

	return repo, &testutil.FakeNotifier{}
}

func newCreatePublic(repo *testutil.FakeRepo, notifier *testutil.FakeNotifier) *CreatePublicAppointment {
	uc := NewCreatePublicAppointment(repo, notifier, testPolicy, zap.NewNop())
	uc.now = fixedNow
	return uc
}

func startAt(h, m int) time.Time {
	return time.Date(2026, 9, 10, h, m, 0, 0, time.UTC)
}

func barberPtr(id uint) *uint { return &id }

// ======================================================
// Booking público
// ======================================================

func TestCreatePublic_OK(t *testing.T) {
	repo, notifier := newFixture()
	uc := newCreatePublic(repo, notifier)

	ap, err := uc.Execute(context.Background(), CreatePublicInput{
		ServiceID:   1,
		BarberID:    barberPtr(1),
		ClientName:  "João",
		ClientPhone: "11999990000",
		ClientEmail: "joao@example.com",
		StartTime:   startAt(10, 0),
	})
	require.NoError(t, err)

	assert.Equal(t, uint(1), ap.BarberID)
	assert.Equal(t, string(domain.StatusConfirmed), ap.Status)
	assert.Equal(t, startAt(10, 40), ap.EndTime) // 30 + 10 de buffer
	assert.Equal(t, 50.0, ap.PriceAtBooking)
	assert.NotEmpty(t, ap.CancellationToken)
	assert.False(t, ap.CreatedByAdmin)

	// auditoria atômica com a criação
	audits := repo.AuditsFor(ap.ID)
	require.Len(t, audits, 1)
	assert.Equal(t, audit.ActionCreated, audits[0].Action)
	assert.Equal(t, "client", audits[0].PerformedBy)
	assert.Empty(t, audits[0].BeforeState)

	// confirmação pós-commit
	require.Len(t, notifier.Sent, 1)
	assert.Equal(t, notification.TypeConfirmation, notifier.Sent[0].Type)
}

func TestCreatePublic_ServiceInactive(t *testing.T) {
	repo, notifier := newFixture()
	repo.Services[1].Active = false
	uc := newCreatePublic(repo, notifier)

	_, err := uc.Execute(context.Background(), CreatePublicInput{
		ServiceID: 1, BarberID: barberPtr(1),
		ClientName: "João", ClientPhone: "11999990000",
		StartTime: startAt(10, 0),
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeServiceInactive))
	assert.Empty(t, notifier.Sent)
}

func TestCreatePublic_Conflict(t *testing.T) {
	repo, notifier := newFixture()
	uc := newCreatePublic(repo, notifier)

	_, err := uc.Execute(context.Background(), CreatePublicInput{
		ServiceID: 1, BarberID: barberPtr(1),
		ClientName: "João", ClientPhone: "11999990000",
		StartTime: startAt(10, 0),
	})
	require.NoError(t, err)

	// mesmo barbeiro, horário sobreposto
	_, err = uc.Execute(context.Background(), CreatePublicInput{
		ServiceID: 1, BarberID: barberPtr(1),
		ClientName: "Maria", ClientPhone: "11988880000",
		StartTime: startAt(10, 30),
	})
	require.Error(t, err)
	assert.True(t, httperr.IsConflict(err))

	// o conflito não deixa rastro: um agendamento e uma auditoria
	assert.Len(t, repo.Appointments, 1)
	assert.Len(t, repo.Audits, 1)
}

// Extremos encostados não conflitam: 10:00-10:40 e 10:40-11:20.
func TestCreatePublic_TouchingIntervals(t *testing.T) {
	repo, notifier := newFixture()
	uc := newCreatePublic(repo, notifier)

	_, err := uc.Execute(context.Background(), CreatePublicInput{
		ServiceID: 1, BarberID: barberPtr(1),
		ClientName: "João", ClientPhone: "11999990000",
		StartTime: startAt(10, 0),
	})
	require.NoError(t, err)

	_, err = uc.Execute(context.Background(), CreatePublicInput{
		ServiceID: 1, BarberID: barberPtr(1),
		ClientName: "Maria", ClientPhone: "11988880000",
		StartTime: startAt(10, 40),
	})
	require.NoError(t, err)
}

func TestCreatePublic_BlockedPeriod(t *testing.T) {
	repo, notifier := newFixture()
	repo.AddBlock(models.TimeBlock{
		BarberID:  1,
		StartTime: startAt(12, 0),
		EndTime:   startAt(13, 0),
		Reason:    "almoço",
	})
	uc := newCreatePublic(repo, notifier)

	_, err := uc.Execute(context.Background(), CreatePublicInput{
		ServiceID: 1, BarberID: barberPtr(1),
		ClientName: "João", ClientPhone: "11999990000",
		StartTime: startAt(12, 30),
	})
	require.Error(t, err)
	assert.True(t, httperr.IsConflict(err))
}

func TestCreatePublic_PolicyRejection(t *testing.T) {
	repo, notifier := newFixture()
	uc := newCreatePublic(repo, notifier)

	// 08:30 com antecedência mínima de 1h a partir das 08:00
	_, err := uc.Execute(context.Background(), CreatePublicInput{
		ServiceID: 1, BarberID: barberPtr(1),
		ClientName: "João", ClientPhone: "11999990000",
		StartTime: startAt(8, 30),
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeMinAdvanceTime))
}

// ======================================================
// Auto-assign
// ======================================================

func TestCreatePublic_AutoAssign_FirstFit(t *testing.T) {
	repo, notifier := newFixture()
	uc := newCreatePublic(repo, notifier)

	// sem barbeiro: Ana vem primeiro na ordem (name, id)
	ap, err := uc.Execute(context.Background(), CreatePublicInput{
		ServiceID:  1,
		ClientName: "João", ClientPhone: "11999990000",
		StartTime: startAt(10, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, uint(1), ap.BarberID)

	// Ana ocupada: o mesmo horário cai para Bruno
	ap2, err := uc.Execute(context.Background(), CreatePublicInput{
		ServiceID:  1,
		ClientName: "Maria", ClientPhone: "11988880000",
		StartTime: startAt(10, 0),
	})
	require.NoError(t, err)
	assert.Equal(t, uint(2), ap2.BarberID)
}

func TestCreatePublic_AutoAssign_NoAvailability(t *testing.T) {
	repo, notifier := newFixture()
	uc := newCreatePublic(repo, notifier)

	for _, id := range []uint{1, 2} {
		_, err := uc.Execute(context.Background(), CreatePublicInput{
			ServiceID: 1, BarberID: barberPtr(id),
			ClientName: "Cliente", ClientPhone: "11900000000",
			StartTime: startAt(10, 0),
		})
		require.NoError(t, err)
	}

	_, err := uc.Execute(context.Background(), CreatePublicInput{
		ServiceID:  1,
		ClientName: "Maria", ClientPhone: "11988880000",
		StartTime: startAt(10, 0),
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNoAvailability))
}

func TestCreatePublic_AutoAssign_NoBarbers(t *testing.T) {
	repo, notifier := newFixture()
	for i := range repo.Barbers {
		repo.Barbers[i].Active = false
	}
	uc := newCreatePublic(repo, notifier)

	_, err := uc.Execute(context.Background(), CreatePublicInput{
		ServiceID:  1,
		ClientName: "Maria", ClientPhone: "11988880000",
		StartTime: startAt(10, 0),
	})
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeNoBarber))
}

// ======================================================
// Criação administrativa
// ======================================================

func TestCreateAdmin_SkipsPolicyButNotConflicts(t *testing.T) {
	repo, notifier := newFixture()
	uc := NewCreateAdminAppointment(repo, notifier, zap.NewNop())
	uc.now = fixedNow

	// 08:15: dentro da janela de antecedência mínima, admin pode
	ap, err := uc.Execute(context.Background(), CreateAdminInput{
		ServiceID: 1, BarberID: 1,
		ClientName: "Walk-in", ClientPhone: "11977770000",
		StartTime: startAt(8, 15),
	}, "admin:1")
	require.NoError(t, err)
	assert.True(t, ap.CreatedByAdmin)
	assert.Equal(t, string(domain.StatusConfirmed), ap.Status)

	// sem e-mail, nada é enviado
	assert.Empty(t, notifier.Sent)

	// conflito continua valendo
	_, err = uc.Execute(context.Background(), CreateAdminInput{
		ServiceID: 1, BarberID: 1,
		ClientName: "Outro", ClientPhone: "11966660000",
		StartTime: startAt(8, 30),
	}, "admin:1")
	require.Error(t, err)
	assert.True(t, httperr.IsConflict(err))
}

func TestCreateAdmin_InvalidStatus(t *testing.T) {
	repo, notifier := newFixture()
	uc := NewCreateAdminAppointment(repo, notifier, zap.NewNop())
	uc.now = fixedNow

	_, err := uc.Execute(context.Background(), CreateAdminInput{
		ServiceID: 1, BarberID: 1,
		ClientName: "Walk-in", ClientPhone: "11977770000",
		StartTime: startAt(9, 0),
		Status:    "agendadíssimo",
	}, "admin:1")
	require.Error(t, err)
	assert.True(t, httperr.IsBusiness(err, httperr.CodeInvalidStatus))
}
