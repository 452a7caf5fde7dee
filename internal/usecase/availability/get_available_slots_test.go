package availability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brunohmachado/barbearia-api/internal/config"
	domain "github.com/brunohmachado/barbearia-api/internal/domain/appointment"
	"github.com/brunohmachado/barbearia-api/internal/models"
	"github.com/brunohmachado/barbearia-api/internal/testutil"
)

var testNow = time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)

func fixedNow() time.Time { return testNow }

var bookingCfg = config.BookingConfig{
	MinAdvanceHours:     1,
	MaxDaysAhead:        30,
	ClientCancelHours:   4,
	SlotDurationMinutes: 15,
}

func newFixture() *testutil.FakeRepo {
	repo := testutil.NewFakeRepo()
	repo.AddService(models.Service{
		ID: 1, Name: "Corte", DurationMin: 30, BufferMin: 10, Price: 50, Active: true,
	})
	repo.AddBarber(models.User{ID: 1, Name: "Ana", Role: models.RoleBarber, Active: true})
	repo.SetAllWeekWorkingHours(1, "09:00", "12:00")
	return repo
}

func newSlotsUC(repo *testutil.FakeRepo) *GetAvailableSlots {
	uc := NewGetAvailableSlots(repo, bookingCfg)
	uc.now = fixedNow
	return uc
}

func day(d int) time.Time {
	return time.Date(2026, 9, d, 0, 0, 0, 0, time.UTC)
}

func slotTimes(slots []domain.TimeSlot, onlyAvailable bool) []string {
	var out []string
	for _, s := range slots {
		if onlyAvailable && !s.Available {
			continue
		}
		out = append(out, s.Time)
	}
	return out
}

func TestSlots_Grid(t *testing.T) {
	repo := newFixture()
	uc := newSlotsUC(repo)

	slots, err := uc.Execute(context.Background(), day(10), 1, nil)
	require.NoError(t, err)

	// expediente 09:00-12:00, serviço de 40min, passo de 15min:
	// último início possível 11:20 (inclusive)
	require.NotEmpty(t, slots)
	assert.Equal(t, "09:00", slots[0].Time)
	assert.Equal(t, "11:15", slots[len(slots)-1].Time)
	assert.Len(t, slots, 10) // 09:00..11:15 de 15 em 15

	// 08:00 + 1h de antecedência: tudo a partir de 09:00 disponível
	for _, s := range slots {
		assert.True(t, s.Available, s.Time)
		assert.Equal(t, "Ana", s.BarberName)
	}
}

func TestSlots_LastFittingStart(t *testing.T) {
	repo := newFixture()
	repo.Services[1].BufferMin = 0
	repo.Services[1].DurationMin = 30
	uc := newSlotsUC(repo)

	slots, err := uc.Execute(context.Background(), day(10), 1, nil)
	require.NoError(t, err)

	// 11:30 + 30min = 12:00 encosta no fim e ainda cabe
	assert.Equal(t, "11:30", slots[len(slots)-1].Time)
}

func TestSlots_OccupiedUnavailable(t *testing.T) {
	repo := newFixture()
	ap := &models.Appointment{
		BarberID:  1,
		ServiceID: 1,
		StartTime: time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 10, 10, 40, 0, 0, time.UTC),
		Status:    string(domain.StatusConfirmed),
	}
	require.NoError(t, repo.CreateAppointment(context.Background(), ap))

	uc := newSlotsUC(repo)
	slots, err := uc.Execute(context.Background(), day(10), 1, nil)
	require.NoError(t, err)

	byTime := map[string]bool{}
	for _, s := range slots {
		byTime[s.Time] = s.Available
	}

	// qualquer início cujo intervalo de 40min cruza 10:00-10:40 sai:
	// 09:30..10:30 indisponíveis, 09:15 (termina 09:55) e 10:45 livres
	assert.True(t, byTime["09:15"])
	assert.False(t, byTime["09:30"])
	assert.False(t, byTime["10:00"])
	assert.False(t, byTime["10:30"])
	assert.True(t, byTime["10:45"])
}

func TestSlots_CancelledDoesNotBlock(t *testing.T) {
	repo := newFixture()
	ap := &models.Appointment{
		BarberID:  1,
		ServiceID: 1,
		StartTime: time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 10, 10, 40, 0, 0, time.UTC),
		Status:    string(domain.StatusCancelledByClient),
	}
	require.NoError(t, repo.CreateAppointment(context.Background(), ap))

	uc := newSlotsUC(repo)
	slots, err := uc.Execute(context.Background(), day(10), 1, nil)
	require.NoError(t, err)

	for _, s := range slots {
		assert.True(t, s.Available, s.Time)
	}
}

func TestSlots_BlockUnavailable(t *testing.T) {
	repo := newFixture()
	repo.AddBlock(models.TimeBlock{
		BarberID:  1,
		StartTime: time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2026, 9, 10, 10, 0, 0, 0, time.UTC),
		Reason:    "dentista",
	})

	uc := newSlotsUC(repo)
	slots, err := uc.Execute(context.Background(), day(10), 1, nil)
	require.NoError(t, err)

	byTime := map[string]bool{}
	for _, s := range slots {
		byTime[s.Time] = s.Available
	}

	assert.False(t, byTime["09:00"])
	assert.False(t, byTime["09:45"]) // começa dentro do bloqueio
	assert.True(t, byTime["10:00"]) // encosta no fim do bloqueio, não cruza
}

func TestSlots_MinAdvanceCutoff(t *testing.T) {
	repo := newFixture()
	uc := newSlotsUC(repo)
	uc.now = func() time.Time {
		return time.Date(2026, 9, 10, 9, 0, 0, 0, time.UTC)
	}

	slots, err := uc.Execute(context.Background(), day(10), 1, nil)
	require.NoError(t, err)

	byTime := map[string]bool{}
	for _, s := range slots {
		byTime[s.Time] = s.Available
	}

	// antecedência de 1h a partir das 09:00: 09:45 cai, 10:00 passa
	assert.False(t, byTime["09:45"])
	assert.True(t, byTime["10:00"])
}

func TestSlots_OutOfWindowEmpty(t *testing.T) {
	repo := newFixture()
	uc := newSlotsUC(repo)

	// passado
	slots, err := uc.Execute(context.Background(), day(9), 1, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)

	// além do horizonte de 30 dias
	far := testNow.AddDate(0, 0, 31)
	slots, err = uc.Execute(context.Background(), far, 1, nil)
	require.NoError(t, err)
	assert.Empty(t, slots)
}

func TestSlots_NonWorkingDayEmpty(t *testing.T) {
	repo := newFixture()
	repo.SetWorkingHours(1, int(time.Friday), "09:00", "12:00", false)

	uc := newSlotsUC(repo)
	slots, err := uc.Execute(context.Background(), day(11), 1, nil) // sexta
	require.NoError(t, err)
	assert.Empty(t, slots)
}

// Ordenação (DateTime, BarberName) com dois barbeiros.
func TestSlots_Ordering(t *testing.T) {
	repo := newFixture()
	repo.AddBarber(models.User{ID: 2, Name: "Bruno", Role: models.RoleBarber, Active: true})
	repo.SetAllWeekWorkingHours(2, "09:00", "12:00")

	uc := newSlotsUC(repo)
	slots, err := uc.Execute(context.Background(), day(10), 1, nil)
	require.NoError(t, err)

	for i := 1; i < len(slots); i++ {
		prev, cur := slots[i-1], slots[i]
		if prev.DateTime.Equal(cur.DateTime) {
			assert.LessOrEqual(t, prev.BarberName, cur.BarberName)
		} else {
			assert.True(t, prev.DateTime.Before(cur.DateTime))
		}
	}

	// determinismo: duas execuções, mesma saída
	again, err := uc.Execute(context.Background(), day(10), 1, nil)
	require.NoError(t, err)
	assert.Equal(t, slots, again)
}

func TestSlots_SpecificBarber(t *testing.T) {
	repo := newFixture()
	repo.AddBarber(models.User{ID: 2, Name: "Bruno", Role: models.RoleBarber, Active: true})
	repo.SetAllWeekWorkingHours(2, "09:00", "12:00")

	uc := newSlotsUC(repo)

	barberID := uint(2)
	slots, err := uc.Execute(context.Background(), day(10), 1, &barberID)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	for _, s := range slots {
		assert.Equal(t, uint(2), s.BarberID)
	}
}
