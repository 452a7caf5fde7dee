package availability

import (
	"context"
	"sort"
	"time"

	"github.com/brunohmachado/barbearia-api/internal/config"
	domain "github.com/brunohmachado/barbearia-api/internal/domain/appointment"
	"github.com/brunohmachado/barbearia-api/internal/models"
)

// GetAvailableSlots gera a grade discreta de horários de um serviço em
// uma data, para um barbeiro ou para todos. Leitura pura: nenhuma
// reserva é feita aqui, a grade é uma fotografia do instante da
// consulta.
type GetAvailableSlots struct {
	repo domain.Repository
	cfg  config.BookingConfig

	now func() time.Time
}

func NewGetAvailableSlots(repo domain.Repository, cfg config.BookingConfig) *GetAvailableSlots {
	return &GetAvailableSlots{
		repo: repo,
		cfg:  cfg,
		now:  time.Now,
	}
}

func (uc *GetAvailableSlots) Execute(
	ctx context.Context,
	date time.Time,
	serviceID uint,
	barberID *uint,
) ([]domain.TimeSlot, error) {

	now := uc.now()
	today := truncateToDay(now)
	day := truncateToDay(date)

	// Fora da janela de reserva a resposta é vazia, não erro: o
	// calendário do cliente pagina livremente pelos meses.
	if day.Before(today) || day.After(today.AddDate(0, 0, uc.cfg.MaxDaysAhead)) {
		return []domain.TimeSlot{}, nil
	}

	svc, err := uc.repo.GetService(ctx, serviceID)
	if err != nil {
		return nil, err
	}

	var barbers []models.User
	if barberID != nil {
		barber, err := uc.repo.GetBarber(ctx, *barberID)
		if err != nil {
			return nil, err
		}
		barbers = []models.User{*barber}
	} else {
		barbers, err = uc.repo.ListActiveBarbers(ctx)
		if err != nil {
			return nil, err
		}
	}

	minDateTime := now.Add(time.Duration(uc.cfg.MinAdvanceHours) * time.Hour)
	slots := make([]domain.TimeSlot, 0, 64)

	for i := range barbers {
		barberSlots, err := uc.slotsForBarber(ctx, &barbers[i], svc, day, minDateTime)
		if err != nil {
			return nil, err
		}
		slots = append(slots, barberSlots...)
	}

	// Ordem (DateTime, BarberName) é contrato: mesma entrada, mesma
	// saída, independente da ordem de chegada das linhas.
	sort.SliceStable(slots, func(i, j int) bool {
		if !slots[i].DateTime.Equal(slots[j].DateTime) {
			return slots[i].DateTime.Before(slots[j].DateTime)
		}
		return slots[i].BarberName < slots[j].BarberName
	})

	return slots, nil
}

// slotsForBarber materializa a grade de um barbeiro em um dia com uma
// única consulta de agendamentos e uma de bloqueios para o dia inteiro,
// em vez de uma consulta por slot.
func (uc *GetAvailableSlots) slotsForBarber(
	ctx context.Context,
	barber *models.User,
	svc *models.Service,
	day time.Time,
	minDateTime time.Time,
) ([]domain.TimeSlot, error) {

	wh, err := uc.repo.GetWorkingHours(ctx, barber.ID, int(day.Weekday()))
	if err != nil {
		return nil, err
	}

	dayStart, dayEnd, ok := domain.DayWindow(wh, day)
	if !ok {
		return nil, nil
	}

	appointments, err := uc.repo.FindOverlappingAppointments(ctx, barber.ID, dayStart, dayEnd, 0)
	if err != nil {
		return nil, err
	}
	blocks, err := uc.repo.FindOverlappingBlocks(ctx, barber.ID, dayStart, dayEnd)
	if err != nil {
		return nil, err
	}

	step := time.Duration(uc.cfg.SlotDurationMinutes) * time.Minute
	total := time.Duration(svc.TotalDurationMin()) * time.Minute

	var slots []domain.TimeSlot
	for slotStart := dayStart; !slotStart.Add(total).After(dayEnd); slotStart = slotStart.Add(step) {
		slotEnd := slotStart.Add(total)

		available := !slotStart.Before(minDateTime) &&
			!overlapsAppointments(appointments, slotStart, slotEnd) &&
			!overlapsBlocks(blocks, slotStart, slotEnd)

		slots = append(slots, domain.TimeSlot{
			DateTime:   slotStart,
			Time:       slotStart.Format("15:04"),
			Available:  available,
			BarberID:   barber.ID,
			BarberName: barber.Name,
		})
	}
	return slots, nil
}

func overlapsAppointments(aps []models.Appointment, start, end time.Time) bool {
	for i := range aps {
		if domain.Overlaps(start, end, aps[i].StartTime, aps[i].EndTime) {
			return true
		}
	}
	return false
}

func overlapsBlocks(blocks []models.TimeBlock, start, end time.Time) bool {
	for i := range blocks {
		if domain.Overlaps(start, end, blocks[i].StartTime, blocks[i].EndTime) {
			return true
		}
	}
	return false
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
