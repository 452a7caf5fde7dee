package testutil

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	domain "github.com/brunohmachado/barbearia-api/internal/domain/appointment"
	"github.com/brunohmachado/barbearia-api/internal/models"
)

// FakeRepo é a implementação em memória do contrato de persistência,
// usada pelos testes de usecase. Sem locking: os testes são seriais.
type FakeRepo struct {
	Services     map[uint]*models.Service
	Barbers      []models.User
	WorkingHours map[string]*models.WorkingHours
	Appointments map[uint]*models.Appointment
	Blocks       []models.TimeBlock
	Audits       []models.AppointmentAudit

	nextID uint
}

var _ domain.Repository = (*FakeRepo)(nil)

func NewFakeRepo() *FakeRepo {
	return &FakeRepo{
		Services:     map[uint]*models.Service{},
		WorkingHours: map[string]*models.WorkingHours{},
		Appointments: map[uint]*models.Appointment{},
	}
}

// --------- Seeds ---------

func (r *FakeRepo) AddService(svc models.Service) *models.Service {
	r.Services[svc.ID] = &svc
	return &svc
}

func (r *FakeRepo) AddBarber(b models.User) *models.User {
	r.Barbers = append(r.Barbers, b)
	return &r.Barbers[len(r.Barbers)-1]
}

func (r *FakeRepo) SetWorkingHours(barberID uint, weekday int, start, end string, working bool) {
	r.WorkingHours[whKey(barberID, weekday)] = &models.WorkingHours{
		BarberID:  barberID,
		Weekday:   weekday,
		StartTime: start,
		EndTime:   end,
		IsWorking: working,
	}
}

// SetAllWeekWorkingHours cadastra o mesmo expediente nos 7 dias.
func (r *FakeRepo) SetAllWeekWorkingHours(barberID uint, start, end string) {
	for wd := 0; wd < 7; wd++ {
		r.SetWorkingHours(barberID, wd, start, end, true)
	}
}

func (r *FakeRepo) AddBlock(b models.TimeBlock) {
	r.Blocks = append(r.Blocks, b)
}

func whKey(barberID uint, weekday int) string {
	return fmt.Sprintf("%d-%d", barberID, weekday)
}

// --------- Catalog ---------

func (r *FakeRepo) GetService(_ context.Context, id uint) (*models.Service, error) {
	svc, ok := r.Services[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return svc, nil
}

// --------- Barbers ---------

func (r *FakeRepo) GetBarber(_ context.Context, id uint) (*models.User, error) {
	for i := range r.Barbers {
		if r.Barbers[i].ID == id && r.Barbers[i].Active {
			return &r.Barbers[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *FakeRepo) ListActiveBarbers(_ context.Context) ([]models.User, error) {
	var out []models.User
	for _, b := range r.Barbers {
		if b.Active {
			out = append(out, b)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *FakeRepo) GetWorkingHours(_ context.Context, barberID uint, weekday int) (*models.WorkingHours, error) {
	return r.WorkingHours[whKey(barberID, weekday)], nil
}

// --------- Appointment (read) ---------

func (r *FakeRepo) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	ap, ok := r.Appointments[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return ap, nil
}

func (r *FakeRepo) GetAppointmentByToken(_ context.Context, token string) (*models.Appointment, error) {
	for _, ap := range r.Appointments {
		if ap.CancellationToken == token {
			return ap, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *FakeRepo) FindOverlappingAppointments(
	_ context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.Appointments {
		if ap.BarberID != barberID {
			continue
		}
		if excludeID > 0 && ap.ID == excludeID {
			continue
		}
		if !domain.IsActive(ap) {
			continue
		}
		if domain.AppointmentOverlaps(ap, start, end) {
			out = append(out, *ap)
		}
	}
	return out, nil
}

func (r *FakeRepo) FindOverlappingBlocks(
	_ context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.TimeBlock, error) {
	var out []models.TimeBlock
	for i := range r.Blocks {
		b := &r.Blocks[i]
		if b.BarberID != barberID {
			continue
		}
		if domain.BlockOverlaps(b, start, end) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (r *FakeRepo) ListAppointmentsForPeriod(
	_ context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.Appointments {
		if barberID > 0 && ap.BarberID != barberID {
			continue
		}
		if ap.StartTime.Before(start) || !ap.StartTime.Before(end) {
			continue
		}
		out = append(out, *ap)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

func (r *FakeRepo) ListUpcomingAppointments(
	_ context.Context,
	barberID uint,
	from time.Time,
) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.Appointments {
		if barberID > 0 && ap.BarberID != barberID {
			continue
		}
		if ap.StartTime.Before(from) || !domain.IsActive(ap) {
			continue
		}
		out = append(out, *ap)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

func (r *FakeRepo) ListAppointmentsForReminder(
	_ context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	var out []models.Appointment
	for _, ap := range r.Appointments {
		if !domain.IsActive(ap) {
			continue
		}
		if ap.StartTime.Before(start) || !ap.StartTime.Before(end) {
			continue
		}
		out = append(out, *ap)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime.Before(out[j].StartTime)
	})
	return out, nil
}

// --------- Appointment (write) ---------

func (r *FakeRepo) CreateAppointment(_ context.Context, ap *models.Appointment) error {
	r.nextID++
	ap.ID = r.nextID
	if ap.CancellationToken == "" {
		ap.CancellationToken = uuid.NewString()
	}
	r.Appointments[ap.ID] = ap
	return nil
}

func (r *FakeRepo) SaveAppointment(_ context.Context, ap *models.Appointment) error {
	if _, ok := r.Appointments[ap.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	r.Appointments[ap.ID] = ap
	return nil
}

// --------- Audit ---------

func (r *FakeRepo) CreateAudit(_ context.Context, entry *models.AppointmentAudit) error {
	r.Audits = append(r.Audits, *entry)
	return nil
}

func (r *FakeRepo) Transaction(_ context.Context, fn func(domain.Repository) error) error {
	// Sem transação real: a fn roda direto sobre o mesmo estado.
	return fn(r)
}

// AuditsFor filtra a trilha de um agendamento, na ordem de inserção.
func (r *FakeRepo) AuditsFor(appointmentID uint) []models.AppointmentAudit {
	var out []models.AppointmentAudit
	for _, a := range r.Audits {
		if a.AppointmentID == appointmentID {
			out = append(out, a)
		}
	}
	return out
}
