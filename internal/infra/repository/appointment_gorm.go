package repository

import (
	"context"
	"time"

	domain "github.com/brunohmachado/barbearia-api/internal/domain/appointment"
	"github.com/brunohmachado/barbearia-api/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Compile-time: o repositório gorm satisfaz o contrato do domínio.
var _ domain.Repository = (*AppointmentRepository)(nil)

type AppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *AppointmentRepository {
	return &AppointmentRepository{db: db}
}

// -------- Catalog --------

func (r *AppointmentRepository) GetService(ctx context.Context, id uint) (*models.Service, error) {
	var svc models.Service
	if err := r.db.WithContext(ctx).First(&svc, id).Error; err != nil {
		return nil, err
	}
	return &svc, nil
}

// -------- Barbers --------

func (r *AppointmentRepository) GetBarber(ctx context.Context, id uint) (*models.User, error) {
	var barber models.User
	err := r.db.WithContext(ctx).
		Where("id = ? AND active = ?", id, true).
		First(&barber).Error
	if err != nil {
		return nil, err
	}
	return &barber, nil
}

func (r *AppointmentRepository) ListActiveBarbers(ctx context.Context) ([]models.User, error) {
	var barbers []models.User
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC, id ASC").
		Find(&barbers).Error
	return barbers, err
}

func (r *AppointmentRepository) GetWorkingHours(ctx context.Context, barberID uint, weekday int) (*models.WorkingHours, error) {
	var wh models.WorkingHours
	err := r.db.WithContext(ctx).
		Where("barber_id = ? AND weekday = ?", barberID, weekday).
		First(&wh).Error
	if err == gorm.ErrRecordNotFound {
		// Sem cadastro = dia sem expediente, não erro.
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &wh, nil
}

// -------- Appointment (read) --------

func (r *AppointmentRepository) GetAppointment(ctx context.Context, id uint) (*models.Appointment, error) {
	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service").
		First(&ap, id).Error
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

func (r *AppointmentRepository) GetAppointmentByToken(ctx context.Context, token string) (*models.Appointment, error) {
	var ap models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service").
		Where("cancellation_token = ?", token).
		First(&ap).Error
	if err != nil {
		return nil, err
	}
	return &ap, nil
}

// FindOverlappingAppointments usa FOR UPDATE: dentro da transação de
// criação, dois writers do mesmo barbeiro serializam aqui e o segundo
// enxerga o conflito.
func (r *AppointmentRepository) FindOverlappingAppointments(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
	excludeID uint,
) ([]models.Appointment, error) {
	q := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("barber_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			barberID, []string{string(domain.StatusScheduled), string(domain.StatusConfirmed)}, end, start)

	if excludeID > 0 {
		q = q.Where("id != ?", excludeID)
	}

	var aps []models.Appointment
	err := q.Find(&aps).Error
	return aps, err
}

func (r *AppointmentRepository) FindOverlappingBlocks(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.TimeBlock, error) {
	var blocks []models.TimeBlock
	err := r.db.WithContext(ctx).
		Where("barber_id = ? AND start_time < ? AND end_time > ?", barberID, end, start).
		Find(&blocks).Error
	return blocks, err
}

func (r *AppointmentRepository) ListAppointmentsForPeriod(
	ctx context.Context,
	barberID uint,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	q := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service").
		Where("start_time >= ? AND start_time < ?", start, end).
		Order("start_time ASC, barber_id ASC")

	if barberID > 0 {
		q = q.Where("barber_id = ?", barberID)
	}

	var aps []models.Appointment
	err := q.Find(&aps).Error
	return aps, err
}

func (r *AppointmentRepository) ListUpcomingAppointments(
	ctx context.Context,
	barberID uint,
	from time.Time,
) ([]models.Appointment, error) {
	q := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service").
		Where("start_time >= ? AND status IN ?",
			from, []string{string(domain.StatusScheduled), string(domain.StatusConfirmed)}).
		Order("start_time ASC")

	if barberID > 0 {
		q = q.Where("barber_id = ?", barberID)
	}

	var aps []models.Appointment
	err := q.Find(&aps).Error
	return aps, err
}

func (r *AppointmentRepository) ListAppointmentsForReminder(
	ctx context.Context,
	start time.Time,
	end time.Time,
) ([]models.Appointment, error) {
	var aps []models.Appointment
	err := r.db.WithContext(ctx).
		Preload("Barber").
		Preload("Service").
		Where("start_time >= ? AND start_time < ? AND status IN ?",
			start, end, []string{string(domain.StatusScheduled), string(domain.StatusConfirmed)}).
		Order("start_time ASC").
		Find(&aps).Error
	return aps, err
}

// -------- Appointment (write) --------

func (r *AppointmentRepository) CreateAppointment(ctx context.Context, ap *models.Appointment) error {
	// Omit(Associations): Barber e Service são referências, nunca
	// upsert a partir do agendamento.
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Create(ap).Error
}

func (r *AppointmentRepository) SaveAppointment(ctx context.Context, ap *models.Appointment) error {
	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Save(ap).Error
}

// -------- Audit --------

func (r *AppointmentRepository) CreateAudit(ctx context.Context, entry *models.AppointmentAudit) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// Transaction entrega a fn um Repository amarrado ao tx: tudo que ela
// fizer commita ou desfaz junto.
func (r *AppointmentRepository) Transaction(ctx context.Context, fn func(domain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&AppointmentRepository{db: tx})
	})
}
