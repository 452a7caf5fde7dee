package appointment

import (
	"context"
	"time"

	"github.com/brunohmachado/barbearia-api/internal/models"
)

// Repository é o contrato estreito de persistência dos usecases de
// agendamento. A implementação real é gorm/Postgres; os testes usam
// uma versão em memória.
type Repository interface {
	// -------- Catalog --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	// -------- Barbers --------
	GetBarber(
		ctx context.Context,
		id uint,
	) (*models.User, error)

	// ListActiveBarbers devolve os barbeiros ativos em ordem estável
	// (name, id): é a ordem usada pelo auto-assign e pela agregação.
	ListActiveBarbers(
		ctx context.Context,
	) ([]models.User, error)

	// GetWorkingHours devolve (nil, nil) quando não há expediente
	// cadastrado para o dia: ausência não é erro.
	GetWorkingHours(
		ctx context.Context,
		barberID uint,
		weekday int,
	) (*models.WorkingHours, error)

	// -------- Appointment (read) --------
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	GetAppointmentByToken(
		ctx context.Context,
		token string,
	) (*models.Appointment, error)

	// FindOverlappingAppointments considera apenas agendamentos ativos
	// (scheduled/confirmed) com sobreposição meio-aberta ao intervalo.
	// excludeID > 0 omite um agendamento (validação de reschedule).
	FindOverlappingAppointments(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
		excludeID uint,
	) ([]models.Appointment, error)

	FindOverlappingBlocks(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.TimeBlock, error)

	// ListAppointmentsForPeriod: barberID == 0 lista todos os barbeiros.
	ListAppointmentsForPeriod(
		ctx context.Context,
		barberID uint,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	ListUpcomingAppointments(
		ctx context.Context,
		barberID uint,
		from time.Time,
	) ([]models.Appointment, error)

	// ListAppointmentsForReminder: agendamentos ativos com início dentro
	// da janela, com barbeiro e serviço carregados.
	ListAppointmentsForReminder(
		ctx context.Context,
		start time.Time,
		end time.Time,
	) ([]models.Appointment, error)

	// -------- Appointment (write) --------
	CreateAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	SaveAppointment(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Audit --------
	CreateAudit(
		ctx context.Context,
		audit *models.AppointmentAudit,
	) error

	// Transaction executa fn com um Repository transacional: a checagem
	// de conflito e a escrita (estado + auditoria) são indivisíveis para
	// outros escritores do mesmo barbeiro.
	Transaction(
		ctx context.Context,
		fn func(Repository) error,
	) error
}
