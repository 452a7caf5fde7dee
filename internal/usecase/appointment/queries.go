package appointment

import (
	"context"
	"time"

	domain "github.com/brunohmachado/barbearia-api/internal/domain/appointment"
	"github.com/brunohmachado/barbearia-api/internal/models"
)

// Queries agrupa as leituras de agendamento. Nenhuma mutação, nenhum
// lock: isolamento relaxado é suficiente.
type Queries struct {
	repo domain.Repository

	now func() time.Time
}

func NewQueries(repo domain.Repository) *Queries {
	return &Queries{
		repo: repo,
		now:  time.Now,
	}
}

func (q *Queries) FindByID(ctx context.Context, id uint) (*models.Appointment, error) {
	return q.repo.GetAppointment(ctx, id)
}

// FindByToken é a consulta pública do cliente, via token de
// cancelamento.
func (q *Queries) FindByToken(ctx context.Context, token string) (*models.Appointment, error) {
	return q.repo.GetAppointmentByToken(ctx, token)
}

// Calendar lista os agendamentos no intervalo de datas [from, to],
// para um barbeiro ou todos (barberID == 0).
func (q *Queries) Calendar(ctx context.Context, from, to time.Time, barberID uint) ([]models.Appointment, error) {
	start := time.Date(from.Year(), from.Month(), from.Day(), 0, 0, 0, 0, from.Location())
	end := time.Date(to.Year(), to.Month(), to.Day(), 0, 0, 0, 0, to.Location()).AddDate(0, 0, 1)

	return q.repo.ListAppointmentsForPeriod(ctx, barberID, start, end)
}

func (q *Queries) Upcoming(ctx context.Context, barberID uint) ([]models.Appointment, error) {
	return q.repo.ListUpcomingAppointments(ctx, barberID, q.now())
}
