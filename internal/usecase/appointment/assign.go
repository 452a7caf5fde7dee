package appointment

import (
	"context"
	"time"

	domain "github.com/brunohmachado/barbearia-api/internal/domain/appointment"
	"github.com/brunohmachado/barbearia-api/internal/httperr"
	"github.com/brunohmachado/barbearia-api/internal/models"
)

// eligible é o predicado puro de elegibilidade do auto-assign: política
// e conflitos passam. Rejeição de regra de negócio ou conflito não é
// erro, é só "não elegível"; apenas falha real de infraestrutura usa o
// canal de erro.
func eligible(
	ctx context.Context,
	repo domain.Repository,
	policy domain.BookingPolicy,
	now time.Time,
	barber *models.User,
	svc *models.Service,
	start time.Time,
) (bool, error) {
	if err := validateBookingTime(ctx, repo, policy, now, start, barber.ID, svc); err != nil {
		if _, ok := httperr.AsBusiness(err); ok {
			return false, nil
		}
		return false, err
	}

	end := domain.EndFor(start, svc)
	if err := validateNoConflicts(ctx, repo, barber.ID, start, end, 0); err != nil {
		if httperr.IsConflict(err) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// findAvailableBarber: first-fit guloso na ordem estável devolvida pelo
// repositório. Não tenta balancear utilização entre barbeiros.
func findAvailableBarber(
	ctx context.Context,
	repo domain.Repository,
	policy domain.BookingPolicy,
	now time.Time,
	barbers []models.User,
	svc *models.Service,
	start time.Time,
) (*models.User, error) {
	for i := range barbers {
		ok, err := eligible(ctx, repo, policy, now, &barbers[i], svc, start)
		if err != nil {
			return nil, err
		}
		if ok {
			return &barbers[i], nil
		}
	}

	return nil, httperr.ErrBusiness(httperr.CodeNoAvailability,
		"Nenhum barbeiro disponível neste horário")
}
