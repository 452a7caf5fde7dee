package availability

import (
	"context"
	"time"

	"github.com/brunohmachado/barbearia-api/internal/cache"
	"github.com/brunohmachado/barbearia-api/internal/config"
	domain "github.com/brunohmachado/barbearia-api/internal/domain/appointment"
	"go.uber.org/zap"
)

// GetMonthAvailability reduz cada dia do mês a um booleano "tem vaga",
// reaproveitando a geração de slots. Visão mensal é a consulta mais
// cara e mais repetida da API pública, por isso passa pelo cache.
type GetMonthAvailability struct {
	slots *GetAvailableSlots
	cache *cache.AvailabilityCache
	cfg   config.BookingConfig
	log   *zap.Logger

	now func() time.Time
}

func NewGetMonthAvailability(
	slots *GetAvailableSlots,
	c *cache.AvailabilityCache,
	cfg config.BookingConfig,
	log *zap.Logger,
) *GetMonthAvailability {
	return &GetMonthAvailability{
		slots: slots,
		cache: c,
		cfg:   cfg,
		log:   log,
		now:   time.Now,
	}
}

func (uc *GetMonthAvailability) Execute(
	ctx context.Context,
	year int,
	month time.Month,
	serviceID uint,
	barberID *uint,
) ([]domain.DayAvailability, error) {

	if cached, ok := uc.cache.GetMonth(ctx, year, month, serviceID, barberID); ok {
		return cached, nil
	}

	now := uc.now()
	today := truncateToDay(now)
	maxDate := today.AddDate(0, 0, uc.cfg.MaxDaysAhead)

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, now.Location())
	monthEnd := monthStart.AddDate(0, 1, 0)

	// Interseção do mês com a janela [hoje, hoje+maxDaysAhead]: dias do
	// passado e além do horizonte saem com o mês inteiro fora = vazio.
	from := monthStart
	if from.Before(today) {
		from = today
	}
	to := monthEnd
	if to.After(maxDate.AddDate(0, 0, 1)) {
		to = maxDate.AddDate(0, 0, 1)
	}

	days := make([]domain.DayAvailability, 0, 31)
	for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
		slots, err := uc.slots.Execute(ctx, day, serviceID, barberID)
		if err != nil {
			return nil, err
		}

		has := false
		for i := range slots {
			if slots[i].Available {
				has = true
				break
			}
		}
		days = append(days, domain.DayAvailability{
			Date:              day.Format("2006-01-02"),
			HasAvailableSlots: has,
		})
	}

	uc.cache.SetMonth(ctx, year, month, serviceID, barberID, days)
	return days, nil
}
