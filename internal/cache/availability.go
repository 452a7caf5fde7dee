package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	domain "github.com/brunohmachado/barbearia-api/internal/domain/appointment"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// TTL curto de propósito: a visão mensal tolera alguns segundos de
// atraso, mas não pode mostrar um dia "livre" por muito tempo depois
// da última vaga ser tomada.
const monthTTL = 60 * time.Second

// AvailabilityCache guarda a disponibilidade mensal agregada no Redis.
// Qualquer erro de Redis vira cache miss: a fonte de verdade é sempre
// o banco.
type AvailabilityCache struct {
	client *redis.Client
	log    *zap.Logger
}

func NewAvailabilityCache(client *redis.Client, log *zap.Logger) *AvailabilityCache {
	return &AvailabilityCache{client: client, log: log}
}

func monthKey(year int, month time.Month, serviceID uint, barberID *uint) string {
	b := uint(0)
	if barberID != nil {
		b = *barberID
	}
	return fmt.Sprintf("availability:month:%04d-%02d:svc:%d:barber:%d", year, month, serviceID, b)
}

func (c *AvailabilityCache) GetMonth(
	ctx context.Context,
	year int,
	month time.Month,
	serviceID uint,
	barberID *uint,
) ([]domain.DayAvailability, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}

	raw, err := c.client.Get(ctx, monthKey(year, month, serviceID, barberID)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn("availability cache read failed", zap.Error(err))
		}
		return nil, false
	}

	var days []domain.DayAvailability
	if err := json.Unmarshal(raw, &days); err != nil {
		return nil, false
	}
	return days, true
}

func (c *AvailabilityCache) SetMonth(
	ctx context.Context,
	year int,
	month time.Month,
	serviceID uint,
	barberID *uint,
	days []domain.DayAvailability,
) {
	if c == nil || c.client == nil {
		return
	}

	raw, err := json.Marshal(days)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, monthKey(year, month, serviceID, barberID), raw, monthTTL).Err(); err != nil {
		c.log.Warn("availability cache write failed", zap.Error(err))
	}
}

// InvalidateMonth descarta a visão agregada do mês que contém t, para
// todas as combinações de serviço e barbeiro.
func (c *AvailabilityCache) InvalidateMonth(ctx context.Context, t time.Time) {
	c.invalidate(ctx, fmt.Sprintf("availability:month:%04d-%02d:*", t.Year(), t.Month()))
}

// InvalidateAll descarta a visão agregada de todos os meses. Usado
// quando a mudança afeta o horizonte inteiro (horário de trabalho).
func (c *AvailabilityCache) InvalidateAll(ctx context.Context) {
	c.invalidate(ctx, "availability:month:*")
}

func (c *AvailabilityCache) invalidate(ctx context.Context, pattern string) {
	if c == nil || c.client == nil {
		return
	}

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			c.log.Warn("availability cache invalidation failed", zap.Error(err))
			return
		}
	}
	if err := iter.Err(); err != nil {
		c.log.Warn("availability cache invalidation failed", zap.Error(err))
	}
}
