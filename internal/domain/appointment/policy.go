package appointment

import (
	"fmt"
	"time"

	"github.com/brunohmachado/barbearia-api/internal/httperr"
	"github.com/brunohmachado/barbearia-api/internal/models"
)

// BookingPolicy aplica as regras de tempo de uma reserva. Os limites
// vêm da configuração, nunca de constantes locais.
type BookingPolicy struct {
	MinAdvanceHours int
	MaxDaysAhead    int
}

// Validate aplica as regras em ordem fixa, parando na primeira falha:
//  1. antecedência mínima
//  2. limite de dias no futuro
//  3. dia de trabalho do barbeiro
//  4. contenção no expediente (início e fim derivado)
//
// wh == nil significa que não existe expediente cadastrado para o dia.
func (p BookingPolicy) Validate(now, start time.Time, wh *models.WorkingHours, svc *models.Service) error {
	minTime := now.Add(time.Duration(p.MinAdvanceHours) * time.Hour)
	if start.Before(minTime) {
		return httperr.ErrBusiness(httperr.CodeMinAdvanceTime,
			fmt.Sprintf("Agendamento deve ser feito com pelo menos %d hora(s) de antecedência", p.MinAdvanceHours))
	}

	maxDate := truncateToDay(now).AddDate(0, 0, p.MaxDaysAhead)
	if truncateToDay(start).After(maxDate) {
		return httperr.ErrBusiness(httperr.CodeMaxDaysAhead,
			fmt.Sprintf("Agendamento permitido até %d dias no futuro", p.MaxDaysAhead))
	}

	if wh == nil || !wh.IsWorking {
		return httperr.ErrBusiness(httperr.CodeNotWorkingDay,
			"Barbeiro não trabalha neste dia")
	}

	end := EndFor(start, svc)
	if !WithinWorkingHours(wh, start, end) {
		return httperr.ErrBusiness(httperr.CodeOutsideWorkingHours,
			"Horário fora do expediente do barbeiro")
	}

	return nil
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
