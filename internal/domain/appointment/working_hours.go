package appointment

import (
	"time"

	"github.com/brunohmachado/barbearia-api/internal/models"
)

// ParseHM projeta um horário "15:04" no dia de ref, na mesma location.
func ParseHM(hm string, ref time.Time) time.Time {
	t, _ := time.Parse("15:04", hm)
	return time.Date(
		ref.Year(), ref.Month(), ref.Day(),
		t.Hour(), t.Minute(), 0, 0,
		ref.Location(),
	)
}

// DayWindow devolve o expediente do dia projetado sobre a data de ref.
// ok=false quando o barbeiro não trabalha no dia.
func DayWindow(wh *models.WorkingHours, ref time.Time) (start, end time.Time, ok bool) {
	if wh == nil || !wh.IsWorking || wh.StartTime == "" || wh.EndTime == "" {
		return time.Time{}, time.Time{}, false
	}
	return ParseHM(wh.StartTime, ref), ParseHM(wh.EndTime, ref), true
}

// WithinWorkingHours valida a contenção no expediente. A comparação do
// fim é estritamente no mesmo dia: um serviço cujo término cruza a
// meia-noite nunca cabe no expediente, mesmo que a aritmética de
// wall-clock sugerisse o contrário.
func WithinWorkingHours(wh *models.WorkingHours, start, end time.Time) bool {
	dayStart, dayEnd, ok := DayWindow(wh, start)
	if !ok {
		return false
	}

	if start.Before(dayStart) {
		return false
	}

	sy, sm, sd := start.Date()
	ey, em, ed := end.Date()
	if sy != ey || sm != em || sd != ed {
		return false
	}

	return !end.After(dayEnd)
}
