package appointment

import (
	"time"

	"github.com/brunohmachado/barbearia-api/internal/models"
)

// ===============================
// Domain rules
// ===============================

// Overlaps decide se dois intervalos meio-abertos [s1,e1) e [s2,e2)
// se sobrepõem. Extremos encostados (e1 == s2) não conflitam.
func Overlaps(s1, e1, s2, e2 time.Time) bool {
	return s1.Before(e2) && e1.After(s2)
}

// EndFor deriva o fim do agendamento. end nunca é setado de forma
// independente: sempre start + duração + buffer do serviço.
func EndFor(start time.Time, svc *models.Service) time.Time {
	return start.Add(time.Duration(svc.TotalDurationMin()) * time.Minute)
}

func IsActive(ap *models.Appointment) bool {
	return Status(ap.Status).IsActive()
}

// CanBeCancelledByClient: guarda de antecedência estrita contra
// cancelamento de última hora (vale também para reagendamento).
func CanBeCancelledByClient(ap *models.Appointment, now time.Time, hoursLimit int) bool {
	return ap.StartTime.Add(-time.Duration(hoursLimit) * time.Hour).After(now)
}

// AppointmentOverlaps checa o agendamento contra um intervalo candidato.
func AppointmentOverlaps(ap *models.Appointment, start, end time.Time) bool {
	return Overlaps(ap.StartTime, ap.EndTime, start, end)
}

func BlockOverlaps(b *models.TimeBlock, start, end time.Time) bool {
	return Overlaps(b.StartTime, b.EndTime, start, end)
}
