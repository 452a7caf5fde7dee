package notification

// Type identifica o conteúdo da notificação. O despacho de template é
// um mapeamento puro Type -> função de renderização (um único ponto de
// dispatch, sem condicionais espalhadas).
type Type string

const (
	TypeConfirmation Type = "confirmation"
	TypeReminder24h  Type = "reminder_24h"
	TypeReminder2h   Type = "reminder_2h"
	TypeCancellation Type = "cancellation"
	TypeReschedule   Type = "reschedule"
)

func (t Type) IsValid() bool {
	_, ok := templates[t]
	return ok
}
