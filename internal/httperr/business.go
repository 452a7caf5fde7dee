package httperr

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// Códigos estáveis de regra de negócio, expostos ao cliente.
const (
	CodeServiceInactive        = "SERVICE_INACTIVE"
	CodeNoBarber               = "NO_BARBER"
	CodeNoAvailability         = "NO_AVAILABILITY"
	CodeMinAdvanceTime         = "MIN_ADVANCE_TIME"
	CodeMaxDaysAhead           = "MAX_DAYS_AHEAD"
	CodeNotWorkingDay          = "NOT_WORKING_DAY"
	CodeOutsideWorkingHours    = "OUTSIDE_WORKING_HOURS"
	CodeAlreadyCancelled       = "ALREADY_CANCELLED"
	CodeCancellationDeadline   = "CANCELLATION_DEADLINE"
	CodeRescheduleDeadline     = "RESCHEDULE_DEADLINE"
	CodeInvalidStatus          = "INVALID_STATUS"
	CodeNotBarber              = "NOT_BARBER"
	CodeInvalidTimeRange       = "INVALID_TIME_RANGE"
	CodePastTime               = "PAST_TIME"
	CodeOverlappingBlock       = "OVERLAPPING_BLOCK"
	CodeOverlappingAppointment = "OVERLAPPING_APPOINTMENT"
)

type BusinessError struct {
	Code    string
	Message string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code, message string) error {
	return BusinessError{Code: code, Message: message}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

func AsBusiness(err error) (BusinessError, bool) {
	var be BusinessError
	ok := errors.As(err, &be)
	return be, ok
}

// ConflictError é separado de BusinessError de propósito: o cliente
// trata "escolha outro horário" diferente de regra violada.
type ConflictError struct {
	Message string
}

func (e ConflictError) Error() string {
	return e.Message
}

func ErrConflict(message string) error {
	return ConflictError{Message: message}
}

func IsConflict(err error) bool {
	var ce ConflictError
	return errors.As(err, &ce)
}

// IsExclusionConflict detecta violação da constraint de exclusão de
// intervalo (ou unique) no Postgres quando duas escritas concorrentes
// passam pela checagem de conflito ao mesmo tempo.
func IsExclusionConflict(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01" || pgErr.Code == "23505"
	}
	return false
}
