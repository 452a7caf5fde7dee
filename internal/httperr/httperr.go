package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Conflict(c *gin.Context, code, message string) {
	Write(c, http.StatusConflict, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// Respond traduz erros dos usecases para a resposta HTTP.
func Respond(c *gin.Context, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		BadRequest(c, be.Code, be.Message)
		return
	}

	var ce ConflictError
	if errors.As(err, &ce) {
		Conflict(c, "CONFLICT", ce.Message)
		return
	}

	if IsExclusionConflict(err) {
		Conflict(c, "CONFLICT", "Já existe um agendamento neste horário.")
		return
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		NotFound(c, "NOT_FOUND", "Registro não encontrado.")
		return
	}

	Internal(c, "INTERNAL_ERROR", "Erro interno.")
}
