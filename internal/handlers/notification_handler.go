package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brunohmachado/barbearia-api/internal/httperr"
	"github.com/brunohmachado/barbearia-api/internal/httpresp"
	"github.com/brunohmachado/barbearia-api/internal/notification"
)

type NotificationHandler struct {
	svc *notification.Service
}

func NewNotificationHandler(svc *notification.Service) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

func (h *NotificationHandler) ListByAppointment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	logs, err := h.svc.ListByAppointment(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	httpresp.List(c, logs)
}

// Resend reenvia a notificação com o conteúdo registrado na época,
// mesmo que o agendamento tenha mudado depois.
func (h *NotificationHandler) Resend(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	entry, err := h.svc.Resend(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, entry)
}
