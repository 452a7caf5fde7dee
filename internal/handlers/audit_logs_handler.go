package handlers

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brunohmachado/barbearia-api/internal/httperr"
	"github.com/brunohmachado/barbearia-api/internal/httpresp"
	"github.com/brunohmachado/barbearia-api/internal/models"
)

type AuditLogsHandler struct {
	db *gorm.DB
}

func NewAuditLogsHandler(db *gorm.DB) *AuditLogsHandler {
	return &AuditLogsHandler{db: db}
}

// ListByAppointment devolve a trilha completa de um agendamento, da
// criação ao estado atual, em ordem cronológica.
func (h *AuditLogsHandler) ListByAppointment(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var ap models.Appointment
	if err := h.db.First(&ap, id).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	var logs []models.AppointmentAudit
	if err := h.db.
		Where("appointment_id = ?", ap.ID).
		Order("performed_at ASC, id ASC").
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "failed_to_list_audit", "Erro ao listar auditoria.")
		return
	}

	httpresp.List(c, logs)
}
