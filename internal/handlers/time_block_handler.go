package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brunohmachado/barbearia-api/internal/cache"
	domain "github.com/brunohmachado/barbearia-api/internal/domain/appointment"
	"github.com/brunohmachado/barbearia-api/internal/httperr"
	"github.com/brunohmachado/barbearia-api/internal/models"
)

// TimeBlockHandler gerencia janelas de indisponibilidade (almoço,
// férias, compromissos). Um bloqueio nunca convive com agendamento
// ativo no mesmo intervalo: o admin precisa remarcar ou cancelar antes.
type TimeBlockHandler struct {
	db         *gorm.DB
	availCache *cache.AvailabilityCache
}

func NewTimeBlockHandler(db *gorm.DB, availCache *cache.AvailabilityCache) *TimeBlockHandler {
	return &TimeBlockHandler{db: db, availCache: availCache}
}

// --------- Requests ---------

type CreateTimeBlockRequest struct {
	BarberID  uint   `json:"barber_id" binding:"required"`
	StartDate string `json:"start_date" binding:"required"` // YYYY-MM-DD
	StartTime string `json:"start_time" binding:"required"` // HH:mm
	EndDate   string `json:"end_date" binding:"required"`
	EndTime   string `json:"end_time" binding:"required"`
	Reason    string `json:"reason" binding:"required"`
}

// --------- Handlers ---------

func (h *TimeBlockHandler) List(c *gin.Context) {
	q := h.db.Order("start_time ASC")

	if barberIDStr := c.Query("barber_id"); barberIDStr != "" {
		barberID, err := strconv.ParseUint(barberIDStr, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
			return
		}
		q = q.Where("barber_id = ?", uint(barberID))
	}

	var blocks []models.TimeBlock
	if err := q.Find(&blocks).Error; err != nil {
		httperr.Internal(c, "failed_to_list_blocks", "Erro ao listar bloqueios.")
		return
	}

	c.JSON(http.StatusOK, blocks)
}

func (h *TimeBlockHandler) Create(c *gin.Context) {
	var req CreateTimeBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	start, err := parseDateTime(req.StartDate, req.StartTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data ou horário inválido.")
		return
	}
	end, err := parseDateTime(req.EndDate, req.EndTime)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data ou horário inválido.")
		return
	}

	if !start.Before(end) {
		httperr.BadRequest(c, httperr.CodeInvalidTimeRange,
			"Início deve ser anterior ao término.")
		return
	}
	if end.Before(time.Now()) {
		httperr.BadRequest(c, httperr.CodePastTime,
			"Não é possível bloquear um período já encerrado.")
		return
	}

	var barber models.User
	if err := h.db.First(&barber, req.BarberID).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	var blockCount int64
	h.db.Model(&models.TimeBlock{}).
		Where("barber_id = ? AND start_time < ? AND end_time > ?", barber.ID, end, start).
		Count(&blockCount)
	if blockCount > 0 {
		httperr.BadRequest(c, httperr.CodeOverlappingBlock,
			"Já existe um bloqueio neste período.")
		return
	}

	var apCount int64
	h.db.Model(&models.Appointment{}).
		Where("barber_id = ? AND status IN ? AND start_time < ? AND end_time > ?",
			barber.ID,
			[]string{string(domain.StatusScheduled), string(domain.StatusConfirmed)},
			end, start).
		Count(&apCount)
	if apCount > 0 {
		httperr.BadRequest(c, httperr.CodeOverlappingAppointment,
			"Há agendamentos ativos neste período. Cancele ou remarque antes de bloquear.")
		return
	}

	block := models.TimeBlock{
		BarberID:  barber.ID,
		StartTime: start,
		EndTime:   end,
		Reason:    req.Reason,
	}

	if err := h.db.Create(&block).Error; err != nil {
		httperr.Internal(c, "failed_to_create_block", "Erro ao criar bloqueio.")
		return
	}

	h.availCache.InvalidateMonth(c.Request.Context(), block.StartTime)

	c.JSON(http.StatusCreated, block)
}

func (h *TimeBlockHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var block models.TimeBlock
	if err := h.db.First(&block, uint(id)).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	if err := h.db.Delete(&block).Error; err != nil {
		httperr.Internal(c, "failed_to_delete_block", "Erro ao remover bloqueio.")
		return
	}

	h.availCache.InvalidateMonth(c.Request.Context(), block.StartTime)

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
