package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/brunohmachado/barbearia-api/internal/cache"
	"github.com/brunohmachado/barbearia-api/internal/httperr"
	"github.com/brunohmachado/barbearia-api/internal/models"
)

type WorkingHoursHandler struct {
	db         *gorm.DB
	availCache *cache.AvailabilityCache
}

func NewWorkingHoursHandler(db *gorm.DB, availCache *cache.AvailabilityCache) *WorkingHoursHandler {
	return &WorkingHoursHandler{db: db, availCache: availCache}
}

type WorkingDayConfig struct {
	Weekday   int    `json:"weekday" binding:"min=0,max=6"`
	IsWorking bool   `json:"is_working"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type WorkingHoursUpdateRequest struct {
	Days []WorkingDayConfig `json:"days" binding:"required"`
}

func (h *WorkingHoursHandler) Get(c *gin.Context) {
	barberID, err := strconv.ParseUint(c.Param("barberId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var hours []models.WorkingHours
	if err := h.db.
		Where("barber_id = ?", uint(barberID)).
		Order("weekday ASC").
		Find(&hours).Error; err != nil {

		httperr.Internal(c, "failed_to_get_working_hours", "Erro ao buscar expediente.")
		return
	}

	c.JSON(http.StatusOK, hours)
}

// Update faz upsert em lote do expediente semanal do barbeiro. Dias
// omitidos não são tocados; desligar um dia é mandar is_working=false.
func (h *WorkingHoursHandler) Update(c *gin.Context) {
	barberID, err := strconv.ParseUint(c.Param("barberId"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req WorkingHoursUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	var barber models.User
	if err := h.db.First(&barber, uint(barberID)).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	for _, d := range req.Days {
		if d.IsWorking && !validDayWindow(d.StartTime, d.EndTime) {
			httperr.BadRequest(c, "invalid_working_hours",
				"Horário de início deve ser anterior ao de término.")
			return
		}
	}

	var toUpsert []models.WorkingHours
	for _, d := range req.Days {
		toUpsert = append(toUpsert, models.WorkingHours{
			BarberID:  barber.ID,
			Weekday:   d.Weekday,
			StartTime: d.StartTime,
			EndTime:   d.EndTime,
			IsWorking: d.IsWorking,
		})
	}

	if len(toUpsert) > 0 {
		err := h.db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "barber_id"}, {Name: "weekday"}},
			DoUpdates: clause.AssignmentColumns([]string{"start_time", "end_time", "is_working", "updated_at"}),
		}).Create(&toUpsert).Error
		if err != nil {
			httperr.Internal(c, "failed_to_save_working_hours", "Erro ao salvar expediente.")
			return
		}
	}

	// Expediente muda a grade de todos os meses do horizonte.
	h.availCache.InvalidateAll(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func validDayWindow(startHM, endHM string) bool {
	start, err1 := time.Parse("15:04", startHM)
	end, err2 := time.Parse("15:04", endHM)
	if err1 != nil || err2 != nil {
		return false
	}
	return start.Before(end)
}
