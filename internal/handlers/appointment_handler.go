package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/brunohmachado/barbearia-api/internal/cache"
	"github.com/brunohmachado/barbearia-api/internal/httperr"
	"github.com/brunohmachado/barbearia-api/internal/middleware"
	"github.com/brunohmachado/barbearia-api/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER (admin)
////////////////////////////////////////////////////////

type AppointmentHandler struct {
	create       *appointment.CreateAdminAppointment
	update       *appointment.UpdateAppointment
	updateStatus *appointment.UpdateStatus
	cancel       *appointment.CancelByAdmin
	queries      *appointment.Queries

	availCache *cache.AvailabilityCache
}

func NewAppointmentHandler(
	create *appointment.CreateAdminAppointment,
	update *appointment.UpdateAppointment,
	updateStatus *appointment.UpdateStatus,
	cancel *appointment.CancelByAdmin,
	queries *appointment.Queries,
	availCache *cache.AvailabilityCache,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:       create,
		update:       update,
		updateStatus: updateStatus,
		cancel:       cancel,
		queries:      queries,
		availCache:   availCache,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type AdminCreateAppointmentRequest struct {
	ServiceID uint `json:"service_id" binding:"required"`
	BarberID  uint `json:"barber_id" binding:"required"`

	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`

	Date   string `json:"date" binding:"required"` // YYYY-MM-DD
	Time   string `json:"time" binding:"required"` // HH:mm
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

type AdminUpdateAppointmentRequest struct {
	Date     *string `json:"date"`
	Time     *string `json:"time"`
	BarberID *uint   `json:"barber_id"`
	Status   *string `json:"status"`
	Notes    *string `json:"notes"`
}

////////////////////////////////////////////////////////
// CRUD
////////////////////////////////////////////////////////

func (h *AppointmentHandler) Create(c *gin.Context) {
	var req AdminCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	start, err := parseDateTime(req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data ou horário inválido.")
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), appointment.CreateAdminInput{
		ServiceID:   req.ServiceID,
		BarberID:    req.BarberID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		StartTime:   start,
		Status:      req.Status,
		Notes:       req.Notes,
	}, actorFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.availCache.InvalidateMonth(c.Request.Context(), ap.StartTime)

	c.JSON(http.StatusCreated, ap)
}

func (h *AppointmentHandler) Get(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ap, err := h.queries.FindByID(c.Request.Context(), id)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

// Calendar: ?start=YYYY-MM-DD&end=YYYY-MM-DD[&barber_id=N]
func (h *AppointmentHandler) Calendar(c *gin.Context) {
	startStr := c.Query("start")
	endStr := c.Query("end")
	if startStr == "" || endStr == "" {
		httperr.BadRequest(c, "missing_params", "Período obrigatório.")
		return
	}

	from, err := parseDate(startStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}
	to, err := parseDate(endStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	var barberID uint
	if barberIDStr := c.Query("barber_id"); barberIDStr != "" {
		parsed, err := strconv.ParseUint(barberIDStr, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
			return
		}
		barberID = uint(parsed)
	}

	aps, err := h.queries.Calendar(c.Request.Context(), from, to, barberID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, aps)
}

func (h *AppointmentHandler) Upcoming(c *gin.Context) {
	var barberID uint
	if barberIDStr := c.Query("barber_id"); barberIDStr != "" {
		parsed, err := strconv.ParseUint(barberIDStr, 10, 64)
		if err != nil {
			httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
			return
		}
		barberID = uint(parsed)
	}

	aps, err := h.queries.Upcoming(c.Request.Context(), barberID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, aps)
}

func (h *AppointmentHandler) Update(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req AdminUpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}

	in := appointment.UpdateInput{
		BarberID: req.BarberID,
		Status:   req.Status,
		Notes:    req.Notes,
	}

	if req.Date != nil && req.Time != nil {
		start, err := parseDateTime(*req.Date, *req.Time)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "Data ou horário inválido.")
			return
		}
		in.StartTime = &start
	} else if req.Date != nil || req.Time != nil {
		httperr.BadRequest(c, "invalid_date", "Data e horário devem vir juntos.")
		return
	}

	ap, err := h.update.Execute(c.Request.Context(), id, in, actorFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.availCache.InvalidateMonth(c.Request.Context(), ap.StartTime)

	c.JSON(http.StatusOK, ap)
}

////////////////////////////////////////////////////////
// STATUS
////////////////////////////////////////////////////////

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), id, actorFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.availCache.InvalidateMonth(c.Request.Context(), ap.StartTime)

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ap, err := h.updateStatus.MarkCompleted(c.Request.Context(), id, actorFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

func (h *AppointmentHandler) NoShow(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	ap, err := h.updateStatus.MarkNoShow(c.Request.Context(), id, actorFrom(c))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, ap)
}

////////////////////////////////////////////////////////
// Helpers
////////////////////////////////////////////////////////

func idParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return 0, false
	}
	return uint(id), true
}

// actorFrom identifica quem operou, para a trilha de auditoria.
func actorFrom(c *gin.Context) string {
	userIDVal, ok := c.Get(middleware.ContextUserID)
	if !ok {
		return "admin"
	}
	return "admin:" + strconv.FormatUint(uint64(userIDVal.(uint)), 10)
}
