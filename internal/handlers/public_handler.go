package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brunohmachado/barbearia-api/internal/cache"
	"github.com/brunohmachado/barbearia-api/internal/httperr"
	"github.com/brunohmachado/barbearia-api/internal/models"
	"github.com/brunohmachado/barbearia-api/internal/usecase/appointment"
	"github.com/brunohmachado/barbearia-api/internal/usecase/availability"
)

////////////////////////////////////////////////////////
// HANDLER (público, sem autenticação)
////////////////////////////////////////////////////////

type PublicHandler struct {
	db *gorm.DB

	createBooking *appointment.CreatePublicAppointment
	cancel        *appointment.CancelByClient
	reschedule    *appointment.Reschedule
	queries       *appointment.Queries

	slots *availability.GetAvailableSlots
	month *availability.GetMonthAvailability

	availCache *cache.AvailabilityCache
}

func NewPublicHandler(
	db *gorm.DB,
	createBooking *appointment.CreatePublicAppointment,
	cancel *appointment.CancelByClient,
	reschedule *appointment.Reschedule,
	queries *appointment.Queries,
	slots *availability.GetAvailableSlots,
	month *availability.GetMonthAvailability,
	availCache *cache.AvailabilityCache,
) *PublicHandler {
	return &PublicHandler{
		db:            db,
		createBooking: createBooking,
		cancel:        cancel,
		reschedule:    reschedule,
		queries:       queries,
		slots:         slots,
		month:         month,
		availCache:    availCache,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicCreateAppointmentRequest struct {
	ServiceID uint  `json:"service_id" binding:"required"`
	BarberID  *uint `json:"barber_id"` // ausente = qualquer profissional

	ClientName  string `json:"client_name" binding:"required"`
	ClientPhone string `json:"client_phone" binding:"required"`
	ClientEmail string `json:"client_email"`

	Date  string `json:"date" binding:"required"` // YYYY-MM-DD
	Time  string `json:"time" binding:"required"` // HH:mm
	Notes string `json:"notes"`
}

type PublicRescheduleRequest struct {
	Date     string `json:"date" binding:"required"`
	Time     string `json:"time" binding:"required"`
	BarberID *uint  `json:"barber_id"`
}

// publicAppointmentView expõe só o que o cliente precisa ver.
func publicAppointmentView(ap *models.Appointment) gin.H {
	return gin.H{
		"service":    ap.Service.Name,
		"barber":     ap.Barber.Name,
		"date":       ap.StartTime.Format("2006-01-02"),
		"time":       ap.StartTime.Format("15:04"),
		"status":     ap.Status,
		"price":      ap.PriceAtBooking,
		"token":      ap.CancellationToken,
		"client":     ap.ClientName,
		"created_at": ap.CreatedAt,
	}
}

////////////////////////////////////////////////////////
// CATALOG
////////////////////////////////////////////////////////

func (h *PublicHandler) ListServices(c *gin.Context) {
	var services []models.Service
	if err := h.db.
		Where("active = true").
		Order("display_order ASC, id ASC").
		Find(&services).Error; err != nil {

		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}

	c.JSON(http.StatusOK, services)
}

func (h *PublicHandler) ListBarbers(c *gin.Context) {
	var barbers []models.User
	if err := h.db.
		Where("active = true").
		Order("name ASC, id ASC").
		Find(&barbers).Error; err != nil {

		httperr.Internal(c, "failed_to_list_barbers", "Erro ao listar profissionais.")
		return
	}

	out := make([]gin.H, 0, len(barbers))
	for _, b := range barbers {
		out = append(out, gin.H{"id": b.ID, "name": b.Name})
	}

	c.JSON(http.StatusOK, out)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

// Availability: ?date=YYYY-MM-DD&service_id=N[&barber_id=N]
func (h *PublicHandler) Availability(c *gin.Context) {
	dateStr := c.Query("date")
	serviceIDStr := c.Query("service_id")

	if dateStr == "" || serviceIDStr == "" {
		httperr.BadRequest(c, "missing_params", "Data e serviço obrigatórios.")
		return
	}

	serviceID, err := strconv.ParseUint(serviceIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}

	date, err := parseDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data inválida.")
		return
	}

	barberID, ok := optionalBarberID(c)
	if !ok {
		return
	}

	slots, err := h.slots.Execute(c.Request.Context(), date, uint(serviceID), barberID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}

// MonthAvailability: ?year=2026&month=8&service_id=N[&barber_id=N]
func (h *PublicHandler) MonthAvailability(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 2100 {
		httperr.BadRequest(c, "invalid_year", "Ano inválido.")
		return
	}

	monthNum, err := strconv.Atoi(c.Query("month"))
	if err != nil || monthNum < 1 || monthNum > 12 {
		httperr.BadRequest(c, "invalid_month", "Mês inválido.")
		return
	}

	serviceID, err := strconv.ParseUint(c.Query("service_id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_service_id", "Serviço inválido.")
		return
	}

	barberID, ok := optionalBarberID(c)
	if !ok {
		return
	}

	days, err := h.month.Execute(c.Request.Context(), year, time.Month(monthNum), uint(serviceID), barberID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"year":  year,
		"month": monthNum,
		"days":  days,
	})
}

////////////////////////////////////////////////////////
// BOOKING
////////////////////////////////////////////////////////

func (h *PublicHandler) CreateAppointment(c *gin.Context) {
	var req PublicCreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	start, err := parseDateTime(req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data ou horário inválido.")
		return
	}

	ap, err := h.createBooking.Execute(c.Request.Context(), appointment.CreatePublicInput{
		ServiceID:   req.ServiceID,
		BarberID:    req.BarberID,
		ClientName:  req.ClientName,
		ClientPhone: req.ClientPhone,
		ClientEmail: req.ClientEmail,
		StartTime:   start,
		Notes:       req.Notes,
	})
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.availCache.InvalidateMonth(c.Request.Context(), ap.StartTime)

	c.JSON(http.StatusCreated, publicAppointmentView(ap))
}

////////////////////////////////////////////////////////
// TOKEN (consulta / cancelamento / reagendamento)
////////////////////////////////////////////////////////

func (h *PublicHandler) GetByToken(c *gin.Context) {
	ap, err := h.queries.FindByToken(c.Request.Context(), c.Param("token"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	c.JSON(http.StatusOK, publicAppointmentView(ap))
}

func (h *PublicHandler) CancelByToken(c *gin.Context) {
	ap, err := h.cancel.Execute(c.Request.Context(), c.Param("token"))
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.availCache.InvalidateMonth(c.Request.Context(), ap.StartTime)

	c.JSON(http.StatusOK, publicAppointmentView(ap))
}

func (h *PublicHandler) RescheduleByToken(c *gin.Context) {
	var req PublicRescheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	newStart, err := parseDateTime(req.Date, req.Time)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Data ou horário inválido.")
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), c.Param("token"), newStart, req.BarberID)
	if err != nil {
		httperr.Respond(c, err)
		return
	}

	h.availCache.InvalidateMonth(c.Request.Context(), ap.StartTime)

	c.JSON(http.StatusOK, publicAppointmentView(ap))
}

////////////////////////////////////////////////////////
// Helpers
////////////////////////////////////////////////////////

func optionalBarberID(c *gin.Context) (*uint, bool) {
	barberIDStr := c.Query("barber_id")
	if barberIDStr == "" {
		return nil, true
	}

	parsed, err := strconv.ParseUint(barberIDStr, 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_barber_id", "Barbeiro inválido.")
		return nil, false
	}

	id := uint(parsed)
	return &id, true
}
