package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brunohmachado/barbearia-api/internal/httperr"
	"github.com/brunohmachado/barbearia-api/internal/models"
)

type ServiceHandler struct {
	db *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{db: db}
}

// --------- Requests ---------

type ServiceRequest struct {
	Name         string  `json:"name" binding:"required"`
	Description  string  `json:"description"`
	DurationMin  int     `json:"duration_min" binding:"required"`
	BufferMin    int     `json:"buffer_min"`
	Price        float64 `json:"price" binding:"required"`
	Active       *bool   `json:"active"`
	DisplayOrder int     `json:"display_order"`
}

func (r *ServiceRequest) validate(c *gin.Context) bool {
	// Duração mínima = granularidade do slot; buffer limitado para o
	// total nunca estourar um expediente razoável.
	if r.DurationMin < 15 {
		httperr.BadRequest(c, "invalid_duration", "Duração mínima de 15 minutos.")
		return false
	}
	if r.BufferMin < 0 || r.BufferMin > 60 {
		httperr.BadRequest(c, "invalid_buffer", "Buffer deve estar entre 0 e 60 minutos.")
		return false
	}
	if r.Price < 0 {
		httperr.BadRequest(c, "invalid_price", "Preço inválido.")
		return false
	}
	return true
}

// --------- Handlers ---------

func (h *ServiceHandler) List(c *gin.Context) {
	var services []models.Service
	if err := h.db.Order("display_order ASC, id ASC").Find(&services).Error; err != nil {
		httperr.Internal(c, "failed_to_list_services", "Erro ao listar serviços.")
		return
	}
	c.JSON(http.StatusOK, services)
}

func (h *ServiceHandler) Create(c *gin.Context) {
	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}
	if !req.validate(c) {
		return
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	svc := models.Service{
		Name:         req.Name,
		Description:  req.Description,
		DurationMin:  req.DurationMin,
		BufferMin:    req.BufferMin,
		Price:        req.Price,
		Active:       active,
		DisplayOrder: req.DisplayOrder,
	}

	if err := h.db.Create(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_create_service", "Erro ao criar serviço.")
		return
	}

	c.JSON(http.StatusCreated, svc)
}

func (h *ServiceHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var req ServiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid_request",
			"details": err.Error(),
		})
		return
	}
	if !req.validate(c) {
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, uint(id)).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	svc.Name = req.Name
	svc.Description = req.Description
	svc.DurationMin = req.DurationMin
	svc.BufferMin = req.BufferMin
	svc.Price = req.Price
	svc.DisplayOrder = req.DisplayOrder
	if req.Active != nil {
		svc.Active = *req.Active
	}

	// Agendamentos existentes não mudam: EndTime e preço foram
	// capturados na criação.
	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Erro ao atualizar serviço.")
		return
	}

	c.JSON(http.StatusOK, svc)
}

// Deactivate tira o serviço do catálogo público sem apagar histórico.
func (h *ServiceHandler) Deactivate(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		httperr.BadRequest(c, "invalid_id", "ID inválido.")
		return
	}

	var svc models.Service
	if err := h.db.First(&svc, uint(id)).Error; err != nil {
		httperr.Respond(c, err)
		return
	}

	svc.Active = false
	if err := h.db.Save(&svc).Error; err != nil {
		httperr.Internal(c, "failed_to_update_service", "Erro ao desativar serviço.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
