package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/letierre/chamados-a-servir-final/backend/internal/dto"
	"github.com/letierre/chamados-a-servir-final/backend/internal/service"
	"github.com/letierre/chamados-a-servir-final/backend/pkg/response"
)

// ObservationHandler handlers HTTP do lançamento semanal
type ObservationHandler struct {
	obsSvc service.ObservationService
}

// NewObservationHandler cria o ObservationHandler
func NewObservationHandler(obsSvc service.ObservationService) *ObservationHandler {
	return &ObservationHandler{obsSvc: obsSvc}
}

// Create registra um lançamento semanal
// POST /api/v1/observations
func (h *ObservationHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.CreateObservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "falha na validação dos parâmetros")
		return
	}

	result, err := h.obsSvc.Create(c.Request.Context(), userID, &req)
	if err != nil {
		h.handleObservationError(c, err)
		return
	}

	response.Created(c, result)
}

// List lista lançamentos com filtros e paginação
// GET /api/v1/observations
func (h *ObservationHandler) List(c *gin.Context) {
	var req dto.ListObservationsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "falha na validação dos parâmetros")
		return
	}

	list, total, err := h.obsSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleObservationError(c, err)
		return
	}

	response.OKPage(c, list, total, req.GetPage(), req.GetPageSize())
}

// Update corrige o valor de um lançamento
// PUT /api/v1/observations/:id
func (h *ObservationHandler) Update(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "id do lançamento não pode ser vazio")
		return
	}

	var req dto.UpdateObservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "falha na validação dos parâmetros")
		return
	}

	entry, err := h.obsSvc.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleObservationError(c, err)
		return
	}

	response.OK(c, entry)
}

// Delete remove um lançamento
// DELETE /api/v1/observations/:id
func (h *ObservationHandler) Delete(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "id do lançamento não pode ser vazio")
		return
	}

	if err := h.obsSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleObservationError(c, err)
		return
	}

	response.OK(c, nil)
}

// Weeks lista as semanas com lançamento registrado
// GET /api/v1/observations/weeks
func (h *ObservationHandler) Weeks(c *gin.Context) {
	weeks, err := h.obsSvc.Weeks(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": weeks})
}

// Recent últimos lançamentos para o histórico do painel
// GET /api/v1/observations/recent
func (h *ObservationHandler) Recent(c *gin.Context) {
	entries, err := h.obsSvc.Recent(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": entries})
}

// handleObservationError mapeia os erros de negócio do lançamento
func (h *ObservationHandler) handleObservationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrEntryRequired):
		response.BadRequest(c, 13101, "ala, indicador, valor e semana são obrigatórios")
	case errors.Is(err, service.ErrEntryNegative):
		response.BadRequest(c, 13102, "o valor não pode ser negativo")
	case errors.Is(err, service.ErrEntryTooLarge):
		response.BadRequest(c, 13103, "valor acima do teto de plausibilidade")
	case errors.Is(err, service.ErrEntryInvalidDate):
		response.BadRequest(c, 13104, "data de referência inválida, use AAAA-MM-DD")
	case errors.Is(err, service.ErrEntryFutureDate):
		response.BadRequest(c, 13105, "a data de referência não pode estar no futuro")
	case errors.Is(err, service.ErrEntryTooOld):
		response.BadRequest(c, 13106, "data de referência fora da janela de lançamento")
	case errors.Is(err, service.ErrEntryNotSunday):
		response.BadRequest(c, 13110, "a data de referência deve ser um domingo")
	case errors.Is(err, service.ErrEntryDuplicate):
		response.Conflict(c, 13107, "já existe lançamento desse indicador para essa ala e semana")
	case errors.Is(err, service.ErrEntryNotFound):
		response.NotFound(c, 13108, "lançamento não encontrado")
	case errors.Is(err, service.ErrWardNotFound):
		response.NotFound(c, 12101, "ala não encontrada")
	case errors.Is(err, service.ErrIndicatorNotFound):
		response.NotFound(c, 13109, "indicador não encontrado")
	default:
		response.InternalError(c)
	}
}
