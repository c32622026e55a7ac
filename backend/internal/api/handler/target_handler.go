package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/letierre/chamados-a-servir-final/backend/internal/aggregate"
	"github.com/letierre/chamados-a-servir-final/backend/internal/dto"
	"github.com/letierre/chamados-a-servir-final/backend/internal/service"
	"github.com/letierre/chamados-a-servir-final/backend/pkg/response"
)

// TargetHandler handlers HTTP das metas anuais
type TargetHandler struct {
	targetSvc service.TargetService
}

// NewTargetHandler cria o TargetHandler
func NewTargetHandler(targetSvc service.TargetService) *TargetHandler {
	return &TargetHandler{targetSvc: targetSvc}
}

// Matrix matriz de metas indicador × ala do ano
// GET /api/v1/targets?year=
func (h *TargetHandler) Matrix(c *gin.Context) {
	var req dto.TargetMatrixRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "falha na validação dos parâmetros")
		return
	}

	year := req.Year
	if year == 0 {
		year = time.Now().Year()
	}

	matrix, err := h.targetSvc.Matrix(c.Request.Context(), year)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, matrix)
}

// Upsert grava ou sobrescreve a meta de uma ala
// PUT /api/v1/targets
func (h *TargetHandler) Upsert(c *gin.Context) {
	var req dto.UpsertTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "falha na validação dos parâmetros")
		return
	}

	if err := h.targetSvc.Upsert(c.Request.Context(), &req); err != nil {
		h.handleTargetError(c, err)
		return
	}

	response.OK(c, nil)
}

// Progress avanço rumo à meta no período
// GET /api/v1/targets/progress?ward_id=&indicator_id=&year=&period=
func (h *TargetHandler) Progress(c *gin.Context) {
	var req dto.TargetProgressRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "falha na validação dos parâmetros")
		return
	}

	progress, err := h.targetSvc.Progress(c.Request.Context(), &req)
	if err != nil {
		h.handleTargetError(c, err)
		return
	}

	response.OK(c, progress)
}

// handleTargetError mapeia os erros de negócio das metas
func (h *TargetHandler) handleTargetError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrWardNotFound):
		response.NotFound(c, 12101, "ala não encontrada")
	case errors.Is(err, service.ErrIndicatorNotFound):
		response.NotFound(c, 13109, "indicador não encontrado")
	case errors.Is(err, aggregate.ErrUnknownPeriod):
		response.BadRequest(c, 15101, "período desconhecido")
	default:
		response.InternalError(c)
	}
}
