package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/letierre/chamados-a-servir-final/backend/internal/aggregate"
	"github.com/letierre/chamados-a-servir-final/backend/internal/dto"
	"github.com/letierre/chamados-a-servir-final/backend/internal/service"
	"github.com/letierre/chamados-a-servir-final/backend/pkg/response"
)

// AnalysisHandler handlers HTTP da análise narrativa
type AnalysisHandler struct {
	analysisSvc service.AnalysisService
}

// NewAnalysisHandler cria o AnalysisHandler
func NewAnalysisHandler(analysisSvc service.AnalysisService) *AnalysisHandler {
	return &AnalysisHandler{analysisSvc: analysisSvc}
}

// Analyze gera a análise narrativa via webhook externo
// POST /api/v1/report/analysis
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req dto.AnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "falha na validação dos parâmetros")
		return
	}

	result, err := h.analysisSvc.Analyze(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAnalysisUnavailable):
			response.Error(c, http.StatusServiceUnavailable, 17101, "análise não configurada neste ambiente")
		case errors.Is(err, aggregate.ErrUnknownPeriod):
			response.BadRequest(c, 17102, "período desconhecido")
		case errors.Is(err, service.ErrWardNotFound):
			response.NotFound(c, 12101, "ala não encontrada")
		case errors.Is(err, service.ErrAnalysisFailed):
			response.Error(c, http.StatusBadGateway, 17103, "o serviço de análise não respondeu como esperado")
		default:
			response.InternalError(c)
		}
		return
	}

	response.OK(c, result)
}
