package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/letierre/chamados-a-servir-final/backend/internal/dto"
	"github.com/letierre/chamados-a-servir-final/backend/internal/service"
	"github.com/letierre/chamados-a-servir-final/backend/pkg/response"
)

// DashboardHandler handlers HTTP do painel geral
type DashboardHandler struct {
	dashSvc service.DashboardService
}

// NewDashboardHandler cria o DashboardHandler
func NewDashboardHandler(dashSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashSvc: dashSvc}
}

// Cards cartões-resumo da semana de referência
// GET /api/v1/dashboard/cards
func (h *DashboardHandler) Cards(c *gin.Context) {
	var req dto.DashboardRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "falha na validação dos parâmetros")
		return
	}

	cards, err := h.dashSvc.Cards(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, cards)
}
