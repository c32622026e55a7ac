package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/letierre/chamados-a-servir-final/backend/internal/dto"
	"github.com/letierre/chamados-a-servir-final/backend/internal/service"
	"github.com/letierre/chamados-a-servir-final/backend/pkg/response"
)

// CatalogHandler handlers HTTP do catálogo de alas e indicadores
type CatalogHandler struct {
	catalogSvc service.CatalogService
}

// NewCatalogHandler cria o CatalogHandler
func NewCatalogHandler(catalogSvc service.CatalogService) *CatalogHandler {
	return &CatalogHandler{catalogSvc: catalogSvc}
}

// ListWards lista as alas da estaca
// GET /api/v1/wards
func (h *CatalogHandler) ListWards(c *gin.Context) {
	wards, err := h.catalogSvc.ListWards(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": wards})
}

// ListIndicators lista os indicadores ativos em ordem de exibição
// GET /api/v1/indicators
func (h *CatalogHandler) ListIndicators(c *gin.Context) {
	indicators, err := h.catalogSvc.ListIndicators(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}
	response.OK(c, gin.H{"list": indicators})
}

// UpdateMembership atualiza o número de membros da ala
// PUT /api/v1/wards/:id/membership
func (h *CatalogHandler) UpdateMembership(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "id da ala não pode ser vazio")
		return
	}

	var req dto.UpdateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "falha na validação dos parâmetros")
		return
	}

	ward, err := h.catalogSvc.UpdateMembership(c.Request.Context(), id, *req.MembershipCount)
	if err != nil {
		if errors.Is(err, service.ErrWardNotFound) {
			response.NotFound(c, 12101, "ala não encontrada")
			return
		}
		response.InternalError(c)
		return
	}

	response.OK(c, ward)
}
