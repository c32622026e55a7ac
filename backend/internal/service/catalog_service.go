package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/letierre/chamados-a-servir-final/backend/internal/dto"
	"github.com/letierre/chamados-a-servir-final/backend/internal/model"
	"github.com/letierre/chamados-a-servir-final/backend/internal/repository"
)

// ── Erros de negócio do catálogo ──

var ErrWardNotFound = errors.New("unidade não encontrada")

// CatalogService catálogo de unidades e indicadores
type CatalogService interface {
	ListWards(ctx context.Context) ([]dto.WardResponse, error)
	ListIndicators(ctx context.Context) ([]dto.IndicatorResponse, error)
	UpdateMembership(ctx context.Context, wardID string, count int) (*dto.WardResponse, error)
}

type catalogService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewCatalogService cria o CatalogService
func NewCatalogService(repo *repository.Repository, logger *zap.Logger) CatalogService {
	return &catalogService{repo: repo, logger: logger}
}

func (s *catalogService) ListWards(ctx context.Context) ([]dto.WardResponse, error) {
	wards, err := s.repo.Ward.List(ctx, true)
	if err != nil {
		s.logger.Error("falha ao listar unidades", zap.Error(err))
		return nil, err
	}

	result := make([]dto.WardResponse, 0, len(wards))
	for i := range wards {
		result = append(result, toWardResponse(&wards[i]))
	}
	return result, nil
}

func (s *catalogService) ListIndicators(ctx context.Context) ([]dto.IndicatorResponse, error) {
	indicators, err := s.repo.Indicator.ListActive(ctx)
	if err != nil {
		s.logger.Error("falha ao listar indicadores", zap.Error(err))
		return nil, err
	}

	result := make([]dto.IndicatorResponse, 0, len(indicators))
	for _, ind := range indicators {
		result = append(result, dto.IndicatorResponse{
			ID:                ind.IndicatorID,
			Slug:              ind.Slug,
			DisplayName:       ind.DisplayName,
			IndicatorType:     ind.IndicatorType,
			AggregationMethod: ind.AggregationMethod,
			Responsibility:    ind.Responsibility,
			OrderIndex:        ind.OrderIndex,
		})
	}
	return result, nil
}

func (s *catalogService) UpdateMembership(ctx context.Context, wardID string, count int) (*dto.WardResponse, error) {
	if err := s.repo.Ward.UpdateMembership(ctx, wardID, count); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWardNotFound
		}
		s.logger.Error("falha ao atualizar contagem de membros", zap.Error(err))
		return nil, err
	}

	ward, err := s.repo.Ward.GetByID(ctx, wardID)
	if err != nil {
		s.logger.Error("falha ao recarregar unidade", zap.Error(err))
		return nil, err
	}
	resp := toWardResponse(ward)
	return &resp, nil
}

// ── Conversões ──

const lcrBase = "https://lcr.churchofjesuschrist.org"

func toWardResponse(w *model.Ward) dto.WardResponse {
	resp := dto.WardResponse{
		ID:              w.WardID,
		Name:            w.Name,
		MembershipCount: w.MembershipCount,
		UnitNumber:      w.UnitNumber,
		OrgID:           w.OrgID,
		Active:          w.Active,
	}

	// Links rápidos para os sistemas da Igreja, quando a unidade tem
	// número de unidade cadastrado
	if w.UnitNumber != "" {
		links := &dto.WardLinks{
			MemberList:      fmt.Sprintf("%s/records/member-list?lang=por&unitNumber=%s", lcrBase, w.UnitNumber),
			QuarterlyReport: fmt.Sprintf("%s/report/quarterly-report?lang=por&unitNumber=%s", lcrBase, w.UnitNumber),
		}
		if w.OrgID != "" {
			links.ActionList = fmt.Sprintf("%s/orgs/%s?lang=por&unitNumber=%s", lcrBase, w.OrgID, w.UnitNumber)
		}
		resp.Links = links
	}
	return resp
}
