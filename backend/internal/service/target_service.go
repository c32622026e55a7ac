package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/letierre/chamados-a-servir-final/backend/internal/aggregate"
	"github.com/letierre/chamados-a-servir-final/backend/internal/dto"
	"github.com/letierre/chamados-a-servir-final/backend/internal/model"
	"github.com/letierre/chamados-a-servir-final/backend/internal/repository"
)

// TargetService metas anuais e avanço rumo à meta
type TargetService interface {
	Matrix(ctx context.Context, year int) (*dto.TargetMatrixResponse, error)
	Upsert(ctx context.Context, req *dto.UpsertTargetRequest) error
	Progress(ctx context.Context, req *dto.TargetProgressRequest) (*dto.TargetProgressResponse, error)
}

type targetService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewTargetService cria o TargetService
func NewTargetService(repo *repository.Repository, logger *zap.Logger) TargetService {
	return &targetService{repo: repo, logger: logger}
}

// Matrix monta a matriz indicador × unidade das metas do ano
// Unidade sem meta cadastrada aparece com meta 0.
func (s *targetService) Matrix(ctx context.Context, year int) (*dto.TargetMatrixResponse, error) {
	if year == 0 {
		year = time.Now().Year()
	}

	wards, err := s.repo.Ward.List(ctx, true)
	if err != nil {
		s.logger.Error("falha ao listar unidades", zap.Error(err))
		return nil, err
	}
	indicators, err := s.repo.Indicator.ListActive(ctx)
	if err != nil {
		s.logger.Error("falha ao listar indicadores", zap.Error(err))
		return nil, err
	}
	targets, err := s.repo.Target.ListByYear(ctx, year)
	if err != nil {
		s.logger.Error("falha ao listar metas", zap.Error(err))
		return nil, err
	}

	// (indicador, unidade) → meta
	index := make(map[string]float64, len(targets))
	for _, t := range targets {
		index[t.IndicatorID+"|"+t.WardID] = t.TargetValue
	}

	rows := make([]dto.TargetMatrixRow, 0, len(indicators))
	for _, ind := range indicators {
		row := dto.TargetMatrixRow{
			Indicator: dto.IndicatorBrief{
				ID:                ind.IndicatorID,
				Slug:              ind.Slug,
				DisplayName:       ind.DisplayName,
				AggregationMethod: ind.AggregationMethod,
				Responsibility:    ind.Responsibility,
			},
			ByWard: make([]dto.WardTarget, 0, len(wards)),
		}
		for _, w := range wards {
			target := index[ind.IndicatorID+"|"+w.WardID]
			row.ByWard = append(row.ByWard, dto.WardTarget{
				WardID:   w.WardID,
				WardName: w.Name,
				Target:   target,
			})
			row.StakeTotal += target
		}
		rows = append(rows, row)
	}

	return &dto.TargetMatrixResponse{Year: year, Rows: rows}, nil
}

func (s *targetService) Upsert(ctx context.Context, req *dto.UpsertTargetRequest) error {
	if _, err := s.repo.Ward.GetByID(ctx, req.WardID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrWardNotFound
		}
		s.logger.Error("falha ao buscar unidade", zap.Error(err))
		return err
	}
	if _, err := s.repo.Indicator.GetByID(ctx, req.IndicatorID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrIndicatorNotFound
		}
		s.logger.Error("falha ao buscar indicador", zap.Error(err))
		return err
	}

	target := &model.Target{
		WardID:      req.WardID,
		IndicatorID: req.IndicatorID,
		Year:        req.Year,
		TargetValue: *req.TargetValue,
	}
	if err := s.repo.Target.Upsert(ctx, target); err != nil {
		s.logger.Error("falha ao gravar meta", zap.Error(err))
		return err
	}
	return nil
}

// Progress calcula o avanço de um indicador rumo à meta do ano
//
// Sem período explícito a janela é o ano inteiro até hoje. Com ward_id o
// avanço é da unidade contra a meta dela; sem ward_id é da estaca contra a
// soma das metas das unidades.
func (s *targetService) Progress(ctx context.Context, req *dto.TargetProgressRequest) (*dto.TargetProgressResponse, error) {
	now := aggregate.DateOnly(time.Now())
	year := req.Year
	if year == 0 {
		year = now.Year()
	}

	var r aggregate.Range
	if req.Period != "" {
		var err error
		r, err = aggregate.ResolvePeriod(req.Period, now)
		if err != nil {
			return nil, err
		}
	} else {
		r = aggregate.Range{
			Start: time.Date(year, 1, 1, 0, 0, 0, 0, now.Location()),
			End:   now,
		}
		if year < now.Year() {
			r.End = time.Date(year, 12, 31, 0, 0, 0, 0, now.Location())
		}
	}

	// Valor agregado do indicador no período
	var rows []aggregate.Row
	var err error
	if req.WardID != "" {
		rows, err = s.repo.Report.RowsByWard(ctx, req.WardID, r.End)
	} else {
		rows, err = s.repo.Report.Rows(ctx, r.End)
	}
	if err != nil {
		s.logger.Error("falha ao buscar lançamentos", zap.Error(err))
		return nil, err
	}

	var value float64
	for _, summary := range aggregate.Summarize(rows, r) {
		if summary.IndicatorID == req.IndicatorID {
			value = summary.StakeTotal
			break
		}
	}

	// Meta: da unidade ou soma da estaca
	var target float64
	if req.WardID != "" {
		t, err := s.repo.Target.Get(ctx, req.WardID, req.IndicatorID, year)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("falha ao buscar meta", zap.Error(err))
			return nil, err
		}
		if t != nil {
			target = t.TargetValue
		}
	} else {
		targets, err := s.repo.Target.ListByIndicatorYear(ctx, req.IndicatorID, year)
		if err != nil {
			s.logger.Error("falha ao buscar metas", zap.Error(err))
			return nil, err
		}
		for _, t := range targets {
			target += t.TargetValue
		}
	}

	return &dto.TargetProgressResponse{
		Target:    target,
		Aggregate: value,
		Progress:  aggregate.Progress(value, target),
		Gap:       aggregate.Gap(value, target),
		Met:       aggregate.TargetMet(value, target),
	}, nil
}
