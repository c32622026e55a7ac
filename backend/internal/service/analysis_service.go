package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/letierre/chamados-a-servir-final/backend/config"
	"github.com/letierre/chamados-a-servir-final/backend/internal/aggregate"
	"github.com/letierre/chamados-a-servir-final/backend/internal/dto"
	"github.com/letierre/chamados-a-servir-final/backend/internal/repository"
)

// ── Erros de negócio da análise narrativa ──

var (
	ErrAnalysisUnavailable = errors.New("análise externa não configurada")
	ErrAnalysisFailed      = errors.New("o serviço de análise não respondeu")
)

// AnalysisService análise narrativa via webhook externo
//
// O webhook recebe os indicadores agregados do período com meta, avanço e
// lacuna, e devolve um texto narrativo. A falha dele é isolada: nunca
// derruba o restante do painel, o chamador recebe um erro próprio.
type AnalysisService interface {
	Analyze(ctx context.Context, req *dto.AnalysisRequest) (*dto.AnalysisResponse, error)
}

type analysisService struct {
	cfg    *config.Config
	repo   *repository.Repository
	client *http.Client
	logger *zap.Logger
}

// NewAnalysisService cria o AnalysisService
func NewAnalysisService(cfg *config.Config, repo *repository.Repository, logger *zap.Logger) AnalysisService {
	return &analysisService{
		cfg:    cfg,
		repo:   repo,
		client: &http.Client{Timeout: cfg.Analysis.Timeout},
		logger: logger,
	}
}

func (s *analysisService) Analyze(ctx context.Context, req *dto.AnalysisRequest) (*dto.AnalysisResponse, error) {
	if s.cfg.Analysis.WebhookURL == "" {
		return nil, ErrAnalysisUnavailable
	}

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
	}

	// Nome da unidade analisada e linhas cruas correspondentes
	unit := "Estaca"
	var rows []aggregate.Row
	var err error
	if req.WardID != "" {
		ward, werr := s.repo.Ward.GetByID(ctx, req.WardID)
		if werr != nil {
			if errors.Is(werr, gorm.ErrRecordNotFound) {
				return nil, ErrWardNotFound
			}
			s.logger.Error("falha ao buscar unidade", zap.Error(werr))
			return nil, werr
		}
		unit = ward.Name
		rows, err = s.repo.Report.RowsByWard(ctx, req.WardID, r.End)
	} else {
		rows, err = s.repo.Report.Rows(ctx, r.End)
	}
	if err != nil {
		s.logger.Error("falha ao buscar lançamentos", zap.Error(err))
		return nil, err
	}

	// Payload: valor agregado, meta, avanço e lacuna por indicador
	payload := dto.AnalysisPayload{
		Unit:        unit,
		GeneratedAt: time.Now().Format(time.RFC3339),
	}
	for _, summary := range aggregate.Summarize(rows, r) {
		target := s.indicatorTarget(ctx, req.WardID, summary.IndicatorID, year)
		payload.Indicators = append(payload.Indicators, dto.AnalysisIndicator{
			Indicator: summary.DisplayName,
			Value:     summary.StakeTotal,
			Target:    target,
			Progress:  aggregate.Progress(summary.StakeTotal, target),
			Gap:       aggregate.Gap(summary.StakeTotal, target),
		})
	}

	return s.post(ctx, &payload)
}

// indicatorTarget meta da unidade, ou soma das metas da estaca
func (s *analysisService) indicatorTarget(ctx context.Context, wardID, indicatorID string, year int) float64 {
	if wardID != "" {
		t, err := s.repo.Target.Get(ctx, wardID, indicatorID, year)
		if err != nil {
			return 0
		}
		return t.TargetValue
	}

	targets, err := s.repo.Target.ListByIndicatorYear(ctx, indicatorID, year)
	if err != nil {
		return 0
	}
	var total float64
	for _, t := range targets {
		total += t.TargetValue
	}
	return total
}

func (s *analysisService) post(ctx context.Context, payload *dto.AnalysisPayload) (*dto.AnalysisResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Analysis.WebhookURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := s.client.Do(httpReq)
	if err != nil {
		s.logger.Warn("webhook de análise inacessível", zap.Error(err))
		return nil, ErrAnalysisFailed
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		s.logger.Warn("webhook de análise respondeu com erro",
			zap.Int("status", httpResp.StatusCode))
		return nil, ErrAnalysisFailed
	}

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, 1<<20))
	if err != nil {
		return nil, ErrAnalysisFailed
	}

	// O webhook pode devolver {"analysis": "..."} ou texto puro
	var resp dto.AnalysisResponse
	if err := json.Unmarshal(raw, &resp); err != nil || resp.Analysis == "" {
		resp.Analysis = strings.TrimSpace(string(raw))
	}
	if resp.Analysis == "" {
		return nil, fmt.Errorf("%w: resposta vazia", ErrAnalysisFailed)
	}
	return &resp, nil
}
