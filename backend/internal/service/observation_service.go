package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/letierre/chamados-a-servir-final/backend/config"
	"github.com/letierre/chamados-a-servir-final/backend/internal/aggregate"
	"github.com/letierre/chamados-a-servir-final/backend/internal/dto"
	"github.com/letierre/chamados-a-servir-final/backend/internal/model"
	"github.com/letierre/chamados-a-servir-final/backend/internal/repository"
	"github.com/letierre/chamados-a-servir-final/backend/pkg/redis"
)

// ── Erros de negócio do lançamento semanal ──

var (
	ErrEntryRequired     = errors.New("preencha a unidade, o indicador, o valor e a semana")
	ErrEntryInvalidDate  = errors.New("data de referência inválida")
	ErrEntryNegative     = errors.New("o valor não pode ser negativo")
	ErrEntryTooLarge     = errors.New("valor acima do limite plausível")
	ErrEntryFutureDate   = errors.New("a data de referência não pode estar no futuro")
	ErrEntryTooOld       = errors.New("a data de referência está fora da janela de lançamento")
	ErrEntryNotSunday    = errors.New("a data de referência deve ser um domingo")
	ErrEntryDuplicate    = errors.New("este indicador já foi lançado para esta unidade nesta semana")
	ErrEntryNotFound     = errors.New("lançamento não encontrado")
	ErrIndicatorNotFound = errors.New("indicador não encontrado")
)

const reportCachePrefix = "report:cache:"

// ObservationService lançamentos semanais e histórico
type ObservationService interface {
	Create(ctx context.Context, userID string, req *dto.CreateObservationRequest) (*dto.CreateObservationResponse, error)
	List(ctx context.Context, req *dto.ListObservationsRequest) ([]dto.ObservationResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateObservationRequest) (*dto.ObservationResponse, error)
	Delete(ctx context.Context, id string) error
	Weeks(ctx context.Context) ([]dto.WeekOption, error)
	Recent(ctx context.Context) ([]dto.ObservationResponse, error)
}

type observationService struct {
	cfg    *config.Config
	repo   *repository.Repository
	rdb    *redis.Client
	logger *zap.Logger
}

// NewObservationService cria o ObservationService
func NewObservationService(
	cfg *config.Config,
	repo *repository.Repository,
	rdb *redis.Client,
	logger *zap.Logger,
) ObservationService {
	return &observationService{cfg: cfg, repo: repo, rdb: rdb, logger: logger}
}

// Create registra um lançamento semanal
//
// A validação corre em ordem fixa e nada é gravado antes de ela passar
// inteira: campos obrigatórios, valor não negativo e dentro do teto, data de
// referência não futura, dentro da janela de lançamento e caindo num
// domingo. Data fora de domingo é recusada, nunca remapeada.
//
// Efeitos colaterais após a gravação principal:
//   - recomendação com investidura grava o lançamento pareado sem
//     investidura quando secondary_value veio preenchido;
//   - membros participantes atualiza a contagem de membros da unidade.
//
// As gravações não são atômicas entre si: falha num efeito colateral não
// desfaz o lançamento principal, apenas entra em warnings na resposta.
func (s *observationService) Create(ctx context.Context, userID string, req *dto.CreateObservationRequest) (*dto.CreateObservationResponse, error) {
	// 1. Obrigatórios
	if req.WardID == "" || req.IndicatorID == "" || req.Value == nil || req.WeekStart == "" {
		return nil, ErrEntryRequired
	}

	// 2. Valor dentro dos limites
	value := *req.Value
	if value < 0 {
		return nil, ErrEntryNegative
	}
	if value > s.cfg.Entry.MaxValue {
		return nil, ErrEntryTooLarge
	}

	// 3. Data de referência
	weekStart, err := s.validateWeekStart(req.WeekStart)
	if err != nil {
		return nil, err
	}

	// 4. Unidade e indicador existem
	ward, err := s.repo.Ward.GetByID(ctx, req.WardID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrWardNotFound
		}
		s.logger.Error("falha ao buscar unidade", zap.Error(err))
		return nil, err
	}
	indicator, err := s.repo.Indicator.GetByID(ctx, req.IndicatorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrIndicatorNotFound
		}
		s.logger.Error("falha ao buscar indicador", zap.Error(err))
		return nil, err
	}

	// 5. Gravação principal
	obs := &model.Observation{
		WardID:      ward.WardID,
		IndicatorID: indicator.IndicatorID,
		Value:       value,
		WeekStart:   weekStart,
		Source:      "manual",
		CreatedBy:   &userID,
	}
	if err := s.repo.Observation.Create(ctx, obs); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEntryDuplicate
		}
		s.logger.Error("falha ao gravar lançamento", zap.Error(err))
		return nil, err
	}

	resp := &dto.CreateObservationResponse{
		Entry: toObservationResponseParts(obs, ward, indicator),
	}

	// 6. Lançamento pareado da recomendação sem investidura
	if indicator.Slug == model.SlugRecomendacaoComInv && req.SecondaryValue != nil {
		saved := s.createSecondary(ctx, userID, ward.WardID, *req.SecondaryValue, weekStart, resp)
		resp.SecondarySaved = &saved
	}

	// 7. Atualização da contagem de membros da unidade
	if indicator.Slug == model.SlugMembrosParticipantes {
		updated := true
		if err := s.repo.Ward.UpdateMembership(ctx, ward.WardID, int(value)); err != nil {
			s.logger.Warn("lançamento salvo, mas a contagem de membros não foi atualizada",
				zap.String("ward_id", ward.WardID), zap.Error(err))
			resp.Warnings = append(resp.Warnings, "a contagem de membros da unidade não foi atualizada")
			updated = false
		}
		resp.MembershipUpdated = &updated
	}

	s.invalidateReportCache(ctx)
	return resp, nil
}

// validateWeekStart valida a data de referência: formato, não futura,
// dentro da janela de lançamento e um domingo exato
func (s *observationService) validateWeekStart(dateStr string) (time.Time, error) {
	refDate, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return time.Time{}, ErrEntryInvalidDate
	}
	refDate = aggregate.DateOnly(refDate)
	today := aggregate.DateOnly(time.Now())
	if refDate.After(today) {
		return time.Time{}, ErrEntryFutureDate
	}
	if refDate.Before(today.AddDate(0, 0, -s.cfg.Entry.RecencyWindowDays)) {
		return time.Time{}, ErrEntryTooOld
	}
	if refDate.Weekday() != time.Sunday {
		return time.Time{}, ErrEntryNotSunday
	}
	return refDate, nil
}

// createSecondary grava o lançamento pareado; falha vira warning, nunca erro
func (s *observationService) createSecondary(ctx context.Context, userID, wardID string, value float64, weekStart time.Time, resp *dto.CreateObservationResponse) bool {
	secondary, err := s.repo.Indicator.GetBySlug(ctx, model.SlugRecomendacaoSemInv)
	if err != nil {
		s.logger.Warn("indicador pareado não encontrado", zap.Error(err))
		resp.Warnings = append(resp.Warnings, "o lançamento de recomendações sem investidura não foi gravado")
		return false
	}

	obs := &model.Observation{
		WardID:      wardID,
		IndicatorID: secondary.IndicatorID,
		Value:       value,
		WeekStart:   weekStart,
		Source:      "manual",
		CreatedBy:   &userID,
	}
	if err := s.repo.Observation.Create(ctx, obs); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			resp.Warnings = append(resp.Warnings, "recomendações sem investidura já havia sido lançado nesta semana")
		} else {
			s.logger.Warn("falha ao gravar lançamento pareado", zap.Error(err))
			resp.Warnings = append(resp.Warnings, "o lançamento de recomendações sem investidura não foi gravado")
		}
		return false
	}
	return true
}

func (s *observationService) List(ctx context.Context, req *dto.ListObservationsRequest) ([]dto.ObservationResponse, int64, error) {
	filter := repository.ObservationFilter{
		WardIDs:      req.WardIDs,
		IndicatorIDs: req.IndicatorIDs,
	}

	if req.Week != "" {
		week, err := time.Parse("2006-01-02", req.Week)
		if err != nil {
			return nil, 0, ErrEntryInvalidDate
		}
		sunday := aggregate.StartOfWeek(week)
		filter.Week = &sunday
	}
	if req.CreatedFrom != "" {
		from, err := time.Parse("2006-01-02", req.CreatedFrom)
		if err != nil {
			return nil, 0, ErrEntryInvalidDate
		}
		filter.CreatedFrom = &from
	}
	if req.CreatedTo != "" {
		to, err := time.Parse("2006-01-02", req.CreatedTo)
		if err != nil {
			return nil, 0, ErrEntryInvalidDate
		}
		// Inclusivo: fim do dia
		end := to.AddDate(0, 0, 1).Add(-time.Second)
		filter.CreatedTo = &end
	}

	observations, total, err := s.repo.Observation.List(ctx, filter, req.GetOffset(), req.GetPageSize())
	if err != nil {
		s.logger.Error("falha ao listar lançamentos", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ObservationResponse, 0, len(observations))
	for i := range observations {
		result = append(result, *toObservationResponse(&observations[i]))
	}
	return result, total, nil
}

// Update corrige um lançamento no histórico: o valor sempre, e a semana de
// referência quando week_start vier preenchido, sob a mesma validação do
// lançamento original. Mover para uma semana já lançada é conflito.
func (s *observationService) Update(ctx context.Context, id string, req *dto.UpdateObservationRequest) (*dto.ObservationResponse, error) {
	if req.Value == nil {
		return nil, ErrEntryRequired
	}
	value := *req.Value
	if value < 0 {
		return nil, ErrEntryNegative
	}
	if value > s.cfg.Entry.MaxValue {
		return nil, ErrEntryTooLarge
	}

	var weekStart *time.Time
	if req.WeekStart != "" {
		ws, err := s.validateWeekStart(req.WeekStart)
		if err != nil {
			return nil, err
		}
		weekStart = &ws
	}

	if err := s.repo.Observation.Update(ctx, id, value, weekStart); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEntryDuplicate
		}
		s.logger.Error("falha ao atualizar lançamento", zap.Error(err))
		return nil, err
	}

	obs, err := s.repo.Observation.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("falha ao recarregar lançamento", zap.Error(err))
		return nil, err
	}

	s.invalidateReportCache(ctx)
	return toObservationResponse(obs), nil
}

func (s *observationService) Delete(ctx context.Context, id string) error {
	if err := s.repo.Observation.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntryNotFound
		}
		s.logger.Error("falha ao excluir lançamento", zap.Error(err))
		return err
	}
	s.invalidateReportCache(ctx)
	return nil
}

func (s *observationService) Weeks(ctx context.Context) ([]dto.WeekOption, error) {
	weeks, err := s.repo.Observation.DistinctWeeks(ctx)
	if err != nil {
		s.logger.Error("falha ao listar semanas", zap.Error(err))
		return nil, err
	}

	result := make([]dto.WeekOption, 0, len(weeks))
	for _, w := range weeks {
		result = append(result, dto.WeekOption{
			WeekStart: w.Format("2006-01-02"),
			Label:     aggregate.WeekLabel(w),
		})
	}
	return result, nil
}

func (s *observationService) Recent(ctx context.Context) ([]dto.ObservationResponse, error) {
	observations, err := s.repo.Observation.ListRecent(ctx, 5)
	if err != nil {
		s.logger.Error("falha ao listar lançamentos recentes", zap.Error(err))
		return nil, err
	}

	result := make([]dto.ObservationResponse, 0, len(observations))
	for i := range observations {
		result = append(result, *toObservationResponse(&observations[i]))
	}
	return result, nil
}

func (s *observationService) invalidateReportCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.InvalidatePrefix(ctx, reportCachePrefix); err != nil {
		s.logger.Warn("falha ao invalidar cache do relatório", zap.Error(err))
	}
}

// ── Conversões ──

func toObservationResponse(obs *model.Observation) *dto.ObservationResponse {
	return toObservationResponseParts(obs, obs.Ward, obs.Indicator)
}

func toObservationResponseParts(obs *model.Observation, ward *model.Ward, indicator *model.Indicator) *dto.ObservationResponse {
	resp := &dto.ObservationResponse{
		ID:        obs.EntryID,
		Value:     obs.Value,
		WeekStart: obs.WeekStart.Format("2006-01-02"),
		WeekLabel: aggregate.WeekLabel(obs.WeekStart),
		Source:    obs.Source,
		CreatedAt: obs.CreatedAt.Format(time.RFC3339),
	}
	if ward != nil {
		resp.Ward = &dto.WardBrief{
			ID:              ward.WardID,
			Name:            ward.Name,
			MembershipCount: ward.MembershipCount,
		}
	}
	if indicator != nil {
		resp.Indicator = &dto.IndicatorBrief{
			ID:                indicator.IndicatorID,
			Slug:              indicator.Slug,
			DisplayName:       indicator.DisplayName,
			AggregationMethod: indicator.AggregationMethod,
			Responsibility:    indicator.Responsibility,
		}
	}
	return resp
}
