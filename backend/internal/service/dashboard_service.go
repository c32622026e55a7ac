package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"go.uber.org/zap"

	"github.com/letierre/chamados-a-servir-final/backend/internal/aggregate"
	"github.com/letierre/chamados-a-servir-final/backend/internal/dto"
	"github.com/letierre/chamados-a-servir-final/backend/internal/model"
	"github.com/letierre/chamados-a-servir-final/backend/internal/repository"
)

// DashboardService cartões do painel da estaca
type DashboardService interface {
	Cards(ctx context.Context, req *dto.DashboardRequest) (*dto.DashboardResponse, error)
}

type dashboardService struct {
	repo   *repository.Repository
	logger *zap.Logger
}

// NewDashboardService cria o DashboardService
func NewDashboardService(repo *repository.Repository, logger *zap.Logger) DashboardService {
	return &dashboardService{repo: repo, logger: logger}
}

// Cards monta os cartões do painel para a semana de referência
//
// Cada slug tem sua própria leitura:
//   - batismo_converso: acumulado do ano contra a meta anual da estaca;
//   - frequencia_sacramental: valor da semana, com a média das semanas
//     não zeradas do ano na legenda;
//   - membros_jejuando: acumulado do mês da semana de referência;
//   - membros_participantes: último valor reportado contra a meta;
//   - missionários: último valor reportado, com o pico do ano na legenda;
//   - demais indicadores seguem o método de agregação cadastrado.
func (s *dashboardService) Cards(ctx context.Context, req *dto.DashboardRequest) (*dto.DashboardResponse, error) {
	now := aggregate.DateOnly(time.Now())

	// Semana de referência: data pedida ou última semana lançada
	var refWeek time.Time
	if req.Date != "" {
		anchor, err := time.Parse("2006-01-02", req.Date)
		if err != nil {
			return nil, ErrEntryInvalidDate
		}
		refWeek = aggregate.StartOfWeek(anchor)
	} else {
		latest, err := s.repo.Observation.LatestWeek(ctx)
		if err != nil {
			s.logger.Error("falha ao buscar última semana lançada", zap.Error(err))
			return nil, err
		}
		if latest != nil {
			refWeek = aggregate.StartOfWeek(*latest)
		} else {
			refWeek = aggregate.StartOfWeek(now)
		}
	}

	year := req.Year
	if year == 0 {
		year = refWeek.Year()
	}

	indicators, err := s.repo.Indicator.ListActive(ctx)
	if err != nil {
		s.logger.Error("falha ao listar indicadores", zap.Error(err))
		return nil, err
	}

	refEnd := aggregate.EndOfWeek(refWeek)
	rows, err := s.repo.Report.Rows(ctx, refEnd)
	if err != nil {
		s.logger.Error("falha ao buscar lançamentos", zap.Error(err))
		return nil, err
	}

	cards := make([]dto.DashboardCard, 0, len(indicators))
	for _, ind := range indicators {
		card := dto.DashboardCard{Slug: ind.Slug, DisplayName: ind.DisplayName}
		s.fillCard(ctx, &card, &ind, rows, refWeek, year)
		cards = append(cards, card)
	}

	return &dto.DashboardResponse{
		ReferenceWeek: refWeek.Format("2006-01-02"),
		WeekLabel:     aggregate.WeekLabel(refWeek),
		Year:          year,
		Cards:         cards,
	}, nil
}

func (s *dashboardService) fillCard(ctx context.Context, card *dto.DashboardCard, ind *model.Indicator, rows []aggregate.Row, refWeek time.Time, year int) {
	weekly := weeklyStakeTotals(rows, ind.IndicatorID, year)

	switch ind.Slug {
	case model.SlugBatismoConverso:
		// Acumulado do ano contra a meta anual da estaca
		var ytd float64
		for _, v := range weekly {
			ytd += v
		}
		card.Value = ytd
		if target := s.stakeTarget(ctx, ind.IndicatorID, year); target > 0 {
			pct := aggregate.Progress(ytd, target)
			card.Progress = &pct
			card.Caption = fmt.Sprintf("meta do ano: %s (%d%%)", formatValue(target), pct)
		}

	case model.SlugFrequenciaSacramental:
		card.Value = weekly[refWeek.Format("2006-01-02")]
		if avg, ok := averageNonZero(weekly); ok {
			card.Caption = fmt.Sprintf("média do ano: %s", formatValue(avg))
		}

	case model.SlugMembrosJejuando:
		// Acumulado do mês da semana de referência
		var monthTotal float64
		for week, v := range weekly {
			d, err := time.Parse("2006-01-02", week)
			if err != nil {
				continue
			}
			if d.Year() == refWeek.Year() && d.Month() == refWeek.Month() {
				monthTotal += v
			}
		}
		card.Value = monthTotal
		card.Caption = fmt.Sprintf("acumulado de %s", monthName(refWeek.Month()))

	case model.SlugMembrosParticipantes:
		card.Value = snapshotStakeTotal(rows, ind.IndicatorID, refWeek)
		if target := s.stakeTarget(ctx, ind.IndicatorID, year); target > 0 {
			pct := aggregate.Progress(card.Value, target)
			card.Progress = &pct
			card.Caption = fmt.Sprintf("meta: %s, faltam %s", formatValue(target), formatValue(aggregate.Gap(card.Value, target)))
		}

	case model.SlugMissionariosServindo:
		card.Value = snapshotStakeTotal(rows, ind.IndicatorID, refWeek)
		if peak, ok := peakValue(weekly); ok {
			card.Caption = fmt.Sprintf("pico do ano: %s", formatValue(peak))
		}

	case model.SlugRecomendacaoComInv, model.SlugRecomendacaoSemInv:
		card.Value = snapshotStakeTotal(rows, ind.IndicatorID, refWeek)
		if avg, ok := averageNonZero(weekly); ok {
			card.Caption = fmt.Sprintf("média do ano: %s", formatValue(avg))
		}

	default:
		// Sem tratamento especial: segue o método cadastrado
		switch ind.AggregationMethod {
		case model.AggSnapshot:
			card.Value = snapshotStakeTotal(rows, ind.IndicatorID, refWeek)
		case model.AggAvg:
			if avg, ok := averageNonZero(weekly); ok {
				card.Value = avg
			}
		default:
			var total float64
			for _, v := range weekly {
				total += v
			}
			card.Value = total
		}
	}
}

// stakeTarget soma as metas anuais de todas as unidades para o indicador
func (s *dashboardService) stakeTarget(ctx context.Context, indicatorID string, year int) float64 {
	targets, err := s.repo.Target.ListByIndicatorYear(ctx, indicatorID, year)
	if err != nil {
		s.logger.Warn("falha ao buscar metas do indicador", zap.Error(err))
		return 0
	}
	var total float64
	for _, t := range targets {
		total += t.TargetValue
	}
	return total
}

// ── Leituras sobre as linhas cruas ──

// weeklyStakeTotals soma por semana (da estaca inteira) os lançamentos do
// indicador dentro do ano
func weeklyStakeTotals(rows []aggregate.Row, indicatorID string, year int) map[string]float64 {
	totals := make(map[string]float64)
	for _, r := range rows {
		if r.IndicatorID != indicatorID || r.WeekStart.Year() != year {
			continue
		}
		totals[r.WeekStart.Format("2006-01-02")] += r.Value
	}
	return totals
}

// snapshotStakeTotal soma, por unidade, o último valor lançado até o fim da
// semana de referência
func snapshotStakeTotal(rows []aggregate.Row, indicatorID string, refWeek time.Time) float64 {
	end := aggregate.EndOfWeek(refWeek)
	type last struct {
		week  time.Time
		value float64
	}
	byWard := make(map[string]last)
	for _, r := range rows {
		if r.IndicatorID != indicatorID || r.WeekStart.After(end) {
			continue
		}
		if cur, ok := byWard[r.WardID]; !ok || r.WeekStart.After(cur.week) {
			byWard[r.WardID] = last{week: r.WeekStart, value: r.Value}
		}
	}
	var total float64
	for _, l := range byWard {
		total += l.value
	}
	return total
}

func averageNonZero(weekly map[string]float64) (float64, bool) {
	var sum float64
	count := 0
	for _, v := range weekly {
		if v != 0 {
			sum += v
			count++
		}
	}
	if count == 0 {
		return 0, false
	}
	return math.Round(sum / float64(count)), true
}

func peakValue(weekly map[string]float64) (float64, bool) {
	if len(weekly) == 0 {
		return 0, false
	}
	var peak float64
	for _, v := range weekly {
		if v > peak {
			peak = v
		}
	}
	return peak, true
}

func formatValue(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}

var monthNames = [...]string{
	"janeiro", "fevereiro", "março", "abril", "maio", "junho",
	"julho", "agosto", "setembro", "outubro", "novembro", "dezembro",
}

func monthName(m time.Month) string {
	return monthNames[m-1]
}
