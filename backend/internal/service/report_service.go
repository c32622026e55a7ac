package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"github.com/letierre/chamados-a-servir-final/backend/config"
	"github.com/letierre/chamados-a-servir-final/backend/internal/aggregate"
	"github.com/letierre/chamados-a-servir-final/backend/internal/dto"
	"github.com/letierre/chamados-a-servir-final/backend/internal/repository"
	"github.com/letierre/chamados-a-servir-final/backend/pkg/redis"
)

// ── Erros de negócio do relatório ──

var (
	ErrReportNoData       = errors.New("nenhum lançamento no período")
	ErrReportGenerateFail = errors.New("falha ao gerar o arquivo do relatório")
)

// ReportService relatório agregado da estaca e exportações
type ReportService interface {
	Summary(ctx context.Context, period string) (*dto.ReportResponse, error)
	ExportCSV(ctx context.Context, period string) (*bytes.Buffer, string, error)
	ExportXLSX(ctx context.Context, period string) (*bytes.Buffer, string, error)
}

type reportService struct {
	cfg    *config.Config
	repo   *repository.Repository
	rdb    *redis.Client
	logger *zap.Logger
}

// NewReportService cria o ReportService
func NewReportService(
	cfg *config.Config,
	repo *repository.Repository,
	rdb *redis.Client,
	logger *zap.Logger,
) ReportService {
	return &reportService{cfg: cfg, repo: repo, rdb: rdb, logger: logger}
}

// resolveRange converte o token de período; vazio usa a janela padrão
func (s *reportService) resolveRange(period string, now time.Time) (aggregate.Range, error) {
	if period == "" {
		return aggregate.Range{
			Start: now.AddDate(0, 0, -s.cfg.Report.WindowDays),
			End:   now,
		}, nil
	}
	return aggregate.ResolvePeriod(period, now)
}

// Summary agrega os lançamentos do período por indicador
// O resultado fica em cache no Redis pela janela resolvida; qualquer
// gravação de lançamento derruba o cache inteiro.
func (s *reportService) Summary(ctx context.Context, period string) (*dto.ReportResponse, error) {
	now := aggregate.DateOnly(time.Now())
	r, err := s.resolveRange(period, now)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf("%s%s:%s", reportCachePrefix,
		r.Start.Format("2006-01-02"), r.End.Format("2006-01-02"))

	if s.rdb != nil {
		if cached, err := s.rdb.GetCached(ctx, cacheKey); err == nil && cached != "" {
			var resp dto.ReportResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
		}
	}

	rows, err := s.repo.Report.Rows(ctx, r.End)
	if err != nil {
		s.logger.Error("falha ao buscar lançamentos", zap.Error(err))
		return nil, err
	}

	resp := &dto.ReportResponse{
		Period:     period,
		Start:      r.Start.Format("2006-01-02"),
		End:        r.End.Format("2006-01-02"),
		Indicators: aggregate.Summarize(rows, r),
	}

	if s.rdb != nil {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.rdb.SetCached(ctx, cacheKey, string(payload), s.cfg.Report.CacheTTL); err != nil {
				s.logger.Warn("falha ao gravar cache do relatório", zap.Error(err))
			}
		}
	}
	return resp, nil
}

// ExportCSV exporta as linhas cruas do período
//
// Formato de planilha brasileira: separador ponto e vírgula, BOM UTF-8 para
// o Excel reconhecer a codificação, datas em dd/MM/aaaa.
func (s *reportService) ExportCSV(ctx context.Context, period string) (*bytes.Buffer, string, error) {
	now := aggregate.DateOnly(time.Now())
	r, err := s.resolveRange(period, now)
	if err != nil {
		return nil, "", err
	}

	rows, err := s.repo.Report.Rows(ctx, r.End)
	if err != nil {
		s.logger.Error("falha ao buscar lançamentos", zap.Error(err))
		return nil, "", err
	}

	var inRange []aggregate.Row
	for _, row := range rows {
		if r.Contains(row.WeekStart) {
			inRange = append(inRange, row)
		}
	}
	if len(inRange) == 0 {
		return nil, "", ErrReportNoData
	}

	buf := new(bytes.Buffer)
	// BOM UTF-8 para o Excel abrir acentuação corretamente
	buf.Write([]byte{0xEF, 0xBB, 0xBF})

	w := csv.NewWriter(buf)
	w.Comma = ';'

	header := []string{"Ala", "Indicador", "Tipo", "Método", "Responsabilidade", "Semana", "Valor", "Membros"}
	if err := w.Write(header); err != nil {
		return nil, "", ErrReportGenerateFail
	}
	for _, row := range inRange {
		record := []string{
			row.WardName,
			row.DisplayName,
			row.IndicatorType,
			row.Method,
			row.Responsibility,
			row.WeekStart.Format("02/01/2006"),
			formatCSVValue(row.Value),
			strconv.Itoa(row.Membership),
		}
		if err := w.Write(record); err != nil {
			return nil, "", ErrReportGenerateFail
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		s.logger.Error("falha ao escrever CSV", zap.Error(err))
		return nil, "", ErrReportGenerateFail
	}

	filename := fmt.Sprintf("relatorio-estaca-%s.csv", now.Format("2006-01-02"))
	return buf, filename, nil
}

// ExportXLSX exporta o relatório em Excel
// Aba "Resumo" com os totais da estaca e destaque de melhor/pior unidade,
// mais uma aba por indicador com a matriz semanas × unidades.
func (s *reportService) ExportXLSX(ctx context.Context, period string) (*bytes.Buffer, string, error) {
	now := aggregate.DateOnly(time.Now())
	r, err := s.resolveRange(period, now)
	if err != nil {
		return nil, "", err
	}

	rows, err := s.repo.Report.Rows(ctx, r.End)
	if err != nil {
		s.logger.Error("falha ao buscar lançamentos", zap.Error(err))
		return nil, "", err
	}

	summaries := aggregate.Summarize(rows, r)
	if len(summaries) == 0 {
		return nil, "", ErrReportNoData
	}

	f := excelize.NewFile()
	defer f.Close()

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"#2F5597"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})

	// ── Aba de resumo ──
	const resumo = "Resumo"
	idx, err := f.NewSheet(resumo)
	if err != nil {
		return nil, "", ErrReportGenerateFail
	}
	f.SetActiveSheet(idx)
	f.DeleteSheet("Sheet1")

	f.SetColWidth(resumo, "A", "A", 40)
	f.SetColWidth(resumo, "B", "E", 18)

	f.SetCellValue(resumo, "A1", fmt.Sprintf("Relatório da estaca: %s a %s",
		r.Start.Format("02/01/2006"), r.End.Format("02/01/2006")))
	f.MergeCell(resumo, "A1", "E1")
	f.SetCellStyle(resumo, "A1", "A1", headerStyle)

	f.SetCellValue(resumo, "A2", "Indicador")
	f.SetCellValue(resumo, "B2", "Método")
	f.SetCellValue(resumo, "C2", "Total da estaca")
	f.SetCellValue(resumo, "D2", "Melhor unidade")
	f.SetCellValue(resumo, "E2", "Pior unidade")
	f.SetCellStyle(resumo, "A2", "E2", headerStyle)

	for i, summary := range summaries {
		row := i + 3
		f.SetCellValue(resumo, fmt.Sprintf("A%d", row), summary.DisplayName)
		f.SetCellValue(resumo, fmt.Sprintf("B%d", row), summary.Method)
		f.SetCellValue(resumo, fmt.Sprintf("C%d", row), summary.StakeTotal)
		f.SetCellValue(resumo, fmt.Sprintf("D%d", row), placingText(summary.Best))
		f.SetCellValue(resumo, fmt.Sprintf("E%d", row), placingText(summary.Worst))
	}

	// ── Uma aba por indicador: semanas × unidades ──
	for _, summary := range summaries {
		sheet := sheetName(summary.DisplayName)
		if _, err := f.NewSheet(sheet); err != nil {
			continue
		}

		// Semanas distintas do indicador dentro do período, em ordem
		weekSet := make(map[string]bool)
		var weeks []string
		wardSet := make(map[string]bool)
		var wards []string
		values := make(map[string]float64) // "semana|unidade" → valor

		for _, row := range rows {
			if row.IndicatorID != summary.IndicatorID || !r.Contains(row.WeekStart) {
				continue
			}
			wk := row.WeekStart.Format("02/01/2006")
			if !weekSet[wk] {
				weekSet[wk] = true
				weeks = append(weeks, wk)
			}
			if !wardSet[row.WardName] {
				wardSet[row.WardName] = true
				wards = append(wards, row.WardName)
			}
			values[wk+"|"+row.WardName] = row.Value
		}

		f.SetColWidth(sheet, "A", "A", 14)
		f.SetCellValue(sheet, "A1", "Semana")
		for i, ward := range wards {
			col, _ := excelize.ColumnNumberToName(i + 2)
			f.SetColWidth(sheet, col, col, 20)
			f.SetCellValue(sheet, col+"1", ward)
		}
		lastCol, _ := excelize.ColumnNumberToName(len(wards) + 1)
		f.SetCellStyle(sheet, "A1", lastCol+"1", headerStyle)

		for i, wk := range weeks {
			rowNum := i + 2
			f.SetCellValue(sheet, fmt.Sprintf("A%d", rowNum), wk)
			for j, ward := range wards {
				col, _ := excelize.ColumnNumberToName(j + 2)
				if v, ok := values[wk+"|"+ward]; ok {
					f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, rowNum), v)
				} else {
					f.SetCellValue(sheet, fmt.Sprintf("%s%d", col, rowNum), "-")
				}
			}
		}
	}

	buf := new(bytes.Buffer)
	if err := f.Write(buf); err != nil {
		s.logger.Error("falha ao gerar Excel", zap.Error(err))
		return nil, "", ErrReportGenerateFail
	}

	filename := fmt.Sprintf("relatorio-estaca-%s.xlsx", now.Format("2006-01-02"))
	return buf, filename, nil
}

// ── Auxiliares ──

func formatCSVValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func placingText(p aggregate.Placing) string {
	if p.WardName == "-" {
		return "-"
	}
	return fmt.Sprintf("%s (%s)", p.WardName, formatCSVValue(p.Value))
}

// sheetName corta o nome para o limite de 31 caracteres do Excel
func sheetName(name string) string {
	runes := []rune(name)
	if len(runes) <= 31 {
		return name
	}
	return string(runes[:31])
}
