package service

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/letierre/chamados-a-servir-final/backend/config"
	"github.com/letierre/chamados-a-servir-final/backend/internal/aggregate"
	"github.com/letierre/chamados-a-servir-final/backend/internal/model"
)

func setupReportService() (ReportService, *testMocks) {
	repo, mocks := newTestRepo()
	cfg := &config.Config{
		Report: config.ReportConfig{WindowDays: 30, CacheTTL: 5 * time.Minute},
	}
	svc := NewReportService(cfg, repo, nil, zap.NewNop())
	return svc, mocks
}

func TestReportSummary_FixedWeek(t *testing.T) {
	svc, mocks := setupReportService()
	seedWard(mocks, "w1", "Ala Central", 100)
	seedWard(mocks, "w2", "Ala Norte", 200)
	seedIndicator(mocks, "i1", model.SlugBatismoConverso, model.AggSum, 1)

	week := time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC)
	seedObservation(mocks, "w1", "i1", week, 3)
	seedObservation(mocks, "w2", "i1", week, 2)

	resp, err := svc.Summary(context.Background(), "week:2024-05-15")
	if err != nil {
		t.Fatalf("Summary deveria passar: %v", err)
	}
	if resp.Start != "2024-05-12" || resp.End != "2024-05-18" {
		t.Errorf("intervalo incorreto: %s..%s", resp.Start, resp.End)
	}
	if len(resp.Indicators) != 1 {
		t.Fatalf("esperava 1 indicador, obtidos %d", len(resp.Indicators))
	}

	summary := resp.Indicators[0]
	if summary.StakeTotal != 5 {
		t.Errorf("esperava total 5, obtido %v", summary.StakeTotal)
	}
	// Ranking proporcional: w1 (3/100) na frente de w2 (2/200)
	if summary.Best.WardName != "Ala Central" {
		t.Errorf("esperava Ala Central como melhor, obtido %s", summary.Best.WardName)
	}
}

func TestReportSummary_UnknownPeriod(t *testing.T) {
	svc, _ := setupReportService()

	_, err := svc.Summary(context.Background(), "trimestre-passado")
	if !errors.Is(err, aggregate.ErrUnknownPeriod) {
		t.Errorf("esperava ErrUnknownPeriod, obtido %v", err)
	}
}

func TestReportExportCSV(t *testing.T) {
	svc, mocks := setupReportService()
	seedWard(mocks, "w1", "Ala Central", 100)
	seedIndicator(mocks, "i1", model.SlugBatismoConverso, model.AggSum, 1)
	seedObservation(mocks, "w1", "i1", time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC), 3)

	buf, filename, err := svc.ExportCSV(context.Background(), "week:2024-05-15")
	if err != nil {
		t.Fatalf("ExportCSV deveria passar: %v", err)
	}

	if !strings.HasPrefix(filename, "relatorio-estaca-") || !strings.HasSuffix(filename, ".csv") {
		t.Errorf("nome de arquivo inesperado: %s", filename)
	}

	raw := buf.Bytes()
	if !bytes.HasPrefix(raw, []byte{0xEF, 0xBB, 0xBF}) {
		t.Error("CSV deve começar com BOM UTF-8")
	}

	content := string(raw[3:])
	lines := strings.Split(strings.TrimSpace(content), "\n")
	if len(lines) != 2 {
		t.Fatalf("esperava cabeçalho e 1 linha, obtidas %d", len(lines))
	}
	if lines[0] != "Ala;Indicador;Tipo;Método;Responsabilidade;Semana;Valor;Membros" {
		t.Errorf("cabeçalho incorreto: %s", lines[0])
	}
	// Data brasileira e separador ponto e vírgula
	if !strings.Contains(lines[1], "12/05/2024") {
		t.Errorf("esperava data 12/05/2024 na linha: %s", lines[1])
	}
	if !strings.Contains(lines[1], "Ala Central;") {
		t.Errorf("esperava Ala Central na linha: %s", lines[1])
	}
}

func TestReportExportCSV_NoData(t *testing.T) {
	svc, mocks := setupReportService()
	seedWard(mocks, "w1", "Ala Central", 100)
	seedIndicator(mocks, "i1", model.SlugBatismoConverso, model.AggSum, 1)

	_, _, err := svc.ExportCSV(context.Background(), "week:2024-05-15")
	if !errors.Is(err, ErrReportNoData) {
		t.Errorf("esperava ErrReportNoData, obtido %v", err)
	}
}

func TestReportExportXLSX(t *testing.T) {
	svc, mocks := setupReportService()
	seedWard(mocks, "w1", "Ala Central", 100)
	seedWard(mocks, "w2", "Ala Norte", 200)
	seedIndicator(mocks, "i1", model.SlugBatismoConverso, model.AggSum, 1)
	week := time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC)
	seedObservation(mocks, "w1", "i1", week, 3)
	seedObservation(mocks, "w2", "i1", week, 2)

	buf, filename, err := svc.ExportXLSX(context.Background(), "week:2024-05-15")
	if err != nil {
		t.Fatalf("ExportXLSX deveria passar: %v", err)
	}
	if !strings.HasSuffix(filename, ".xlsx") {
		t.Errorf("nome de arquivo inesperado: %s", filename)
	}
	if buf.Len() == 0 {
		t.Error("arquivo Excel não deve ser vazio")
	}
}
