package dto

import "github.com/letierre/chamados-a-servir-final/backend/internal/aggregate"

// ── Relatório da estaca ──

// ReportRequest parâmetros do relatório
// period aceita current-month, last-month, last-90-days, last-12-months e
// week:<YYYY-MM-DD>; vazio usa a janela padrão configurada.
type ReportRequest struct {
	Period string `form:"period" binding:"omitempty"`
}

// ReportResponse relatório agregado por indicador no período
type ReportResponse struct {
	Period     string                       `json:"period"`
	Start      string                       `json:"start"`
	End        string                       `json:"end"`
	Indicators []aggregate.IndicatorSummary `json:"indicators"`
}
