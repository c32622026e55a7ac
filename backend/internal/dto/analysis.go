package dto

// ── Análise narrativa (webhook externo) ──

// AnalysisRequest pedido de análise narrativa do período
type AnalysisRequest struct {
	Period string `json:"period"  binding:"omitempty"`
	WardID string `json:"ward_id" binding:"omitempty,uuid"` // vazio = estaca inteira
	Year   int    `json:"year"    binding:"omitempty,min=2000,max=2100"`
}

// AnalysisIndicator um indicador no payload enviado ao webhook
type AnalysisIndicator struct {
	Indicator string  `json:"indicator"`
	Value     float64 `json:"value"`
	Target    float64 `json:"target"`
	Progress  int     `json:"progress"`
	Gap       float64 `json:"gap"`
}

// AnalysisPayload corpo POSTado ao webhook configurado
type AnalysisPayload struct {
	Unit        string              `json:"unit"`
	GeneratedAt string              `json:"generated_at"`
	Indicators  []AnalysisIndicator `json:"indicators"`
}

// AnalysisResponse narrativa devolvida pelo webhook
type AnalysisResponse struct {
	Analysis string `json:"analysis"`
}
