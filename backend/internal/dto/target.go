package dto

// ── Metas anuais ──

// TargetMatrixRequest parâmetros da matriz de metas
type TargetMatrixRequest struct {
	Year int `form:"year" binding:"omitempty,min=2000,max=2100"`
}

// UpsertTargetRequest criação/atualização de meta por (unidade, indicador, ano)
type UpsertTargetRequest struct {
	WardID      string   `json:"ward_id"      binding:"required,uuid"`
	IndicatorID string   `json:"indicator_id" binding:"required,uuid"`
	Year        int      `json:"year"         binding:"required,min=2000,max=2100"`
	TargetValue *float64 `json:"target_value" binding:"required,min=0"`
}

// WardTarget meta de uma unidade dentro da linha da matriz
type WardTarget struct {
	WardID   string  `json:"ward_id"`
	WardName string  `json:"ward_name"`
	Target   float64 `json:"target"`
}

// TargetMatrixRow linha da matriz: um indicador, metas por unidade e o
// total da estaca
type TargetMatrixRow struct {
	Indicator  IndicatorBrief `json:"indicator"`
	ByWard     []WardTarget   `json:"by_ward"`
	StakeTotal float64        `json:"stake_total"`
}

// TargetMatrixResponse matriz de metas do ano
type TargetMatrixResponse struct {
	Year int               `json:"year"`
	Rows []TargetMatrixRow `json:"rows"`
}

// TargetProgressRequest consulta de avanço rumo à meta
type TargetProgressRequest struct {
	WardID      string `form:"ward_id"      binding:"omitempty,uuid"` // vazio = estaca inteira
	IndicatorID string `form:"indicator_id" binding:"required,uuid"`
	Year        int    `form:"year"         binding:"omitempty,min=2000,max=2100"`
	Period      string `form:"period"       binding:"omitempty"`
}

// TargetProgressResponse avanço de um indicador rumo à meta
type TargetProgressResponse struct {
	Target    float64 `json:"target"`
	Aggregate float64 `json:"aggregate"`
	Progress  int     `json:"progress"` // percentual travado em [0, 100]
	Gap       float64 `json:"gap"`      // quanto falta, nunca negativo
	Met       bool    `json:"met"`
}
