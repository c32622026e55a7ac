package dto

// ── Painel ──

// DashboardRequest parâmetros do painel
// date escolhe a semana de referência (padrão: última semana lançada);
// year delimita os acumulados anuais (padrão: ano corrente).
type DashboardRequest struct {
	Date string `form:"date" binding:"omitempty"`
	Year int    `form:"year" binding:"omitempty,min=2000,max=2100"`
}

// DashboardCard cartão de indicador com valor principal e legenda
type DashboardCard struct {
	Slug        string  `json:"slug"`
	DisplayName string  `json:"display_name"`
	Value       float64 `json:"value"`
	Caption     string  `json:"caption,omitempty"`  // ex.: "média do ano: 132"
	Progress    *int    `json:"progress,omitempty"` // % rumo à meta, quando houver
}

// DashboardResponse painel completo
type DashboardResponse struct {
	ReferenceWeek string          `json:"reference_week"`
	WeekLabel     string          `json:"week_label"`
	Year          int             `json:"year"`
	Cards         []DashboardCard `json:"cards"`
}
