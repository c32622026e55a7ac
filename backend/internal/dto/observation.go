package dto

// ── Lançamentos semanais ──

// CreateObservationRequest lançamento de um indicador para uma semana
// SecondaryValue só é considerado quando o indicador é a recomendação
// com investidura: vira o lançamento pareado sem investidura.
type CreateObservationRequest struct {
	WardID         string   `json:"ward_id"         binding:"required,uuid"`
	IndicatorID    string   `json:"indicator_id"    binding:"required,uuid"`
	Value          *float64 `json:"value"           binding:"required"`
	WeekStart      string   `json:"week_start"      binding:"required"` // YYYY-MM-DD, obrigatoriamente um domingo
	SecondaryValue *float64 `json:"secondary_value" binding:"omitempty"`
}

// CreateObservationResponse resultado do lançamento, incluindo o desfecho
// dos efeitos colaterais (gravação pareada e atualização de membros)
type CreateObservationResponse struct {
	Entry             *ObservationResponse `json:"entry"`
	SecondarySaved    *bool                `json:"secondary_saved,omitempty"`
	MembershipUpdated *bool                `json:"membership_updated,omitempty"`
	Warnings          []string             `json:"warnings,omitempty"`
}

// ListObservationsRequest filtros do histórico
type ListObservationsRequest struct {
	WardIDs      []string `form:"ward_id"      binding:"omitempty,dive,uuid"`
	IndicatorIDs []string `form:"indicator_id" binding:"omitempty,dive,uuid"`
	Week         string   `form:"week"         binding:"omitempty"` // YYYY-MM-DD (domingo)
	CreatedFrom  string   `form:"created_from" binding:"omitempty"`
	CreatedTo    string   `form:"created_to"   binding:"omitempty"`
	PaginationRequest
}

// UpdateObservationRequest correção de um lançamento existente: o valor
// sempre, e opcionalmente a semana de referência
type UpdateObservationRequest struct {
	Value     *float64 `json:"value"      binding:"required"`
	WeekStart string   `json:"week_start" binding:"omitempty"` // YYYY-MM-DD, domingo; vazio mantém a semana
}

// ObservationResponse lançamento com unidade e indicador resolvidos
type ObservationResponse struct {
	ID        string          `json:"id"`
	Ward      *WardBrief      `json:"ward,omitempty"`
	Indicator *IndicatorBrief `json:"indicator,omitempty"`
	Value     float64         `json:"value"`
	WeekStart string          `json:"week_start"`
	WeekLabel string          `json:"week_label"`
	Source    string          `json:"source"`
	CreatedAt string          `json:"created_at"`
}

// WeekOption semana disponível para o filtro do histórico
type WeekOption struct {
	WeekStart string `json:"week_start"`
	Label     string `json:"label"`
}
