package dto

// ── Catálogo (unidades e indicadores) ──

// WardLinks links rápidos para os sistemas da Igreja, montados a partir
// do número da unidade e do org_id cadastrados na ala
type WardLinks struct {
	MemberList     string `json:"member_list,omitempty"`
	QuarterlyReport string `json:"quarterly_report,omitempty"`
	ActionList     string `json:"action_list,omitempty"`
}

// WardResponse unidade completa para a tela de lançamento
type WardResponse struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	MembershipCount int        `json:"membership_count"`
	UnitNumber      string     `json:"unit_number,omitempty"`
	OrgID           string     `json:"org_id,omitempty"`
	Active          bool       `json:"active"`
	Links           *WardLinks `json:"links,omitempty"`
}

// IndicatorResponse indicador do catálogo
type IndicatorResponse struct {
	ID                string `json:"id"`
	Slug              string `json:"slug"`
	DisplayName       string `json:"display_name"`
	IndicatorType     string `json:"indicator_type"`
	AggregationMethod string `json:"aggregation_method"`
	Responsibility    string `json:"responsibility,omitempty"`
	OrderIndex        int    `json:"order_index"`
}

// UpdateMembershipRequest atualização manual da contagem de membros
type UpdateMembershipRequest struct {
	MembershipCount *int `json:"membership_count" binding:"required,min=0"`
}
