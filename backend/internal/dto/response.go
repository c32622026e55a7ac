package dto

// ── Resumos compartilhados entre módulos ──

// WardBrief unidade resumida
type WardBrief struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	MembershipCount int    `json:"membership_count"`
}

// IndicatorBrief indicador resumido
type IndicatorBrief struct {
	ID                string `json:"id"`
	Slug              string `json:"slug"`
	DisplayName       string `json:"display_name"`
	AggregationMethod string `json:"aggregation_method"`
	Responsibility    string `json:"responsibility,omitempty"`
}

// ── Paginação ──

// PaginationRequest parâmetros de paginação comuns
type PaginationRequest struct {
	Page     int `form:"page"      binding:"omitempty,min=1"`
	PageSize int `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// GetPage página com valor padrão
func (p *PaginationRequest) GetPage() int {
	if p.Page <= 0 {
		return 1
	}
	return p.Page
}

// GetPageSize tamanho da página com valor padrão
func (p *PaginationRequest) GetPageSize() int {
	if p.PageSize <= 0 {
		return 20
	}
	return p.PageSize
}

// GetOffset deslocamento calculado
func (p *PaginationRequest) GetOffset() int {
	return (p.GetPage() - 1) * p.GetPageSize()
}
