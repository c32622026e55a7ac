package model

// Indicator definição de indicador, tabela indicators (catálogo estático)
type Indicator struct {
	IndicatorID       string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"indicator_id"`
	Slug              string `gorm:"type:varchar(80);not null;uniqueIndex"          json:"slug"`
	DisplayName       string `gorm:"type:varchar(150);not null"                     json:"display_name"`
	IndicatorType     string `gorm:"type:varchar(20);not null;default:'fluxo'"      json:"indicator_type"` // fluxo | estoque
	AggregationMethod string `gorm:"type:varchar(10);not null"                      json:"aggregation_method"` // sum | avg | snapshot
	Responsibility    string `gorm:"type:varchar(100);not null;default:''"          json:"responsibility"`
	OrderIndex        int    `gorm:"not null;default:0"                             json:"order_index"`
	Active            bool   `gorm:"not null;default:true"                          json:"active"`
	BaseModel
}

// TableName nome da tabela
func (Indicator) TableName() string { return "indicators" }

// Slugs com tratamento especial no lançamento e no dashboard
const (
	SlugFrequenciaSacramental = "frequencia_sacramental"
	SlugBatismoConverso       = "batismo_converso"
	SlugMembrosRetornando     = "membros_retornando_a_igreja"
	SlugMembrosParticipantes  = "membros_participantes"
	SlugMembrosJejuando       = "membros_jejuando"
	SlugMissionariosServindo  = "missionario_servindo_missao_do_brasil"
	SlugRecomendacaoComInv    = "recomendacao_templo_com_investidura"
	SlugRecomendacaoSemInv    = "recomendacao_templo_sem_investidura"
)
