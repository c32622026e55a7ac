package model

// Target meta anual por (unidade, indicador, ano), tabela targets
type Target struct {
	TargetID    string  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"target_id"`
	WardID      string  `gorm:"type:uuid;not null"                             json:"ward_id"`
	IndicatorID string  `gorm:"type:uuid;not null"                             json:"indicator_id"`
	Year        int     `gorm:"not null"                                       json:"year"`
	TargetValue float64 `gorm:"type:numeric(10,2);not null;default:0"          json:"target_value"`
	BaseModel
}

// TableName nome da tabela
func (Target) TableName() string { return "targets" }
