package model

import "time"

// Observation lançamento semanal, tabela weekly_indicator_data
// Invariante: no máximo um lançamento por (ward_id, indicator_id, week_start),
// garantido pela constraint uq_weekly_entry; week_start é sempre um domingo.
type Observation struct {
	EntryID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"entry_id"`
	WardID      string    `gorm:"type:uuid;not null"                             json:"ward_id"`
	IndicatorID string    `gorm:"type:uuid;not null"                             json:"indicator_id"`
	Value       float64   `gorm:"type:numeric(10,2);not null"                    json:"value"`
	WeekStart   time.Time `gorm:"type:date;not null"                             json:"week_start"`
	Source      string    `gorm:"type:varchar(20);not null;default:'manual'"     json:"source"`
	CreatedBy   *string   `gorm:"type:uuid"                                      json:"created_by,omitempty"`
	BaseModel

	// Associações
	Ward      *Ward      `gorm:"foreignKey:WardID;references:WardID"                json:"ward,omitempty"`
	Indicator *Indicator `gorm:"foreignKey:IndicatorID;references:IndicatorID"      json:"indicator,omitempty"`
}

// TableName nome da tabela
func (Observation) TableName() string { return "weekly_indicator_data" }
