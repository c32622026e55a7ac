package model

import "time"

// BaseModel campos de auditoria comuns (embutido em todos os modelos)
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// Métodos de agregação dos indicadores (coluna aggregation_method)
const (
	AggSum      = "sum"      // acumula os lançamentos do período
	AggAvg      = "avg"      // média das semanas lançadas
	AggSnapshot = "snapshot" // último valor reportado (estoque, não zera)
)

// Papéis de usuário
const (
	RoleAdmin     = "admin"
	RoleSecretary = "secretary"
)
