package repository

import "gorm.io/gorm"

// Repository agregado de todos os repositórios
type Repository struct {
	Ward        WardRepository
	Indicator   IndicatorRepository
	Observation ObservationRepository
	Target      TargetRepository
	User        UserRepository
	Report      ReportRepository
}

// NewRepository cria o agregado com as implementações GORM
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		Ward:        NewWardRepo(db),
		Indicator:   NewIndicatorRepo(db),
		Observation: NewObservationRepo(db),
		Target:      NewTargetRepo(db),
		User:        NewUserRepo(db),
		Report:      NewReportRepo(db),
	}
}
