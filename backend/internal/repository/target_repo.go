package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/letierre/chamados-a-servir-final/backend/internal/model"
)

// TargetRepository acesso às metas anuais
type TargetRepository interface {
	Upsert(ctx context.Context, target *model.Target) error
	ListByYear(ctx context.Context, year int) ([]model.Target, error)
	Get(ctx context.Context, wardID, indicatorID string, year int) (*model.Target, error)
	ListByIndicatorYear(ctx context.Context, indicatorID string, year int) ([]model.Target, error)
}

type targetRepo struct {
	db *gorm.DB
}

// NewTargetRepo cria a implementação GORM de TargetRepository
func NewTargetRepo(db *gorm.DB) TargetRepository {
	return &targetRepo{db: db}
}

func (r *targetRepo) Upsert(ctx context.Context, target *model.Target) error {
	// Conflito em (ward, indicador, ano) apenas atualiza o valor da meta
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "ward_id"}, {Name: "indicator_id"}, {Name: "year"}},
			DoUpdates: clause.AssignmentColumns([]string{"target_value", "updated_at"}),
		}).
		Create(target).Error
}

func (r *targetRepo) ListByYear(ctx context.Context, year int) ([]model.Target, error) {
	var targets []model.Target
	err := r.db.WithContext(ctx).
		Where("year = ?", year).
		Find(&targets).Error
	return targets, err
}

func (r *targetRepo) Get(ctx context.Context, wardID, indicatorID string, year int) (*model.Target, error) {
	var target model.Target
	err := r.db.WithContext(ctx).
		Where("ward_id = ? AND indicator_id = ? AND year = ?", wardID, indicatorID, year).
		First(&target).Error
	if err != nil {
		return nil, err
	}
	return &target, nil
}

func (r *targetRepo) ListByIndicatorYear(ctx context.Context, indicatorID string, year int) ([]model.Target, error) {
	var targets []model.Target
	err := r.db.WithContext(ctx).
		Where("indicator_id = ? AND year = ?", indicatorID, year).
		Find(&targets).Error
	return targets, err
}
