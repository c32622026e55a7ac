package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/letierre/chamados-a-servir-final/backend/internal/model"
)

// IndicatorRepository acesso ao catálogo de indicadores
type IndicatorRepository interface {
	ListActive(ctx context.Context) ([]model.Indicator, error)
	GetByID(ctx context.Context, id string) (*model.Indicator, error)
	GetBySlug(ctx context.Context, slug string) (*model.Indicator, error)
}

type indicatorRepo struct {
	db *gorm.DB
}

// NewIndicatorRepo cria a implementação GORM de IndicatorRepository
func NewIndicatorRepo(db *gorm.DB) IndicatorRepository {
	return &indicatorRepo{db: db}
}

func (r *indicatorRepo) ListActive(ctx context.Context) ([]model.Indicator, error) {
	var indicators []model.Indicator
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("order_index ASC").
		Find(&indicators).Error
	return indicators, err
}

func (r *indicatorRepo) GetByID(ctx context.Context, id string) (*model.Indicator, error) {
	var indicator model.Indicator
	err := r.db.WithContext(ctx).
		Where("indicator_id = ?", id).
		First(&indicator).Error
	if err != nil {
		return nil, err
	}
	return &indicator, nil
}

func (r *indicatorRepo) GetBySlug(ctx context.Context, slug string) (*model.Indicator, error) {
	var indicator model.Indicator
	err := r.db.WithContext(ctx).
		Where("slug = ?", slug).
		First(&indicator).Error
	if err != nil {
		return nil, err
	}
	return &indicator, nil
}
