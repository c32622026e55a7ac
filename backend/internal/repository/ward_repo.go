package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/letierre/chamados-a-servir-final/backend/internal/model"
)

// WardRepository acesso às unidades da estaca
type WardRepository interface {
	List(ctx context.Context, activeOnly bool) ([]model.Ward, error)
	GetByID(ctx context.Context, id string) (*model.Ward, error)
	UpdateMembership(ctx context.Context, id string, count int) error
}

type wardRepo struct {
	db *gorm.DB
}

// NewWardRepo cria a implementação GORM de WardRepository
func NewWardRepo(db *gorm.DB) WardRepository {
	return &wardRepo{db: db}
}

func (r *wardRepo) List(ctx context.Context, activeOnly bool) ([]model.Ward, error) {
	var wards []model.Ward
	db := r.db.WithContext(ctx)
	if activeOnly {
		db = db.Where("active = ?", true)
	}
	err := db.Order("name ASC").Find(&wards).Error
	return wards, err
}

func (r *wardRepo) GetByID(ctx context.Context, id string) (*model.Ward, error) {
	var ward model.Ward
	err := r.db.WithContext(ctx).
		Where("ward_id = ?", id).
		First(&ward).Error
	if err != nil {
		return nil, err
	}
	return &ward, nil
}

func (r *wardRepo) UpdateMembership(ctx context.Context, id string, count int) error {
	result := r.db.WithContext(ctx).
		Model(&model.Ward{}).
		Where("ward_id = ?", id).
		Update("membership_count", count)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
