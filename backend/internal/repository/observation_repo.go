package repository

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/letierre/chamados-a-servir-final/backend/internal/model"
)

// ObservationFilter filtros do histórico de lançamentos
type ObservationFilter struct {
	WardIDs      []string
	IndicatorIDs []string
	Week         *time.Time // domingo exato
	CreatedFrom  *time.Time
	CreatedTo    *time.Time
}

// ObservationRepository acesso aos lançamentos semanais
type ObservationRepository interface {
	Create(ctx context.Context, obs *model.Observation) error
	GetByID(ctx context.Context, id string) (*model.Observation, error)
	List(ctx context.Context, filter ObservationFilter, offset, limit int) ([]model.Observation, int64, error)
	Update(ctx context.Context, id string, value float64, weekStart *time.Time) error
	Delete(ctx context.Context, id string) error
	DistinctWeeks(ctx context.Context) ([]time.Time, error)
	ListRecent(ctx context.Context, limit int) ([]model.Observation, error)
	LatestWeek(ctx context.Context) (*time.Time, error)
}

type observationRepo struct {
	db *gorm.DB
}

// NewObservationRepo cria a implementação GORM de ObservationRepository
func NewObservationRepo(db *gorm.DB) ObservationRepository {
	return &observationRepo{db: db}
}

func (r *observationRepo) Create(ctx context.Context, obs *model.Observation) error {
	// Duplicata em (ward, indicador, semana) chega aqui como
	// gorm.ErrDuplicatedKey via TranslateError
	return r.db.WithContext(ctx).Create(obs).Error
}

func (r *observationRepo) GetByID(ctx context.Context, id string) (*model.Observation, error) {
	var obs model.Observation
	err := r.db.WithContext(ctx).
		Preload("Ward").
		Preload("Indicator").
		Where("entry_id = ?", id).
		First(&obs).Error
	if err != nil {
		return nil, err
	}
	return &obs, nil
}

func (r *observationRepo) List(ctx context.Context, filter ObservationFilter, offset, limit int) ([]model.Observation, int64, error) {
	var observations []model.Observation
	var total int64

	db := r.db.WithContext(ctx).Model(&model.Observation{})

	if len(filter.WardIDs) > 0 {
		db = db.Where("ward_id IN ?", filter.WardIDs)
	}
	if len(filter.IndicatorIDs) > 0 {
		db = db.Where("indicator_id IN ?", filter.IndicatorIDs)
	}
	if filter.Week != nil {
		db = db.Where("week_start = ?", filter.Week.Format("2006-01-02"))
	}
	if filter.CreatedFrom != nil {
		db = db.Where("created_at >= ?", *filter.CreatedFrom)
	}
	if filter.CreatedTo != nil {
		db = db.Where("created_at <= ?", *filter.CreatedTo)
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := db.Preload("Ward").
		Preload("Indicator").
		Offset(offset).Limit(limit).
		Order("week_start DESC, created_at DESC").
		Find(&observations).Error
	return observations, total, err
}

func (r *observationRepo) Update(ctx context.Context, id string, value float64, weekStart *time.Time) error {
	updates := map[string]interface{}{"value": value}
	if weekStart != nil {
		// Mover para semana já lançada viola uq_weekly_entry e chega como
		// gorm.ErrDuplicatedKey via TranslateError
		updates["week_start"] = weekStart.Format("2006-01-02")
	}
	result := r.db.WithContext(ctx).
		Model(&model.Observation{}).
		Where("entry_id = ?", id).
		Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *observationRepo) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).
		Where("entry_id = ?", id).
		Delete(&model.Observation{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *observationRepo) DistinctWeeks(ctx context.Context) ([]time.Time, error) {
	var weeks []time.Time
	err := r.db.WithContext(ctx).
		Model(&model.Observation{}).
		Distinct("week_start").
		Order("week_start DESC").
		Pluck("week_start", &weeks).Error
	return weeks, err
}

func (r *observationRepo) ListRecent(ctx context.Context, limit int) ([]model.Observation, error) {
	var observations []model.Observation
	err := r.db.WithContext(ctx).
		Preload("Ward").
		Preload("Indicator").
		Order("created_at DESC").
		Limit(limit).
		Find(&observations).Error
	return observations, err
}

func (r *observationRepo) LatestWeek(ctx context.Context) (*time.Time, error) {
	var obs model.Observation
	err := r.db.WithContext(ctx).
		Order("week_start DESC").
		First(&obs).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	week := obs.WeekStart
	return &week, nil
}
