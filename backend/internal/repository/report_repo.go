package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/letierre/chamados-a-servir-final/backend/internal/aggregate"
)

// ReportRepository leitura achatada dos lançamentos para agregação
//
// Devolve linhas cruas já juntadas com unidade e indicador, no formato que
// o pacote aggregate consome. A consulta não corta pelo início do período:
// indicadores de estoque (snapshot) precisam enxergar o último valor lançado
// mesmo que seja anterior à janela.
type ReportRepository interface {
	Rows(ctx context.Context, end time.Time) ([]aggregate.Row, error)
	RowsByWard(ctx context.Context, wardID string, end time.Time) ([]aggregate.Row, error)
}

type reportRepo struct {
	db *gorm.DB
}

// NewReportRepo cria a implementação GORM de ReportRepository
func NewReportRepo(db *gorm.DB) ReportRepository {
	return &reportRepo{db: db}
}

const reportRowsSelect = `
	w.ward_id         AS ward_id,
	w.name            AS ward_name,
	w.membership_count AS membership,
	i.indicator_id    AS indicator_id,
	i.slug            AS slug,
	i.display_name    AS display_name,
	i.indicator_type  AS indicator_type,
	i.aggregation_method AS method,
	i.responsibility  AS responsibility,
	i.order_index     AS order_index,
	d.week_start      AS week_start,
	d.value           AS value`

func (r *reportRepo) Rows(ctx context.Context, end time.Time) ([]aggregate.Row, error) {
	var rows []aggregate.Row
	err := r.db.WithContext(ctx).
		Table("weekly_indicator_data d").
		Select(reportRowsSelect).
		Joins("JOIN wards w ON w.ward_id = d.ward_id").
		Joins("JOIN indicators i ON i.indicator_id = d.indicator_id").
		Where("w.active = ? AND i.active = ?", true, true).
		Where("d.week_start <= ?", end.Format("2006-01-02")).
		Order("i.order_index ASC, w.name ASC, d.week_start ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *reportRepo) RowsByWard(ctx context.Context, wardID string, end time.Time) ([]aggregate.Row, error) {
	var rows []aggregate.Row
	err := r.db.WithContext(ctx).
		Table("weekly_indicator_data d").
		Select(reportRowsSelect).
		Joins("JOIN wards w ON w.ward_id = d.ward_id").
		Joins("JOIN indicators i ON i.indicator_id = d.indicator_id").
		Where("w.active = ? AND i.active = ?", true, true).
		Where("d.ward_id = ?", wardID).
		Where("d.week_start <= ?", end.Format("2006-01-02")).
		Order("i.order_index ASC, d.week_start ASC").
		Scan(&rows).Error
	return rows, err
}
