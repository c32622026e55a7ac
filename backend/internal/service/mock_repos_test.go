package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/letierre/chamados-a-servir-final/backend/internal/aggregate"
	"github.com/letierre/chamados-a-servir-final/backend/internal/model"
	"github.com/letierre/chamados-a-servir-final/backend/internal/repository"
)

// ── Mock WardRepository ──

type mockWardRepo struct {
	wards      map[string]*model.Ward
	failUpdate bool // simula pane ao atualizar a contagem de membros
}

func newMockWardRepo() *mockWardRepo {
	return &mockWardRepo{wards: make(map[string]*model.Ward)}
}

func (m *mockWardRepo) List(_ context.Context, activeOnly bool) ([]model.Ward, error) {
	var result []model.Ward
	for _, w := range m.wards {
		if activeOnly && !w.Active {
			continue
		}
		result = append(result, *w)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (m *mockWardRepo) GetByID(_ context.Context, id string) (*model.Ward, error) {
	if w, ok := m.wards[id]; ok {
		return w, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockWardRepo) UpdateMembership(_ context.Context, id string, count int) error {
	if m.failUpdate {
		return errors.New("banco indisponível")
	}
	w, ok := m.wards[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	w.MembershipCount = count
	return nil
}

// ── Mock IndicatorRepository ──

type mockIndicatorRepo struct {
	indicators map[string]*model.Indicator
}

func newMockIndicatorRepo() *mockIndicatorRepo {
	return &mockIndicatorRepo{indicators: make(map[string]*model.Indicator)}
}

func (m *mockIndicatorRepo) ListActive(_ context.Context) ([]model.Indicator, error) {
	var result []model.Indicator
	for _, ind := range m.indicators {
		if ind.Active {
			result = append(result, *ind)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].OrderIndex < result[j].OrderIndex })
	return result, nil
}

func (m *mockIndicatorRepo) GetByID(_ context.Context, id string) (*model.Indicator, error) {
	if ind, ok := m.indicators[id]; ok {
		return ind, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockIndicatorRepo) GetBySlug(_ context.Context, slug string) (*model.Indicator, error) {
	for _, ind := range m.indicators {
		if ind.Slug == slug {
			return ind, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

// ── Mock ObservationRepository ──

type mockObservationRepo struct {
	observations     []model.Observation
	idCounter        int
	failForIndicator string // simula pane ao gravar este indicador
}

func newMockObservationRepo() *mockObservationRepo {
	return &mockObservationRepo{}
}

func (m *mockObservationRepo) Create(_ context.Context, obs *model.Observation) error {
	if m.failForIndicator != "" && obs.IndicatorID == m.failForIndicator {
		return errors.New("banco indisponível")
	}
	// Emula a constraint uq_weekly_entry
	for _, existing := range m.observations {
		if existing.WardID == obs.WardID &&
			existing.IndicatorID == obs.IndicatorID &&
			existing.WeekStart.Equal(obs.WeekStart) {
			return gorm.ErrDuplicatedKey
		}
	}
	m.idCounter++
	if obs.EntryID == "" {
		obs.EntryID = fmt.Sprintf("entry-%d", m.idCounter)
	}
	obs.CreatedAt = time.Now()
	obs.UpdatedAt = obs.CreatedAt
	m.observations = append(m.observations, *obs)
	return nil
}

func (m *mockObservationRepo) GetByID(_ context.Context, id string) (*model.Observation, error) {
	for i, obs := range m.observations {
		if obs.EntryID == id {
			return &m.observations[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockObservationRepo) List(_ context.Context, filter repository.ObservationFilter, offset, limit int) ([]model.Observation, int64, error) {
	var filtered []model.Observation
	for _, obs := range m.observations {
		if len(filter.WardIDs) > 0 && !containsStr(filter.WardIDs, obs.WardID) {
			continue
		}
		if len(filter.IndicatorIDs) > 0 && !containsStr(filter.IndicatorIDs, obs.IndicatorID) {
			continue
		}
		if filter.Week != nil && !obs.WeekStart.Equal(*filter.Week) {
			continue
		}
		if filter.CreatedFrom != nil && obs.CreatedAt.Before(*filter.CreatedFrom) {
			continue
		}
		if filter.CreatedTo != nil && obs.CreatedAt.After(*filter.CreatedTo) {
			continue
		}
		filtered = append(filtered, obs)
	}
	total := int64(len(filtered))
	if offset >= len(filtered) {
		return nil, total, nil
	}
	end := offset + limit
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[offset:end], total, nil
}

func (m *mockObservationRepo) Update(_ context.Context, id string, value float64, weekStart *time.Time) error {
	for i, obs := range m.observations {
		if obs.EntryID != id {
			continue
		}
		if weekStart != nil {
			// Emula a constraint uq_weekly_entry ao mover de semana
			for _, other := range m.observations {
				if other.EntryID != id &&
					other.WardID == obs.WardID &&
					other.IndicatorID == obs.IndicatorID &&
					other.WeekStart.Equal(*weekStart) {
					return gorm.ErrDuplicatedKey
				}
			}
			m.observations[i].WeekStart = *weekStart
		}
		m.observations[i].Value = value
		return nil
	}
	return gorm.ErrRecordNotFound
}

func (m *mockObservationRepo) Delete(_ context.Context, id string) error {
	for i, obs := range m.observations {
		if obs.EntryID == id {
			m.observations = append(m.observations[:i], m.observations[i+1:]...)
			return nil
		}
	}
	return gorm.ErrRecordNotFound
}

func (m *mockObservationRepo) DistinctWeeks(_ context.Context) ([]time.Time, error) {
	seen := make(map[string]bool)
	var weeks []time.Time
	for _, obs := range m.observations {
		key := obs.WeekStart.Format("2006-01-02")
		if !seen[key] {
			seen[key] = true
			weeks = append(weeks, obs.WeekStart)
		}
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].After(weeks[j]) })
	return weeks, nil
}

func (m *mockObservationRepo) ListRecent(_ context.Context, limit int) ([]model.Observation, error) {
	result := make([]model.Observation, len(m.observations))
	copy(result, m.observations)
	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.After(result[j].CreatedAt) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (m *mockObservationRepo) LatestWeek(_ context.Context) (*time.Time, error) {
	var latest *time.Time
	for i, obs := range m.observations {
		if latest == nil || obs.WeekStart.After(*latest) {
			latest = &m.observations[i].WeekStart
		}
	}
	return latest, nil
}

// ── Mock TargetRepository ──

type mockTargetRepo struct {
	targets []model.Target
}

func newMockTargetRepo() *mockTargetRepo {
	return &mockTargetRepo{}
}

func (m *mockTargetRepo) Upsert(_ context.Context, target *model.Target) error {
	for i, t := range m.targets {
		if t.WardID == target.WardID && t.IndicatorID == target.IndicatorID && t.Year == target.Year {
			m.targets[i].TargetValue = target.TargetValue
			return nil
		}
	}
	if target.TargetID == "" {
		target.TargetID = fmt.Sprintf("target-%d", len(m.targets)+1)
	}
	m.targets = append(m.targets, *target)
	return nil
}

func (m *mockTargetRepo) ListByYear(_ context.Context, year int) ([]model.Target, error) {
	var result []model.Target
	for _, t := range m.targets {
		if t.Year == year {
			result = append(result, t)
		}
	}
	return result, nil
}

func (m *mockTargetRepo) Get(_ context.Context, wardID, indicatorID string, year int) (*model.Target, error) {
	for i, t := range m.targets {
		if t.WardID == wardID && t.IndicatorID == indicatorID && t.Year == year {
			return &m.targets[i], nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockTargetRepo) ListByIndicatorYear(_ context.Context, indicatorID string, year int) ([]model.Target, error) {
	var result []model.Target
	for _, t := range m.targets {
		if t.IndicatorID == indicatorID && t.Year == year {
			result = append(result, t)
		}
	}
	return result, nil
}

// ── Mock UserRepository ──

type mockUserRepo struct {
	users map[string]*model.User
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[string]*model.User)}
}

func (m *mockUserRepo) Create(_ context.Context, user *model.User) error {
	if user.UserID == "" {
		user.UserID = "user-" + user.Email
	}
	m.users[user.UserID] = user
	return nil
}

func (m *mockUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	if u, ok := m.users[id]; ok {
		return u, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockUserRepo) Update(_ context.Context, user *model.User) error {
	m.users[user.UserID] = user
	return nil
}

// ── Mock ReportRepository ──

// mockReportRepo deriva as linhas achatadas dos mocks de lançamento,
// unidade e indicador, como a consulta juntada faria
type mockReportRepo struct {
	observations *mockObservationRepo
	wards        *mockWardRepo
	indicators   *mockIndicatorRepo
}

func (m *mockReportRepo) Rows(_ context.Context, end time.Time) ([]aggregate.Row, error) {
	return m.rows("", end), nil
}

func (m *mockReportRepo) RowsByWard(_ context.Context, wardID string, end time.Time) ([]aggregate.Row, error) {
	return m.rows(wardID, end), nil
}

func (m *mockReportRepo) rows(wardID string, end time.Time) []aggregate.Row {
	var rows []aggregate.Row
	for _, obs := range m.observations.observations {
		if wardID != "" && obs.WardID != wardID {
			continue
		}
		if obs.WeekStart.After(end) {
			continue
		}
		ward, ok := m.wards.wards[obs.WardID]
		if !ok || !ward.Active {
			continue
		}
		ind, ok := m.indicators.indicators[obs.IndicatorID]
		if !ok || !ind.Active {
			continue
		}
		rows = append(rows, aggregate.Row{
			WardID:         ward.WardID,
			WardName:       ward.Name,
			Membership:     ward.MembershipCount,
			IndicatorID:    ind.IndicatorID,
			Slug:           ind.Slug,
			DisplayName:    ind.DisplayName,
			IndicatorType:  ind.IndicatorType,
			Method:         ind.AggregationMethod,
			Responsibility: ind.Responsibility,
			OrderIndex:     ind.OrderIndex,
			WeekStart:      obs.WeekStart,
			Value:          obs.Value,
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].OrderIndex != rows[j].OrderIndex {
			return rows[i].OrderIndex < rows[j].OrderIndex
		}
		return rows[i].WeekStart.Before(rows[j].WeekStart)
	})
	return rows
}

// ── Montagem do agregado de teste ──

type testMocks struct {
	wards        *mockWardRepo
	indicators   *mockIndicatorRepo
	observations *mockObservationRepo
	targets      *mockTargetRepo
	users        *mockUserRepo
}

func newTestRepo() (*repository.Repository, *testMocks) {
	mocks := &testMocks{
		wards:        newMockWardRepo(),
		indicators:   newMockIndicatorRepo(),
		observations: newMockObservationRepo(),
		targets:      newMockTargetRepo(),
		users:        newMockUserRepo(),
	}
	repo := &repository.Repository{
		Ward:        mocks.wards,
		Indicator:   mocks.indicators,
		Observation: mocks.observations,
		Target:      mocks.targets,
		User:        mocks.users,
		Report: &mockReportRepo{
			observations: mocks.observations,
			wards:        mocks.wards,
			indicators:   mocks.indicators,
		},
	}
	return repo, mocks
}

func containsStr(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// seedWard registra uma unidade ativa no mock
func seedWard(m *testMocks, id, name string, membership int) {
	m.wards.wards[id] = &model.Ward{
		WardID:          id,
		Name:            name,
		MembershipCount: membership,
		Active:          true,
	}
}

// seedIndicator registra um indicador ativo no mock
func seedIndicator(m *testMocks, id, slug, method string, orderIndex int) {
	m.indicators.indicators[id] = &model.Indicator{
		IndicatorID:       id,
		Slug:              slug,
		DisplayName:       slug,
		IndicatorType:     "fluxo",
		AggregationMethod: method,
		OrderIndex:        orderIndex,
		Active:            true,
	}
}
