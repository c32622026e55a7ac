package aggregate

import (
	"math"
	"sort"
	"time"
)

// Row linha crua de lançamento já achatada com unidade e indicador
// Mesmo formato para o relatório e para o dashboard; quem busca é o repositório.
type Row struct {
	WardID         string
	WardName       string
	Membership     int
	IndicatorID    string
	Slug           string
	DisplayName    string
	IndicatorType  string
	Method         string // sum | avg | snapshot
	Responsibility string
	OrderIndex     int
	WeekStart      time.Time
	Value          float64
}

// WardValue agregado de uma unidade para um indicador
type WardValue struct {
	WardID     string  `json:"ward_id"`
	WardName   string  `json:"ward_name"`
	Membership int     `json:"membership"`
	Value      float64 `json:"value"`
	Score      int     `json:"score"` // proporcional por mil membros
}

// Placing melhor/pior colocado no ranking
type Placing struct {
	WardName string  `json:"ward_name"`
	Value    float64 `json:"value"`
	Score    int     `json:"score"`
}

// IndicatorSummary resumo de um indicador no período
type IndicatorSummary struct {
	IndicatorID    string      `json:"indicator_id"`
	DisplayName    string      `json:"display_name"`
	Slug           string      `json:"slug"`
	Method         string      `json:"aggregation_method"`
	Responsibility string      `json:"responsibility"`
	OrderIndex     int         `json:"order_index"`
	StakeTotal     float64     `json:"stake_total"`
	ByWard         []WardValue `json:"by_ward"`
	Best           Placing     `json:"best"`
	Worst          Placing     `json:"worst"`
}

// Summarize computa um agregado por unidade e o total da estaca por indicador
//
// Regras por método:
//   - sum: soma dos lançamentos dentro do intervalo; total da estaca = soma das unidades.
//   - avg: média arredondada dos lançamentos da unidade no intervalo; total da
//     estaca = média arredondada das médias por unidade (cada unidade pesa
//     igual, independente de quantas semanas lançou). Unidades sem lançamento
//     no intervalo ficam fora do denominador.
//   - snapshot: último valor lançado até o fim do intervalo, sem limite de
//     retrocesso: a ausência de lançamento novo não zera o indicador; total
//     da estaca = soma dos snapshots.
//
// Conjunto vazio nunca é erro: soma vazia vale 0.
func Summarize(rows []Row, r Range) []IndicatorSummary {
	type wardAcc struct {
		name       string
		membership int
		inRange    []float64 // valores dentro do intervalo, ordem de semana
		lastBefore *float64  // valor mais recente com week_start <= fim
		lastWeek   time.Time
	}
	type indAcc struct {
		first Row
		wards map[string]*wardAcc
		order []string // ordem de primeira aparição das unidades
	}

	end := DateOnly(r.End)

	byIndicator := make(map[string]*indAcc)
	indOrder := make([]string, 0)

	for _, row := range rows {
		ind, ok := byIndicator[row.IndicatorID]
		if !ok {
			ind = &indAcc{first: row, wards: make(map[string]*wardAcc)}
			byIndicator[row.IndicatorID] = ind
			indOrder = append(indOrder, row.IndicatorID)
		}
		w, ok := ind.wards[row.WardID]
		if !ok {
			w = &wardAcc{name: row.WardName, membership: row.Membership}
			ind.wards[row.WardID] = w
			ind.order = append(ind.order, row.WardID)
		}

		week := DateOnly(row.WeekStart)
		if r.Contains(week) {
			w.inRange = append(w.inRange, row.Value)
		}
		if !week.After(end) {
			if w.lastBefore == nil || week.After(w.lastWeek) {
				v := row.Value
				w.lastBefore = &v
				w.lastWeek = week
			}
		}
	}

	summaries := make([]IndicatorSummary, 0, len(byIndicator))
	for _, indID := range indOrder {
		ind := byIndicator[indID]

		byWard := make([]WardValue, 0, len(ind.wards))
		var stakeSum float64
		avgUnits := 0

		for _, wardID := range ind.order {
			w := ind.wards[wardID]

			var value float64
			switch ind.first.Method {
			case "avg":
				if len(w.inRange) > 0 {
					var sum float64
					for _, v := range w.inRange {
						sum += v
					}
					value = math.Round(sum / float64(len(w.inRange)))
					avgUnits++
				}
			case "snapshot":
				if w.lastBefore != nil {
					value = *w.lastBefore
				}
			default: // sum
				for _, v := range w.inRange {
					value += v
				}
			}

			byWard = append(byWard, WardValue{
				WardID:     wardID,
				WardName:   w.name,
				Membership: w.membership,
				Value:      value,
				Score:      Score(value, w.membership),
			})
			stakeSum += value
		}

		var stakeTotal float64
		if ind.first.Method == "avg" {
			// Média das médias, não média achatada de todas as linhas cruas
			if avgUnits > 0 {
				stakeTotal = math.Round(stakeSum / float64(avgUnits))
			}
		} else {
			stakeTotal = stakeSum
		}

		sortByScore(byWard)
		best, worst := Rank(byWard)

		summaries = append(summaries, IndicatorSummary{
			IndicatorID:    indID,
			DisplayName:    ind.first.DisplayName,
			Slug:           ind.first.Slug,
			Method:         ind.first.Method,
			Responsibility: ind.first.Responsibility,
			OrderIndex:     ind.first.OrderIndex,
			StakeTotal:     stakeTotal,
			ByWard:         byWard,
			Best:           best,
			Worst:          worst,
		})
	}

	sort.SliceStable(summaries, func(i, j int) bool {
		return summaries[i].OrderIndex < summaries[j].OrderIndex
	})

	return summaries
}
