package aggregate

import (
	"math"
	"sort"
)

// Score pontuação proporcional por mil membros
// Divisor mínimo 1: unidade com membership zero ou não informado nunca
// produz divisão por zero, Inf ou NaN.
func Score(value float64, membership int) int {
	if membership < 1 {
		membership = 1
	}
	return int(math.Round(value / float64(membership) * 1000))
}

// sortByScore ordena por score decrescente com desempate determinístico
// pelo nome da unidade, para que o ranking seja estável entre execuções.
func sortByScore(byWard []WardValue) {
	sort.SliceStable(byWard, func(i, j int) bool {
		if byWard[i].Score != byWard[j].Score {
			return byWard[i].Score > byWard[j].Score
		}
		return byWard[i].WardName < byWard[j].WardName
	})
}

// Rank devolve a melhor e a pior unidade do indicador
// Pressupõe byWard já ordenado por score. Quando todas as unidades estão
// zeradas, melhor e pior degradam para o marcador "-" em vez de erro.
func Rank(byWard []WardValue) (best, worst Placing) {
	if len(byWard) == 0 {
		return Placing{WardName: "-"}, Placing{WardName: "-"}
	}

	allZero := true
	for _, w := range byWard {
		if w.Value != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		return Placing{WardName: "-"}, Placing{WardName: "-"}
	}

	first := byWard[0]
	last := byWard[len(byWard)-1]
	return Placing{WardName: first.WardName, Value: first.Value, Score: first.Score},
		Placing{WardName: last.WardName, Value: last.Value, Score: last.Score}
}
