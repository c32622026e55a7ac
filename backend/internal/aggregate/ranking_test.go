package aggregate

import "testing"

func TestScore(t *testing.T) {
	cases := []struct {
		name       string
		value      float64
		membership int
		expect     int
	}{
		{"proporcional por mil", 50, 100, 500},
		{"unidade maior pontua menos com o mesmo valor", 50, 200, 250},
		{"membership zero usa divisor 1", 7, 0, 7000},
		{"membership negativo usa divisor 1", 3, -5, 3000},
		{"arredonda para o inteiro mais próximo", 1, 3, 333},
		{"valor zero pontua zero", 0, 150, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Score(tc.value, tc.membership); got != tc.expect {
				t.Errorf("esperava %d, obtido %d", tc.expect, got)
			}
		})
	}
}

func TestRank_ProportionalBeatsAbsolute(t *testing.T) {
	// Mesmo valor absoluto: a unidade menor vence no proporcional
	byWard := []WardValue{
		{WardID: "a", WardName: "Ala A", Membership: 100, Value: 50, Score: Score(50, 100)},
		{WardID: "b", WardName: "Ala B", Membership: 200, Value: 50, Score: Score(50, 200)},
	}
	sortByScore(byWard)
	best, worst := Rank(byWard)

	if best.WardName != "Ala A" || best.Score != 500 {
		t.Errorf("esperava Ala A (500) como melhor, obtido %s (%d)", best.WardName, best.Score)
	}
	if worst.WardName != "Ala B" || worst.Score != 250 {
		t.Errorf("esperava Ala B (250) como pior, obtido %s (%d)", worst.WardName, worst.Score)
	}
}

func TestRank_TieBreaksByWardName(t *testing.T) {
	// Empate de score: desempate alfabético mantém o ranking determinístico
	byWard := []WardValue{
		{WardID: "c", WardName: "Ala Central", Membership: 100, Value: 10, Score: 100},
		{WardID: "a", WardName: "Ala Aurora", Membership: 100, Value: 10, Score: 100},
	}
	sortByScore(byWard)

	if byWard[0].WardName != "Ala Aurora" {
		t.Errorf("esperava Ala Aurora primeiro no empate, obtido %s", byWard[0].WardName)
	}
}

func TestRank_AllZeroDegradesToPlaceholder(t *testing.T) {
	byWard := []WardValue{
		{WardID: "a", WardName: "Ala A", Membership: 100},
		{WardID: "b", WardName: "Ala B", Membership: 200},
	}
	sortByScore(byWard)
	best, worst := Rank(byWard)

	if best.WardName != "-" || worst.WardName != "-" {
		t.Errorf("tudo zerado deve devolver '-', obtido %q/%q", best.WardName, worst.WardName)
	}
}

func TestRank_Empty(t *testing.T) {
	best, worst := Rank(nil)
	if best.WardName != "-" || worst.WardName != "-" {
		t.Errorf("lista vazia deve devolver '-', obtido %q/%q", best.WardName, worst.WardName)
	}
}
