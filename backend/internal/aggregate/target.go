package aggregate

import "math"

// Progress percentual de avanço rumo à meta, sempre em [0, 100]
// Meta zero ou negativa devolve 0, nunca divisão por zero.
func Progress(aggregate, target float64) int {
	if target <= 0 {
		return 0
	}
	pct := int(math.Round(aggregate / target * 100))
	if pct > 100 {
		pct = 100
	}
	if pct < 0 {
		pct = 0
	}
	return pct
}

// Gap quanto falta para a meta; nunca negativo
// Meta superada devolve 0 ("meta atingida"), não um saldo negativo.
func Gap(aggregate, target float64) float64 {
	gap := target - aggregate
	if gap < 0 {
		return 0
	}
	return gap
}

// TargetMet indica se a meta foi alcançada ou superada
func TargetMet(aggregate, target float64) bool {
	return target > 0 && aggregate >= target
}
