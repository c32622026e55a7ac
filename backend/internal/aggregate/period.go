package aggregate

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Tokens de período aceitos pelos filtros do painel
const (
	PeriodCurrentMonth = "current-month"
	PeriodLastMonth    = "last-month"
	PeriodLast90Days   = "last-90-days"
	PeriodLast12Months = "last-12-months"
	periodWeekPrefix   = "week:" // week:<AAAA-MM-DD>, ancorado no domingo
)

var ErrUnknownPeriod = errors.New("período desconhecido")

// Range intervalo concreto de datas, inclusivo nas duas pontas
type Range struct {
	Start time.Time
	End   time.Time
}

// Contains verifica se a data cai dentro do intervalo
func (r Range) Contains(d time.Time) bool {
	d = DateOnly(d)
	return !d.Before(DateOnly(r.Start)) && !d.After(DateOnly(r.End))
}

// DateOnly descarta o horário, mantendo só a data
func DateOnly(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, d.Location())
}

// StartOfWeek retorna o domingo mais recente na data ou antes dela
// A semana do painel começa no domingo (dia do lançamento), não na segunda.
func StartOfWeek(d time.Time) time.Time {
	d = DateOnly(d)
	return d.AddDate(0, 0, -int(d.Weekday()))
}

// EndOfWeek retorna o sábado da mesma semana
func EndOfWeek(d time.Time) time.Time {
	return StartOfWeek(d).AddDate(0, 0, 6)
}

// WeekNumber numera a semana contando blocos de 7 dias ancorados no domingo
// a partir de 1º de janeiro do ano do domingo da semana. Convenção única do
// sistema; o ano retornado é o do domingo, não o da data consultada.
func WeekNumber(d time.Time) (week int, year int) {
	sunday := StartOfWeek(d)
	year = sunday.Year()
	jan1 := time.Date(year, 1, 1, 0, 0, 0, 0, sunday.Location())
	offset := int(jan1.Weekday())
	week = (sunday.YearDay() + offset + 6) / 7
	return week, year
}

// WeekLabel rótulo exibido nos filtros, ex.: "Semana 34 de 2026"
func WeekLabel(d time.Time) string {
	week, year := WeekNumber(d)
	return fmt.Sprintf("Semana %d de %d", week, year)
}

// ResolvePeriod converte um token lógico de período em um intervalo concreto
// O modo semana aceita qualquer data-âncora e resolve para domingo..sábado.
func ResolvePeriod(token string, now time.Time) (Range, error) {
	now = DateOnly(now)

	switch {
	case token == PeriodCurrentMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Range{Start: start, End: now}, nil

	case token == PeriodLastMonth:
		firstOfCurrent := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		start := firstOfCurrent.AddDate(0, -1, 0)
		end := firstOfCurrent.AddDate(0, 0, -1)
		return Range{Start: start, End: end}, nil

	case token == PeriodLast90Days:
		return Range{Start: now.AddDate(0, 0, -90), End: now}, nil

	case token == PeriodLast12Months:
		// Aritmética de calendário, não blocos fixos de 30 dias
		return Range{Start: now.AddDate(-1, 0, 0), End: now}, nil

	case strings.HasPrefix(token, periodWeekPrefix):
		anchor, err := time.Parse("2006-01-02", strings.TrimPrefix(token, periodWeekPrefix))
		if err != nil {
			return Range{}, fmt.Errorf("%w: data da semana inválida %q", ErrUnknownPeriod, token)
		}
		sunday := StartOfWeek(anchor)
		return Range{Start: sunday, End: sunday.AddDate(0, 0, 6)}, nil

	default:
		return Range{}, fmt.Errorf("%w: %q", ErrUnknownPeriod, token)
	}
}
