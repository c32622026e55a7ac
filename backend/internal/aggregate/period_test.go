package aggregate

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestStartOfWeek(t *testing.T) {
	cases := []struct {
		name   string
		in     time.Time
		expect time.Time
	}{
		{"quarta volta ao domingo anterior", date(2024, 1, 10), date(2024, 1, 7)},
		{"domingo permanece", date(2024, 1, 7), date(2024, 1, 7)},
		{"sábado volta seis dias", date(2024, 1, 13), date(2024, 1, 7)},
		{"vira mês para trás", date(2024, 2, 2), date(2024, 1, 28)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := StartOfWeek(tc.in)
			if !got.Equal(tc.expect) {
				t.Errorf("esperava %s, obtido %s", tc.expect.Format("2006-01-02"), got.Format("2006-01-02"))
			}
			if got.Weekday() != time.Sunday {
				t.Errorf("início de semana deve ser domingo, obtido %s", got.Weekday())
			}
		})
	}
}

func TestWeekNumber(t *testing.T) {
	// O domingo da semana de 03/01/2024 é 31/12/2023: a semana pertence a 2023
	// (2023 começou num domingo, então 31/12 cai no bloco 53)
	week, year := WeekNumber(date(2024, 1, 3))
	if week != 53 || year != 2023 {
		t.Errorf("esperava semana 53 de 2023, obtido semana %d de %d", week, year)
	}

	week, year = WeekNumber(date(2024, 1, 7))
	if week != 2 || year != 2024 {
		t.Errorf("esperava semana 2 de 2024, obtido semana %d de %d", week, year)
	}

	// Mesma semana, dias diferentes: número idêntico
	w1, y1 := WeekNumber(date(2024, 1, 7))
	w2, y2 := WeekNumber(date(2024, 1, 13))
	if w1 != w2 || y1 != y2 {
		t.Errorf("dias da mesma semana devem ter o mesmo número: %d/%d vs %d/%d", w1, y1, w2, y2)
	}
}

func TestResolvePeriod_CurrentMonth(t *testing.T) {
	now := date(2024, 3, 15)
	r, err := ResolvePeriod(PeriodCurrentMonth, now)
	if err != nil {
		t.Fatalf("não esperava erro: %v", err)
	}
	if !r.Start.Equal(date(2024, 3, 1)) || !r.End.Equal(now) {
		t.Errorf("esperava 01/03..15/03, obtido %s..%s", r.Start, r.End)
	}
}

func TestResolvePeriod_LastMonth(t *testing.T) {
	now := date(2024, 3, 15)
	r, err := ResolvePeriod(PeriodLastMonth, now)
	if err != nil {
		t.Fatalf("não esperava erro: %v", err)
	}
	// Fevereiro de 2024 é bissexto
	if !r.Start.Equal(date(2024, 2, 1)) || !r.End.Equal(date(2024, 2, 29)) {
		t.Errorf("esperava 01/02..29/02, obtido %s..%s", r.Start, r.End)
	}
}

func TestResolvePeriod_RollingWindows(t *testing.T) {
	now := date(2024, 3, 15)

	r, err := ResolvePeriod(PeriodLast90Days, now)
	if err != nil {
		t.Fatalf("não esperava erro: %v", err)
	}
	if !r.Start.Equal(now.AddDate(0, 0, -90)) || !r.End.Equal(now) {
		t.Errorf("janela de 90 dias incorreta: %s..%s", r.Start, r.End)
	}

	r, err = ResolvePeriod(PeriodLast12Months, now)
	if err != nil {
		t.Fatalf("não esperava erro: %v", err)
	}
	// Aritmética de calendário: um ano para trás, não 365 dias fixos
	if !r.Start.Equal(date(2023, 3, 15)) {
		t.Errorf("janela de 12 meses incorreta: %s", r.Start)
	}
}

func TestResolvePeriod_Week(t *testing.T) {
	r, err := ResolvePeriod("week:2024-01-10", date(2024, 3, 15))
	if err != nil {
		t.Fatalf("não esperava erro: %v", err)
	}
	if !r.Start.Equal(date(2024, 1, 7)) || !r.End.Equal(date(2024, 1, 13)) {
		t.Errorf("esperava 07/01..13/01, obtido %s..%s", r.Start, r.End)
	}
}

func TestResolvePeriod_Unknown(t *testing.T) {
	if _, err := ResolvePeriod("quinzena-passada", date(2024, 3, 15)); !errors.Is(err, ErrUnknownPeriod) {
		t.Errorf("esperava ErrUnknownPeriod, obtido: %v", err)
	}
	if _, err := ResolvePeriod("week:10-01-2024", date(2024, 3, 15)); !errors.Is(err, ErrUnknownPeriod) {
		t.Errorf("data de semana mal formada deveria falhar, obtido: %v", err)
	}
}
