package fitness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBMI(t *testing.T) {
	tests := []struct {
		name     string
		weight   float64
		height   float64
		value    float64
		category string
	}{
		{"нормальный вес", 70, 175, 22.9, "нормальный вес"},
		{"ожирение III степени", 120, 170, 41.5, "ожирение III степени"},
		{"недостаток веса", 18.4, 100, 18.4, "недостаток веса"},
		{"граница нормы", 18.5, 100, 18.5, "нормальный вес"},
		{"граница избыточного", 25, 100, 25.0, "избыточный вес"},
		{"граница ожирения I", 30, 100, 30.0, "ожирение I степени"},
		{"граница ожирения II", 35, 100, 35.0, "ожирение II степени"},
		{"граница ожирения III", 40, 100, 40.0, "ожирение III степени"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, category, ok := BMI(tt.weight, tt.height)
			require.True(t, ok)
			require.InDelta(t, tt.value, value, 0.001)
			require.Equal(t, tt.category, category)
		})
	}
}

func TestBMIRequiresWeightAndHeight(t *testing.T) {
	_, _, ok := BMI(0, 175)
	require.False(t, ok)

	_, _, ok = BMI(70, 0)
	require.False(t, ok)

	_, _, ok = BMI(-5, 175)
	require.False(t, ok)
}

func TestStatsWindows(t *testing.T) {
	today := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	dates := []string{
		today.AddDate(0, 0, -6).Format("2006-01-02"),
		today.AddDate(0, 0, -7).Format("2006-01-02"),
		today.AddDate(0, 0, -31).Format("2006-01-02"),
	}

	s := Stats(dates, today)
	require.Equal(t, 3, s.Total)
	require.Equal(t, 1, s.Last7)  // только запись возрастом 6 дней
	require.Equal(t, 2, s.Last30) // записи возрастом 6 и 7 дней
}

func TestStatsToday(t *testing.T) {
	today := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	dates := []string{today.Format("2006-01-02")}

	s := Stats(dates, today)
	require.Equal(t, Summary{Total: 1, Last7: 1, Last30: 1}, s)
}

func TestStatsEmpty(t *testing.T) {
	s := Stats(nil, time.Now())
	require.Equal(t, Summary{}, s)
}

func TestStatsMalformedDateCountsInTotalOnly(t *testing.T) {
	today := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	dates := []string{"не дата", today.Format("2006-01-02")}

	s := Stats(dates, today)
	require.Equal(t, 2, s.Total)
	require.Equal(t, 1, s.Last7)
	require.Equal(t, 1, s.Last30)
}

func TestStatsRFC3339(t *testing.T) {
	today := time.Date(2026, 8, 30, 0, 0, 0, 0, time.UTC)
	dates := []string{today.AddDate(0, 0, -3).Format(time.RFC3339)}

	s := Stats(dates, today)
	require.Equal(t, Summary{Total: 1, Last7: 1, Last30: 1}, s)
}
