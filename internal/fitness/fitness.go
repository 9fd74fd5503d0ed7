// Package fitness содержит чистые функции расчёта показателей:
// индекс массы тела и сводка по выполненным тренировкам.
package fitness

import (
	"math"
	"time"
)

// BMI вычисляет индекс массы тела и категорию по классификации ВОЗ.
// Значение округляется до одного знака. Если вес или рост не заполнены
// (неположительны), ok == false.
func BMI(weightKg, heightCm float64) (value float64, category string, ok bool) {
	if weightKg <= 0 || heightCm <= 0 {
		return 0, "", false
	}
	heightM := heightCm / 100.0
	bmi := weightKg / (heightM * heightM)

	switch {
	case bmi < 18.5:
		category = "недостаток веса"
	case bmi < 25:
		category = "нормальный вес"
	case bmi < 30:
		category = "избыточный вес"
	case bmi < 35:
		category = "ожирение I степени"
	case bmi < 40:
		category = "ожирение II степени"
	default:
		category = "ожирение III степени"
	}

	return math.Round(bmi*10) / 10, category, true
}

// Summary — сводка по выполненным тренировкам.
type Summary struct {
	Total  int // всего тренировок
	Last7  int // за последние 7 дней
	Last30 int // за последние 30 дней
}

// Stats считает сводку по списку дат тренировок относительно today.
// Тренировка попадает в окно 7 дней, если её возраст в днях строго меньше 7;
// аналогично для 30. Даты принимаются в формате YYYY-MM-DD или RFC3339;
// нераспознанные даты учитываются только в общем количестве.
func Stats(dates []string, today time.Time) Summary {
	s := Summary{Total: len(dates)}
	day := today.Truncate(24 * time.Hour)

	for _, d := range dates {
		workoutDate, err := parseDate(d)
		if err != nil {
			continue
		}
		age := int(day.Sub(workoutDate.Truncate(24*time.Hour)).Hours() / 24)
		if age < 7 {
			s.Last7++
		}
		if age < 30 {
			s.Last30++
		}
	}
	return s
}

func parseDate(d string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", d)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, d)
}
