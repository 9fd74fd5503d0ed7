package planner

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ArturKamnev/TelegramGYMCalculate/pkg/models"
)

func TestWeeklySets(t *testing.T) {
	require.Equal(t, 10, WeeklySets("начинающий"))
	require.Equal(t, 15, WeeklySets("средний"))
	require.Equal(t, 20, WeeklySets("продвинутый"))

	// Регистр и пробелы не имеют значения
	require.Equal(t, 10, WeeklySets("  Начинающий "))

	// Свободный текст — объём по умолчанию
	require.Equal(t, 12, WeeklySets("качаюсь пять лет"))
	require.Equal(t, 12, WeeklySets(""))
}

func TestSessionSets(t *testing.T) {
	// начинающий, 4 дня: round(10/4) = 3
	require.Equal(t, 3, SessionSets(10, 4))
	require.Equal(t, 1, SessionSets(10, 7))
	require.Equal(t, 3, SessionSets(20, 7))
	require.Equal(t, 15, SessionSets(15, 1))

	// Нижняя граница: никогда не меньше одного подхода
	require.Equal(t, 1, SessionSets(10, 25))
}

func TestBuild(t *testing.T) {
	user := &models.User{
		UserID:     1,
		Goal:       "набор массы",
		Experience: "начинающий",
		Weight:     75,
		Height:     180.5,
		Days:       4,
	}

	req := Build(user)

	require.Equal(t, systemPrompt, req.System)
	require.Contains(t, req.User, "Goal: набор массы.")
	require.Contains(t, req.User, "Experience: начинающий.")
	require.Contains(t, req.User, "Weight: 75.0 kg.")
	require.Contains(t, req.User, "Height: 180.5 cm.")
	require.Contains(t, req.User, "Training days per week: 4.")
	require.Contains(t, req.User, "в неделю: 10.")
	require.Contains(t, req.User, "примерно 3 подходов на сессию")
}

func TestBuildDeterministic(t *testing.T) {
	user := &models.User{
		Goal:       "похудение",
		Experience: "средний",
		Weight:     90,
		Height:     182,
		Days:       3,
	}

	first := Build(user)
	second := Build(user)
	require.Equal(t, first, second)
}

func TestBuildUnknownExperienceUsesDefault(t *testing.T) {
	user := &models.User{
		Goal:       "выносливость",
		Experience: "любитель",
		Weight:     70,
		Height:     175,
		Days:       3,
	}

	req := Build(user)
	require.Contains(t, req.User, "в неделю: 12.")
	require.Contains(t, req.User, "примерно 4 подходов на сессию")
}
