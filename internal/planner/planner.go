// Package planner строит запрос к генерации тренировочного плана
// из заполненного профиля пользователя. Построение детерминировано
// и не имеет побочных эффектов; сетевой вызов выполняет клиент API.
package planner

import (
	"fmt"
	"math"
	"strings"

	"github.com/ArturKamnev/TelegramGYMCalculate/pkg/models"
)

// Request — готовый запрос к модели: системная инструкция и данные пользователя.
type Request struct {
	System string
	User   string
}

// Недельный объём подходов на группу мышц по уровню подготовки.
var experienceSets = map[string]int{
	"начинающий":  10,
	"средний":     15,
	"продвинутый": 20,
}

// Объём по умолчанию для нераспознанного уровня подготовки.
const defaultWeeklySets = 12

// WeeklySets возвращает рекомендуемое число подходов на группу мышц в неделю.
func WeeklySets(experience string) int {
	if sets, ok := experienceSets[strings.ToLower(strings.TrimSpace(experience))]; ok {
		return sets
	}
	return defaultWeeklySets
}

// SessionSets делит недельный объём на число тренировок,
// округляя до ближайшего целого, но не меньше 1.
func SessionSets(weeklySets, days int) int {
	sets := int(math.Round(float64(weeklySets) / float64(days)))
	if sets < 1 {
		return 1
	}
	return sets
}

const systemPrompt = "Вы — профессиональный тренер по фитнесу. Ваша задача — составить " +
	"персональный план тренировок для клиента на основе его целей и " +
	"данных. План должен включать упражнения для основных групп мышц, " +
	"распределённые по дням недели, количество подходов и повторений, " +
	"рекомендации по отдыху между подходами, а также советы по разминке " +
	"и заминке. Не указывайте лишнюю теорию — только практические " +
	"рекомендации."

// Build собирает запрос на генерацию плана из заполненного профиля.
func Build(u *models.User) Request {
	weekly := WeeklySets(u.Experience)
	perSession := SessionSets(weekly, u.Days)

	var sb strings.Builder
	sb.WriteString("Составь план тренировок. ")
	fmt.Fprintf(&sb, "Goal: %s. ", u.Goal)
	fmt.Fprintf(&sb, "Experience: %s. ", u.Experience)
	fmt.Fprintf(&sb, "Weight: %.1f kg. ", u.Weight)
	fmt.Fprintf(&sb, "Height: %.1f cm. ", u.Height)
	fmt.Fprintf(&sb, "Training days per week: %d.\n", u.Days)
	fmt.Fprintf(&sb, "Рекомендуемое количество подходов на каждую группу мышц в неделю: %d. ", weekly)
	fmt.Fprintf(&sb, "Поскольку пользователь тренируется %d раз(а) в неделю, ", u.Days)
	fmt.Fprintf(&sb, "предложи примерно %d подходов на сессию для крупных мышц. ", perSession)
	sb.WriteString("Используй таблицу или маркированный список для структуры.")

	return Request{
		System: systemPrompt,
		User:   sb.String(),
	}
}
