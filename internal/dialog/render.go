package dialog

import (
	"fmt"
	"html"
	"strconv"
	"strings"

	"github.com/ArturKamnev/TelegramGYMCalculate/pkg/locales"
	"github.com/ArturKamnev/TelegramGYMCalculate/pkg/models"
)

// menuDirective собирает текст профиля и клавиатуру главного меню.
func menuDirective(u *models.User) Directive {
	l := locales.Get()
	f := l.Menu.Fields

	goal := f.GoalNotSet
	if u.Goal != "" {
		goal = html.EscapeString(u.Goal)
	}
	experience := f.ExperienceNotSet
	if u.Experience != "" {
		experience = html.EscapeString(u.Experience)
	}
	weight := f.WeightNotSet
	if u.Weight > 0 {
		weight = formatNumber(u.Weight)
	}
	height := f.HeightNotSet
	if u.Height > 0 {
		height = formatNumber(u.Height)
	}
	days := f.DaysNotSet
	if u.Days > 0 {
		days = strconv.Itoa(u.Days)
	}

	lines := []string{
		fmt.Sprintf("<b>%s:</b> %s", f.FirstName, html.EscapeString(u.FirstName)),
		fmt.Sprintf("<b>%s:</b> %s", f.LastName, html.EscapeString(u.LastName)),
		fmt.Sprintf("<b>%s:</b> %s", f.Goal, goal),
		fmt.Sprintf("<b>%s:</b> %s", f.Experience, experience),
		fmt.Sprintf("<b>%s:</b> %s кг", f.Weight, weight),
		fmt.Sprintf("<b>%s:</b> %s см", f.Height, height),
		fmt.Sprintf("<b>%s:</b> %s", f.Days, days),
	}

	return Directive{
		Text:     l.Menu.Header + "\n" + strings.Join(lines, "\n"),
		Keyboard: menuKeyboard(),
		HTML:     true,
	}
}

// menuKeyboard повторяет раскладку главного меню.
func menuKeyboard() [][]string {
	b := locales.Get().Menu.Buttons
	return [][]string{
		{b.EditHeight, b.EditWeight},
		{b.EditDays, b.EditExperience},
		{b.EditGoal, b.EditName},
		{b.ShowPlan, b.GeneratePlan},
		{b.History, b.Stats},
		{b.BMI, b.MarkDone},
		{b.Delete},
	}
}

// formatNumber печатает число без лишних нулей (180.5, но 75, а не 75.0)
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
