package dialog

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/ArturKamnev/TelegramGYMCalculate/internal/fitness"
	"github.com/ArturKamnev/TelegramGYMCalculate/internal/planner"
	"github.com/ArturKamnev/TelegramGYMCalculate/pkg/locales"
)

// Действия главного меню. Каждое действие самостоятельно проверяет свои
// предусловия и оставляет пользователя в меню.

// showPlan показывает сохранённый план. Требует полного профиля.
func (m *Machine) showPlan(ctx context.Context, userID int64) Result {
	l := locales.Get()

	user, err := m.store.GetUser(ctx, userID)
	if err != nil {
		return m.storeError(userID, err)
	}
	if !user.Complete() {
		return say(l.Plan.ViewIncomplete)
	}
	if !user.HasPlan() {
		return say(l.Plan.None)
	}
	return say(user.Plan)
}

// generatePlan запускает асинхронную генерацию нового плана.
// Полнота профиля проверяется здесь заново, независимо от showPlan.
func (m *Machine) generatePlan(ctx context.Context, userID int64) Result {
	l := locales.Get()

	user, err := m.store.GetUser(ctx, userID)
	if err != nil {
		return m.storeError(userID, err)
	}
	if !user.Complete() {
		return say(l.Plan.GenerateIncomplete)
	}

	allowed, err := m.store.CheckRateLimit(ctx, userID)
	if err != nil {
		// Ошибка учёта лимита не должна блокировать генерацию
		log.Printf("Ошибка проверки лимита для %d: %v", userID, err)
	} else if !allowed {
		return say(l.Plan.RateLimited)
	}

	req := planner.Build(user)
	m.setBusy(userID, true)

	task := func(taskCtx context.Context) []Directive {
		defer m.setBusy(userID, false)

		plan, err := m.gen.Generate(taskCtx, req.System, req.User)
		if err != nil {
			// Прежний план остаётся нетронутым
			return []Directive{{Text: fmt.Sprintf(l.Plan.Error, err.Error())}}
		}
		if err := m.store.SavePlan(taskCtx, userID, plan); err != nil {
			log.Printf("Не удалось сохранить план для %d: %v", userID, err)
			return []Directive{{Text: l.Common.Error}}
		}
		return []Directive{{Text: fmt.Sprintf(l.Plan.Generated, plan)}}
	}

	return Result{
		Directives: []Directive{{Text: l.Plan.Generating}},
		Task:       task,
	}
}

// markWorkout отмечает тренировку за сегодня. Требует сгенерированного плана.
func (m *Machine) markWorkout(ctx context.Context, userID int64) Result {
	l := locales.Get()

	user, err := m.store.GetUser(ctx, userID)
	if err != nil {
		return m.storeError(userID, err)
	}
	if !user.HasPlan() {
		return say(l.Workouts.NeedPlan)
	}

	today := m.now().Format("2006-01-02")
	if err := m.store.AddWorkout(ctx, userID, today); err != nil {
		log.Printf("Не удалось записать тренировку для %d: %v", userID, err)
		return say(l.Common.Error)
	}
	return say(fmt.Sprintf(l.Workouts.Marked, today))
}

// showHistory показывает до 10 последних тренировок, новые сверху.
func (m *Machine) showHistory(ctx context.Context, userID int64) Result {
	l := locales.Get()

	dates, err := m.store.GetWorkouts(ctx, userID)
	if err != nil {
		log.Printf("Не удалось прочитать тренировки для %d: %v", userID, err)
		return say(l.Common.Error)
	}
	if len(dates) == 0 {
		return say(l.Workouts.None)
	}
	if len(dates) > 10 {
		dates = dates[:10]
	}
	return say(l.Workouts.RecentHeader + "\n" + strings.Join(dates, "\n"))
}

// showStats показывает сводку по тренировкам и заново выводит меню.
func (m *Machine) showStats(ctx context.Context, userID int64) Result {
	l := locales.Get()

	dates, err := m.store.GetWorkouts(ctx, userID)
	if err != nil {
		log.Printf("Не удалось прочитать тренировки для %d: %v", userID, err)
		return say(l.Common.Error)
	}
	if len(dates) == 0 {
		return say(l.Workouts.None)
	}

	s := fitness.Stats(dates, m.now())
	text := fmt.Sprintf(l.Stats.Template, s.Total, s.Last7, s.Last30)
	return m.backToMenu(ctx, userID, text)
}

// showBMI считает индекс массы тела и заново выводит меню.
func (m *Machine) showBMI(ctx context.Context, userID int64) Result {
	l := locales.Get()

	user, err := m.store.GetUser(ctx, userID)
	if err != nil {
		return m.storeError(userID, err)
	}

	value, category, ok := fitness.BMI(user.Weight, user.Height)
	if !ok {
		return m.backToMenu(ctx, userID, l.BMI.FillProfile)
	}
	text := fmt.Sprintf(l.BMI.Result, strconv.FormatFloat(value, 'f', 1, 64), category)
	return m.backToMenu(ctx, userID, text)
}
