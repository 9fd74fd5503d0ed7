// Package dialog реализует конечный автомат диалога с пользователем.
// Автомат не зависит от транспорта: он принимает текст события и
// возвращает директивы — что показать и какую клавиатуру предложить.
package dialog

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/ArturKamnev/TelegramGYMCalculate/internal/database"
	"github.com/ArturKamnev/TelegramGYMCalculate/pkg/locales"
	"github.com/ArturKamnev/TelegramGYMCalculate/pkg/models"
)

// Store — контракт хранилища профилей (реализуется internal/database).
type Store interface {
	CreateUser(ctx context.Context, userID int64, firstName, lastName string) error
	GetUser(ctx context.Context, userID int64) (*models.User, error)
	UpdateHeight(ctx context.Context, userID int64, height float64) error
	UpdateWeight(ctx context.Context, userID int64, weight float64) error
	UpdateDays(ctx context.Context, userID int64, days int) error
	UpdateExperience(ctx context.Context, userID int64, experience string) error
	UpdateGoal(ctx context.Context, userID int64, goal string) error
	UpdateName(ctx context.Context, userID int64, firstName, lastName string) error
	SavePlan(ctx context.Context, userID int64, plan string) error
	AddWorkout(ctx context.Context, userID int64, date string) error
	GetWorkouts(ctx context.Context, userID int64) ([]string, error)
	DeleteUser(ctx context.Context, userID int64) error
	CheckRateLimit(ctx context.Context, userID int64) (bool, error)
}

// Generator — контракт сервиса генерации плана (реализуется internal/openrouter).
type Generator interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// Directive — исходящее указание транспорту: текст и клавиатура.
type Directive struct {
	Text           string
	Keyboard       [][]string
	RemoveKeyboard bool
	HTML           bool
}

// Task — отложенная операция (генерация плана). Транспорт запускает её
// в отдельной горутине с таймаутом и доставляет результат пользователю.
type Task func(ctx context.Context) []Directive

// Result — ответ автомата на одно событие.
type Result struct {
	Directives []Directive
	Task       Task
}

// session — эфемерное состояние диалога одного пользователя.
// Восстанавливается из профиля, поэтому вытеснение из кэша безопасно.
type session struct {
	state models.State
	busy  bool // идёт генерация плана
}

const sessionCacheSize = 1024

// Machine — конечный автомат диалога.
type Machine struct {
	store Store
	gen   Generator
	now   func() time.Time

	mu       sync.Mutex
	sessions *lru.Cache[int64, *session]
}

// New создаёт автомат поверх хранилища и сервиса генерации.
func New(store Store, gen Generator) *Machine {
	sessions, err := lru.New[int64, *session](sessionCacheSize)
	if err != nil {
		// невозможно при положительном размере
		panic(err)
	}
	return &Machine{
		store:    store,
		gen:      gen,
		now:      time.Now,
		sessions: sessions,
	}
}

// Start обрабатывает команду /start: приветствие и меню для знакомого
// пользователя, запрос имени и фамилии для нового.
func (m *Machine) Start(ctx context.Context, userID int64) Result {
	l := locales.Get()
	if m.isBusy(userID) {
		return say(l.Plan.Busy)
	}

	user, err := m.store.GetUser(ctx, userID)
	if errors.Is(err, database.ErrUserNotFound) {
		m.setState(userID, models.State{Step: models.StepRegistration})
		return Result{Directives: []Directive{
			{Text: l.Registration.Welcome, RemoveKeyboard: true},
		}}
	}
	if err != nil {
		log.Printf("Ошибка чтения профиля %d: %v", userID, err)
		return say(l.Common.Error)
	}

	m.setState(userID, models.MenuState())
	return Result{Directives: []Directive{
		{Text: fmt.Sprintf(l.Registration.WelcomeBack, user.FirstName), RemoveKeyboard: true},
		menuDirective(user),
	}}
}

// Handle обрабатывает текстовое событие согласно текущему шагу диалога.
func (m *Machine) Handle(ctx context.Context, userID int64, text string) Result {
	l := locales.Get()
	if m.isBusy(userID) {
		return say(l.Plan.Busy)
	}

	state, ok := m.getState(userID)
	if !ok {
		// Состояние потеряно (перезапуск или вытеснение из кэша) —
		// восстанавливаем его из наличия профиля
		state = m.rebuildState(ctx, userID)
	}

	text = strings.TrimSpace(text)

	switch state.Step {
	case models.StepRegistration:
		return m.handleRegistration(ctx, userID, text)
	case models.StepMenu:
		return m.handleMenu(ctx, userID, text)
	case models.StepEditing:
		return m.handleEditing(ctx, userID, state.Field, text)
	case models.StepConfirmDelete:
		return m.handleConfirmDelete(ctx, userID, text)
	}
	return say(l.Common.Error)
}

// Cancel обрабатывает /cancel: сброс незавершённого редактирования и
// возврат в меню; без профиля — завершение сессии.
func (m *Machine) Cancel(ctx context.Context, userID int64) Result {
	l := locales.Get()
	if m.isBusy(userID) {
		return say(l.Plan.Busy)
	}

	user, err := m.store.GetUser(ctx, userID)
	if errors.Is(err, database.ErrUserNotFound) {
		m.sessions.Remove(userID)
		return Result{Directives: []Directive{
			{Text: l.Common.Cancel, RemoveKeyboard: true},
		}}
	}
	if err != nil {
		log.Printf("Ошибка чтения профиля %d: %v", userID, err)
		return say(l.Common.Error)
	}

	m.setState(userID, models.MenuState())
	return Result{Directives: []Directive{menuDirective(user)}}
}

// rebuildState восстанавливает состояние сессии из хранилища:
// профиль существует — меню, иначе — регистрация.
func (m *Machine) rebuildState(ctx context.Context, userID int64) models.State {
	state := models.MenuState()
	if _, err := m.store.GetUser(ctx, userID); errors.Is(err, database.ErrUserNotFound) {
		state = models.State{Step: models.StepRegistration}
	}
	m.setState(userID, state)
	return state
}

func (m *Machine) handleRegistration(ctx context.Context, userID int64, text string) Result {
	l := locales.Get()

	parts := strings.Fields(text)
	if len(parts) < 2 {
		return say(l.Registration.Invalid)
	}
	firstName := parts[0]
	lastName := strings.Join(parts[1:], " ")

	err := m.store.CreateUser(ctx, userID, firstName, lastName)
	if err != nil && !errors.Is(err, database.ErrUserExists) {
		log.Printf("Ошибка создания профиля %d: %v", userID, err)
		return say(l.Common.Error)
	}

	user, err := m.store.GetUser(ctx, userID)
	if err != nil {
		log.Printf("Ошибка чтения профиля %d: %v", userID, err)
		return say(l.Common.Error)
	}

	m.setState(userID, models.MenuState())
	return Result{Directives: []Directive{
		{Text: fmt.Sprintf(l.Registration.Created, user.FirstName), RemoveKeyboard: true},
		menuDirective(user),
	}}
}

func (m *Machine) handleMenu(ctx context.Context, userID int64, text string) Result {
	l := locales.Get()
	lower := strings.ToLower(text)
	b := l.Menu.Buttons
	match := func(button string) bool {
		return strings.HasPrefix(lower, strings.ToLower(button))
	}

	switch {
	case match(b.EditHeight):
		return m.startEditing(userID, models.FieldHeight, l.Edit.HeightPrompt, nil)
	case match(b.EditWeight):
		return m.startEditing(userID, models.FieldWeight, l.Edit.WeightPrompt, nil)
	case match(b.EditDays):
		return m.startEditing(userID, models.FieldDays, l.Edit.DaysPrompt, nil)
	case match(b.EditExperience):
		return m.startEditing(userID, models.FieldExperience, l.Edit.ExperiencePrompt,
			[][]string{l.Edit.ExperienceOptions})
	case match(b.EditGoal):
		return m.startEditing(userID, models.FieldGoal, l.Edit.GoalPrompt, nil)
	case match(b.EditName):
		return m.startEditing(userID, models.FieldName, l.Edit.NamePrompt, nil)
	case match(b.ShowPlan):
		return m.showPlan(ctx, userID)
	case match(b.GeneratePlan):
		return m.generatePlan(ctx, userID)
	case match(b.History):
		return m.showHistory(ctx, userID)
	case match(b.MarkDone):
		return m.markWorkout(ctx, userID)
	case match(b.Stats):
		return m.showStats(ctx, userID)
	case match(b.BMI):
		return m.showBMI(ctx, userID)
	case match(b.Delete):
		m.setState(userID, models.State{Step: models.StepConfirmDelete})
		return say(l.Delete.Confirm)
	}

	return say(l.Menu.Unknown)
}

func (m *Machine) startEditing(userID int64, field models.Field, prompt string, keyboard [][]string) Result {
	m.setState(userID, models.EditingState(field))
	return Result{Directives: []Directive{{
		Text:           prompt,
		Keyboard:       keyboard,
		RemoveKeyboard: keyboard == nil,
	}}}
}

func (m *Machine) handleEditing(ctx context.Context, userID int64, field models.Field, text string) Result {
	l := locales.Get()

	switch field {
	case models.FieldHeight:
		value, ok := parsePositiveFloat(text)
		if !ok {
			return say(l.Edit.HeightInvalid)
		}
		if err := m.store.UpdateHeight(ctx, userID, value); err != nil {
			return m.storeError(userID, err)
		}
		return m.backToMenu(ctx, userID, fmt.Sprintf(l.Edit.HeightSuccess, formatNumber(value)))

	case models.FieldWeight:
		value, ok := parsePositiveFloat(text)
		if !ok {
			return say(l.Edit.WeightInvalid)
		}
		if err := m.store.UpdateWeight(ctx, userID, value); err != nil {
			return m.storeError(userID, err)
		}
		return m.backToMenu(ctx, userID, fmt.Sprintf(l.Edit.WeightSuccess, formatNumber(value)))

	case models.FieldDays:
		days, err := strconv.Atoi(text)
		if err != nil {
			return say(l.Edit.DaysInvalid)
		}
		if days < 1 || days > 7 {
			return say(l.Edit.DaysOutOfRange)
		}
		if err := m.store.UpdateDays(ctx, userID, days); err != nil {
			return m.storeError(userID, err)
		}
		return m.backToMenu(ctx, userID, fmt.Sprintf(l.Edit.DaysSuccess, days))

	case models.FieldExperience:
		if text == "" {
			return say(l.Edit.ExperiencePrompt)
		}
		if err := m.store.UpdateExperience(ctx, userID, text); err != nil {
			return m.storeError(userID, err)
		}
		return m.backToMenu(ctx, userID, fmt.Sprintf(l.Edit.ExperienceSuccess, text))

	case models.FieldGoal:
		if text == "" {
			return say(l.Edit.GoalPrompt)
		}
		if err := m.store.UpdateGoal(ctx, userID, text); err != nil {
			return m.storeError(userID, err)
		}
		return m.backToMenu(ctx, userID, fmt.Sprintf(l.Edit.GoalSuccess, text))

	case models.FieldName:
		parts := strings.Fields(text)
		if len(parts) < 2 {
			return say(l.Edit.NameInvalid)
		}
		firstName := parts[0]
		lastName := strings.Join(parts[1:], " ")
		if err := m.store.UpdateName(ctx, userID, firstName, lastName); err != nil {
			return m.storeError(userID, err)
		}
		return m.backToMenu(ctx, userID, fmt.Sprintf(l.Edit.NameSuccess, firstName, lastName))
	}

	return say(l.Common.Error)
}

// Токены подтверждения удаления профиля
var affirmative = map[string]bool{
	"да":  true,
	"д":   true,
	"yes": true,
	"y":   true,
}

func (m *Machine) handleConfirmDelete(ctx context.Context, userID int64, text string) Result {
	l := locales.Get()

	if !affirmative[strings.ToLower(text)] {
		// Любой другой ввод трактуем как отказ
		return m.backToMenu(ctx, userID, l.Delete.Cancelled)
	}

	if err := m.store.DeleteUser(ctx, userID); err != nil {
		return m.storeError(userID, err)
	}
	m.sessions.Remove(userID)
	return Result{Directives: []Directive{
		{Text: l.Delete.Done, RemoveKeyboard: true},
	}}
}

// backToMenu возвращает пользователя в главное меню с сообщением message.
func (m *Machine) backToMenu(ctx context.Context, userID int64, message string) Result {
	user, err := m.store.GetUser(ctx, userID)
	if err != nil {
		return m.storeError(userID, err)
	}
	m.setState(userID, models.MenuState())
	return Result{Directives: []Directive{
		{Text: message},
		menuDirective(user),
	}}
}

// storeError обрабатывает ошибку хранилища. Отсутствие профиля означает
// рассинхронизацию сессии и базы — возвращаемся к регистрации.
func (m *Machine) storeError(userID int64, err error) Result {
	l := locales.Get()
	if errors.Is(err, database.ErrUserNotFound) {
		m.setState(userID, models.State{Step: models.StepRegistration})
		return Result{Directives: []Directive{
			{Text: l.Common.NotFound},
			{Text: l.Registration.Welcome, RemoveKeyboard: true},
		}}
	}
	log.Printf("Ошибка хранилища для %d: %v", userID, err)
	return say(l.Common.Error)
}

func (m *Machine) getState(userID int64) (models.State, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions.Get(userID); ok {
		return s.state, true
	}
	return models.State{}, false
}

func (m *Machine) setState(userID int64, state models.State) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions.Get(userID); ok {
		s.state = state
		return
	}
	m.sessions.Add(userID, &session{state: state})
}

func (m *Machine) isBusy(userID int64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions.Get(userID)
	return ok && s.busy
}

func (m *Machine) setBusy(userID int64, busy bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions.Get(userID); ok {
		s.busy = busy
		return
	}
	if busy {
		m.sessions.Add(userID, &session{state: models.MenuState(), busy: true})
	}
}

// parsePositiveFloat разбирает строго положительное число,
// нормализуя десятичный разделитель.
func parsePositiveFloat(text string) (float64, bool) {
	text = strings.ReplaceAll(text, ",", ".")
	value, err := strconv.ParseFloat(text, 64)
	if err != nil || value <= 0 {
		return 0, false
	}
	return value, true
}

func say(text string) Result {
	return Result{Directives: []Directive{{Text: text}}}
}
