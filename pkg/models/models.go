package models

// User представляет профиль пользователя, как он хранится в базе данных
type User struct {
	UserID     int64
	FirstName  string
	LastName   string
	Goal       string  // цель тренировок, пустая строка = не указана
	Experience string  // уровень подготовки (начинающий/средний/продвинутый)
	Weight     float64 // вес в кг, 0 = не указан
	Height     float64 // рост в см, 0 = не указан
	Days       int     // тренировочных дней в неделю (1-7), 0 = не указано
	Plan       string  // последний сгенерированный план, пустая строка = нет
	PlanDate   string  // время генерации плана (RFC3339)
}

// Complete сообщает, заполнены ли все поля, необходимые для генерации плана
func (u *User) Complete() bool {
	return u.Goal != "" && u.Experience != "" && u.Weight > 0 && u.Height > 0 && u.Days > 0
}

// HasPlan сообщает, был ли для пользователя уже сгенерирован план
func (u *User) HasPlan() bool {
	return u.Plan != ""
}

// Step — шаг диалога с пользователем
type Step int

const (
	StepRegistration  Step = iota // ожидание имени и фамилии
	StepMenu                      // главное меню
	StepEditing                   // редактирование поля профиля (см. Field)
	StepConfirmDelete             // подтверждение удаления профиля
)

// Field — поле профиля, которое редактируется на шаге StepEditing
type Field int

const (
	FieldNone Field = iota
	FieldHeight
	FieldWeight
	FieldDays
	FieldExperience
	FieldGoal
	FieldName
)

// State — состояние диалога. Field имеет смысл только при Step == StepEditing.
type State struct {
	Step  Step
	Field Field
}

// MenuState возвращает состояние главного меню
func MenuState() State {
	return State{Step: StepMenu}
}

// EditingState возвращает состояние редактирования поля field
func EditingState(field Field) State {
	return State{Step: StepEditing, Field: field}
}
