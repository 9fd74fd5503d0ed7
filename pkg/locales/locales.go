package locales

import (
	_ "embed"
	"encoding/json"
	"log"
)

//go:embed locales.json
var localesJSON []byte

// Locales содержит все текстовые строки из locales.json
type Locales struct {
	Registration Registration `json:"registration"`
	Menu         Menu         `json:"menu"`
	Edit         Edit         `json:"edit"`
	Plan         Plan         `json:"plan"`
	Workouts     Workouts     `json:"workouts"`
	Stats        Stats        `json:"stats"`
	BMI          BMI          `json:"bmi"`
	Delete       Delete       `json:"delete"`
	Common       Common       `json:"common"`
}

type Registration struct {
	Welcome     string `json:"welcome"`
	Invalid     string `json:"invalid"`
	Created     string `json:"created"`
	WelcomeBack string `json:"welcome_back"`
}

type Menu struct {
	Header  string `json:"header"`
	Unknown string `json:"unknown"`
	Fields  struct {
		FirstName        string `json:"first_name"`
		LastName         string `json:"last_name"`
		Goal             string `json:"goal"`
		GoalNotSet       string `json:"goal_not_set"`
		Experience       string `json:"experience"`
		ExperienceNotSet string `json:"experience_not_set"`
		Weight           string `json:"weight"`
		WeightNotSet     string `json:"weight_not_set"`
		Height           string `json:"height"`
		HeightNotSet     string `json:"height_not_set"`
		Days             string `json:"days"`
		DaysNotSet       string `json:"days_not_set"`
	} `json:"fields"`
	Buttons struct {
		EditHeight     string `json:"edit_height"`
		EditWeight     string `json:"edit_weight"`
		EditDays       string `json:"edit_days"`
		EditExperience string `json:"edit_experience"`
		EditGoal       string `json:"edit_goal"`
		EditName       string `json:"edit_name"`
		ShowPlan       string `json:"show_plan"`
		GeneratePlan   string `json:"generate_plan"`
		History        string `json:"history"`
		Stats          string `json:"stats"`
		BMI            string `json:"bmi"`
		MarkDone       string `json:"mark_done"`
		Delete         string `json:"delete"`
	} `json:"buttons"`
}

type Edit struct {
	HeightPrompt      string   `json:"height_prompt"`
	HeightInvalid     string   `json:"height_invalid"`
	HeightSuccess     string   `json:"height_success"`
	WeightPrompt      string   `json:"weight_prompt"`
	WeightInvalid     string   `json:"weight_invalid"`
	WeightSuccess     string   `json:"weight_success"`
	DaysPrompt        string   `json:"days_prompt"`
	DaysInvalid       string   `json:"days_invalid"`
	DaysOutOfRange    string   `json:"days_out_of_range"`
	DaysSuccess       string   `json:"days_success"`
	ExperiencePrompt  string   `json:"experience_prompt"`
	ExperienceOptions []string `json:"experience_options"`
	ExperienceSuccess string   `json:"experience_success"`
	GoalPrompt        string   `json:"goal_prompt"`
	GoalSuccess       string   `json:"goal_success"`
	NamePrompt        string   `json:"name_prompt"`
	NameInvalid       string   `json:"name_invalid"`
	NameSuccess       string   `json:"name_success"`
}

type Plan struct {
	ViewIncomplete     string `json:"view_incomplete"`
	None               string `json:"none"`
	GenerateIncomplete string `json:"generate_incomplete"`
	Generating         string `json:"generating"`
	Generated          string `json:"generated"`
	Error              string `json:"error"`
	Busy               string `json:"busy"`
	RateLimited        string `json:"rate_limited"`
}

type Workouts struct {
	None         string `json:"none"`
	RecentHeader string `json:"recent_header"`
	Marked       string `json:"marked"`
	NeedPlan     string `json:"need_plan"`
}

type Stats struct {
	Template string `json:"template"`
}

type BMI struct {
	FillProfile string `json:"fill_profile"`
	Result      string `json:"result"`
}

type Delete struct {
	Confirm   string `json:"confirm"`
	Done      string `json:"done"`
	Cancelled string `json:"cancelled"`
}

type Common struct {
	Cancel   string `json:"cancel"`
	NotFound string `json:"not_found"`
	Error    string `json:"error"`
}

var L *Locales

func init() {
	L = &Locales{}
	if err := json.Unmarshal(localesJSON, L); err != nil {
		log.Fatalf("Не удалось распарсить locales.json: %v", err)
	}
}

// Get возвращает указатель на локали
func Get() *Locales {
	return L
}
