package recommendation

import (
	"math"

	"github.com/angelmondragon/lushka-backend/pkg/enums"
)

// Question ids in quiz order.
const (
	QuestionProductType = "q1"
	QuestionBudget      = "q2"
	QuestionConcern     = "q3"
	QuestionSkinType    = "q4"
	QuestionIngredient  = "q5"
)

const noPreference = "no-preference"

// Option is one selectable answer.
type Option struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Value string `json:"value"`
}

// Question is one quiz step.
type Question struct {
	ID          string   `json:"id"`
	Text        string   `json:"question"`
	Step        int      `json:"current_step"`
	TotalSteps  int      `json:"total_steps"`
	Options     []Option `json:"options"`
	PromptLabel string   `json:"-"`
}

// Option returns the option with id, if the question offers it.
func (q Question) Option(id string) (Option, bool) {
	for _, opt := range q.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return Option{}, false
}

func (q Question) optionText(value string) string {
	for _, opt := range q.Options {
		if opt.Value == value {
			return opt.Text
		}
	}
	return value
}

var questions = []Question{
	{
		ID:          QuestionProductType,
		Text:        "¿Qué tipo de producto estás buscando?",
		PromptLabel: "Tipo de producto",
		Options: []Option{
			{ID: "opt1", Text: "Cuidado del cabello", Value: "haircare"},
			{ID: "opt2", Text: "Cuidado corporal", Value: "bodycare"},
			{ID: "opt3", Text: "Cuidado facial", Value: "skincare"},
			{ID: "opt4", Text: "Combos y kits", Value: "combos"},
		},
	},
	{
		ID:          QuestionBudget,
		Text:        "¿Cuál es tu presupuesto principal?",
		PromptLabel: "Presupuesto",
		Options: []Option{
			{ID: "opt1", Text: "$8.000 - $15.000", Value: "budget-low"},
			{ID: "opt2", Text: "$15.001 - $25.000", Value: "budget-medium"},
			{ID: "opt3", Text: "$25.001 - $42.000", Value: "budget-high"},
			{ID: "opt4", Text: "Más de $42.000", Value: "budget-premium"},
		},
	},
	{
		ID:          QuestionConcern,
		Text:        "¿Cuál es tu principal necesidad?",
		PromptLabel: "Necesidad principal",
		Options: []Option{
			{ID: "opt1", Text: "Hidratación", Value: "hydration"},
			{ID: "opt2", Text: "Reparación", Value: "repair"},
			{ID: "opt3", Text: "Brillo", Value: "shine"},
			{ID: "opt4", Text: "Limpieza", Value: "cleansing"},
		},
	},
	{
		ID:          QuestionSkinType,
		Text:        "¿Cómo describirías tu tipo de piel o cabello?",
		PromptLabel: "Tipo de piel o cabello",
		Options: []Option{
			{ID: "opt1", Text: "Seco", Value: "dry"},
			{ID: "opt2", Text: "Graso", Value: "oily"},
			{ID: "opt3", Text: "Sensible", Value: "sensitive"},
			{ID: "opt4", Text: "Normal", Value: "normal"},
		},
	},
	{
		ID:          QuestionIngredient,
		Text:        "¿Qué tipo de ingredientes prefieres?",
		PromptLabel: "Preferencia de ingredientes",
		Options: []Option{
			{ID: "opt1", Text: "Naturales", Value: "natural"},
			{ID: "opt2", Text: "Dermatológicos", Value: "dermatological"},
			{ID: "opt3", Text: "Veganos", Value: "vegan"},
			{ID: "opt4", Text: "Sin preferencia", Value: noPreference},
		},
	},
}

func init() {
	for i := range questions {
		questions[i].Step = i + 1
		questions[i].TotalSteps = len(questions)
	}
}

// Questions returns the quiz in order.
func Questions() []Question {
	out := make([]Question, len(questions))
	copy(out, questions)
	return out
}

// QuestionCount is the number of answers that completes a quiz.
func QuestionCount() int {
	return len(questions)
}

func questionByID(id string) (Question, int, bool) {
	for i, q := range questions {
		if q.ID == id {
			return q, i, true
		}
	}
	return Question{}, -1, false
}

var categoriesByType = map[string][]enums.ProductCategory{
	"haircare": {enums.ProductCategoryCapilar},
	"bodycare": {enums.ProductCategoryCorporal, enums.ProductCategoryPersonal},
	"skincare": {enums.ProductCategoryFacial},
	"combos":   {enums.ProductCategoryCombos},
}

const defaultCategory = enums.ProductCategoryCorporal

// budgetBucket is an inclusive price range. Buckets are ordered by Max.
type budgetBucket struct {
	Value string
	Min   int64
	Max   int64
}

var budgetBuckets = []budgetBucket{
	{Value: "budget-low", Min: 8000, Max: 15000},
	{Value: "budget-medium", Min: 15001, Max: 25000},
	{Value: "budget-high", Min: 25001, Max: 42000},
	{Value: "budget-premium", Min: 42001, Max: math.MaxInt64},
}

func budgetIndex(value string) int {
	for i, b := range budgetBuckets {
		if b.Value == value {
			return i
		}
	}
	return -1
}

var concernKeywords = map[string][]string{
	"hydration": {"hidratación", "hidratante"},
	"repair":    {"reparación", "repara", "tratamiento"},
	"shine":     {"brillo", "destellos"},
	"cleansing": {"limpieza", "higiene", "purifica"},
}

// Normal has no keywords so the stage is skipped.
var skinKeywords = map[string][]string{
	"dry":       {"seca", "nutrición", "nutritiva"},
	"oily":      {"grasa", "purifica", "carbón"},
	"sensitive": {"sensible", "suave", "aloe vera"},
	"normal":    nil,
}
