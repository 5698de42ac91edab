package recommendation

import (
	"time"

	"github.com/angelmondragon/lushka-backend/internal/catalog"
	"github.com/angelmondragon/lushka-backend/pkg/enums"
)

// Answer is one accepted quiz answer.
type Answer struct {
	QuestionID string    `json:"questionId"`
	OptionID   string    `json:"optionId"`
	Value      string    `json:"value"`
	AnsweredAt time.Time `json:"timestamp"`
}

// Recommendation is the outcome of a completed quiz.
type Recommendation struct {
	ID         string                     `json:"id"`
	Products   []catalog.Product          `json:"products"`
	Bundles    []catalog.Bundle           `json:"bundles"`
	Reasoning  string                     `json:"reasoning"`
	Confidence float64                    `json:"confidence"`
	Source     enums.RecommendationSource `json:"source"`
	Answers    []Answer                   `json:"answers"`
	CreatedAt  time.Time                  `json:"created_at"`
}

// criteria is the answer set keyed by purpose.
type criteria struct {
	ProductType string
	Budget      string
	Concern     string
	SkinType    string
	Ingredient  string
	answered    map[string]bool
}

func criteriaFrom(answers []Answer) criteria {
	c := criteria{answered: map[string]bool{}}
	for _, a := range answers {
		c.answered[a.QuestionID] = true
		switch a.QuestionID {
		case QuestionProductType:
			c.ProductType = a.Value
		case QuestionBudget:
			c.Budget = a.Value
		case QuestionConcern:
			c.Concern = a.Value
		case QuestionSkinType:
			c.SkinType = a.Value
		case QuestionIngredient:
			c.Ingredient = a.Value
		}
	}
	return c
}

func (c criteria) has(questionID string) bool {
	return c.answered[questionID]
}

func copyAnswers(in []Answer) []Answer {
	out := make([]Answer, len(in))
	copy(out, in)
	return out
}
