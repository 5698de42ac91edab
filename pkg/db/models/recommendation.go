package models

import (
	"time"

	"github.com/angelmondragon/lushka-backend/pkg/enums"
	"github.com/google/uuid"
)

// Recommendation is a persisted quiz outcome.
type Recommendation struct {
	ID         uuid.UUID                  `gorm:"column:id;type:uuid;primaryKey"`
	SessionID  string                     `gorm:"column:session_id;not null;index:recommendations_session_id_idx"`
	ProductIDs []string                   `gorm:"column:product_ids;type:text;serializer:json;not null"`
	BundleIDs  []string                   `gorm:"column:bundle_ids;type:text;serializer:json;not null"`
	Reasoning  string                     `gorm:"column:reasoning;type:text;not null"`
	Confidence float64                    `gorm:"column:confidence;not null"`
	Source     enums.RecommendationSource `gorm:"column:source;not null"`
	Answers    []RecommendationAnswer     `gorm:"column:answers;type:text;serializer:json;not null"`
	CreatedAt  time.Time                  `gorm:"column:created_at;autoCreateTime"`
}

// TableName pins the table name to the migration.
func (Recommendation) TableName() string {
	return "recommendations"
}

// RecommendationAnswer is the serialized form of one quiz answer.
type RecommendationAnswer struct {
	QuestionID string    `json:"questionId"`
	OptionID   string    `json:"optionId"`
	Value      string    `json:"value"`
	AnsweredAt time.Time `json:"timestamp"`
}
