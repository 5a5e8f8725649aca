package models

import (
	"time"

	"github.com/google/uuid"
)

// RecommendationRun is the immutable record of one ranking request: the
// requirement text, the raw ranked result returned by the AI and its summary.
// Runs are never updated and only removed by a project cascade delete.
type RecommendationRun struct {
	ID              uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProjectID       uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`
	Requirements    string    `gorm:"type:text;not null" json:"requirements"`
	Recommendations string    `gorm:"type:jsonb" json:"recommendations"`
	Summary         string    `gorm:"type:text" json:"summary"`
	CreatedAt       time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`

	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
}

func (RecommendationRun) TableName() string {
	return "ai_recommendations"
}
