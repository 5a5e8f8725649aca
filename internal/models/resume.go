package models

import (
	"time"

	"github.com/google/uuid"
)

// Resume is one uploaded candidate document together with everything derived
// from it: the extracted text, the latest analysis result and the manual
// shortlist state. A resume belongs to exactly one project for its whole
// lifetime.
type Resume struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProjectID uuid.UUID `gorm:"type:uuid;not null;index" json:"project_id"`

	ResumeName  string `gorm:"type:text;not null" json:"resume_name"`
	DisplayName string `gorm:"type:text" json:"display_name"`
	FilePath    string `gorm:"type:text" json:"file_path"`
	FileSize    int64  `gorm:"type:bigint" json:"file_size"`
	ResumeText  string `gorm:"type:text" json:"resume_text"`

	// Analysis outputs. Score is non-nil whenever IsCandidate is true.
	IsCandidate      bool       `gorm:"not null;default:false" json:"iscandidate"`
	Score            *float64   `gorm:"type:decimal(5,2)" json:"score,omitempty"`
	ResumeTechSkills *string    `gorm:"type:text" json:"resume_tech_skills,omitempty"`
	ResumeExperience *string    `gorm:"type:text" json:"resume_experience,omitempty"`
	ResumeEducation  *string    `gorm:"type:text" json:"resume_education,omitempty"`
	ResumeProjects   *string    `gorm:"type:text" json:"resume_projects,omitempty"`
	AnalyzedAt       *time.Time `gorm:"type:timestamp" json:"analyzed_at,omitempty"`

	// Shortlist state. SelectedAt and SelectedNote are cleared together
	// whenever IsSelected goes false.
	IsSelected   bool       `gorm:"not null;default:false" json:"is_selected"`
	SelectedAt   *time.Time `gorm:"type:timestamp" json:"selected_at,omitempty"`
	SelectedNote *string    `gorm:"type:text" json:"selected_note,omitempty"`

	CreatedAt time.Time `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamp;default:now()" json:"updated_at"`

	Project Project `gorm:"foreignKey:ProjectID" json:"-"`
}

func (Resume) TableName() string {
	return "resume"
}
