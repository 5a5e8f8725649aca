package models

import (
	"time"

	"github.com/google/uuid"
)

type ProjectStatus string

const (
	ProjectActive   ProjectStatus = "active"
	ProjectArchived ProjectStatus = "archived"
)

type Project struct {
	ID          uuid.UUID     `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProjectName string        `gorm:"type:text;not null" json:"project_name"`
	Description string        `gorm:"type:text" json:"description"`
	Status      ProjectStatus `gorm:"not null;default:'active'" json:"status"`
	CreatedAt   time.Time     `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (Project) TableName() string {
	return "projects"
}
