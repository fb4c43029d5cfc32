package entities

import (
	"time"

	"hrm-system/pkg/types"

	"github.com/google/uuid"
)

// RequiredSkill хранится в jsonb-колонке required_skills; порядок списка
// сохраняется.
type RequiredSkill struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

type Activity struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	Title           string          `json:"title" db:"title"`
	Description     string          `json:"description" db:"description"`
	DepartmentID    uuid.UUID       `json:"department_id" db:"department_id"`
	RequiredSkills  []RequiredSkill `json:"required_skills" db:"required_skills"`
	MaxParticipants int             `json:"max_participants" db:"max_participants"`
	StartDate       time.Time       `json:"start_date" db:"start_date"`
	EndDate         time.Time       `json:"end_date" db:"end_date"`

	Type     string `json:"type" db:"type"`
	Priority string `json:"priority" db:"priority"`
	Status   string `json:"status" db:"status"`
	Location string `json:"location" db:"location"`
	Duration string `json:"duration" db:"duration"`

	types.BaseEntity
}
