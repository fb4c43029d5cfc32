package dto

import (
	"hrm-system/internal/entities"

	"github.com/aarondl/null/v8"
)

type CreateActivityDTO struct {
	Title           string                   `json:"title" validate:"required,max=255"`
	Description     string                   `json:"description" validate:"required"`
	DepartmentID    string                   `json:"department_id" validate:"required,uuid4"`
	RequiredSkills  []entities.RequiredSkill `json:"required_skills" validate:"omitempty,dive"`
	MaxParticipants int                      `json:"max_participants" validate:"required,min=1"`
	StartDate       string                   `json:"start_date" validate:"required"`
	EndDate         string                   `json:"end_date" validate:"required"`

	Type     string `json:"type" validate:"omitempty,max=50"`
	Priority string `json:"priority" validate:"omitempty,max=50"`
	Status   string `json:"status" validate:"omitempty,max=50"`
	Location string `json:"location" validate:"omitempty,max=255"`
	Duration string `json:"duration" validate:"omitempty,max=50"`
}

type UpdateActivityDTO struct {
	Title           null.String              `json:"title" validate:"omitempty,max=255"`
	Description     null.String              `json:"description" validate:"omitempty"`
	DepartmentID    null.String              `json:"department_id" validate:"omitempty,uuid4"`
	RequiredSkills  []entities.RequiredSkill `json:"required_skills" validate:"omitempty,dive"`
	MaxParticipants null.Int                 `json:"max_participants" validate:"omitempty,min=1"`
	StartDate       null.String              `json:"start_date" validate:"omitempty"`
	EndDate         null.String              `json:"end_date" validate:"omitempty"`

	Type     null.String `json:"type" validate:"omitempty,max=50"`
	Priority null.String `json:"priority" validate:"omitempty,max=50"`
	Status   null.String `json:"status" validate:"omitempty,max=50"`
	Location null.String `json:"location" validate:"omitempty,max=255"`
	Duration null.String `json:"duration" validate:"omitempty,max=50"`
}

type ActivityDTO struct {
	ID              string                   `json:"id"`
	Title           string                   `json:"title"`
	Description     string                   `json:"description"`
	DepartmentID    string                   `json:"department_id"`
	RequiredSkills  []entities.RequiredSkill `json:"required_skills"`
	MaxParticipants int                      `json:"max_participants"`
	StartDate       string                   `json:"start_date"`
	EndDate         string                   `json:"end_date"`
	Type            string                   `json:"type,omitempty"`
	Priority        string                   `json:"priority,omitempty"`
	Status          string                   `json:"status,omitempty"`
	Location        string                   `json:"location,omitempty"`
	Duration        string                   `json:"duration,omitempty"`
	CreatedAt       string                   `json:"created_at"`
	UpdatedAt       string                   `json:"updated_at"`
}
