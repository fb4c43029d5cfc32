package dto

import "github.com/aarondl/null/v8"

type CreateDepartmentDTO struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Code        string  `json:"code" validate:"required,max=50"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	ManagerID   string  `json:"manager_id" validate:"omitempty,uuid4"`
}

type UpdateDepartmentDTO struct {
	Name        null.String `json:"name" validate:"omitempty,max=255"`
	Code        null.String `json:"code" validate:"omitempty,max=50"`
	Description null.String `json:"description" validate:"omitempty,max=500"`
	ManagerID   null.String `json:"manager_id" validate:"omitempty,uuid4"`
}

type DepartmentDTO struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Code        string  `json:"code"`
	Description *string `json:"description,omitempty"`
	ManagerID   *string `json:"manager_id"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}
