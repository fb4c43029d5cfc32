package dto

import (
	"github.com/aarondl/null/v8"
)

type CreateUserDTO struct {
	Name         string `json:"name" validate:"required,max=255"`
	Matricule    string `json:"matricule" validate:"required,max=50"`
	Telephone    string `json:"telephone" validate:"required,max=20"`
	Email        string `json:"email" validate:"required,email,max=255"`
	Password     string `json:"password" validate:"required,min=8,max=255"`
	DateEmbauche string `json:"date_embauche" validate:"required"`

	DepartmentID string `json:"department_id" validate:"omitempty,uuid4"`
	ManagerID    string `json:"manager_id" validate:"omitempty,uuid4"`

	Status string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE SUSPENDED TERMINATED"`
	Role   string `json:"role" validate:"omitempty,oneof=HR MANAGER EMPLOYEE ADMIN"`
}

type UpdateUserDTO struct {
	Name         null.String `json:"name" validate:"omitempty,max=255"`
	Matricule    null.String `json:"matricule" validate:"omitempty,max=50"`
	Telephone    null.String `json:"telephone" validate:"omitempty,max=20"`
	Email        null.String `json:"email" validate:"omitempty,email,max=255"`
	Password     null.String `json:"password" validate:"omitempty,min=8,max=255"`
	DateEmbauche null.String `json:"date_embauche" validate:"omitempty"`

	DepartmentID null.String `json:"department_id" validate:"omitempty,uuid4"`
	ManagerID    null.String `json:"manager_id" validate:"omitempty,uuid4"`

	Status null.String `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE SUSPENDED TERMINATED"`
	Role   null.String `json:"role" validate:"omitempty,oneof=HR MANAGER EMPLOYEE ADMIN"`
}

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type OnlineStatusDTO struct {
	EnLigne bool `json:"en_ligne"`
}

// UserDTO — санитизированное представление пользователя: пароль и прочие
// служебные поля сюда не попадают никогда.
type UserDTO struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Matricule    string  `json:"matricule"`
	Telephone    string  `json:"telephone"`
	Email        string  `json:"email"`
	DateEmbauche string  `json:"date_embauche"`
	DepartmentID *string `json:"department_id"`
	ManagerID    *string `json:"manager_id"`
	Status       string  `json:"status"`
	Role         string  `json:"role"`
	EnLigne      bool    `json:"en_ligne"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    string  `json:"updated_at"`
}

type LoginResultDTO struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}

// ShortDepartmentDTO — раскрытая ссылка на департамент в выдаче поиска.
type ShortDepartmentDTO struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// EmployeeSearchDTO — строка выдачи поиска сотрудников.
type EmployeeSearchDTO struct {
	ID         string              `json:"id"`
	Name       string              `json:"name"`
	Matricule  string              `json:"matricule"`
	Email      string              `json:"email"`
	Telephone  string              `json:"telephone"`
	Status     string              `json:"status"`
	Department *ShortDepartmentDTO `json:"department"`
}
