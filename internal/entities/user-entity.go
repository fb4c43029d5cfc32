package entities

import (
	"time"

	"hrm-system/pkg/constants"
	"hrm-system/pkg/types"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Matricule    string    `json:"matricule" db:"matricule"`
	Telephone    string    `json:"telephone" db:"telephone"`
	Email        string    `json:"email" db:"email"`
	Password     string    `json:"-" db:"password"`
	DateEmbauche time.Time `json:"date_embauche" db:"date_embauche"`

	DepartmentID *uuid.UUID `json:"department_id" db:"department_id"`
	ManagerID    *uuid.UUID `json:"manager_id" db:"manager_id"`

	Status  constants.UserStatus `json:"status" db:"status"`
	Role    constants.Role       `json:"role" db:"role"`
	EnLigne bool                 `json:"en_ligne" db:"en_ligne"`

	// Заполняются только поисковым запросом с JOIN на departments.
	DepartmentName *string `json:"-" db:"-"`
	DepartmentCode *string `json:"-" db:"-"`

	types.BaseEntity
}
