package entities

import (
	"hrm-system/pkg/types"

	"github.com/google/uuid"
)

// Department — организационная единица. У департамента не более одного
// менеджера; повторное назначение перезаписывает предыдущее.
type Department struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Code        string     `json:"code" db:"code"`
	Description *string    `json:"description,omitempty" db:"description"`
	ManagerID   *uuid.UUID `json:"manager_id" db:"manager_id"`

	types.BaseEntity
}
