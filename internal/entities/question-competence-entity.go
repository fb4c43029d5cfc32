package entities

import (
	"hrm-system/pkg/types"

	"github.com/google/uuid"
)

// QuestionCompetence — переиспользуемый шаблон вопроса компетенции.
// Из этого среза только читается.
type QuestionCompetence struct {
	ID       uuid.UUID `json:"id" db:"id"`
	Intitule string    `json:"intitule" db:"intitule"`
	Details  string    `json:"details" db:"details"`
	Status   string    `json:"status" db:"status"`

	types.BaseEntity
}
