package entities

import (
	"hrm-system/pkg/constants"
	"hrm-system/pkg/types"

	"github.com/google/uuid"
)

// Fiche — один оценочный период одного сотрудника. Переходы состояния
// принадлежат модулю самооценки; здесь etat только читается.
type Fiche struct {
	ID      uuid.UUID           `json:"id" db:"id"`
	UserID  uuid.UUID           `json:"user_id" db:"user_id"`
	Saisons string              `json:"saisons" db:"saisons"`
	Etat    constants.FicheEtat `json:"etat" db:"etat"`

	types.BaseEntity
}
