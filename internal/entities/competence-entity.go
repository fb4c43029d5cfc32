package entities

import (
	"hrm-system/pkg/constants"
	"hrm-system/pkg/types"

	"github.com/google/uuid"
)

// Competence — оцениваемый навык внутри фиши. auto_eval заполняет сотрудник
// (внешний модуль), hierarchie_eval — менеджер; запись оценки менеджера
// переводит etat в validated.
type Competence struct {
	ID                   uuid.UUID `json:"id" db:"id"`
	FicheID              uuid.UUID `json:"fiches_id" db:"fiche_id"`
	QuestionCompetenceID uuid.UUID `json:"question_competence_id" db:"question_competence_id"`

	Type     string `json:"type" db:"type"`
	Intitule string `json:"intitule" db:"intitule"`

	AutoEval       *int `json:"auto_eval" db:"auto_eval"`
	HierarchieEval *int `json:"hierarchie_eval" db:"hierarchie_eval"`

	Etat constants.CompetenceEtat `json:"etat" db:"etat"`

	// Заполняются выборкой с JOIN на question_competences.
	QuestionIntitule *string `json:"-" db:"-"`
	QuestionDetails  *string `json:"-" db:"-"`

	types.BaseEntity
}
