package repositories

import (
	"context"
	"errors"

	"hrm-system/internal/entities"
	"hrm-system/pkg/constants"
	apperrors "hrm-system/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const competenceSelectFields = "id, fiche_id, question_competence_id, type, intitule, auto_eval, hierarchie_eval, etat, created_at, updated_at"

type CompetenceRepositoryInterface interface {
	FindCompetence(ctx context.Context, id uuid.UUID) (*entities.Competence, error)
	// ListByFiche возвращает компетенции фиши с раскрытым шаблоном вопроса,
	// отсортированные по типу.
	ListByFiche(ctx context.Context, ficheID uuid.UUID) ([]entities.Competence, error)
	// ValidateCompetence атомарно записывает оценку менеджера и переводит
	// etat в validated одним условным UPDATE. Для уже валидированной
	// компетенции не возвращает строк.
	ValidateCompetence(ctx context.Context, id uuid.UUID, hierarchieEval int) (*entities.Competence, error)
}

type CompetenceRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewCompetenceRepository(storage *pgxpool.Pool, logger *zap.Logger) CompetenceRepositoryInterface {
	return &CompetenceRepository{storage: storage, logger: logger}
}

func scanCompetence(row pgx.Row) (*entities.Competence, error) {
	var c entities.Competence
	err := row.Scan(
		&c.ID, &c.FicheID, &c.QuestionCompetenceID, &c.Type, &c.Intitule,
		&c.AutoEval, &c.HierarchieEval, &c.Etat,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *CompetenceRepository) FindCompetence(ctx context.Context, id uuid.UUID) (*entities.Competence, error) {
	query := `SELECT ` + competenceSelectFields + ` FROM competences WHERE id = $1`
	return scanCompetence(r.storage.QueryRow(ctx, query, id))
}

func (r *CompetenceRepository) ListByFiche(ctx context.Context, ficheID uuid.UUID) ([]entities.Competence, error) {
	query := `
        SELECT c.id, c.fiche_id, c.question_competence_id, c.type, c.intitule,
               c.auto_eval, c.hierarchie_eval, c.etat, c.created_at, c.updated_at,
               q.intitule, q.details
        FROM competences c
        LEFT JOIN question_competences q ON c.question_competence_id = q.id
        WHERE c.fiche_id = $1
        ORDER BY c.type ASC`
	rows, err := r.storage.Query(ctx, query, ficheID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	competences := make([]entities.Competence, 0)
	for rows.Next() {
		var c entities.Competence
		err := rows.Scan(
			&c.ID, &c.FicheID, &c.QuestionCompetenceID, &c.Type, &c.Intitule,
			&c.AutoEval, &c.HierarchieEval, &c.Etat,
			&c.CreatedAt, &c.UpdatedAt,
			&c.QuestionIntitule, &c.QuestionDetails,
		)
		if err != nil {
			return nil, err
		}
		competences = append(competences, c)
	}
	return competences, rows.Err()
}

func (r *CompetenceRepository) ValidateCompetence(ctx context.Context, id uuid.UUID, hierarchieEval int) (*entities.Competence, error) {
	query := `
        UPDATE competences
        SET hierarchie_eval = $1, etat = $2, updated_at = NOW()
        WHERE id = $3 AND etat <> $2
        RETURNING ` + competenceSelectFields
	return scanCompetence(r.storage.QueryRow(ctx, query, hierarchieEval, constants.CompetenceEtatValidated, id))
}
