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

const ficheSelectFields = "id, user_id, saisons, etat, created_at, updated_at"

type FicheRepositoryInterface interface {
	FindFiche(ctx context.Context, id uuid.UUID) (*entities.Fiche, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]entities.Fiche, error)
	// CountPendingByDepartment считает фиши сотрудников департамента в
	// состояниях, ожидающих оценки (draft, in_progress).
	CountPendingByDepartment(ctx context.Context, departmentID uuid.UUID) (uint64, error)
}

type FicheRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewFicheRepository(storage *pgxpool.Pool, logger *zap.Logger) FicheRepositoryInterface {
	return &FicheRepository{storage: storage, logger: logger}
}

func scanFiche(row pgx.Row) (*entities.Fiche, error) {
	var f entities.Fiche
	err := row.Scan(&f.ID, &f.UserID, &f.Saisons, &f.Etat, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &f, nil
}

func (r *FicheRepository) FindFiche(ctx context.Context, id uuid.UUID) (*entities.Fiche, error) {
	query := `SELECT ` + ficheSelectFields + ` FROM fiches WHERE id = $1`
	return scanFiche(r.storage.QueryRow(ctx, query, id))
}

func (r *FicheRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]entities.Fiche, error) {
	query := `SELECT ` + ficheSelectFields + ` FROM fiches WHERE user_id = $1 ORDER BY created_at DESC`
	rows, err := r.storage.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	fiches := make([]entities.Fiche, 0)
	for rows.Next() {
		fiche, err := scanFiche(rows)
		if err != nil {
			return nil, err
		}
		fiches = append(fiches, *fiche)
	}
	return fiches, rows.Err()
}

func (r *FicheRepository) CountPendingByDepartment(ctx context.Context, departmentID uuid.UUID) (uint64, error) {
	query := `
        SELECT COUNT(*)
        FROM fiches f
        JOIN users u ON f.user_id = u.id
        WHERE u.department_id = $1 AND u.role = $2 AND f.etat = ANY($3)`
	etats := make([]string, 0, len(constants.PendingFicheEtats))
	for _, etat := range constants.PendingFicheEtats {
		etats = append(etats, etat.String())
	}

	var total uint64
	err := r.storage.QueryRow(ctx, query, departmentID, constants.RoleEmployee, etats).Scan(&total)
	return total, err
}
