package repositories

import (
	"context"
	"errors"
	"time"

	"hrm-system/internal/entities"
	apperrors "hrm-system/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const activityTable = "activities"
const activitySelectFields = "id, title, description, department_id, required_skills, max_participants, start_date, end_date, type, priority, status, location, duration, created_at, updated_at"

type ActivityPatch struct {
	Title           *string
	Description     *string
	DepartmentID    *uuid.UUID
	RequiredSkills  []entities.RequiredSkill
	MaxParticipants *int
	StartDate       *time.Time
	EndDate         *time.Time
	Type            *string
	Priority        *string
	Status          *string
	Location        *string
	Duration        *string
}

type ActivityRepositoryInterface interface {
	GetActivities(ctx context.Context) ([]entities.Activity, error)
	FindActivity(ctx context.Context, id uuid.UUID) (*entities.Activity, error)
	ListByDepartment(ctx context.Context, departmentID uuid.UUID) ([]entities.Activity, error)
	CountByDepartment(ctx context.Context, departmentID uuid.UUID) (uint64, error)
	CreateActivity(ctx context.Context, entity *entities.Activity) (*entities.Activity, error)
	UpdateActivity(ctx context.Context, id uuid.UUID, patch ActivityPatch) (*entities.Activity, error)
	DeleteActivity(ctx context.Context, id uuid.UUID) error
}

type ActivityRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewActivityRepository(storage *pgxpool.Pool, logger *zap.Logger) ActivityRepositoryInterface {
	return &ActivityRepository{storage: storage, logger: logger}
}

func scanActivity(row pgx.Row) (*entities.Activity, error) {
	var a entities.Activity
	err := row.Scan(
		&a.ID, &a.Title, &a.Description, &a.DepartmentID, &a.RequiredSkills,
		&a.MaxParticipants, &a.StartDate, &a.EndDate,
		&a.Type, &a.Priority, &a.Status, &a.Location, &a.Duration,
		&a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

func (r *ActivityRepository) collectActivities(rows pgx.Rows) ([]entities.Activity, error) {
	defer rows.Close()
	activities := make([]entities.Activity, 0)
	for rows.Next() {
		activity, err := scanActivity(rows)
		if err != nil {
			return nil, err
		}
		activities = append(activities, *activity)
	}
	return activities, rows.Err()
}

func (r *ActivityRepository) GetActivities(ctx context.Context) ([]entities.Activity, error) {
	rows, err := r.storage.Query(ctx, `SELECT `+activitySelectFields+` FROM activities ORDER BY start_date DESC`)
	if err != nil {
		return nil, err
	}
	return r.collectActivities(rows)
}

func (r *ActivityRepository) FindActivity(ctx context.Context, id uuid.UUID) (*entities.Activity, error) {
	query := `SELECT ` + activitySelectFields + ` FROM activities WHERE id = $1`
	return scanActivity(r.storage.QueryRow(ctx, query, id))
}

func (r *ActivityRepository) ListByDepartment(ctx context.Context, departmentID uuid.UUID) ([]entities.Activity, error) {
	query := `SELECT ` + activitySelectFields + ` FROM activities WHERE department_id = $1 ORDER BY start_date DESC`
	rows, err := r.storage.Query(ctx, query, departmentID)
	if err != nil {
		return nil, err
	}
	return r.collectActivities(rows)
}

func (r *ActivityRepository) CountByDepartment(ctx context.Context, departmentID uuid.UUID) (uint64, error) {
	var total uint64
	err := r.storage.QueryRow(ctx, `SELECT COUNT(*) FROM activities WHERE department_id = $1`, departmentID).Scan(&total)
	return total, err
}

func (r *ActivityRepository) CreateActivity(ctx context.Context, entity *entities.Activity) (*entities.Activity, error) {
	query := `
        INSERT INTO activities (title, description, department_id, required_skills, max_participants, start_date, end_date, type, priority, status, location, duration)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING ` + activitySelectFields
	return scanActivity(r.storage.QueryRow(ctx, query,
		entity.Title, entity.Description, entity.DepartmentID, entity.RequiredSkills,
		entity.MaxParticipants, entity.StartDate, entity.EndDate,
		entity.Type, entity.Priority, entity.Status, entity.Location, entity.Duration,
	))
}

func (r *ActivityRepository) UpdateActivity(ctx context.Context, id uuid.UUID, patch ActivityPatch) (*entities.Activity, error) {
	updateBuilder := sq.Update(activityTable).
		PlaceholderFormat(sq.Dollar).
		Where(sq.Eq{"id": id}).
		Set("updated_at", sq.Expr("NOW()"))

	hasChanges := false
	if patch.Title != nil {
		updateBuilder = updateBuilder.Set("title", *patch.Title)
		hasChanges = true
	}
	if patch.Description != nil {
		updateBuilder = updateBuilder.Set("description", *patch.Description)
		hasChanges = true
	}
	if patch.DepartmentID != nil {
		updateBuilder = updateBuilder.Set("department_id", *patch.DepartmentID)
		hasChanges = true
	}
	if patch.RequiredSkills != nil {
		updateBuilder = updateBuilder.Set("required_skills", patch.RequiredSkills)
		hasChanges = true
	}
	if patch.MaxParticipants != nil {
		updateBuilder = updateBuilder.Set("max_participants", *patch.MaxParticipants)
		hasChanges = true
	}
	if patch.StartDate != nil {
		updateBuilder = updateBuilder.Set("start_date", *patch.StartDate)
		hasChanges = true
	}
	if patch.EndDate != nil {
		updateBuilder = updateBuilder.Set("end_date", *patch.EndDate)
		hasChanges = true
	}
	if patch.Type != nil {
		updateBuilder = updateBuilder.Set("type", *patch.Type)
		hasChanges = true
	}
	if patch.Priority != nil {
		updateBuilder = updateBuilder.Set("priority", *patch.Priority)
		hasChanges = true
	}
	if patch.Status != nil {
		updateBuilder = updateBuilder.Set("status", *patch.Status)
		hasChanges = true
	}
	if patch.Location != nil {
		updateBuilder = updateBuilder.Set("location", *patch.Location)
		hasChanges = true
	}
	if patch.Duration != nil {
		updateBuilder = updateBuilder.Set("duration", *patch.Duration)
		hasChanges = true
	}
	if !hasChanges {
		return r.FindActivity(ctx, id)
	}

	query, args, err := updateBuilder.Suffix("RETURNING " + activitySelectFields).ToSql()
	if err != nil {
		return nil, err
	}
	return scanActivity(r.storage.QueryRow(ctx, query, args...))
}

func (r *ActivityRepository) DeleteActivity(ctx context.Context, id uuid.UUID) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM activities WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
