package repositories

import (
	"context"
	"errors"

	"hrm-system/internal/entities"
	apperrors "hrm-system/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const departmentTable = "departments"
const departmentSelectFields = "id, name, code, description, manager_id, created_at, updated_at"

// DepartmentPatch — частичное обновление департамента. Description и
// ManagerID поддерживают явное обнуление через null.
type DepartmentPatch struct {
	Name        *string
	Code        *string
	Description null.String
	ManagerID   *uuid.UUID
	SetManager  bool
}

type DepartmentRepositoryInterface interface {
	GetDepartments(ctx context.Context) ([]entities.Department, error)
	FindDepartment(ctx context.Context, id uuid.UUID) (*entities.Department, error)
	// FindByManagerID находит департамент, менеджером которого назначен
	// данный пользователь. Именно обратный поиск: membership пользователя
	// (department_id) здесь не участвует.
	FindByManagerID(ctx context.Context, managerID uuid.UUID) (*entities.Department, error)
	CreateDepartment(ctx context.Context, entity *entities.Department) (*entities.Department, error)
	UpdateDepartment(ctx context.Context, id uuid.UUID, patch DepartmentPatch) (*entities.Department, error)
	DeleteDepartment(ctx context.Context, id uuid.UUID) error
}

type DepartmentRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewDepartmentRepository(storage *pgxpool.Pool, logger *zap.Logger) DepartmentRepositoryInterface {
	return &DepartmentRepository{storage: storage, logger: logger}
}

func scanDepartment(row pgx.Row) (*entities.Department, error) {
	var d entities.Department
	err := row.Scan(&d.ID, &d.Name, &d.Code, &d.Description, &d.ManagerID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

func mapDepartmentConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "departments_code_key" {
		return apperrors.ErrDepartmentCodeTaken
	}
	return err
}

func (r *DepartmentRepository) GetDepartments(ctx context.Context) ([]entities.Department, error) {
	rows, err := r.storage.Query(ctx, `SELECT `+departmentSelectFields+` FROM departments ORDER BY name ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	departments := make([]entities.Department, 0)
	for rows.Next() {
		dept, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		departments = append(departments, *dept)
	}
	return departments, rows.Err()
}

func (r *DepartmentRepository) FindDepartment(ctx context.Context, id uuid.UUID) (*entities.Department, error) {
	query := `SELECT ` + departmentSelectFields + ` FROM departments WHERE id = $1`
	return scanDepartment(r.storage.QueryRow(ctx, query, id))
}

func (r *DepartmentRepository) FindByManagerID(ctx context.Context, managerID uuid.UUID) (*entities.Department, error) {
	query := `SELECT ` + departmentSelectFields + ` FROM departments WHERE manager_id = $1 LIMIT 1`
	return scanDepartment(r.storage.QueryRow(ctx, query, managerID))
}

func (r *DepartmentRepository) CreateDepartment(ctx context.Context, entity *entities.Department) (*entities.Department, error) {
	query := `
        INSERT INTO departments (name, code, description, manager_id)
        VALUES ($1, $2, $3, $4)
        RETURNING ` + departmentSelectFields
	dept, err := scanDepartment(r.storage.QueryRow(ctx, query,
		entity.Name, entity.Code, entity.Description, entity.ManagerID,
	))
	if err != nil {
		return nil, mapDepartmentConstraint(err)
	}
	return dept, nil
}

func (r *DepartmentRepository) UpdateDepartment(ctx context.Context, id uuid.UUID, patch DepartmentPatch) (*entities.Department, error) {
	updateBuilder := sq.Update(departmentTable).
		PlaceholderFormat(sq.Dollar).
		Where(sq.Eq{"id": id}).
		Set("updated_at", sq.Expr("NOW()"))

	hasChanges := false
	if patch.Name != nil {
		updateBuilder = updateBuilder.Set("name", *patch.Name)
		hasChanges = true
	}
	if patch.Code != nil {
		updateBuilder = updateBuilder.Set("code", *patch.Code)
		hasChanges = true
	}
	if patch.Description.Valid {
		updateBuilder = updateBuilder.Set("description", patch.Description.String)
		hasChanges = true
	}
	if patch.SetManager {
		updateBuilder = updateBuilder.Set("manager_id", patch.ManagerID)
		hasChanges = true
	}
	if !hasChanges {
		return r.FindDepartment(ctx, id)
	}

	query, args, err := updateBuilder.Suffix("RETURNING " + departmentSelectFields).ToSql()
	if err != nil {
		return nil, err
	}
	dept, err := scanDepartment(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapDepartmentConstraint(err)
	}
	return dept, nil
}

func (r *DepartmentRepository) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
