package repositories

import (
	"context"
	"errors"
	"time"

	"hrm-system/internal/entities"
	"hrm-system/pkg/constants"
	apperrors "hrm-system/pkg/errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

const userTable = "users"
const userSelectFields = "id, name, matricule, telephone, email, password, date_embauche, department_id, manager_id, status, role, en_ligne, created_at, updated_at"

// UserPatch — частичное обновление: nil-поля не трогаются.
type UserPatch struct {
	Name         *string
	Matricule    *string
	Telephone    *string
	Email        *string
	Password     *string
	DateEmbauche *time.Time
	DepartmentID *uuid.UUID
	ManagerID    *uuid.UUID
	Status       *constants.UserStatus
	Role         *constants.Role
}

type UserRepositoryInterface interface {
	GetUsers(ctx context.Context) ([]entities.User, error)
	FindUser(ctx context.Context, id uuid.UUID) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	CreateUser(ctx context.Context, entity *entities.User) (*entities.User, error)
	UpdateUser(ctx context.Context, id uuid.UUID, patch UserPatch) (*entities.User, error)
	DeleteUser(ctx context.Context, id uuid.UUID) error
	SetOnlineStatus(ctx context.Context, id uuid.UUID, online bool) (*entities.User, error)
	ListEmployeesByDepartment(ctx context.Context, departmentID uuid.UUID) ([]entities.User, error)
	CountEmployeesByDepartment(ctx context.Context, departmentID uuid.UUID) (uint64, error)
	SearchEmployees(ctx context.Context, query string, departmentID *uuid.UUID, limit uint64) ([]entities.User, error)
}

type UserRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewUserRepository(storage *pgxpool.Pool, logger *zap.Logger) UserRepositoryInterface {
	return &UserRepository{storage: storage, logger: logger}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var user entities.User
	err := row.Scan(
		&user.ID, &user.Name, &user.Matricule, &user.Telephone, &user.Email,
		&user.Password, &user.DateEmbauche, &user.DepartmentID, &user.ManagerID,
		&user.Status, &user.Role, &user.EnLigne,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// mapUserConstraint переводит нарушение уникальности в доменную ошибку 409.
func mapUserConstraint(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "users_email_key":
			return apperrors.ErrEmailTaken
		case "users_matricule_key":
			return apperrors.ErrMatriculeTaken
		}
	}
	return err
}

func (r *UserRepository) GetUsers(ctx context.Context) ([]entities.User, error) {
	query := `SELECT ` + userSelectFields + ` FROM users ORDER BY created_at DESC`
	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (r *UserRepository) FindUser(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	query := `SELECT ` + userSelectFields + ` FROM users WHERE id = $1`
	return scanUser(r.storage.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := `SELECT ` + userSelectFields + ` FROM users WHERE email = $1 LIMIT 1`
	return scanUser(r.storage.QueryRow(ctx, query, email))
}

func (r *UserRepository) CreateUser(ctx context.Context, entity *entities.User) (*entities.User, error) {
	query := `
        INSERT INTO users (name, matricule, telephone, email, password, date_embauche, department_id, manager_id, status, role, en_ligne)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING ` + userSelectFields
	user, err := scanUser(r.storage.QueryRow(ctx, query,
		entity.Name, entity.Matricule, entity.Telephone, entity.Email,
		entity.Password, entity.DateEmbauche, entity.DepartmentID, entity.ManagerID,
		entity.Status, entity.Role, entity.EnLigne,
	))
	if err != nil {
		return nil, mapUserConstraint(err)
	}
	return user, nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, id uuid.UUID, patch UserPatch) (*entities.User, error) {
	updateBuilder := sq.Update(userTable).
		PlaceholderFormat(sq.Dollar).
		Where(sq.Eq{"id": id}).
		Set("updated_at", sq.Expr("NOW()"))

	hasChanges := false
	if patch.Name != nil {
		updateBuilder = updateBuilder.Set("name", *patch.Name)
		hasChanges = true
	}
	if patch.Matricule != nil {
		updateBuilder = updateBuilder.Set("matricule", *patch.Matricule)
		hasChanges = true
	}
	if patch.Telephone != nil {
		updateBuilder = updateBuilder.Set("telephone", *patch.Telephone)
		hasChanges = true
	}
	if patch.Email != nil {
		updateBuilder = updateBuilder.Set("email", *patch.Email)
		hasChanges = true
	}
	if patch.Password != nil {
		updateBuilder = updateBuilder.Set("password", *patch.Password)
		hasChanges = true
	}
	if patch.DateEmbauche != nil {
		updateBuilder = updateBuilder.Set("date_embauche", *patch.DateEmbauche)
		hasChanges = true
	}
	if patch.DepartmentID != nil {
		updateBuilder = updateBuilder.Set("department_id", *patch.DepartmentID)
		hasChanges = true
	}
	if patch.ManagerID != nil {
		updateBuilder = updateBuilder.Set("manager_id", *patch.ManagerID)
		hasChanges = true
	}
	if patch.Status != nil {
		updateBuilder = updateBuilder.Set("status", *patch.Status)
		hasChanges = true
	}
	if patch.Role != nil {
		updateBuilder = updateBuilder.Set("role", *patch.Role)
		hasChanges = true
	}
	if !hasChanges {
		return r.FindUser(ctx, id)
	}

	query, args, err := updateBuilder.Suffix("RETURNING " + userSelectFields).ToSql()
	if err != nil {
		return nil, err
	}
	user, err := scanUser(r.storage.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, mapUserConstraint(err)
	}
	return user, nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	result, err := r.storage.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *UserRepository) SetOnlineStatus(ctx context.Context, id uuid.UUID, online bool) (*entities.User, error) {
	query := `UPDATE users SET en_ligne = $1, updated_at = NOW() WHERE id = $2 RETURNING ` + userSelectFields
	return scanUser(r.storage.QueryRow(ctx, query, online, id))
}

func (r *UserRepository) ListEmployeesByDepartment(ctx context.Context, departmentID uuid.UUID) ([]entities.User, error) {
	query := `SELECT ` + userSelectFields + ` FROM users WHERE department_id = $1 AND role = $2 ORDER BY name ASC`
	rows, err := r.storage.Query(ctx, query, departmentID, constants.RoleEmployee)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *user)
	}
	return users, rows.Err()
}

func (r *UserRepository) CountEmployeesByDepartment(ctx context.Context, departmentID uuid.UUID) (uint64, error) {
	var total uint64
	err := r.storage.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE department_id = $1 AND role = $2`,
		departmentID, constants.RoleEmployee,
	).Scan(&total)
	return total, err
}

func (r *UserRepository) SearchEmployees(ctx context.Context, query string, departmentID *uuid.UUID, limit uint64) ([]entities.User, error) {
	like := "%" + query + "%"
	builder := sq.Select(
		"u.id", "u.name", "u.matricule", "u.telephone", "u.email",
		"u.date_embauche", "u.department_id", "u.manager_id", "u.status", "u.role", "u.en_ligne",
		"d.name", "d.code",
	).
		From("users u").
		LeftJoin("departments d ON u.department_id = d.id").
		Where(sq.Eq{"u.role": constants.RoleEmployee}).
		Where(sq.Or{
			sq.ILike{"u.name": like},
			sq.ILike{"u.matricule": like},
			sq.ILike{"u.email": like},
		}).
		OrderBy("u.name ASC").
		Limit(limit).
		PlaceholderFormat(sq.Dollar)

	if departmentID != nil {
		builder = builder.Where(sq.Eq{"u.department_id": *departmentID})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}
	r.logger.Debug("Поиск сотрудников", zap.String("query", sql), zap.Any("args", args))

	rows, err := r.storage.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		var user entities.User
		err := rows.Scan(
			&user.ID, &user.Name, &user.Matricule, &user.Telephone, &user.Email,
			&user.DateEmbauche, &user.DepartmentID, &user.ManagerID,
			&user.Status, &user.Role, &user.EnLigne,
			&user.DepartmentName, &user.DepartmentCode,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}
