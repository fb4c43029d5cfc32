package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"hrm-system/internal/dto"
	"hrm-system/internal/entities"
	"hrm-system/internal/repositories"
	"hrm-system/pkg/constants"
	apperrors "hrm-system/pkg/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const dateLayout = "2006-01-02"

// parseDate принимает дату в формате 2006-01-02 либо полный RFC3339.
func parseDate(value string) (time.Time, error) {
	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, apperrors.NewBadRequestError("неверный формат даты: " + value)
	}
	return t, nil
}

// parseID: синтаксически некорректный идентификатор — это 400 ещё до
// обращения к хранилищу, а не 404.
func parseID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, apperrors.NewBadRequestError("некорректный идентификатор: " + raw)
	}
	return id, nil
}

// Email хранится и ищется только в нижнем регистре.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func uuidPtrToString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

// userToDTO — единственная точка санитизации пользователя: хеш пароля
// наружу не выходит никогда.
func userToDTO(user *entities.User) dto.UserDTO {
	return dto.UserDTO{
		ID:           user.ID.String(),
		Name:         user.Name,
		Matricule:    user.Matricule,
		Telephone:    user.Telephone,
		Email:        user.Email,
		DateEmbauche: user.DateEmbauche.Format(dateLayout),
		DepartmentID: uuidPtrToString(user.DepartmentID),
		ManagerID:    uuidPtrToString(user.ManagerID),
		Status:       user.Status.String(),
		Role:         user.Role.String(),
		EnLigne:      user.EnLigne,
		CreatedAt:    user.CreatedAt.Format(time.RFC3339),
		UpdatedAt:    user.UpdatedAt.Format(time.RFC3339),
	}
}

type UserServiceInterface interface {
	GetUsers(ctx context.Context) ([]dto.UserDTO, error)
	FindUser(ctx context.Context, id string) (*dto.UserDTO, error)
	CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserDTO, error)
	UpdateUser(ctx context.Context, id string, payload dto.UpdateUserDTO) (*dto.UserDTO, error)
	DeleteUser(ctx context.Context, id string) error
	SetOnlineStatus(ctx context.Context, id string, payload dto.OnlineStatusDTO) (*dto.UserDTO, error)
}

type UserService struct {
	userRepo       repositories.UserRepositoryInterface
	departmentRepo repositories.DepartmentRepositoryInterface
	logger         *zap.Logger
}

func NewUserService(
	userRepo repositories.UserRepositoryInterface,
	departmentRepo repositories.DepartmentRepositoryInterface,
	logger *zap.Logger,
) UserServiceInterface {
	return &UserService{userRepo: userRepo, departmentRepo: departmentRepo, logger: logger}
}

// resolveReferences проверяет, что переданные ссылки указывают на
// существующие записи. Синтаксис id проверяется раньше, здесь только
// существование.
func (s *UserService) resolveReferences(ctx context.Context, departmentID, managerID *uuid.UUID) error {
	if departmentID != nil {
		if _, err := s.departmentRepo.FindDepartment(ctx, *departmentID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("департамент не найден: " + departmentID.String())
			}
			return err
		}
	}
	if managerID != nil {
		if _, err := s.userRepo.FindUser(ctx, *managerID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return apperrors.NewNotFoundError("руководитель не найден: " + managerID.String())
			}
			return err
		}
	}
	return nil
}

func (s *UserService) GetUsers(ctx context.Context) ([]dto.UserDTO, error) {
	users, err := s.userRepo.GetUsers(ctx)
	if err != nil {
		s.logger.Error("Не удалось получить список пользователей", zap.Error(err))
		return nil, err
	}
	result := make([]dto.UserDTO, 0, len(users))
	for i := range users {
		result = append(result, userToDTO(&users[i]))
	}
	return result, nil
}

func (s *UserService) FindUser(ctx context.Context, id string) (*dto.UserDTO, error) {
	userID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	result := userToDTO(user)
	return &result, nil
}

func (s *UserService) CreateUser(ctx context.Context, payload dto.CreateUserDTO) (*dto.UserDTO, error) {
	dateEmbauche, err := parseDate(payload.DateEmbauche)
	if err != nil {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password), bcrypt.DefaultCost)
	if err != nil {
		s.logger.Error("Не удалось захешировать пароль", zap.Error(err))
		return nil, err
	}

	entity := &entities.User{
		Name:         payload.Name,
		Matricule:    payload.Matricule,
		Telephone:    payload.Telephone,
		Email:        normalizeEmail(payload.Email),
		Password:     string(hashed),
		DateEmbauche: dateEmbauche,
		Status:       constants.UserStatusActive,
		Role:         constants.RoleEmployee,
		EnLigne:      false,
	}
	if payload.Status != "" {
		entity.Status = constants.UserStatus(payload.Status)
	}
	if payload.Role != "" {
		entity.Role = constants.Role(payload.Role)
	}
	if payload.DepartmentID != "" {
		deptID, err := parseID(payload.DepartmentID)
		if err != nil {
			return nil, err
		}
		entity.DepartmentID = &deptID
	}
	if payload.ManagerID != "" {
		managerID, err := parseID(payload.ManagerID)
		if err != nil {
			return nil, err
		}
		entity.ManagerID = &managerID
	}

	if err := s.resolveReferences(ctx, entity.DepartmentID, entity.ManagerID); err != nil {
		return nil, err
	}

	created, err := s.userRepo.CreateUser(ctx, entity)
	if err != nil {
		s.logger.Warn("Не удалось создать пользователя", zap.String("email", entity.Email), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Пользователь создан", zap.String("user_id", created.ID.String()))
	result := userToDTO(created)
	return &result, nil
}

func (s *UserService) UpdateUser(ctx context.Context, id string, payload dto.UpdateUserDTO) (*dto.UserDTO, error) {
	userID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	var patch repositories.UserPatch
	if payload.Name.Valid {
		patch.Name = &payload.Name.String
	}
	if payload.Matricule.Valid {
		patch.Matricule = &payload.Matricule.String
	}
	if payload.Telephone.Valid {
		patch.Telephone = &payload.Telephone.String
	}
	if payload.Email.Valid {
		email := normalizeEmail(payload.Email.String)
		patch.Email = &email
	}
	if payload.Password.Valid {
		hashed, err := bcrypt.GenerateFromPassword([]byte(payload.Password.String), bcrypt.DefaultCost)
		if err != nil {
			s.logger.Error("Не удалось захешировать пароль", zap.Error(err))
			return nil, err
		}
		hashedStr := string(hashed)
		patch.Password = &hashedStr
	}
	if payload.DateEmbauche.Valid {
		dateEmbauche, err := parseDate(payload.DateEmbauche.String)
		if err != nil {
			return nil, err
		}
		patch.DateEmbauche = &dateEmbauche
	}
	if payload.DepartmentID.Valid {
		deptID, err := parseID(payload.DepartmentID.String)
		if err != nil {
			return nil, err
		}
		patch.DepartmentID = &deptID
	}
	if payload.ManagerID.Valid {
		managerID, err := parseID(payload.ManagerID.String)
		if err != nil {
			return nil, err
		}
		patch.ManagerID = &managerID
	}
	if payload.Status.Valid {
		status := constants.UserStatus(payload.Status.String)
		patch.Status = &status
	}
	if payload.Role.Valid {
		role := constants.Role(payload.Role.String)
		patch.Role = &role
	}

	if err := s.resolveReferences(ctx, patch.DepartmentID, patch.ManagerID); err != nil {
		return nil, err
	}

	updated, err := s.userRepo.UpdateUser(ctx, userID, patch)
	if err != nil {
		return nil, err
	}
	result := userToDTO(updated)
	return &result, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	userID, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		return err
	}
	s.logger.Info("Пользователь удалён", zap.String("user_id", userID.String()))
	return nil
}

// SetOnlineStatus выставляет флаг en_ligne вручную. Логин ставит флаг сам;
// обратного автоматического сброса нет, выход фиксируется этим вызовом.
func (s *UserService) SetOnlineStatus(ctx context.Context, id string, payload dto.OnlineStatusDTO) (*dto.UserDTO, error) {
	userID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	updated, err := s.userRepo.SetOnlineStatus(ctx, userID, payload.EnLigne)
	if err != nil {
		return nil, err
	}
	result := userToDTO(updated)
	return &result, nil
}
