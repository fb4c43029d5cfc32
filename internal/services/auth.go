package services

import (
	"context"
	"errors"

	"hrm-system/internal/dto"
	"hrm-system/internal/repositories"
	"hrm-system/pkg/constants"
	apperrors "hrm-system/pkg/errors"
	"hrm-system/pkg/service"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResultDTO, error)
}

type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	jwtService service.JWTService,
	logger *zap.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:   userRepo,
		jwtService: jwtService,
		logger:     logger,
	}
}

// Login: поиск по email в нижнем регистре, затем проверка статуса, затем
// пароль. Неактивная учётная запись отклоняется до сверки пароля с
// отдельной причиной в ответе.
func (s *AuthService) Login(ctx context.Context, payload dto.LoginDTO) (*dto.LoginResultDTO, error) {
	email := normalizeEmail(payload.Email)
	logger := s.logger.With(zap.String("email", email))

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			logger.Warn("Попытка входа с неизвестным email")
			return nil, apperrors.ErrInvalidCredentials
		}
		logger.Error("Ошибка поиска пользователя при входе", zap.Error(err))
		return nil, err
	}

	if user.Status != constants.UserStatusActive {
		logger.Warn("Попытка входа в неактивную учётную запись", zap.String("status", user.Status.String()))
		return nil, apperrors.ErrAccountNotActive
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(payload.Password)); err != nil {
		logger.Warn("Неверный пароль при входе")
		return nil, apperrors.ErrInvalidCredentials
	}

	updated, err := s.userRepo.SetOnlineStatus(ctx, user.ID, true)
	if err != nil {
		logger.Error("Не удалось отметить пользователя как онлайн", zap.Error(err))
		return nil, err
	}

	token, err := s.jwtService.GenerateToken(updated.ID, updated.Role)
	if err != nil {
		logger.Error("Не удалось сгенерировать токен", zap.Error(err))
		return nil, err
	}

	logger.Info("Успешный вход", zap.String("user_id", updated.ID.String()))
	return &dto.LoginResultDTO{
		Token: token,
		User:  userToDTO(updated),
	}, nil
}
