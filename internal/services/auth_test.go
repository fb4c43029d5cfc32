package services

import (
	"context"
	"testing"
	"time"

	"hrm-system/internal/dto"
	"hrm-system/internal/entities"
	"hrm-system/pkg/constants"
	apperrors "hrm-system/pkg/errors"
	"hrm-system/pkg/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture(t *testing.T) (*fakeUserRepo, AuthServiceInterface) {
	t.Helper()
	users := newFakeUserRepo()
	jwtSvc := service.NewJWTService("test-secret", time.Hour)
	return users, NewAuthService(users, jwtSvc, zap.NewNop())
}

func addAccount(users *fakeUserRepo, email, password string, status constants.UserStatus) *entities.User {
	hashed, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	return users.add(&entities.User{
		Name:      "Тестовый",
		Matricule: "EMP-" + email,
		Email:     email,
		Password:  string(hashed),
		Status:    status,
		Role:      constants.RoleEmployee,
	})
}

func TestLoginSuccessFlipsOnlineAndIssuesToken(t *testing.T) {
	users, authService := newAuthFixture(t)
	account := addAccount(users, "ivanov@corp.tj", "Password123!", constants.UserStatusActive)

	result, err := authService.Login(context.Background(), dto.LoginDTO{
		Email:    "Ivanov@corp.tj",
		Password: "Password123!",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, account.ID.String(), result.User.ID)
	assert.True(t, result.User.EnLigne)
	assert.True(t, users.users[account.ID].EnLigne)
}

func TestLoginUnknownEmailFailsWithInvalidCredentials(t *testing.T) {
	_, authService := newAuthFixture(t)

	_, err := authService.Login(context.Background(), dto.LoginDTO{
		Email:    "nobody@corp.tj",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestLoginWrongPasswordFails(t *testing.T) {
	users, authService := newAuthFixture(t)
	addAccount(users, "ivanov@corp.tj", "Password123!", constants.UserStatusActive)

	_, err := authService.Login(context.Background(), dto.LoginDTO{
		Email:    "ivanov@corp.tj",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

// Неактивная учётная запись отклоняется до сверки пароля с отдельной
// причиной: правильный пароль не приводит ни к токену, ни к установке
// флага присутствия.
func TestLoginInactiveAccountFailsBeforePasswordCheck(t *testing.T) {
	users, authService := newAuthFixture(t)
	account := addAccount(users, "suspended@corp.tj", "Password123!", constants.UserStatusSuspended)

	_, err := authService.Login(context.Background(), dto.LoginDTO{
		Email:    "suspended@corp.tj",
		Password: "Password123!",
	})
	assert.ErrorIs(t, err, apperrors.ErrAccountNotActive)
	assert.NotErrorIs(t, err, apperrors.ErrInvalidCredentials)
	assert.False(t, users.users[account.ID].EnLigne)
	assert.Zero(t, users.onlineFlips)
}
