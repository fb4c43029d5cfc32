package services

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"hrm-system/internal/dto"
	"hrm-system/pkg/constants"
	apperrors "hrm-system/pkg/errors"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newUserFixture(t *testing.T) (*fakeUserRepo, UserServiceInterface) {
	t.Helper()
	users := newFakeUserRepo()
	return users, NewUserService(users, newFakeDepartmentRepo(), zap.NewNop())
}

func TestCreateAndFindUserRoundTripNeverExposesPassword(t *testing.T) {
	_, userService := newUserFixture(t)

	created, err := userService.CreateUser(context.Background(), dto.CreateUserDTO{
		Name:         "Иванов Иван",
		Matricule:    "EMP-001",
		Telephone:    "+992900000001",
		Email:        "Ivanov@corp.tj",
		Password:     "Password123!",
		DateEmbauche: "2024-01-15",
	})
	require.NoError(t, err)
	assert.Equal(t, "ivanov@corp.tj", created.Email)
	assert.Equal(t, constants.RoleEmployee.String(), created.Role)

	found, err := userService.FindUser(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, created.Matricule, found.Matricule)
	assert.Equal(t, created.DateEmbauche, found.DateEmbauche)

	// В сериализованном виде пароля нет ни под каким ключом.
	raw, err := json.Marshal(found)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "password")
	assert.NotContains(t, string(raw), "Password123!")
}

func TestCreateUserDuplicateEmailConflicts(t *testing.T) {
	_, userService := newUserFixture(t)

	payload := dto.CreateUserDTO{
		Name:         "Иванов",
		Matricule:    "EMP-001",
		Telephone:    "+992900000001",
		Email:        "ivanov@corp.tj",
		Password:     "Password123!",
		DateEmbauche: "2024-01-15",
	}
	_, err := userService.CreateUser(context.Background(), payload)
	require.NoError(t, err)

	payload.Matricule = "EMP-002"
	_, err = userService.CreateUser(context.Background(), payload)
	assert.ErrorIs(t, err, apperrors.ErrEmailTaken)
}

func TestCreateUserUnknownManagerReferenceFailsWith404(t *testing.T) {
	_, userService := newUserFixture(t)

	_, err := userService.CreateUser(context.Background(), dto.CreateUserDTO{
		Name:         "Иванов",
		Matricule:    "EMP-001",
		Telephone:    "+992900000001",
		Email:        "ivanov@corp.tj",
		Password:     "Password123!",
		DateEmbauche: "2024-01-15",
		ManagerID:    uuid.NewString(),
	})
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestFindUserMalformedIDFailsWith400(t *testing.T) {
	_, userService := newUserFixture(t)

	_, err := userService.FindUser(context.Background(), "definitely-not-a-uuid")
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestUpdateUserAppliesOnlyProvidedFields(t *testing.T) {
	_, userService := newUserFixture(t)

	created, err := userService.CreateUser(context.Background(), dto.CreateUserDTO{
		Name:         "Иванов",
		Matricule:    "EMP-001",
		Telephone:    "+992900000001",
		Email:        "ivanov@corp.tj",
		Password:     "Password123!",
		DateEmbauche: "2024-01-15",
	})
	require.NoError(t, err)

	updated, err := userService.UpdateUser(context.Background(), created.ID, dto.UpdateUserDTO{
		Name: null.StringFrom("Иванов Обновлённый"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Иванов Обновлённый", updated.Name)
	assert.Equal(t, created.Email, updated.Email)
	assert.Equal(t, created.Matricule, updated.Matricule)
}

func TestSetOnlineStatus(t *testing.T) {
	users, userService := newUserFixture(t)

	created, err := userService.CreateUser(context.Background(), dto.CreateUserDTO{
		Name:         "Иванов",
		Matricule:    "EMP-001",
		Telephone:    "+992900000001",
		Email:        "ivanov@corp.tj",
		Password:     "Password123!",
		DateEmbauche: "2024-01-15",
	})
	require.NoError(t, err)

	result, err := userService.SetOnlineStatus(context.Background(), created.ID, dto.OnlineStatusDTO{EnLigne: true})
	require.NoError(t, err)
	assert.True(t, result.EnLigne)
	assert.Equal(t, 1, users.onlineFlips)
}
