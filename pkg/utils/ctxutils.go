package utils

import (
	"context"

	"hrm-system/pkg/constants"
	"hrm-system/pkg/contextkeys"
	apperrors "hrm-system/pkg/errors"

	"github.com/google/uuid"
)

// GetUserIDFromCtx извлекает id аутентифицированного пользователя,
// записанный auth-мидлвэром.
func GetUserIDFromCtx(ctx context.Context) (uuid.UUID, error) {
	id, ok := ctx.Value(contextkeys.UserIDKey).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, apperrors.ErrUserIDNotFoundInContext
	}
	return id, nil
}

func GetUserRoleFromCtx(ctx context.Context) (constants.Role, error) {
	role, ok := ctx.Value(contextkeys.UserRoleKey).(constants.Role)
	if !ok || !role.IsValid() {
		return "", apperrors.ErrUserIDNotFoundInContext
	}
	return role, nil
}
