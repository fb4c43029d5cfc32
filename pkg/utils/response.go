package utils

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	apperrors "hrm-system/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type HTTPResponse struct {
	Status  bool        `json:"status"`
	Body    interface{} `json:"body,omitempty"`
	Message string      `json:"message"`
}

// errorList — коды для сентинельных ошибок, не завёрнутых в HttpError.
var errorList = map[error]int{
	apperrors.ErrNotFound:                http.StatusNotFound,
	apperrors.ErrBadRequest:              http.StatusBadRequest,
	apperrors.ErrInvalidCredentials:      http.StatusUnauthorized,
	apperrors.ErrAccountNotActive:        http.StatusUnauthorized,
	apperrors.ErrForbidden:               http.StatusForbidden,
	apperrors.ErrEmptyAuthHeader:         http.StatusUnauthorized,
	apperrors.ErrInvalidAuthHeader:       http.StatusUnauthorized,
	apperrors.ErrInvalidToken:            http.StatusUnauthorized,
	apperrors.ErrTokenExpired:            http.StatusUnauthorized,
	apperrors.ErrTokenNotYetValid:        http.StatusUnauthorized,
	apperrors.ErrEmailTaken:              http.StatusConflict,
	apperrors.ErrMatriculeTaken:          http.StatusConflict,
	apperrors.ErrDepartmentCodeTaken:     http.StatusConflict,
	apperrors.ErrInvalidSigningMethod:    http.StatusUnauthorized,
	apperrors.ErrUserIDNotFoundInContext: http.StatusUnauthorized,
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int) error {
	return ctx.JSON(code, &HTTPResponse{
		Status:  true,
		Body:    body,
		Message: message,
	})
}

func ErrorResponse(c echo.Context, err error, logger *zap.Logger) error {
	var httpErr *apperrors.HttpError
	if errors.As(err, &httpErr) {
		if httpErr.Err != nil {
			logger.Error("HTTP Error",
				zap.Int("code", httpErr.Code),
				zap.String("message", httpErr.Message),
				zap.Error(httpErr.Err),
			)
		}

		response := map[string]interface{}{
			"status":  false,
			"message": httpErr.Message,
		}
		if httpErr.Details != nil {
			response["body"] = httpErr.Details
		}
		return c.JSON(httpErr.Code, response)
	}

	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		var msgs []string
		for _, e := range validationErrors {
			msgs = append(msgs, fmt.Sprintf("Поле '%s' не прошло проверку '%s'", e.Field(), e.Tag()))
		}
		return c.JSON(http.StatusBadRequest, map[string]interface{}{
			"status":  false,
			"message": "Ошибка валидации: " + strings.Join(msgs, "; "),
		})
	}

	for sentinel, statusCode := range errorList {
		if errors.Is(err, sentinel) {
			return c.JSON(statusCode, map[string]interface{}{
				"status":  false,
				"message": sentinel.Error(),
			})
		}
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return c.JSON(http.StatusNotFound, map[string]interface{}{
			"status":  false,
			"message": apperrors.ErrNotFound.Error(),
		})
	}

	// Немаппированные ошибки: сообщение наружу, без стека. Выделенного
	// 500-класса в этом срезе нет.
	logger.Error("Unexpected Error", zap.Error(err))
	return c.JSON(http.StatusBadRequest, map[string]interface{}{
		"status":  false,
		"message": err.Error(),
	})
}
