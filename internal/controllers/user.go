package controllers

import (
	"io"
	"net/http"

	"hrm-system/internal/dto"
	"hrm-system/internal/services"
	apperrors "hrm-system/pkg/errors"
	"hrm-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type UserController struct {
	userService   services.UserServiceInterface
	importService services.ImportServiceInterface
	logger        *zap.Logger
}

func NewUserController(
	userService services.UserServiceInterface,
	importService services.ImportServiceInterface,
	logger *zap.Logger,
) *UserController {
	return &UserController{
		userService:   userService,
		importService: importService,
		logger:        logger,
	}
}

func (c *UserController) Register(ctx echo.Context) error {
	var payload dto.CreateUserDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверное тело запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	result, err := c.userService.CreateUser(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "Пользователь успешно создан", http.StatusCreated)
}

func (c *UserController) GetUsers(ctx echo.Context) error {
	users, err := c.userService.GetUsers(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, users, "Пользователи успешно получены", http.StatusOK)
}

func (c *UserController) FindUser(ctx echo.Context) error {
	result, err := c.userService.FindUser(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "Пользователь успешно найден", http.StatusOK)
}

func (c *UserController) UpdateUser(ctx echo.Context) error {
	var payload dto.UpdateUserDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверное тело запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	result, err := c.userService.UpdateUser(ctx.Request().Context(), ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "Пользователь успешно обновлён", http.StatusOK)
}

func (c *UserController) DeleteUser(ctx echo.Context) error {
	if err := c.userService.DeleteUser(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Пользователь успешно удалён", http.StatusOK)
}

func (c *UserController) SetOnlineStatus(ctx echo.Context) error {
	var payload dto.OnlineStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверное тело запроса"), c.logger)
	}

	result, err := c.userService.SetOnlineStatus(ctx.Request().Context(), ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "Статус присутствия обновлён", http.StatusOK)
}

// ImportUsers принимает файл из multipart-поля "file" (.csv или .xlsx).
// Построчные ошибки не валят запрос: итог всегда 200 со сводкой.
func (c *UserController) ImportUsers(ctx echo.Context) error {
	fileHeader, err := ctx.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Файл не передан: ожидается поле 'file'"), c.logger)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Не удалось открыть файл"), c.logger)
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Не удалось прочитать файл"), c.logger)
	}

	result, err := c.importService.ImportUsers(ctx.Request().Context(), fileHeader.Filename, data)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, result.Message, http.StatusOK)
}
