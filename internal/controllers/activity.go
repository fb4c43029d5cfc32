package controllers

import (
	"net/http"

	"hrm-system/internal/dto"
	"hrm-system/internal/services"
	apperrors "hrm-system/pkg/errors"
	"hrm-system/pkg/utils"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

type ActivityController struct {
	activityService services.ActivityServiceInterface
	logger          *zap.Logger
}

func NewActivityController(activityService services.ActivityServiceInterface, logger *zap.Logger) *ActivityController {
	return &ActivityController{activityService: activityService, logger: logger}
}

func (c *ActivityController) GetActivities(ctx echo.Context) error {
	activities, err := c.activityService.GetActivities(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, activities, "Активности успешно получены", http.StatusOK)
}

func (c *ActivityController) FindActivity(ctx echo.Context) error {
	result, err := c.activityService.FindActivity(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "Активность успешно найдена", http.StatusOK)
}

func (c *ActivityController) CreateActivity(ctx echo.Context) error {
	var payload dto.CreateActivityDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверное тело запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	result, err := c.activityService.CreateActivity(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "Активность успешно создана", http.StatusCreated)
}

func (c *ActivityController) UpdateActivity(ctx echo.Context) error {
	var payload dto.UpdateActivityDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверное тело запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	result, err := c.activityService.UpdateActivity(ctx.Request().Context(), ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "Активность успешно обновлена", http.StatusOK)
}

func (c *ActivityController) DeleteActivity(ctx echo.Context) error {
	if err := c.activityService.DeleteActivity(ctx.Request().Context(), ctx.Param("id")); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, nil, "Активность успешно удалена", http.StatusOK)
}
