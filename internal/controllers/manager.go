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

type ManagerController struct {
	managerService services.ManagerServiceInterface
	logger         *zap.Logger
}

func NewManagerController(managerService services.ManagerServiceInterface, logger *zap.Logger) *ManagerController {
	return &ManagerController{managerService: managerService, logger: logger}
}

func (c *ManagerController) GetDashboard(ctx echo.Context) error {
	result, err := c.managerService.GetDashboard(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "Дашборд успешно получен", http.StatusOK)
}

func (c *ManagerController) GetMyActivities(ctx echo.Context) error {
	result, err := c.managerService.GetMyActivities(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "Активности департамента успешно получены", http.StatusOK)
}

func (c *ManagerController) GetActivityDetail(ctx echo.Context) error {
	result, err := c.managerService.GetActivityDetail(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "Активность успешно найдена", http.StatusOK)
}

func (c *ManagerController) GetMyEmployees(ctx echo.Context) error {
	result, err := c.managerService.GetMyEmployees(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "Сотрудники департамента успешно получены", http.StatusOK)
}

func (c *ManagerController) SearchEmployees(ctx echo.Context) error {
	result, err := c.managerService.SearchEmployees(ctx.Request().Context(), ctx.QueryParam("q"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "Поиск выполнен успешно", http.StatusOK)
}

func (c *ManagerController) ConfirmParticipants(ctx echo.Context) error {
	var payload dto.ConfirmParticipantsDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверное тело запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	result, err := c.managerService.ConfirmParticipants(ctx.Request().Context(), ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, result.Message, http.StatusOK)
}

func (c *ManagerController) AddEmployeeToActivity(ctx echo.Context) error {
	var payload dto.AddEmployeeDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверное тело запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	result, err := c.managerService.AddEmployeeToActivity(ctx.Request().Context(), ctx.Param("id"), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, result.Message, http.StatusOK)
}

func (c *ManagerController) GetEmployeeFiches(ctx echo.Context) error {
	result, err := c.managerService.GetEmployeeFiches(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "Фиши сотрудника успешно получены", http.StatusOK)
}

func (c *ManagerController) GetFicheCompetences(ctx echo.Context) error {
	result, err := c.managerService.GetFicheCompetences(ctx.Request().Context(), ctx.Param("id"))
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, "Компетенции фиши успешно получены", http.StatusOK)
}

func (c *ManagerController) EvaluateCompetence(ctx echo.Context) error {
	var payload dto.EvaluateCompetenceDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, apperrors.NewBadRequestError("Неверное тело запроса"), c.logger)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}

	result, err := c.managerService.EvaluateCompetence(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err, c.logger)
	}
	return utils.SuccessResponse(ctx, result, result.Message, http.StatusOK)
}
