package routes

import (
	"hrm-system/internal/controllers"
	"hrm-system/pkg/constants"
	"hrm-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runManagerRouter(api *echo.Group, managerCtrl *controllers.ManagerController, authMW *middleware.AuthMiddleware) {
	manager := api.Group("/manager", authMW.Auth, authMW.RequireRoles(constants.RoleManager))

	manager.GET("/dashboard", managerCtrl.GetDashboard)
	manager.GET("/activities", managerCtrl.GetMyActivities)
	manager.GET("/activities/:id", managerCtrl.GetActivityDetail)
	manager.POST("/activities/:id/confirm", managerCtrl.ConfirmParticipants)
	manager.POST("/activities/:id/add-employee", managerCtrl.AddEmployeeToActivity)
	manager.GET("/employees", managerCtrl.GetMyEmployees)
	manager.GET("/employees/search", managerCtrl.SearchEmployees)
	manager.GET("/employees/:id/fiches", managerCtrl.GetEmployeeFiches)
	manager.GET("/fiches/:id/competences", managerCtrl.GetFicheCompetences)
	manager.PATCH("/competences/evaluate", managerCtrl.EvaluateCompetence)
}
