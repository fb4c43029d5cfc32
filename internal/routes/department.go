package routes

import (
	"hrm-system/internal/controllers"
	"hrm-system/pkg/constants"
	"hrm-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runDepartmentRouter(api *echo.Group, departmentCtrl *controllers.DepartmentController, authMW *middleware.AuthMiddleware) {
	departments := api.Group("/departments", authMW.Auth, authMW.RequireRoles(constants.RoleHR, constants.RoleAdmin))

	departments.GET("", departmentCtrl.GetDepartments)
	departments.GET("/:id", departmentCtrl.FindDepartment)
	departments.POST("", departmentCtrl.CreateDepartment)
	departments.PATCH("/:id", departmentCtrl.UpdateDepartment)
	departments.DELETE("/:id", departmentCtrl.DeleteDepartment)
}
