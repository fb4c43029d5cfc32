package routes

import (
	"hrm-system/internal/controllers"
	"hrm-system/pkg/constants"
	"hrm-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runUserRouter(api *echo.Group, authCtrl *controllers.AuthController, userCtrl *controllers.UserController, authMW *middleware.AuthMiddleware) {
	users := api.Group("/users")

	// Открытые маршруты
	users.POST("/register", userCtrl.Register)
	users.POST("/login", authCtrl.Login)

	// Защищённые маршруты
	users.GET("", userCtrl.GetUsers, authMW.Auth, authMW.RequireRoles(constants.RoleHR, constants.RoleAdmin))
	users.GET("/:id", userCtrl.FindUser, authMW.Auth, authMW.RequireRoles(constants.RoleHR, constants.RoleManager, constants.RoleAdmin))
	users.PATCH("/:id", userCtrl.UpdateUser, authMW.Auth, authMW.RequireRoles(constants.RoleHR, constants.RoleAdmin))
	users.DELETE("/:id", userCtrl.DeleteUser, authMW.Auth, authMW.RequireRoles(constants.RoleHR, constants.RoleAdmin))
	users.POST("/import-csv", userCtrl.ImportUsers, authMW.Auth, authMW.RequireRoles(constants.RoleHR, constants.RoleAdmin))
	users.PATCH("/:id/online-status", userCtrl.SetOnlineStatus, authMW.Auth)
}
