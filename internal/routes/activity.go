package routes

import (
	"hrm-system/internal/controllers"
	"hrm-system/pkg/constants"
	"hrm-system/pkg/middleware"

	"github.com/labstack/echo/v4"
)

func runActivityRouter(api *echo.Group, activityCtrl *controllers.ActivityController, authMW *middleware.AuthMiddleware) {
	activities := api.Group("/activities", authMW.Auth)
	hrOnly := authMW.RequireRoles(constants.RoleHR, constants.RoleAdmin)

	activities.GET("", activityCtrl.GetActivities)
	activities.GET("/:id", activityCtrl.FindActivity)
	activities.POST("", activityCtrl.CreateActivity, hrOnly)
	activities.PUT("/:id", activityCtrl.UpdateActivity, hrOnly)
	activities.DELETE("/:id", activityCtrl.DeleteActivity, hrOnly)
}
