package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"hrm-system/internal/controllers"
	"hrm-system/internal/repositories"
	"hrm-system/internal/services"
	"hrm-system/pkg/middleware"
	"hrm-system/pkg/service"
)

func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, logger *zap.Logger) {
	logger.Info("InitRouter: Начало создания маршрутов")

	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(jwtSvc, logger)

	// --- РЕПОЗИТОРИИ ---
	userRepo := repositories.NewUserRepository(dbConn, logger)
	departmentRepo := repositories.NewDepartmentRepository(dbConn, logger)
	activityRepo := repositories.NewActivityRepository(dbConn, logger)
	ficheRepo := repositories.NewFicheRepository(dbConn, logger)
	competenceRepo := repositories.NewCompetenceRepository(dbConn, logger)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient, logger)

	// --- СЕРВИСЫ ---
	authService := services.NewAuthService(userRepo, jwtSvc, logger)
	userService := services.NewUserService(userRepo, departmentRepo, logger)
	importService := services.NewImportService(userRepo, departmentRepo, logger)
	departmentService := services.NewDepartmentService(departmentRepo, logger)
	activityService := services.NewActivityService(activityRepo, departmentRepo, logger)
	managerService := services.NewManagerService(
		userRepo, departmentRepo, activityRepo, ficheRepo, competenceRepo, cacheRepo, logger,
	)

	// --- КОНТРОЛЛЕРЫ ---
	authController := controllers.NewAuthController(authService, logger)
	userController := controllers.NewUserController(userService, importService, logger)
	departmentController := controllers.NewDepartmentController(departmentService, logger)
	activityController := controllers.NewActivityController(activityService, logger)
	managerController := controllers.NewManagerController(managerService, logger)

	// --- РОУТЕРЫ ---
	runUserRouter(api, authController, userController, authMW)
	runDepartmentRouter(api, departmentController, authMW)
	runActivityRouter(api, activityController, authMW)
	runManagerRouter(api, managerController, authMW)

	logger.Info("InitRouter: Создание маршрутов завершено")
}
