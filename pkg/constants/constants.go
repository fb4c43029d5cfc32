package constants

import "time"

//============== BULK IMPORT ==============

// Пароль по умолчанию для строк импорта без колонки password.
// Удовлетворяет парольной политике (длина >= 8).
const DefaultImportPassword = "Password123!"

// Минимальная длина пароля в строке импорта; короче — подставляется дефолт.
const MinImportPasswordLen = 8

//============== MANAGER FACADE ==============

// Лимит выдачи поиска сотрудников.
const EmployeeSearchLimit = 20

// Границы оценки hierarchie_eval.
const (
	MinHierarchieEval = 0
	MaxHierarchieEval = 10
)

//============== CACHE KEYS ==============

const (
	// Кеш статистики дашборда менеджера.
	// Формат: manager_dashboard:<managerID> -> JSON DashboardDTO
	CacheKeyManagerDashboard = "manager_dashboard:%s"

	// TTL кеша дашборда.
	ManagerDashboardCacheTTL = time.Minute
)
