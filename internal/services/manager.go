package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"hrm-system/internal/dto"
	"hrm-system/internal/entities"
	"hrm-system/internal/repositories"
	"hrm-system/pkg/constants"
	apperrors "hrm-system/pkg/errors"
	"hrm-system/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ManagerServiceInterface interface {
	GetMyActivities(ctx context.Context) (*dto.MyActivitiesDTO, error)
	GetActivityDetail(ctx context.Context, activityID string) (*dto.ActivityDTO, error)
	GetMyEmployees(ctx context.Context) (*dto.MyEmployeesDTO, error)
	SearchEmployees(ctx context.Context, query string) (*dto.EmployeeSearchResultDTO, error)
	ConfirmParticipants(ctx context.Context, activityID string, payload dto.ConfirmParticipantsDTO) (*dto.ConfirmParticipantsResultDTO, error)
	AddEmployeeToActivity(ctx context.Context, activityID string, payload dto.AddEmployeeDTO) (*dto.AddEmployeeResultDTO, error)
	GetEmployeeFiches(ctx context.Context, employeeID string) (*dto.EmployeeFichesDTO, error)
	GetFicheCompetences(ctx context.Context, ficheID string) (*dto.FicheCompetencesDTO, error)
	EvaluateCompetence(ctx context.Context, payload dto.EvaluateCompetenceDTO) (*dto.EvaluateCompetenceResultDTO, error)
	GetDashboard(ctx context.Context) (*dto.ManagerDashboardDTO, error)
}

type ManagerService struct {
	userRepo       repositories.UserRepositoryInterface
	departmentRepo repositories.DepartmentRepositoryInterface
	activityRepo   repositories.ActivityRepositoryInterface
	ficheRepo      repositories.FicheRepositoryInterface
	competenceRepo repositories.CompetenceRepositoryInterface
	cacheRepo      repositories.CacheRepositoryInterface
	logger         *zap.Logger
}

func NewManagerService(
	userRepo repositories.UserRepositoryInterface,
	departmentRepo repositories.DepartmentRepositoryInterface,
	activityRepo repositories.ActivityRepositoryInterface,
	ficheRepo repositories.FicheRepositoryInterface,
	competenceRepo repositories.CompetenceRepositoryInterface,
	cacheRepo repositories.CacheRepositoryInterface,
	logger *zap.Logger,
) ManagerServiceInterface {
	return &ManagerService{
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
		activityRepo:   activityRepo,
		ficheRepo:      ficheRepo,
		competenceRepo: competenceRepo,
		cacheRepo:      cacheRepo,
		logger:         logger,
	}
}

// resolveDepartment определяет зону ответственности менеджера обратным
// поиском: департамент, где manager_id равен вызывающему. Членство самого
// менеджера (его department_id) здесь не участвует. Отсутствие такого
// департамента — штатная ситуация: возвращается nil без ошибки, и
// охваченные запросы отдают пустые списки и нулевые счётчики.
func (s *ManagerService) resolveDepartment(ctx context.Context) (uuid.UUID, *entities.Department, error) {
	managerID, err := utils.GetUserIDFromCtx(ctx)
	if err != nil {
		return uuid.Nil, nil, err
	}

	dept, err := s.departmentRepo.FindByManagerID(ctx, managerID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return managerID, nil, nil
		}
		return uuid.Nil, nil, err
	}
	return managerID, dept, nil
}

func departmentToManagerDTO(dept *entities.Department) *dto.ManagerDepartmentDTO {
	if dept == nil {
		return nil
	}
	return &dto.ManagerDepartmentDTO{
		ID:   dept.ID.String(),
		Name: dept.Name,
		Code: dept.Code,
	}
}

func userToShortDTO(user *entities.User) dto.ShortUserDTO {
	return dto.ShortUserDTO{
		ID:        user.ID.String(),
		Name:      user.Name,
		Matricule: user.Matricule,
		Email:     user.Email,
	}
}

func ficheToDTO(fiche *entities.Fiche) dto.FicheDTO {
	return dto.FicheDTO{
		ID:        fiche.ID.String(),
		UserID:    fiche.UserID.String(),
		Saisons:   fiche.Saisons,
		Etat:      fiche.Etat.String(),
		CreatedAt: fiche.CreatedAt.Format(time.RFC3339),
		UpdatedAt: fiche.UpdatedAt.Format(time.RFC3339),
	}
}

func competenceToDTO(c *entities.Competence) dto.CompetenceDTO {
	result := dto.CompetenceDTO{
		ID:             c.ID.String(),
		FicheID:        c.FicheID.String(),
		Type:           c.Type,
		Intitule:       c.Intitule,
		AutoEval:       c.AutoEval,
		HierarchieEval: c.HierarchieEval,
		Etat:           c.Etat.String(),
	}
	if c.QuestionIntitule != nil {
		question := &dto.QuestionCompetenceDTO{Intitule: *c.QuestionIntitule}
		if c.QuestionDetails != nil {
			question.Details = *c.QuestionDetails
		}
		result.Question = question
	}
	return result
}

func (s *ManagerService) GetMyActivities(ctx context.Context) (*dto.MyActivitiesDTO, error) {
	_, dept, err := s.resolveDepartment(ctx)
	if err != nil {
		return nil, err
	}

	result := &dto.MyActivitiesDTO{
		Department: departmentToManagerDTO(dept),
		Activities: make([]dto.ActivityDTO, 0),
	}
	if dept == nil {
		return result, nil
	}

	activities, err := s.activityRepo.ListByDepartment(ctx, dept.ID)
	if err != nil {
		s.logger.Error("Не удалось получить активности департамента", zap.Error(err))
		return nil, err
	}
	for i := range activities {
		result.Activities = append(result.Activities, activityToDTO(&activities[i]))
	}
	result.Total = len(result.Activities)
	return result, nil
}

func (s *ManagerService) GetActivityDetail(ctx context.Context, activityID string) (*dto.ActivityDTO, error) {
	aID, err := parseID(activityID)
	if err != nil {
		return nil, err
	}
	activity, err := s.activityRepo.FindActivity(ctx, aID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("активность не найдена")
		}
		return nil, err
	}
	result := activityToDTO(activity)
	return &result, nil
}

func (s *ManagerService) GetMyEmployees(ctx context.Context) (*dto.MyEmployeesDTO, error) {
	_, dept, err := s.resolveDepartment(ctx)
	if err != nil {
		return nil, err
	}

	result := &dto.MyEmployeesDTO{Employees: make([]dto.UserDTO, 0)}
	if dept == nil {
		return result, nil
	}
	result.Department = dept.Name

	employees, err := s.userRepo.ListEmployeesByDepartment(ctx, dept.ID)
	if err != nil {
		s.logger.Error("Не удалось получить сотрудников департамента", zap.Error(err))
		return nil, err
	}
	for i := range employees {
		result.Employees = append(result.Employees, userToDTO(&employees[i]))
	}
	result.Total = len(result.Employees)
	return result, nil
}

// SearchEmployees ищет по имени, табельному номеру и email. Если у менеджера
// есть свой департамент, выдача ограничивается им; иначе поиск идёт по всей
// организации.
func (s *ManagerService) SearchEmployees(ctx context.Context, query string) (*dto.EmployeeSearchResultDTO, error) {
	if query == "" {
		return nil, apperrors.NewBadRequestError("параметр поиска q обязателен")
	}
	_, dept, err := s.resolveDepartment(ctx)
	if err != nil {
		return nil, err
	}

	var deptFilter *uuid.UUID
	if dept != nil {
		deptFilter = &dept.ID
	}

	employees, err := s.userRepo.SearchEmployees(ctx, query, deptFilter, constants.EmployeeSearchLimit)
	if err != nil {
		s.logger.Error("Ошибка поиска сотрудников", zap.String("query", query), zap.Error(err))
		return nil, err
	}

	result := &dto.EmployeeSearchResultDTO{
		Employees: make([]dto.EmployeeSearchDTO, 0, len(employees)),
	}
	for i := range employees {
		emp := &employees[i]
		row := dto.EmployeeSearchDTO{
			ID:        emp.ID.String(),
			Name:      emp.Name,
			Matricule: emp.Matricule,
			Email:     emp.Email,
			Telephone: emp.Telephone,
			Status:    emp.Status.String(),
		}
		if emp.DepartmentName != nil && emp.DepartmentCode != nil {
			row.Department = &dto.ShortDepartmentDTO{
				Name: *emp.DepartmentName,
				Code: *emp.DepartmentCode,
			}
		}
		result.Employees = append(result.Employees, row)
	}
	result.Total = len(result.Employees)
	return result, nil
}

func (s *ManagerService) findActivity(ctx context.Context, activityID string) (*entities.Activity, error) {
	aID, err := parseID(activityID)
	if err != nil {
		return nil, err
	}
	activity, err := s.activityRepo.FindActivity(ctx, aID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("активность не найдена")
		}
		return nil, err
	}
	return activity, nil
}

func (s *ManagerService) findUser(ctx context.Context, rawID string) (*entities.User, error) {
	userID, err := parseID(rawID)
	if err != nil {
		return nil, err
	}
	user, err := s.userRepo.FindUser(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("пользователь не найден: " + rawID)
		}
		return nil, err
	}
	return user, nil
}

// ConfirmParticipants подтверждает состав участников: активность и каждый id
// из обоих списков обязаны существовать. Списки не персистируются: учёт
// участия ведёт внешняя система, здесь только валидирующая квитанция.
func (s *ManagerService) ConfirmParticipants(ctx context.Context, activityID string, payload dto.ConfirmParticipantsDTO) (*dto.ConfirmParticipantsResultDTO, error) {
	activity, err := s.findActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}

	for _, rawID := range payload.ConfirmedEmployeeIDs {
		if _, err := s.findUser(ctx, rawID); err != nil {
			return nil, err
		}
	}
	for _, rawID := range payload.RejectedEmployeeIDs {
		if _, err := s.findUser(ctx, rawID); err != nil {
			return nil, err
		}
	}

	s.logger.Info("Состав участников подтверждён",
		zap.String("activity_id", activity.ID.String()),
		zap.Int("confirmed", len(payload.ConfirmedEmployeeIDs)),
		zap.Int("rejected", len(payload.RejectedEmployeeIDs)),
	)

	return &dto.ConfirmParticipantsResultDTO{
		Message:              "Участники успешно подтверждены",
		ActivityID:           activity.ID.String(),
		ConfirmedCount:       len(payload.ConfirmedEmployeeIDs),
		RejectedCount:        len(payload.RejectedEmployeeIDs),
		ConfirmedEmployeeIDs: payload.ConfirmedEmployeeIDs,
		RejectedEmployeeIDs:  payload.RejectedEmployeeIDs,
	}, nil
}

// AddEmployeeToActivity проверяет активность и сотрудника и возвращает
// квитанцию. Назначение, как и в ConfirmParticipants, не персистируется.
func (s *ManagerService) AddEmployeeToActivity(ctx context.Context, activityID string, payload dto.AddEmployeeDTO) (*dto.AddEmployeeResultDTO, error) {
	activity, err := s.findActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}
	employee, err := s.findUser(ctx, payload.EmployeeID)
	if err != nil {
		return nil, err
	}
	if employee.Role != constants.RoleEmployee {
		return nil, apperrors.NewBadRequestError("пользователь не является сотрудником")
	}

	score := 0
	if payload.Score != nil {
		score = *payload.Score
	}

	result := &dto.AddEmployeeResultDTO{
		Message:  "Сотрудник добавлен в активность",
		Employee: userToShortDTO(employee),
		Score:    score,
	}
	result.Activity.ID = activity.ID.String()
	result.Activity.Title = activity.Title

	s.logger.Info("Сотрудник добавлен в активность",
		zap.String("activity_id", activity.ID.String()),
		zap.String("employee_id", employee.ID.String()),
		zap.Int("score", score),
	)
	return result, nil
}

func (s *ManagerService) GetEmployeeFiches(ctx context.Context, employeeID string) (*dto.EmployeeFichesDTO, error) {
	employee, err := s.findUser(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	fiches, err := s.ficheRepo.ListByUser(ctx, employee.ID)
	if err != nil {
		s.logger.Error("Не удалось получить фиши сотрудника", zap.Error(err))
		return nil, err
	}

	result := &dto.EmployeeFichesDTO{
		Employee: userToShortDTO(employee),
		Fiches:   make([]dto.FicheDTO, 0, len(fiches)),
	}
	for i := range fiches {
		result.Fiches = append(result.Fiches, ficheToDTO(&fiches[i]))
	}
	result.Total = len(result.Fiches)
	return result, nil
}

func (s *ManagerService) GetFicheCompetences(ctx context.Context, ficheID string) (*dto.FicheCompetencesDTO, error) {
	fID, err := parseID(ficheID)
	if err != nil {
		return nil, err
	}
	fiche, err := s.ficheRepo.FindFiche(ctx, fID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("фиша не найдена")
		}
		return nil, err
	}

	competences, err := s.competenceRepo.ListByFiche(ctx, fiche.ID)
	if err != nil {
		s.logger.Error("Не удалось получить компетенции фиши", zap.Error(err))
		return nil, err
	}

	result := &dto.FicheCompetencesDTO{
		Fiche:       ficheToDTO(fiche),
		Competences: make([]dto.CompetenceDTO, 0, len(competences)),
	}
	for i := range competences {
		result.Competences = append(result.Competences, competenceToDTO(&competences[i]))
	}
	result.Total = len(result.Competences)
	return result, nil
}

// EvaluateCompetence записывает оценку менеджера и переводит компетенцию в
// validated. Повторная оценка валидированной компетенции отклоняется.
func (s *ManagerService) EvaluateCompetence(ctx context.Context, payload dto.EvaluateCompetenceDTO) (*dto.EvaluateCompetenceResultDTO, error) {
	competenceID, err := parseID(payload.CompetenceID)
	if err != nil {
		return nil, err
	}
	if *payload.HierarchieEval < constants.MinHierarchieEval || *payload.HierarchieEval > constants.MaxHierarchieEval {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf(
			"оценка должна быть в диапазоне от %d до %d",
			constants.MinHierarchieEval, constants.MaxHierarchieEval))
	}
	competence, err := s.competenceRepo.FindCompetence(ctx, competenceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewNotFoundError("компетенция не найдена")
		}
		return nil, err
	}
	if competence.Etat == constants.CompetenceEtatValidated {
		return nil, apperrors.NewBadRequestError("компетенция уже валидирована")
	}

	// Условный UPDATE закрывает гонку двух параллельных оценок: вторая не
	// найдёт строку в невалидированном состоянии.
	validated, err := s.competenceRepo.ValidateCompetence(ctx, competence.ID, *payload.HierarchieEval)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewBadRequestError("компетенция уже валидирована")
		}
		s.logger.Error("Не удалось валидировать компетенцию", zap.Error(err))
		return nil, err
	}

	s.logger.Info("Компетенция валидирована",
		zap.String("competence_id", validated.ID.String()),
		zap.Intp("hierarchie_eval", validated.HierarchieEval),
	)

	return &dto.EvaluateCompetenceResultDTO{
		Message:     "Компетенция успешно оценена",
		Competence:  competenceToDTO(validated),
		Commentaire: payload.Commentaire,
	}, nil
}

// GetDashboard отдаёт счётчики департамента; без департамента все счётчики
// нулевые. Результат кешируется в Redis на минуту; кеш best-effort: его
// отказ не роняет запрос.
func (s *ManagerService) GetDashboard(ctx context.Context) (*dto.ManagerDashboardDTO, error) {
	managerID, dept, err := s.resolveDepartment(ctx)
	if err != nil {
		return nil, err
	}

	cacheKey := fmt.Sprintf(constants.CacheKeyManagerDashboard, managerID.String())
	if cached, err := s.cacheRepo.Get(ctx, cacheKey); err == nil {
		var result dto.ManagerDashboardDTO
		if err := json.Unmarshal([]byte(cached), &result); err == nil {
			return &result, nil
		}
		s.logger.Warn("Повреждённая запись в кеше дашборда", zap.String("key", cacheKey))
	}

	manager, err := s.userRepo.FindUser(ctx, managerID)
	if err != nil {
		return nil, err
	}

	result := &dto.ManagerDashboardDTO{
		Manager:    userToShortDTO(manager),
		Department: departmentToManagerDTO(dept),
	}

	if dept != nil {
		totalEmployees, err := s.userRepo.CountEmployeesByDepartment(ctx, dept.ID)
		if err != nil {
			s.logger.Error("Не удалось посчитать сотрудников", zap.Error(err))
			return nil, err
		}
		totalActivities, err := s.activityRepo.CountByDepartment(ctx, dept.ID)
		if err != nil {
			s.logger.Error("Не удалось посчитать активности", zap.Error(err))
			return nil, err
		}
		pendingEvaluations, err := s.ficheRepo.CountPendingByDepartment(ctx, dept.ID)
		if err != nil {
			s.logger.Error("Не удалось посчитать ожидающие фиши", zap.Error(err))
			return nil, err
		}
		result.Stats = dto.DashboardStatsDTO{
			TotalEmployees:     totalEmployees,
			TotalActivities:    totalActivities,
			PendingEvaluations: pendingEvaluations,
		}
	}

	if raw, err := json.Marshal(result); err == nil {
		if err := s.cacheRepo.Set(ctx, cacheKey, string(raw), constants.ManagerDashboardCacheTTL); err != nil {
			s.logger.Warn("Не удалось записать кеш дашборда", zap.Error(err))
		}
	}
	return result, nil
}
