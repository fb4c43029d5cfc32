package services

import (
	"context"
	"net/http"
	"testing"

	"hrm-system/internal/dto"
	"hrm-system/internal/entities"
	"hrm-system/pkg/constants"
	"hrm-system/pkg/contextkeys"
	apperrors "hrm-system/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type managerFixture struct {
	users       *fakeUserRepo
	departments *fakeDepartmentRepo
	activities  *fakeActivityRepo
	fiches      *fakeFicheRepo
	competences *fakeCompetenceRepo
	cache       *fakeCacheRepo
	service     ManagerServiceInterface
	managerID   uuid.UUID
	deptID      uuid.UUID
}

func newManagerFixture(t *testing.T, withDepartment bool) *managerFixture {
	t.Helper()

	f := &managerFixture{
		users:       newFakeUserRepo(),
		departments: newFakeDepartmentRepo(),
		activities:  newFakeActivityRepo(),
		competences: newFakeCompetenceRepo(),
		cache:       newFakeCacheRepo(),
	}
	f.fiches = newFakeFicheRepo(f.users)

	manager := f.users.add(&entities.User{
		Name:      "Петров Менеджер",
		Matricule: "MGR-001",
		Email:     "manager@corp.tj",
		Status:    constants.UserStatusActive,
		Role:      constants.RoleManager,
	})
	f.managerID = manager.ID

	if withDepartment {
		dept := f.departments.add(&entities.Department{
			Name:      "Отдел разработки",
			Code:      "DEV",
			ManagerID: &manager.ID,
		})
		f.deptID = dept.ID
	}

	f.service = NewManagerService(
		f.users, f.departments, f.activities, f.fiches, f.competences, f.cache, zap.NewNop(),
	)
	return f
}

func (f *managerFixture) ctx() context.Context {
	return context.WithValue(context.Background(), contextkeys.UserIDKey, f.managerID)
}

func (f *managerFixture) addEmployee(name, matricule string, deptID uuid.UUID) *entities.User {
	return f.users.add(&entities.User{
		Name:         name,
		Matricule:    matricule,
		Email:        matricule + "@corp.tj",
		Status:       constants.UserStatusActive,
		Role:         constants.RoleEmployee,
		DepartmentID: &deptID,
	})
}

func TestManagerWithoutDepartmentGetsEmptyResults(t *testing.T) {
	f := newManagerFixture(t, false)

	activities, err := f.service.GetMyActivities(f.ctx())
	require.NoError(t, err)
	assert.Nil(t, activities.Department)
	assert.Empty(t, activities.Activities)
	assert.Zero(t, activities.Total)

	employees, err := f.service.GetMyEmployees(f.ctx())
	require.NoError(t, err)
	assert.Empty(t, employees.Employees)
	assert.Zero(t, employees.Total)

	dashboard, err := f.service.GetDashboard(f.ctx())
	require.NoError(t, err)
	assert.Nil(t, dashboard.Department)
	assert.Zero(t, dashboard.Stats.TotalEmployees)
	assert.Zero(t, dashboard.Stats.TotalActivities)
	assert.Zero(t, dashboard.Stats.PendingEvaluations)
}

func TestGetMyEmployeesUsesDepartmentMembershipNotManagerField(t *testing.T) {
	f := newManagerFixture(t, true)

	// manager_id сотрудника указывает на другого пользователя, но членство
	// в департаменте определяет именно department_id.
	otherManager := uuid.New()
	employee := f.addEmployee("Сидоров", "EMP-001", f.deptID)
	employee.ManagerID = &otherManager

	result, err := f.service.GetMyEmployees(f.ctx())
	require.NoError(t, err)
	require.Len(t, result.Employees, 1)
	assert.Equal(t, employee.ID.String(), result.Employees[0].ID)
	assert.Equal(t, "Отдел разработки", result.Department)
}

func TestSearchEmployeesRequiresQueryAndAppliesLimit(t *testing.T) {
	f := newManagerFixture(t, true)

	_, err := f.service.SearchEmployees(f.ctx(), "")
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)

	f.addEmployee("Алиев", "EMP-010", f.deptID)
	result, err := f.service.SearchEmployees(f.ctx(), "EMP-010")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
	assert.Equal(t, uint64(constants.EmployeeSearchLimit), f.users.lastLimit)
}

// Совпадение по имени в чужом департаменте не попадает в выдачу: поиск
// менеджера с департаментом ограничен его сотрудниками.
func TestSearchEmployeesScopedToManagersDepartment(t *testing.T) {
	f := newManagerFixture(t, true)
	otherDept := f.departments.add(&entities.Department{
		Name: "Бухгалтерия",
		Code: "FIN",
	})
	own := f.addEmployee("Ахмедов Ахмед", "EMP-020", f.deptID)
	f.addEmployee("Ахмедова Мадина", "EMP-021", otherDept.ID)

	result, err := f.service.SearchEmployees(f.ctx(), "Ахмед")
	require.NoError(t, err)
	require.Equal(t, 1, result.Total)
	assert.Equal(t, own.ID.String(), result.Employees[0].ID)
	assert.Equal(t, "EMP-020", result.Employees[0].Matricule)
}

// Менеджер без своего департамента ищет по всей организации.
func TestSearchEmployeesWithoutDepartmentFallsBackToUnscoped(t *testing.T) {
	f := newManagerFixture(t, false)
	dept := f.departments.add(&entities.Department{
		Name: "Бухгалтерия",
		Code: "FIN",
	})
	f.addEmployee("Ахмедов Ахмед", "EMP-020", dept.ID)

	result, err := f.service.SearchEmployees(f.ctx(), "Ахмед")
	require.NoError(t, err)
	assert.Equal(t, 1, result.Total)
}

func TestConfirmParticipantsEchoesCountsWithoutPersistence(t *testing.T) {
	f := newManagerFixture(t, true)
	activity := f.activities.add(&entities.Activity{Title: "Go курс", DepartmentID: f.deptID})
	e1 := f.addEmployee("Первый", "EMP-101", f.deptID)
	e2 := f.addEmployee("Второй", "EMP-102", f.deptID)

	result, err := f.service.ConfirmParticipants(f.ctx(), activity.ID.String(), dto.ConfirmParticipantsDTO{
		ConfirmedEmployeeIDs: []string{e1.ID.String()},
		RejectedEmployeeIDs:  []string{e2.ID.String()},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.ConfirmedCount)
	assert.Equal(t, 1, result.RejectedCount)
	assert.Equal(t, activity.ID.String(), result.ActivityID)
}

func TestConfirmParticipantsRejectsUnknownEmployee(t *testing.T) {
	f := newManagerFixture(t, true)
	activity := f.activities.add(&entities.Activity{Title: "Go курс", DepartmentID: f.deptID})

	_, err := f.service.ConfirmParticipants(f.ctx(), activity.ID.String(), dto.ConfirmParticipantsDTO{
		ConfirmedEmployeeIDs: []string{uuid.NewString()},
		RejectedEmployeeIDs:  []string{},
	})
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusNotFound, httpErr.Code)
}

func TestAddEmployeeRejectsNonEmployeeRole(t *testing.T) {
	f := newManagerFixture(t, true)
	activity := f.activities.add(&entities.Activity{Title: "Go курс", DepartmentID: f.deptID})
	hr := f.users.add(&entities.User{
		Name: "Кадровик", Matricule: "HR-001", Email: "hr@corp.tj",
		Status: constants.UserStatusActive, Role: constants.RoleHR,
	})

	_, err := f.service.AddEmployeeToActivity(f.ctx(), activity.ID.String(), dto.AddEmployeeDTO{
		EmployeeID: hr.ID.String(),
	})
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestAddEmployeeDefaultsScoreToZero(t *testing.T) {
	f := newManagerFixture(t, true)
	activity := f.activities.add(&entities.Activity{Title: "Go курс", DepartmentID: f.deptID})
	employee := f.addEmployee("Нулевой", "EMP-200", f.deptID)

	result, err := f.service.AddEmployeeToActivity(f.ctx(), activity.ID.String(), dto.AddEmployeeDTO{
		EmployeeID: employee.ID.String(),
	})
	require.NoError(t, err)
	assert.Zero(t, result.Score)
	assert.Equal(t, activity.Title, result.Activity.Title)
}

func TestMalformedIDFailsBeforeStoreAccess(t *testing.T) {
	f := newManagerFixture(t, true)

	_, err := f.service.GetActivityDetail(f.ctx(), "not-a-uuid")
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)

	_, err = f.service.GetEmployeeFiches(f.ctx(), "123")
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)
}

func TestEvaluateCompetenceValidatesAndStoresScore(t *testing.T) {
	f := newManagerFixture(t, true)
	employee := f.addEmployee("Оцениваемый", "EMP-300", f.deptID)
	fiche := f.fiches.add(&entities.Fiche{UserID: employee.ID, Saisons: "2026-S1", Etat: constants.FicheEtatInProgress})
	competence := f.competences.add(&entities.Competence{
		FicheID: fiche.ID, Type: "technique", Intitule: "Go",
		Etat: constants.CompetenceEtatSubmitted,
	})

	score := 8
	commentaire := "хороший прогресс"
	result, err := f.service.EvaluateCompetence(f.ctx(), dto.EvaluateCompetenceDTO{
		CompetenceID:   competence.ID.String(),
		HierarchieEval: &score,
		Commentaire:    &commentaire,
	})
	require.NoError(t, err)
	assert.Equal(t, constants.CompetenceEtatValidated.String(), result.Competence.Etat)
	require.NotNil(t, result.Competence.HierarchieEval)
	assert.Equal(t, 8, *result.Competence.HierarchieEval)
	assert.Equal(t, &commentaire, result.Commentaire)

	stored := f.competences.competences[competence.ID]
	assert.Equal(t, constants.CompetenceEtatValidated, stored.Etat)
	assert.Equal(t, 8, *stored.HierarchieEval)
}

func TestEvaluateCompetenceRejectsAlreadyValidated(t *testing.T) {
	f := newManagerFixture(t, true)
	employee := f.addEmployee("Готовый", "EMP-301", f.deptID)
	fiche := f.fiches.add(&entities.Fiche{UserID: employee.ID, Saisons: "2026-S1", Etat: constants.FicheEtatValidated})
	existing := 7
	competence := f.competences.add(&entities.Competence{
		FicheID: fiche.ID, Type: "technique", Intitule: "SQL",
		HierarchieEval: &existing,
		Etat:           constants.CompetenceEtatValidated,
	})

	score := 3
	_, err := f.service.EvaluateCompetence(f.ctx(), dto.EvaluateCompetenceDTO{
		CompetenceID:   competence.ID.String(),
		HierarchieEval: &score,
	})
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)

	// Сохранённая оценка не изменилась.
	stored := f.competences.competences[competence.ID]
	assert.Equal(t, 7, *stored.HierarchieEval)
}

// Оценка вне шкалы отклоняется до обращения к хранилищу.
func TestEvaluateCompetenceRejectsOutOfRangeScore(t *testing.T) {
	f := newManagerFixture(t, true)
	employee := f.addEmployee("Оцениваемый", "EMP-303", f.deptID)
	fiche := f.fiches.add(&entities.Fiche{UserID: employee.ID, Saisons: "2026-S1", Etat: constants.FicheEtatInProgress})
	competence := f.competences.add(&entities.Competence{
		FicheID: fiche.ID, Type: "technique", Intitule: "Go",
		Etat: constants.CompetenceEtatSubmitted,
	})

	score := constants.MaxHierarchieEval + 1
	_, err := f.service.EvaluateCompetence(f.ctx(), dto.EvaluateCompetenceDTO{
		CompetenceID:   competence.ID.String(),
		HierarchieEval: &score,
	})
	var httpErr *apperrors.HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.Code)

	stored := f.competences.competences[competence.ID]
	assert.Equal(t, constants.CompetenceEtatSubmitted, stored.Etat)
	assert.Nil(t, stored.HierarchieEval)
}

func TestGetFicheCompetencesExpandsQuestionAndSortsByType(t *testing.T) {
	f := newManagerFixture(t, true)
	employee := f.addEmployee("Сотрудник", "EMP-302", f.deptID)
	fiche := f.fiches.add(&entities.Fiche{UserID: employee.ID, Saisons: "2026-S1", Etat: constants.FicheEtatDraft})

	intitule := "Коммуникация"
	details := "Работа в команде"
	f.competences.add(&entities.Competence{
		FicheID: fiche.ID, Type: "soft", Intitule: "Коммуникация",
		Etat: constants.CompetenceEtatDraft, QuestionIntitule: &intitule, QuestionDetails: &details,
	})
	f.competences.add(&entities.Competence{
		FicheID: fiche.ID, Type: "technique", Intitule: "Go",
		Etat: constants.CompetenceEtatDraft,
	})

	result, err := f.service.GetFicheCompetences(f.ctx(), fiche.ID.String())
	require.NoError(t, err)
	require.Equal(t, 2, result.Total)
	assert.Equal(t, "soft", result.Competences[0].Type)
	assert.Equal(t, "technique", result.Competences[1].Type)
	require.NotNil(t, result.Competences[0].Question)
	assert.Equal(t, intitule, result.Competences[0].Question.Intitule)
	assert.Nil(t, result.Competences[1].Question)
}

func TestDashboardCountsAndCaches(t *testing.T) {
	f := newManagerFixture(t, true)
	e1 := f.addEmployee("Первый", "EMP-401", f.deptID)
	f.addEmployee("Второй", "EMP-402", f.deptID)
	f.activities.add(&entities.Activity{Title: "Курс", DepartmentID: f.deptID})
	f.fiches.add(&entities.Fiche{UserID: e1.ID, Saisons: "2026-S1", Etat: constants.FicheEtatDraft})
	f.fiches.add(&entities.Fiche{UserID: e1.ID, Saisons: "2025-S2", Etat: constants.FicheEtatValidated})

	result, err := f.service.GetDashboard(f.ctx())
	require.NoError(t, err)
	assert.Equal(t, uint64(2), result.Stats.TotalEmployees)
	assert.Equal(t, uint64(1), result.Stats.TotalActivities)
	assert.Equal(t, uint64(1), result.Stats.PendingEvaluations)
	assert.Equal(t, 1, f.cache.sets)

	// Второй вызов обслуживается из кеша.
	cached, err := f.service.GetDashboard(f.ctx())
	require.NoError(t, err)
	assert.Equal(t, result.Stats, cached.Stats)
	assert.Equal(t, 1, f.cache.sets)
	assert.Equal(t, 1, f.cache.hits)
}
