package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"hrm-system/internal/entities"
	"hrm-system/internal/repositories"
	"hrm-system/pkg/constants"
	apperrors "hrm-system/pkg/errors"

	"github.com/google/uuid"
)

// Фейковые репозитории в памяти: тесты сервисного слоя не требуют живой
// базы и Redis.

type fakeUserRepo struct {
	users       map[uuid.UUID]*entities.User
	lastLimit   uint64
	onlineFlips int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[uuid.UUID]*entities.User)}
}

func (r *fakeUserRepo) add(user *entities.User) *entities.User {
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	r.users[user.ID] = user
	return user
}

func (r *fakeUserRepo) GetUsers(ctx context.Context) ([]entities.User, error) {
	result := make([]entities.User, 0, len(r.users))
	for _, user := range r.users {
		result = append(result, *user)
	}
	return result, nil
}

func (r *fakeUserRepo) FindUser(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeUserRepo) CreateUser(ctx context.Context, entity *entities.User) (*entities.User, error) {
	for _, user := range r.users {
		if user.Email == entity.Email {
			return nil, apperrors.ErrEmailTaken
		}
		if user.Matricule == entity.Matricule {
			return nil, apperrors.ErrMatriculeTaken
		}
	}
	created := *entity
	copied := r.add(&created)
	result := *copied
	return &result, nil
}

func (r *fakeUserRepo) UpdateUser(ctx context.Context, id uuid.UUID, patch repositories.UserPatch) (*entities.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Matricule != nil {
		user.Matricule = *patch.Matricule
	}
	if patch.Telephone != nil {
		user.Telephone = *patch.Telephone
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.DateEmbauche != nil {
		user.DateEmbauche = *patch.DateEmbauche
	}
	if patch.Password != nil {
		user.Password = *patch.Password
	}
	if patch.Status != nil {
		user.Status = *patch.Status
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}
	if patch.DepartmentID != nil {
		user.DepartmentID = patch.DepartmentID
	}
	if patch.ManagerID != nil {
		user.ManagerID = patch.ManagerID
	}
	user.UpdatedAt = time.Now()
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) DeleteUser(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.users[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepo) SetOnlineStatus(ctx context.Context, id uuid.UUID, online bool) (*entities.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	user.EnLigne = online
	r.onlineFlips++
	copied := *user
	return &copied, nil
}

func (r *fakeUserRepo) ListEmployeesByDepartment(ctx context.Context, departmentID uuid.UUID) ([]entities.User, error) {
	result := make([]entities.User, 0)
	for _, user := range r.users {
		if user.DepartmentID != nil && *user.DepartmentID == departmentID && user.Role == constants.RoleEmployee {
			result = append(result, *user)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

func (r *fakeUserRepo) CountEmployeesByDepartment(ctx context.Context, departmentID uuid.UUID) (uint64, error) {
	employees, _ := r.ListEmployeesByDepartment(ctx, departmentID)
	return uint64(len(employees)), nil
}

func (r *fakeUserRepo) SearchEmployees(ctx context.Context, query string, departmentID *uuid.UUID, limit uint64) ([]entities.User, error) {
	r.lastLimit = limit
	needle := strings.ToLower(query)
	result := make([]entities.User, 0)
	for _, user := range r.users {
		if user.Role != constants.RoleEmployee {
			continue
		}
		if departmentID != nil && (user.DepartmentID == nil || *user.DepartmentID != *departmentID) {
			continue
		}
		haystack := strings.ToLower(user.Name + " " + user.Matricule + " " + user.Email)
		if !strings.Contains(haystack, needle) {
			continue
		}
		if uint64(len(result)) >= limit {
			break
		}
		result = append(result, *user)
	}
	return result, nil
}

type fakeDepartmentRepo struct {
	departments map[uuid.UUID]*entities.Department
}

func newFakeDepartmentRepo() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{departments: make(map[uuid.UUID]*entities.Department)}
}

func (r *fakeDepartmentRepo) add(dept *entities.Department) *entities.Department {
	if dept.ID == uuid.Nil {
		dept.ID = uuid.New()
	}
	r.departments[dept.ID] = dept
	return dept
}

func (r *fakeDepartmentRepo) GetDepartments(ctx context.Context) ([]entities.Department, error) {
	result := make([]entities.Department, 0, len(r.departments))
	for _, dept := range r.departments {
		result = append(result, *dept)
	}
	return result, nil
}

func (r *fakeDepartmentRepo) FindDepartment(ctx context.Context, id uuid.UUID) (*entities.Department, error) {
	dept, ok := r.departments[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *dept
	return &copied, nil
}

func (r *fakeDepartmentRepo) FindByManagerID(ctx context.Context, managerID uuid.UUID) (*entities.Department, error) {
	for _, dept := range r.departments {
		if dept.ManagerID != nil && *dept.ManagerID == managerID {
			copied := *dept
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (r *fakeDepartmentRepo) CreateDepartment(ctx context.Context, entity *entities.Department) (*entities.Department, error) {
	for _, dept := range r.departments {
		if dept.Code == entity.Code {
			return nil, apperrors.ErrDepartmentCodeTaken
		}
	}
	created := *entity
	copied := r.add(&created)
	result := *copied
	return &result, nil
}

func (r *fakeDepartmentRepo) UpdateDepartment(ctx context.Context, id uuid.UUID, patch repositories.DepartmentPatch) (*entities.Department, error) {
	dept, ok := r.departments[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if patch.Name != nil {
		dept.Name = *patch.Name
	}
	if patch.Code != nil {
		dept.Code = *patch.Code
	}
	if patch.SetManager {
		dept.ManagerID = patch.ManagerID
	}
	copied := *dept
	return &copied, nil
}

func (r *fakeDepartmentRepo) DeleteDepartment(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.departments[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.departments, id)
	return nil
}

type fakeActivityRepo struct {
	activities map[uuid.UUID]*entities.Activity
}

func newFakeActivityRepo() *fakeActivityRepo {
	return &fakeActivityRepo{activities: make(map[uuid.UUID]*entities.Activity)}
}

func (r *fakeActivityRepo) add(activity *entities.Activity) *entities.Activity {
	if activity.ID == uuid.Nil {
		activity.ID = uuid.New()
	}
	r.activities[activity.ID] = activity
	return activity
}

func (r *fakeActivityRepo) GetActivities(ctx context.Context) ([]entities.Activity, error) {
	result := make([]entities.Activity, 0, len(r.activities))
	for _, activity := range r.activities {
		result = append(result, *activity)
	}
	return result, nil
}

func (r *fakeActivityRepo) FindActivity(ctx context.Context, id uuid.UUID) (*entities.Activity, error) {
	activity, ok := r.activities[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *activity
	return &copied, nil
}

func (r *fakeActivityRepo) ListByDepartment(ctx context.Context, departmentID uuid.UUID) ([]entities.Activity, error) {
	result := make([]entities.Activity, 0)
	for _, activity := range r.activities {
		if activity.DepartmentID == departmentID {
			result = append(result, *activity)
		}
	}
	return result, nil
}

func (r *fakeActivityRepo) CountByDepartment(ctx context.Context, departmentID uuid.UUID) (uint64, error) {
	activities, _ := r.ListByDepartment(ctx, departmentID)
	return uint64(len(activities)), nil
}

func (r *fakeActivityRepo) CreateActivity(ctx context.Context, entity *entities.Activity) (*entities.Activity, error) {
	created := *entity
	copied := r.add(&created)
	result := *copied
	return &result, nil
}

func (r *fakeActivityRepo) UpdateActivity(ctx context.Context, id uuid.UUID, patch repositories.ActivityPatch) (*entities.Activity, error) {
	activity, ok := r.activities[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	if patch.Title != nil {
		activity.Title = *patch.Title
	}
	if patch.Status != nil {
		activity.Status = *patch.Status
	}
	copied := *activity
	return &copied, nil
}

func (r *fakeActivityRepo) DeleteActivity(ctx context.Context, id uuid.UUID) error {
	if _, ok := r.activities[id]; !ok {
		return apperrors.ErrNotFound
	}
	delete(r.activities, id)
	return nil
}

type fakeFicheRepo struct {
	fiches map[uuid.UUID]*entities.Fiche
	users  *fakeUserRepo
}

func newFakeFicheRepo(users *fakeUserRepo) *fakeFicheRepo {
	return &fakeFicheRepo{fiches: make(map[uuid.UUID]*entities.Fiche), users: users}
}

func (r *fakeFicheRepo) add(fiche *entities.Fiche) *entities.Fiche {
	if fiche.ID == uuid.Nil {
		fiche.ID = uuid.New()
	}
	r.fiches[fiche.ID] = fiche
	return fiche
}

func (r *fakeFicheRepo) FindFiche(ctx context.Context, id uuid.UUID) (*entities.Fiche, error) {
	fiche, ok := r.fiches[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *fiche
	return &copied, nil
}

func (r *fakeFicheRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]entities.Fiche, error) {
	result := make([]entities.Fiche, 0)
	for _, fiche := range r.fiches {
		if fiche.UserID == userID {
			result = append(result, *fiche)
		}
	}
	return result, nil
}

func (r *fakeFicheRepo) CountPendingByDepartment(ctx context.Context, departmentID uuid.UUID) (uint64, error) {
	var total uint64
	for _, fiche := range r.fiches {
		if fiche.Etat != constants.FicheEtatDraft && fiche.Etat != constants.FicheEtatInProgress {
			continue
		}
		owner, ok := r.users.users[fiche.UserID]
		if !ok || owner.Role != constants.RoleEmployee {
			continue
		}
		if owner.DepartmentID != nil && *owner.DepartmentID == departmentID {
			total++
		}
	}
	return total, nil
}

type fakeCompetenceRepo struct {
	competences map[uuid.UUID]*entities.Competence
}

func newFakeCompetenceRepo() *fakeCompetenceRepo {
	return &fakeCompetenceRepo{competences: make(map[uuid.UUID]*entities.Competence)}
}

func (r *fakeCompetenceRepo) add(c *entities.Competence) *entities.Competence {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	r.competences[c.ID] = c
	return c
}

func (r *fakeCompetenceRepo) FindCompetence(ctx context.Context, id uuid.UUID) (*entities.Competence, error) {
	c, ok := r.competences[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *fakeCompetenceRepo) ListByFiche(ctx context.Context, ficheID uuid.UUID) ([]entities.Competence, error) {
	result := make([]entities.Competence, 0)
	for _, c := range r.competences {
		if c.FicheID == ficheID {
			result = append(result, *c)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Type < result[j].Type })
	return result, nil
}

func (r *fakeCompetenceRepo) ValidateCompetence(ctx context.Context, id uuid.UUID, hierarchieEval int) (*entities.Competence, error) {
	c, ok := r.competences[id]
	if !ok || c.Etat == constants.CompetenceEtatValidated {
		return nil, apperrors.ErrNotFound
	}
	c.HierarchieEval = &hierarchieEval
	c.Etat = constants.CompetenceEtatValidated
	copied := *c
	return &copied, nil
}

type fakeCacheRepo struct {
	values map[string]string
	sets   int
	hits   int
}

func newFakeCacheRepo() *fakeCacheRepo {
	return &fakeCacheRepo{values: make(map[string]string)}
}

func (r *fakeCacheRepo) Get(ctx context.Context, key string) (string, error) {
	value, ok := r.values[key]
	if !ok {
		return "", apperrors.ErrNotFound
	}
	r.hits++
	return value, nil
}

func (r *fakeCacheRepo) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	r.values[key] = value
	r.sets++
	return nil
}

func (r *fakeCacheRepo) Delete(ctx context.Context, key string) error {
	delete(r.values, key)
	return nil
}
