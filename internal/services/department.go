package services

import (
	"context"
	"time"

	"hrm-system/internal/dto"
	"hrm-system/internal/entities"
	"hrm-system/internal/repositories"

	"go.uber.org/zap"
)

func departmentToDTO(dept *entities.Department) dto.DepartmentDTO {
	return dto.DepartmentDTO{
		ID:          dept.ID.String(),
		Name:        dept.Name,
		Code:        dept.Code,
		Description: dept.Description,
		ManagerID:   uuidPtrToString(dept.ManagerID),
		CreatedAt:   dept.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   dept.UpdatedAt.Format(time.RFC3339),
	}
}

type DepartmentServiceInterface interface {
	GetDepartments(ctx context.Context) ([]dto.DepartmentDTO, error)
	FindDepartment(ctx context.Context, id string) (*dto.DepartmentDTO, error)
	CreateDepartment(ctx context.Context, payload dto.CreateDepartmentDTO) (*dto.DepartmentDTO, error)
	UpdateDepartment(ctx context.Context, id string, payload dto.UpdateDepartmentDTO) (*dto.DepartmentDTO, error)
	DeleteDepartment(ctx context.Context, id string) error
}

type DepartmentService struct {
	departmentRepo repositories.DepartmentRepositoryInterface
	logger         *zap.Logger
}

func NewDepartmentService(
	departmentRepo repositories.DepartmentRepositoryInterface,
	logger *zap.Logger,
) DepartmentServiceInterface {
	return &DepartmentService{departmentRepo: departmentRepo, logger: logger}
}

func (s *DepartmentService) GetDepartments(ctx context.Context) ([]dto.DepartmentDTO, error) {
	departments, err := s.departmentRepo.GetDepartments(ctx)
	if err != nil {
		s.logger.Error("Не удалось получить список департаментов", zap.Error(err))
		return nil, err
	}
	result := make([]dto.DepartmentDTO, 0, len(departments))
	for i := range departments {
		result = append(result, departmentToDTO(&departments[i]))
	}
	return result, nil
}

func (s *DepartmentService) FindDepartment(ctx context.Context, id string) (*dto.DepartmentDTO, error) {
	deptID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	dept, err := s.departmentRepo.FindDepartment(ctx, deptID)
	if err != nil {
		return nil, err
	}
	result := departmentToDTO(dept)
	return &result, nil
}

func (s *DepartmentService) CreateDepartment(ctx context.Context, payload dto.CreateDepartmentDTO) (*dto.DepartmentDTO, error) {
	entity := &entities.Department{
		Name:        payload.Name,
		Code:        payload.Code,
		Description: payload.Description,
	}
	if payload.ManagerID != "" {
		managerID, err := parseID(payload.ManagerID)
		if err != nil {
			return nil, err
		}
		entity.ManagerID = &managerID
	}

	created, err := s.departmentRepo.CreateDepartment(ctx, entity)
	if err != nil {
		s.logger.Warn("Не удалось создать департамент", zap.String("code", payload.Code), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Департамент создан", zap.String("department_id", created.ID.String()))
	result := departmentToDTO(created)
	return &result, nil
}

func (s *DepartmentService) UpdateDepartment(ctx context.Context, id string, payload dto.UpdateDepartmentDTO) (*dto.DepartmentDTO, error) {
	deptID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	patch := repositories.DepartmentPatch{Description: payload.Description}
	if payload.Name.Valid {
		patch.Name = &payload.Name.String
	}
	if payload.Code.Valid {
		patch.Code = &payload.Code.String
	}
	if payload.ManagerID.Valid {
		patch.SetManager = true
		if payload.ManagerID.String != "" {
			managerID, err := parseID(payload.ManagerID.String)
			if err != nil {
				return nil, err
			}
			patch.ManagerID = &managerID
		}
	}

	updated, err := s.departmentRepo.UpdateDepartment(ctx, deptID, patch)
	if err != nil {
		return nil, err
	}
	result := departmentToDTO(updated)
	return &result, nil
}

// DeleteDepartment не проверяет членство: пользователи с department_id на
// удалённый департамент остаются с подвисшей ссылкой.
func (s *DepartmentService) DeleteDepartment(ctx context.Context, id string) error {
	deptID, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.departmentRepo.DeleteDepartment(ctx, deptID); err != nil {
		return err
	}
	s.logger.Info("Департамент удалён", zap.String("department_id", deptID.String()))
	return nil
}
