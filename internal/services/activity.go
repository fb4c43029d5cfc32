package services

import (
	"context"
	"time"

	"hrm-system/internal/dto"
	"hrm-system/internal/entities"
	"hrm-system/internal/repositories"

	"go.uber.org/zap"
)

func activityToDTO(activity *entities.Activity) dto.ActivityDTO {
	return dto.ActivityDTO{
		ID:              activity.ID.String(),
		Title:           activity.Title,
		Description:     activity.Description,
		DepartmentID:    activity.DepartmentID.String(),
		RequiredSkills:  activity.RequiredSkills,
		MaxParticipants: activity.MaxParticipants,
		StartDate:       activity.StartDate.Format(time.RFC3339),
		EndDate:         activity.EndDate.Format(time.RFC3339),
		Type:            activity.Type,
		Priority:        activity.Priority,
		Status:          activity.Status,
		Location:        activity.Location,
		Duration:        activity.Duration,
		CreatedAt:       activity.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       activity.UpdatedAt.Format(time.RFC3339),
	}
}

type ActivityServiceInterface interface {
	GetActivities(ctx context.Context) ([]dto.ActivityDTO, error)
	FindActivity(ctx context.Context, id string) (*dto.ActivityDTO, error)
	CreateActivity(ctx context.Context, payload dto.CreateActivityDTO) (*dto.ActivityDTO, error)
	UpdateActivity(ctx context.Context, id string, payload dto.UpdateActivityDTO) (*dto.ActivityDTO, error)
	DeleteActivity(ctx context.Context, id string) error
}

type ActivityService struct {
	activityRepo   repositories.ActivityRepositoryInterface
	departmentRepo repositories.DepartmentRepositoryInterface
	logger         *zap.Logger
}

func NewActivityService(
	activityRepo repositories.ActivityRepositoryInterface,
	departmentRepo repositories.DepartmentRepositoryInterface,
	logger *zap.Logger,
) ActivityServiceInterface {
	return &ActivityService{
		activityRepo:   activityRepo,
		departmentRepo: departmentRepo,
		logger:         logger,
	}
}

func (s *ActivityService) GetActivities(ctx context.Context) ([]dto.ActivityDTO, error) {
	activities, err := s.activityRepo.GetActivities(ctx)
	if err != nil {
		s.logger.Error("Не удалось получить список активностей", zap.Error(err))
		return nil, err
	}
	result := make([]dto.ActivityDTO, 0, len(activities))
	for i := range activities {
		result = append(result, activityToDTO(&activities[i]))
	}
	return result, nil
}

func (s *ActivityService) FindActivity(ctx context.Context, id string) (*dto.ActivityDTO, error) {
	activityID, err := parseID(id)
	if err != nil {
		return nil, err
	}
	activity, err := s.activityRepo.FindActivity(ctx, activityID)
	if err != nil {
		return nil, err
	}
	result := activityToDTO(activity)
	return &result, nil
}

func (s *ActivityService) CreateActivity(ctx context.Context, payload dto.CreateActivityDTO) (*dto.ActivityDTO, error) {
	departmentID, err := parseID(payload.DepartmentID)
	if err != nil {
		return nil, err
	}
	// Привязка к несуществующему департаменту отклоняется сразу.
	if _, err := s.departmentRepo.FindDepartment(ctx, departmentID); err != nil {
		return nil, err
	}

	startDate, err := parseDate(payload.StartDate)
	if err != nil {
		return nil, err
	}
	endDate, err := parseDate(payload.EndDate)
	if err != nil {
		return nil, err
	}

	entity := &entities.Activity{
		Title:           payload.Title,
		Description:     payload.Description,
		DepartmentID:    departmentID,
		RequiredSkills:  payload.RequiredSkills,
		MaxParticipants: payload.MaxParticipants,
		StartDate:       startDate,
		EndDate:         endDate,
		Type:            payload.Type,
		Priority:        payload.Priority,
		Status:          payload.Status,
		Location:        payload.Location,
		Duration:        payload.Duration,
	}
	if entity.RequiredSkills == nil {
		entity.RequiredSkills = make([]entities.RequiredSkill, 0)
	}

	created, err := s.activityRepo.CreateActivity(ctx, entity)
	if err != nil {
		s.logger.Error("Не удалось создать активность", zap.String("title", payload.Title), zap.Error(err))
		return nil, err
	}

	s.logger.Info("Активность создана", zap.String("activity_id", created.ID.String()))
	result := activityToDTO(created)
	return &result, nil
}

func (s *ActivityService) UpdateActivity(ctx context.Context, id string, payload dto.UpdateActivityDTO) (*dto.ActivityDTO, error) {
	activityID, err := parseID(id)
	if err != nil {
		return nil, err
	}

	patch := repositories.ActivityPatch{RequiredSkills: payload.RequiredSkills}
	if payload.Title.Valid {
		patch.Title = &payload.Title.String
	}
	if payload.Description.Valid {
		patch.Description = &payload.Description.String
	}
	if payload.DepartmentID.Valid {
		departmentID, err := parseID(payload.DepartmentID.String)
		if err != nil {
			return nil, err
		}
		if _, err := s.departmentRepo.FindDepartment(ctx, departmentID); err != nil {
			return nil, err
		}
		patch.DepartmentID = &departmentID
	}
	if payload.MaxParticipants.Valid {
		maxParticipants := int(payload.MaxParticipants.Int)
		patch.MaxParticipants = &maxParticipants
	}
	if payload.StartDate.Valid {
		startDate, err := parseDate(payload.StartDate.String)
		if err != nil {
			return nil, err
		}
		patch.StartDate = &startDate
	}
	if payload.EndDate.Valid {
		endDate, err := parseDate(payload.EndDate.String)
		if err != nil {
			return nil, err
		}
		patch.EndDate = &endDate
	}
	if payload.Type.Valid {
		patch.Type = &payload.Type.String
	}
	if payload.Priority.Valid {
		patch.Priority = &payload.Priority.String
	}
	if payload.Status.Valid {
		patch.Status = &payload.Status.String
	}
	if payload.Location.Valid {
		patch.Location = &payload.Location.String
	}
	if payload.Duration.Valid {
		patch.Duration = &payload.Duration.String
	}

	updated, err := s.activityRepo.UpdateActivity(ctx, activityID, patch)
	if err != nil {
		return nil, err
	}
	result := activityToDTO(updated)
	return &result, nil
}

func (s *ActivityService) DeleteActivity(ctx context.Context, id string) error {
	activityID, err := parseID(id)
	if err != nil {
		return err
	}
	if err := s.activityRepo.DeleteActivity(ctx, activityID); err != nil {
		return err
	}
	s.logger.Info("Активность удалена", zap.String("activity_id", activityID.String()))
	return nil
}
