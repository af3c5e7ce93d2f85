package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/taskhive/taskhive/internal/constants"
	"github.com/taskhive/taskhive/internal/dto"
	apperrors "github.com/taskhive/taskhive/internal/errors"
	"github.com/taskhive/taskhive/internal/model"
	"github.com/taskhive/taskhive/internal/repository"
	ctxutil "github.com/taskhive/taskhive/pkg/context"
	"github.com/taskhive/taskhive/pkg/logger"
	"gorm.io/gorm"
)

// TaskService exposes the ownership-scoped task operations. Every call takes
// the authenticated owner explicitly; a task owned by someone else behaves
// like a missing one.
type TaskService struct {
	taskRepo *repository.TaskRepository
}

func NewTaskService(taskRepo *repository.TaskRepository) *TaskService {
	return &TaskService{taskRepo: taskRepo}
}

func taskResponse(task *model.Task) dto.TaskResponse {
	return dto.TaskResponse{
		ID:          task.ID,
		Description: task.Description,
		Completed:   task.Completed,
		UserID:      task.UserID,
		CreatedAt:   task.CreatedAt,
		UpdatedAt:   task.UpdatedAt,
	}
}

// Create stores a new task owned by the caller. The owner comes from the
// authenticated identity, never from the request body.
func (s *TaskService) Create(ctx context.Context, ownerID uint, req *dto.CreateTaskRequest) (*dto.TaskResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Create")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	// The binding tag sees the raw string, so whitespace padding slips past
	// it; what matters is that the trimmed value is non-empty.
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return nil, apperrors.WrapError(apperrors.ErrInvalidInput,
			fmt.Errorf("description must be a non-empty string"))
	}

	task := &model.Task{
		Description: description,
		Completed:   req.Completed,
		UserID:      ownerID,
	}

	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	response := taskResponse(task)
	return &response, nil
}

// List returns the caller's tasks with filter, pagination and sort applied.
func (s *TaskService) List(ctx context.Context, ownerID uint, params constants.ListParams) ([]dto.TaskResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "List")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	tasks, err := s.taskRepo.ListByOwner(ctx, ownerID, params)
	if err != nil {
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	responses := make([]dto.TaskResponse, 0, len(tasks))
	for i := range tasks {
		responses = append(responses, taskResponse(&tasks[i]))
	}

	return responses, nil
}

// Get fetches one of the caller's tasks by ID.
func (s *TaskService) Get(ctx context.Context, ownerID, taskID uint) (*dto.TaskResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Get")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	task, err := s.taskRepo.GetByIDAndOwner(ctx, taskID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	response := taskResponse(task)
	return &response, nil
}

// Update applies an allow-listed patch to one of the caller's tasks. The
// patch is validated atomically before any column is written.
func (s *TaskService) Update(ctx context.Context, ownerID, taskID uint, patch dto.Patch) (*dto.TaskResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Update")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	task, err := s.taskRepo.GetByIDAndOwner(ctx, taskID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	changed, err := patch.ApplyTaskPatch(task)
	if err != nil {
		logger.WarnWithContext(ctx, "Task patch rejected").
			Uint("task_id", taskID).
			Err(err).
			Log()
		return nil, err
	}

	if len(changed) == 0 {
		response := taskResponse(task)
		return &response, nil
	}

	values := make(map[string]interface{}, len(changed))
	for _, field := range changed {
		switch field {
		case "description":
			values["description"] = task.Description
		case "completed":
			values["completed"] = task.Completed
		}
	}

	if err := s.taskRepo.Update(ctx, taskID, ownerID, values); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	response := taskResponse(task)
	return &response, nil
}

// Delete removes one of the caller's tasks by ID.
func (s *TaskService) Delete(ctx context.Context, ownerID, taskID uint) (*dto.TaskResponse, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Delete")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "service")

	task, err := s.taskRepo.GetByIDAndOwner(ctx, taskID, ownerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	if err := s.taskRepo.DeleteByIDAndOwner(ctx, taskID, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrTaskNotFound
		}
		return nil, apperrors.WrapError(apperrors.ErrInternal, err)
	}

	response := taskResponse(task)
	return &response, nil
}
