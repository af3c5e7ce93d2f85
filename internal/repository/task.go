package repository

import (
	"context"
	"time"

	"github.com/taskhive/taskhive/internal/constants"
	"github.com/taskhive/taskhive/internal/model"
	ctxutil "github.com/taskhive/taskhive/pkg/context"
	"github.com/taskhive/taskhive/pkg/logger"
	"gorm.io/gorm"
)

// sortColumns is the allow-list of task sort fields. Unknown fields fall
// back to created_at rather than reaching the SQL layer.
var sortColumns = map[string]string{
	"createdAt":   "created_at",
	"created_at":  "created_at",
	"updatedAt":   "updated_at",
	"updated_at":  "updated_at",
	"description": "description",
	"completed":   "completed",
}

type TaskRepository struct {
	db *gorm.DB
}

func NewTaskRepository(db *gorm.DB) *TaskRepository {
	return &TaskRepository{db: db}
}

// Create persists a new task. The owner is already bound by the service from
// the authenticated identity.
func (r *TaskRepository) Create(ctx context.Context, task *model.Task) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Create")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	result := r.db.WithContext(ctx).Create(task)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to create task").
			Uint("owner_id", task.UserID).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	logger.InfoWithContext(ctx, "Task created").
		Uint("task_id", task.ID).
		Uint("owner_id", task.UserID).
		Duration(duration).
		Log()

	return nil
}

// GetByIDAndOwner fetches one task, scoped to its owner. A task owned by a
// different user is indistinguishable from a missing one.
func (r *TaskRepository) GetByIDAndOwner(ctx context.Context, id, ownerID uint) (*model.Task, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "GetByIDAndOwner")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	var task model.Task

	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		First(&task)
	duration := time.Since(start)

	if result.Error != nil {
		logger.DebugWithContext(ctx, "Task lookup missed").
			Uint("task_id", id).
			Uint("owner_id", ownerID).
			Duration(duration).
			Err(result.Error).
			Log()
		return nil, result.Error
	}

	return &task, nil
}

// ListByOwner returns the owner's tasks with the composable list modifiers
// applied: completion filter, limit/skip, sort field and direction.
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID uint, params constants.ListParams) ([]model.Task, error) {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "ListByOwner")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	var tasks []model.Task

	query := r.db.WithContext(ctx).Where("user_id = ?", ownerID)

	if params.Completed != nil {
		query = query.Where("completed = ?", *params.Completed)
	}

	column, ok := sortColumns[params.SortField]
	if !ok {
		column = "created_at"
	}
	order := column
	if params.SortDesc {
		order += " DESC"
	}
	query = query.Order(order)

	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	}
	if params.Skip > 0 {
		query = query.Offset(params.Skip)
	}

	if err := query.Find(&tasks).Error; err != nil {
		logger.ErrorWithContext(ctx, "Failed to list tasks").
			Uint("owner_id", ownerID).
			Duration(time.Since(start)).
			Err(err).
			Log()
		return nil, err
	}

	logger.DebugWithContext(ctx, "Tasks listed").
		Uint("owner_id", ownerID).
		Int("returned_count", len(tasks)).
		Duration(time.Since(start)).
		Log()

	return tasks, nil
}

// Update applies column values to one task, scoped to its owner.
func (r *TaskRepository) Update(ctx context.Context, id, ownerID uint, values map[string]interface{}) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "Update")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	result := r.db.WithContext(ctx).
		Model(&model.Task{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(values)
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to update task").
			Uint("task_id", id).
			Uint("owner_id", ownerID).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

// DeleteByIDAndOwner removes one task, scoped to its owner.
func (r *TaskRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID uint) error {
	ctx = context.WithValue(ctx, ctxutil.FunctionKey, "DeleteByIDAndOwner")
	ctx = context.WithValue(ctx, ctxutil.ModuleKey, "repository")

	start := time.Now()
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&model.Task{})
	duration := time.Since(start)

	if result.Error != nil {
		logger.ErrorWithContext(ctx, "Failed to delete task").
			Uint("task_id", id).
			Uint("owner_id", ownerID).
			Duration(duration).
			Err(result.Error).
			Log()
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	logger.InfoWithContext(ctx, "Task deleted").
		Uint("task_id", id).
		Uint("owner_id", ownerID).
		Duration(duration).
		Log()

	return nil
}
