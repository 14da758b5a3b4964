package postgres

import (
	"context"

	"github.com/biznesassistant/biznesassistant/internal/domain/task"
	"github.com/biznesassistant/biznesassistant/internal/logger"
	"github.com/biznesassistant/biznesassistant/internal/postgres"
	"github.com/biznesassistant/biznesassistant/internal/types"
)

type taskRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewTaskRepository(db *postgres.DB, logger *logger.Logger) task.Repository {
	return &taskRepository{db: db, logger: logger}
}

func (r *taskRepository) Create(ctx context.Context, t *task.Task) error {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return err
	}
	t.TenantID = types.GetTenantID(ctx)

	query := `
	INSERT INTO tasks (
		id, tenant_id, company_id, title, description, task_status, priority, due_date,
		status, created_at, updated_at, created_by, updated_by
	) VALUES (
		:id, :tenant_id, :company_id, :title, :description, :task_status, :priority, :due_date,
		:status, :created_at, :updated_at, :created_by, :updated_by
	)`

	if _, err := r.db.GetQuerier(ctx).NamedExecContext(ctx, query, t); err != nil {
		return wrapError(err, "Task", "Failed to create task", map[string]interface{}{
			"company_id": t.CompanyID,
		})
	}
	return nil
}

func (r *taskRepository) Count(ctx context.Context, filter *types.CountFilter) (int, error) {
	if err := types.ValidateTenantContext(ctx); err != nil {
		return 0, err
	}

	query, args := countQuery(ctx, "tasks", "task_status", "due_date", filter)

	var count int
	if err := r.db.GetQuerier(ctx).GetContext(ctx, &count, query, args...); err != nil {
		return 0, wrapError(err, "Task", "Failed to count tasks", map[string]interface{}{
			"company_id": filter.CompanyID,
		})
	}
	return count, nil
}
