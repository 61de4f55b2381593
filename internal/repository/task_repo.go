package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"wbsplanner/internal/model"
)

const taskColumns = `id, name, description, project_id, parent_task_id, task_type, status, priority,
        estimated_hours, actual_hours, progress_percentage, start_date, end_date, assignee_id,
        created_at, updated_at`

type TaskRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTaskRepository(db *pgxpool.Pool, logger *zap.Logger) *TaskRepository {
	return &TaskRepository{db: db, logger: logger}
}

func scanTask(row pgx.Row) (*model.Task, error) {
	var (
		t          model.Task
		start, end *time.Time
	)
	err := row.Scan(
		&t.ID,
		&t.Name,
		&t.Description,
		&t.ProjectID,
		&t.ParentTaskID,
		&t.TaskType,
		&t.Status,
		&t.Priority,
		&t.EstimatedHours,
		&t.ActualHours,
		&t.ProgressPercentage,
		&start,
		&end,
		&t.AssigneeID,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, translate(err)
	}
	t.StartDate = model.DateFromPtr(start)
	t.EndDate = model.DateFromPtr(end)
	return &t, nil
}

// ListByProject returns the project's tasks in creation order.
func (r *TaskRepository) ListByProject(ctx context.Context, projectID int) ([]model.Task, error) {
	r.logger.Debug("Listing tasks for project", zap.Int("project_id", projectID))
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE project_id = $1 ORDER BY created_at, id`
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		r.logger.Error("Failed to query tasks", zap.Int("project_id", projectID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	tasks := []model.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			r.logger.Error("Failed to scan task row", zap.Int("project_id", projectID), zap.Error(err))
			return nil, err
		}
		tasks = append(tasks, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.Info("Tasks listed successfully",
		zap.Int("project_id", projectID),
		zap.Int("count", len(tasks)),
	)
	return tasks, nil
}

func (r *TaskRepository) Get(ctx context.Context, id int) (*model.Task, error) {
	r.logger.Debug("Fetching task", zap.Int("task_id", id))
	t, err := scanTask(r.db.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
	if err != nil && err != ErrNotFound {
		r.logger.Error("Failed to fetch task", zap.Int("task_id", id), zap.Error(err))
	}
	return t, err
}

func (r *TaskRepository) Insert(ctx context.Context, in model.TaskCreate) (*model.Task, error) {
	r.logger.Debug("Inserting task",
		zap.Int("project_id", in.ProjectID),
		zap.String("name", in.Name),
		zap.String("task_type", string(in.TaskType)),
	)
	query := `
        INSERT INTO tasks (name, description, project_id, parent_task_id, task_type, status, priority,
                           estimated_hours, actual_hours, start_date, end_date, assignee_id)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING ` + taskColumns
	t, err := scanTask(r.db.QueryRow(ctx, query,
		in.Name,
		in.Description,
		in.ProjectID,
		in.ParentTaskID,
		in.TaskType,
		in.Status,
		in.Priority,
		in.EstimatedHours,
		in.ActualHours,
		in.StartDate.TimePtr(),
		in.EndDate.TimePtr(),
		in.AssigneeID,
	))
	if err != nil {
		r.logger.Error("Failed to insert task", zap.Int("project_id", in.ProjectID), zap.Error(err))
		return nil, err
	}
	r.logger.Info("Task inserted successfully",
		zap.Int("task_id", t.ID),
		zap.Int("project_id", t.ProjectID),
	)
	return t, nil
}

// Save writes every mutable column of t and refreshes t.UpdatedAt.
func (r *TaskRepository) Save(ctx context.Context, t *model.Task) error {
	r.logger.Debug("Saving task", zap.Int("task_id", t.ID))
	query := `
        UPDATE tasks
        SET name = $2, description = $3, parent_task_id = $4, task_type = $5, status = $6,
            priority = $7, estimated_hours = $8, actual_hours = $9, progress_percentage = $10,
            start_date = $11, end_date = $12, assignee_id = $13, updated_at = NOW()
        WHERE id = $1
        RETURNING updated_at
    `
	err := r.db.QueryRow(ctx, query,
		t.ID,
		t.Name,
		t.Description,
		t.ParentTaskID,
		t.TaskType,
		t.Status,
		t.Priority,
		t.EstimatedHours,
		t.ActualHours,
		t.ProgressPercentage,
		t.StartDate.TimePtr(),
		t.EndDate.TimePtr(),
		t.AssigneeID,
	).Scan(&t.UpdatedAt)
	if err != nil {
		err = translate(err)
		if err != ErrNotFound {
			r.logger.Error("Failed to save task", zap.Int("task_id", t.ID), zap.Error(err))
		}
		return err
	}
	r.logger.Info("Task saved", zap.Int("task_id", t.ID))
	return nil
}

// Delete removes the task and returns the project it belonged to.
// Its dependencies are removed by ON DELETE CASCADE.
func (r *TaskRepository) Delete(ctx context.Context, id int) (int, error) {
	r.logger.Debug("Deleting task", zap.Int("task_id", id))
	var projectID int
	err := r.db.QueryRow(ctx, `DELETE FROM tasks WHERE id = $1 RETURNING project_id`, id).Scan(&projectID)
	if err != nil {
		err = translate(err)
		if err != ErrNotFound {
			r.logger.Error("Failed to delete task", zap.Int("task_id", id), zap.Error(err))
		}
		return 0, err
	}
	r.logger.Info("Task deleted", zap.Int("task_id", id), zap.Int("project_id", projectID))
	return projectID, nil
}

// ProjectOf returns the project id of every listed task that exists.
func (r *TaskRepository) ProjectOf(ctx context.Context, ids ...int) (map[int]int, error) {
	rows, err := r.db.Query(ctx, `SELECT id, project_id FROM tasks WHERE id = ANY($1)`, ids)
	if err != nil {
		r.logger.Error("Failed to look up task projects", zap.Ints("task_ids", ids), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	out := make(map[int]int, len(ids))
	for rows.Next() {
		var id, projectID int
		if err := rows.Scan(&id, &projectID); err != nil {
			return nil, err
		}
		out[id] = projectID
	}
	return out, rows.Err()
}
