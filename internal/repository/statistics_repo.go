package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"wbsplanner/internal/model"
)

// StatisticsRepository runs the aggregate queries behind reports and exports.
type StatisticsRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewStatisticsRepository(db *pgxpool.Pool, logger *zap.Logger) *StatisticsRepository {
	return &StatisticsRepository{db: db, logger: logger}
}

func (r *StatisticsRepository) Statistics(ctx context.Context) (*model.Statistics, error) {
	r.logger.Debug("Computing statistics")
	var s model.Statistics

	ps := &s.ProjectStats
	err := r.db.QueryRow(ctx, `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status = 'active'),
               COUNT(*) FILTER (WHERE status = 'completed'),
               COUNT(*) FILTER (WHERE status = 'planning'),
               COUNT(*) FILTER (WHERE status = 'on_hold')
        FROM projects
    `).Scan(&ps.TotalProjects, &ps.ActiveProjects, &ps.CompletedProjects, &ps.PlanningProjects, &ps.OnHoldProjects)
	if err != nil {
		r.logger.Error("Failed to count projects", zap.Error(err))
		return nil, fmt.Errorf("project stats: %w", err)
	}

	ts := &s.TaskStats
	err = r.db.QueryRow(ctx, `
        SELECT COUNT(*),
               COUNT(*) FILTER (WHERE status = 'completed'),
               COUNT(*) FILTER (WHERE status = 'in_progress'),
               COUNT(*) FILTER (WHERE status = 'not_started'),
               COUNT(*) FILTER (WHERE status = 'on_hold'),
               COUNT(*) FILTER (WHERE end_date < CURRENT_DATE AND status <> 'completed')
        FROM tasks
    `).Scan(&ts.TotalTasks, &ts.CompletedTasks, &ts.InProgressTasks, &ts.NotStartedTasks, &ts.OnHoldTasks, &ts.OverdueTasks)
	if err != nil {
		r.logger.Error("Failed to count tasks", zap.Error(err))
		return nil, fmt.Errorf("task stats: %w", err)
	}

	rows, err := r.ReportRows(ctx, nil)
	if err != nil {
		return nil, err
	}
	s.ProjectProgress = make([]model.ProjectProgress, 0, len(rows))
	for _, row := range rows {
		s.ProjectProgress = append(s.ProjectProgress, model.ProjectProgress{
			ID:             row.ID,
			Name:           row.Name,
			Status:         row.Status,
			TotalTasks:     row.TotalTasks,
			CompletedTasks: row.CompletedTasks,
			Progress:       row.Progress,
		})
	}

	r.logger.Info("Statistics computed",
		zap.Int("projects", ps.TotalProjects),
		zap.Int("tasks", ts.TotalTasks),
	)
	return &s, nil
}

// ReportRows returns one row per project with task totals, or only the given project.
func (r *StatisticsRepository) ReportRows(ctx context.Context, projectID *int) ([]model.ProjectReportRow, error) {
	query := `
        SELECT p.id, p.name, p.description, p.status, p.created_at, p.updated_at,
               COUNT(t.id),
               COUNT(t.id) FILTER (WHERE t.status = 'completed')
        FROM projects p
        LEFT JOIN tasks t ON t.project_id = p.id
        WHERE $1::int IS NULL OR p.id = $1
        GROUP BY p.id
        ORDER BY p.id
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		r.logger.Error("Failed to query report rows", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	out := []model.ProjectReportRow{}
	for rows.Next() {
		var row model.ProjectReportRow
		if err := rows.Scan(
			&row.ID, &row.Name, &row.Description, &row.Status, &row.CreatedAt, &row.UpdatedAt,
			&row.TotalTasks, &row.CompletedTasks,
		); err != nil {
			return nil, err
		}
		row.Progress = model.ProgressPercent(row.CompletedTasks, row.TotalTasks)
		out = append(out, row)
	}
	return out, rows.Err()
}
