package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"wbsplanner/internal/model"
)

type DependencyRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewDependencyRepository(db *pgxpool.Pool, logger *zap.Logger) *DependencyRepository {
	return &DependencyRepository{db: db, logger: logger}
}

func scanDependency(row pgx.Row) (*model.TaskDependency, error) {
	var d model.TaskDependency
	err := row.Scan(
		&d.ID,
		&d.PredecessorID,
		&d.SuccessorID,
		&d.DependencyType,
		&d.LagDays,
		&d.PredecessorName,
		&d.SuccessorName,
	)
	if err != nil {
		return nil, translate(err)
	}
	return &d, nil
}

// ListByProject returns dependencies whose both ends belong to the project,
// with the task names joined in.
func (r *DependencyRepository) ListByProject(ctx context.Context, projectID int) ([]model.TaskDependency, error) {
	r.logger.Debug("Listing dependencies for project", zap.Int("project_id", projectID))
	query := `
        SELECT d.id, d.predecessor_id, d.successor_id, d.dependency_type, d.lag_days,
               p.name, s.name
        FROM task_dependencies d
        JOIN tasks p ON p.id = d.predecessor_id
        JOIN tasks s ON s.id = d.successor_id
        WHERE p.project_id = $1 AND s.project_id = $1
        ORDER BY d.created_at, d.id
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		r.logger.Error("Failed to query dependencies", zap.Int("project_id", projectID), zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	deps := []model.TaskDependency{}
	for rows.Next() {
		d, err := scanDependency(rows)
		if err != nil {
			r.logger.Error("Failed to scan dependency row", zap.Error(err))
			return nil, err
		}
		deps = append(deps, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.Info("Dependencies listed successfully",
		zap.Int("project_id", projectID),
		zap.Int("count", len(deps)),
	)
	return deps, nil
}

// Insert returns ErrDuplicate for an existing pair and ErrReference when a task is missing.
func (r *DependencyRepository) Insert(ctx context.Context, in model.DependencyCreate) (*model.TaskDependency, error) {
	r.logger.Debug("Inserting dependency",
		zap.Int("predecessor_id", in.PredecessorID),
		zap.Int("successor_id", in.SuccessorID),
		zap.String("type", string(in.DependencyType)),
	)
	query := `
        WITH ins AS (
            INSERT INTO task_dependencies (predecessor_id, successor_id, dependency_type, lag_days)
            VALUES ($1, $2, $3, $4)
            RETURNING id, predecessor_id, successor_id, dependency_type, lag_days
        )
        SELECT ins.id, ins.predecessor_id, ins.successor_id, ins.dependency_type, ins.lag_days,
               p.name, s.name
        FROM ins
        JOIN tasks p ON p.id = ins.predecessor_id
        JOIN tasks s ON s.id = ins.successor_id
    `
	d, err := scanDependency(r.db.QueryRow(ctx, query,
		in.PredecessorID, in.SuccessorID, in.DependencyType, in.LagDays))
	if err != nil {
		r.logger.Error("Failed to insert dependency",
			zap.Int("predecessor_id", in.PredecessorID),
			zap.Int("successor_id", in.SuccessorID),
			zap.Error(err),
		)
		return nil, err
	}
	r.logger.Info("Dependency inserted successfully", zap.Int("dependency_id", d.ID))
	return d, nil
}

func (r *DependencyRepository) Exists(ctx context.Context, predecessorID, successorID int) (bool, error) {
	var ok bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM task_dependencies WHERE predecessor_id = $1 AND successor_id = $2)`,
		predecessorID, successorID,
	).Scan(&ok)
	return ok, err
}

// Delete removes the dependency and returns the predecessor's project id.
func (r *DependencyRepository) Delete(ctx context.Context, id int) (int, error) {
	r.logger.Debug("Deleting dependency", zap.Int("dependency_id", id))
	query := `
        DELETE FROM task_dependencies d
        USING tasks t
        WHERE d.id = $1 AND t.id = d.predecessor_id
        RETURNING t.project_id
    `
	var projectID int
	if err := r.db.QueryRow(ctx, query, id).Scan(&projectID); err != nil {
		err = translate(err)
		if err != ErrNotFound {
			r.logger.Error("Failed to delete dependency", zap.Int("dependency_id", id), zap.Error(err))
		}
		return 0, err
	}
	r.logger.Info("Dependency deleted", zap.Int("dependency_id", id), zap.Int("project_id", projectID))
	return projectID, nil
}
