package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"wbsplanner/internal/model"
)

const projectColumns = `id, name, description, status, created_at, updated_at`

type ProjectRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProjectRepository(db *pgxpool.Pool, logger *zap.Logger) *ProjectRepository {
	return &ProjectRepository{db: db, logger: logger}
}

func scanProject(row pgx.Row) (*model.Project, error) {
	var p model.Project
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, translate(err)
	}
	return &p, nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]model.Project, error) {
	r.logger.Debug("Listing projects")
	rows, err := r.db.Query(ctx, `SELECT `+projectColumns+` FROM projects ORDER BY id`)
	if err != nil {
		r.logger.Error("Failed to query projects", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			r.logger.Error("Failed to scan project row", zap.Error(err))
			return nil, err
		}
		projects = append(projects, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	r.logger.Info("Projects listed successfully", zap.Int("count", len(projects)))
	return projects, nil
}

func (r *ProjectRepository) Get(ctx context.Context, id int) (*model.Project, error) {
	r.logger.Debug("Fetching project", zap.Int("project_id", id))
	p, err := scanProject(r.db.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if err != nil && err != ErrNotFound {
		r.logger.Error("Failed to fetch project", zap.Int("project_id", id), zap.Error(err))
	}
	return p, err
}

func (r *ProjectRepository) Insert(ctx context.Context, in model.ProjectCreate) (*model.Project, error) {
	r.logger.Debug("Inserting project", zap.String("name", in.Name), zap.String("status", string(in.Status)))
	query := `
        INSERT INTO projects (name, description, status)
        VALUES ($1, $2, $3)
        RETURNING ` + projectColumns
	p, err := scanProject(r.db.QueryRow(ctx, query, in.Name, in.Description, in.Status))
	if err != nil {
		r.logger.Error("Failed to insert project", zap.Error(err))
		return nil, err
	}
	r.logger.Info("Project inserted successfully", zap.Int("project_id", p.ID))
	return p, nil
}

// Update applies the non-nil fields of in and bumps updated_at.
func (r *ProjectRepository) Update(ctx context.Context, id int, in model.ProjectUpdate) (*model.Project, error) {
	r.logger.Debug("Updating project", zap.Int("project_id", id))
	query := `
        UPDATE projects
        SET name = COALESCE($2, name),
            description = COALESCE($3, description),
            status = COALESCE($4, status),
            updated_at = NOW()
        WHERE id = $1
        RETURNING ` + projectColumns
	p, err := scanProject(r.db.QueryRow(ctx, query, id, in.Name, in.Description, in.Status))
	if err != nil {
		if err != ErrNotFound {
			r.logger.Error("Failed to update project", zap.Int("project_id", id), zap.Error(err))
		}
		return nil, err
	}
	r.logger.Info("Project updated successfully", zap.Int("project_id", id))
	return p, nil
}

// Delete removes the project; tasks and dependencies go with it via ON DELETE CASCADE.
func (r *ProjectRepository) Delete(ctx context.Context, id int) error {
	r.logger.Debug("Deleting project", zap.Int("project_id", id))
	result, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete project", zap.Int("project_id", id), zap.Error(err))
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	r.logger.Info("Project deleted", zap.Int("project_id", id))
	return nil
}
