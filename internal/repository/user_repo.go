package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"wbsplanner/internal/model"
)

const userColumns = `id, username, email, full_name, role, is_active, password_hash, created_at`

type UserRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewUserRepository(db *pgxpool.Pool, logger *zap.Logger) *UserRepository {
	return &UserRepository{db: db, logger: logger}
}

func scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.FullName, &u.Role, &u.IsActive, &u.PasswordHash, &u.CreatedAt)
	if err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

// CreateUser inserts u and fills its ID and CreatedAt.
func (r *UserRepository) CreateUser(ctx context.Context, u *model.User) error {
	r.logger.Debug("Inserting user", zap.String("username", u.Username), zap.String("role", string(u.Role)))
	query := `
        INSERT INTO users (username, email, full_name, role, is_active, password_hash)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at
    `
	err := r.db.QueryRow(ctx, query,
		u.Username, u.Email, u.FullName, u.Role, u.IsActive, u.PasswordHash,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		err = translate(err)
		r.logger.Error("Failed to insert user", zap.String("username", u.Username), zap.Error(err))
		return err
	}
	r.logger.Info("User inserted", zap.Int("user_id", u.ID))
	return nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (r *UserRepository) FindByID(ctx context.Context, id int) (*model.User, error) {
	return scanUser(r.db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *UserRepository) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}
