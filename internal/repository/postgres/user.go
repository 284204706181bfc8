package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dtroode/ipo-auth/internal/model"
)

// Querier is the subset of *pgxpool.Pool the repository needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

var _ model.UserStore = (*UserRepository)(nil)

const (
	userColumns = `id, user_id, first_name, last_name, email, password_hash, created_at`

	existsQuery = `SELECT EXISTS(SELECT 1 FROM user_info WHERE user_id = $1)`

	getByEmailQuery = `SELECT ` + userColumns + `
			  FROM user_info WHERE email = $1
			  ORDER BY created_at, id LIMIT 1`

	getByUserIDQuery = `SELECT ` + userColumns + `
			  FROM user_info WHERE user_id = $1`

	createQuery = `INSERT INTO user_info (` + userColumns + `)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING ` + userColumns
)

type UserRepository struct {
	db Querier
}

func NewUserRepository(db Querier) *UserRepository {
	return &UserRepository{
		db: db,
	}
}

func (r *UserRepository) Exists(ctx context.Context, userID string) (bool, error) {
	var exists bool
	if err := r.db.QueryRow(ctx, existsQuery, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

// GetByEmail returns the oldest account registered with email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (model.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, getByEmailQuery, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return user, nil
}

func (r *UserRepository) GetByUserID(ctx context.Context, userID string) (model.User, error) {
	user, err := scanUser(r.db.QueryRow(ctx, getByUserIDQuery, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, model.ErrNotFound
		}
		return model.User{}, fmt.Errorf("failed to get user by user id: %w", err)
	}

	return user, nil
}

// Create inserts user. A second account with the same user id violates the
// table's unique constraint and yields model.ErrDuplicateKey.
func (r *UserRepository) Create(ctx context.Context, user model.User) (model.User, error) {
	saved, err := scanUser(r.db.QueryRow(ctx, createQuery,
		user.ID, user.UserID, user.FirstName, user.LastName, user.Email, user.PasswordHash, user.CreatedAt,
	))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return model.User{}, model.ErrDuplicateKey
		}
		return model.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return saved, nil
}

func scanUser(row pgx.Row) (model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.UserID, &user.FirstName, &user.LastName,
		&user.Email, &user.PasswordHash, &user.CreatedAt,
	)
	return user, err
}
