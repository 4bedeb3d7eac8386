package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"runway-tickets/internal/model"
	apperrors "runway-tickets/pkg/app_errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `
	id, email, display_name, avatar_url, role, is_admin, stripe_customer_id,
	bio, instagram_handle, website, created_at, updated_at`

type UserRepository interface {
	// InsertIfAbsent 已存在（id 或 email 衝突）時不做任何事，回傳 false
	InsertIfAbsent(ctx context.Context, user *model.User) (bool, error)
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	SetRoleByEmail(ctx context.Context, email string, role model.UserRole) (*model.User, error)
}

type UserRepositoryImpl struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &UserRepositoryImpl{
		pool: pool,
	}
}

func scanUser(row pgx.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.AvatarURL,
		&user.Role,
		&user.IsAdmin,
		&user.StripeCustomerID,
		&user.Bio,
		&user.InstagramHandle,
		&user.Website,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepositoryImpl) InsertIfAbsent(ctx context.Context, user *model.User) (bool, error) {
	query := `
		INSERT INTO users (id, email, display_name, role, is_admin)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT DO NOTHING
	`
	result, err := r.pool.Exec(ctx, query,
		user.ID, user.Email, user.DisplayName, user.Role, user.Role == model.UserRoleAdmin,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert user: %w", err)
	}
	return result.RowsAffected() == 1, nil
}

func (r *UserRepositoryImpl) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `SELECT` + userColumns + `
		FROM users
		WHERE id = $1
	`
	user, err := scanUser(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (r *UserRepositoryImpl) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `SELECT` + userColumns + `
		FROM users
		WHERE email = $1
	`
	user, err := scanUser(r.pool.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

// SetRoleByEmail is_admin 與 role 同步更新
func (r *UserRepositoryImpl) SetRoleByEmail(ctx context.Context, email string, role model.UserRole) (*model.User, error) {
	query := `
		UPDATE users
		SET role = $1, is_admin = $2, updated_at = $3
		WHERE email = $4
		RETURNING` + userColumns

	user, err := scanUser(r.pool.QueryRow(ctx, query, role, role == model.UserRoleAdmin, time.Now().UTC(), email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to set user role: %w", err)
	}
	return user, nil
}
