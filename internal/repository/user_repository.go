package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/simple-ecommerce/storefront-service/internal/domain"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = "id, username, is_staff, created_at"

func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	var existing int64
	err := r.db.QueryRowContext(ctx,
		r.db.Rebind(`SELECT id FROM users WHERE username = ?`), user.Username).Scan(&existing)
	if err == nil {
		return fmt.Errorf("%w: username %q is taken", domain.ErrConflict, user.Username)
	}
	if err != sql.ErrNoRows {
		return fmt.Errorf("user lookup error: %w", err)
	}

	query := r.db.Rebind(`
		INSERT INTO users (username, is_staff, created_at)
		VALUES (?, ?, ?)
		RETURNING id
	`)
	now := time.Now().UTC()
	if err := r.db.QueryRowContext(ctx, query, user.Username, user.IsStaff, now).Scan(&user.ID); err != nil {
		return fmt.Errorf("user creation error: %w", err)
	}
	user.CreatedAt = now
	return nil
}

func (r *UserRepository) Get(ctx context.Context, id int64) (*domain.User, error) {
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE id = ?`)
	var user domain.User
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&user.ID, &user.Username, &user.IsStaff, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user retrieval error: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := r.db.Rebind(`SELECT ` + userColumns + ` FROM users WHERE username = ?`)
	var user domain.User
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&user.ID, &user.Username, &user.IsStaff, &user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("user retrieval error: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("user listing error: %w", err)
	}
	defer func() { _ = rows.Close() }()

	users := make([]*domain.User, 0)
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.Username, &user.IsStaff, &user.CreatedAt); err != nil {
			return nil, fmt.Errorf("user scan error: %w", err)
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}
