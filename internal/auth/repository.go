package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// Repository is the Postgres-backed UserStore.
type Repository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{db: db}
}

const userColumns = `uuid, email, first_name, last_name, username, salt, password, created_at, updated_at`

func scanUser(row *sql.Row) (User, error) {
	var user User
	err := row.Scan(
		&user.UUID,
		&user.Email,
		&user.FirstName,
		&user.LastName,
		&user.Username,
		&user.Salt,
		&user.PasswordHash,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	return user, err
}

func (r *Repository) GetByUsername(ctx context.Context, username string) (User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE username = $1
	`, username))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, err
		}
		return User{}, fmt.Errorf("query user by username: %w", err)
	}

	return user, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (User, error) {
	user, err := scanUser(r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE email = $1
	`, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, err
		}
		return User{}, fmt.Errorf("query user by email: %w", err)
	}

	return user, nil
}

func (r *Repository) Insert(ctx context.Context, user User) (User, error) {
	inserted, err := scanUser(r.db.QueryRowContext(ctx, `
		INSERT INTO users (uuid, email, first_name, last_name, username, salt, password)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+userColumns+`
	`, user.UUID, user.Email, user.FirstName, user.LastName, user.Username, user.Salt, user.PasswordHash))
	if err != nil {
		return User{}, fmt.Errorf("insert user: %w", err)
	}

	return inserted, nil
}

func (r *Repository) Delete(ctx context.Context, userUUID string) (string, error) {
	var deleted string
	err := r.db.QueryRowContext(ctx, `
		DELETE FROM users
		WHERE uuid = $1
		RETURNING uuid
	`, userUUID).Scan(&deleted)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", err
		}
		return "", fmt.Errorf("delete user: %w", err)
	}

	return deleted, nil
}
