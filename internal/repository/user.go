// Package repository provides persistence implementations backed by the
// embedded SQLite database.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/atinyakov/TaskTracker/internal/models"
)

// SQLiteUserRepository implements credential storage against SQLite.
type SQLiteUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewSQLiteUserRepository creates a new SQLiteUserRepository with the given
// database connection.
func NewSQLiteUserRepository(db *sql.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{DB: db}
}

// CreateUser inserts a new user record. Username uniqueness is enforced by
// the storage layer; a unique-constraint violation is surfaced as
// models.ErrUsernameTaken rather than a generic failure.
func (r *SQLiteUserRepository) CreateUser(ctx context.Context, username, passwordHash, role string) (*models.User, error) {
	res, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO users (username, password_hash, role) VALUES (?, ?, ?)`,
		username, passwordHash, role,
	)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			return nil, models.ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("create user id: %w", err)
	}

	return &models.User{ID: id, Username: username, PasswordHash: passwordHash, Role: role}, nil
}

// FindByUsername returns the user with the given username, or
// models.ErrUserNotFound if no such user exists.
func (r *SQLiteUserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT id, username, password_hash, role FROM users WHERE username = ?`,
		username,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by username: %w", err)
	}
	return &user, nil
}

// FindByID returns the user with the given id, or models.ErrUserNotFound
// if no such user exists.
func (r *SQLiteUserRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT id, username, password_hash, role FROM users WHERE id = ?`,
		id,
	).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, models.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &user, nil
}
