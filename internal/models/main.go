// Package models defines the core data structures for users and tasks.
package models

import "time"

// Role values assignable to a user.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// User represents an application user with credentials.
type User struct {
	// ID is the unique identifier for the user.
	ID int64 `json:"id"`
	// Username is the login name chosen by the user.
	Username string `json:"username"`
	// PasswordHash is the bcrypt hash of the user's password. Never serialized.
	PasswordHash string `json:"-"`
	// Role is either "user" or "admin".
	Role string `json:"role"`
}

// Task statuses. Every task is in exactly one of these states.
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusClosed     = "closed"
)

// ValidStatus reports whether s is a recognized task status.
func ValidStatus(s string) bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusClosed:
		return true
	}
	return false
}

// Task represents a single tracked task owned by a user.
type Task struct {
	// ID is the unique identifier for the task.
	ID int64 `json:"id"`
	// UserID is the id of the owning user.
	UserID int64 `json:"user_id"`
	// Title is a short summary, 1..200 characters.
	Title string `json:"title"`
	// Description holds free-form details, up to 2000 characters.
	Description string `json:"description"`
	// Status is one of StatusOpen, StatusInProgress, StatusClosed.
	Status string `json:"status"`
	// Assignee is the name of the person the task is assigned to.
	Assignee string `json:"assignee"`
	// Priority ranges 1 (highest) to 5 (lowest), default 3.
	Priority int `json:"priority"`
	// CreatedAt is set once when the task is created.
	CreatedAt time.Time `json:"created_at"`
	// UpdatedAt is refreshed on every mutation.
	UpdatedAt time.Time `json:"updated_at"`
}

// TaskFilter holds optional list predicates. Zero values mean "no filter".
type TaskFilter struct {
	Status   string
	Assignee string
	Priority *int
}

// TaskPatch describes a partial update. Nil fields are left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *string
	Assignee    *string
	Priority    *int
}

// IsEmpty reports whether the patch changes no fields.
func (p TaskPatch) IsEmpty() bool {
	return p.Title == nil && p.Description == nil && p.Status == nil &&
		p.Assignee == nil && p.Priority == nil
}

// TaskStats holds per-status task counts.
type TaskStats struct {
	Open       int `json:"open"`
	InProgress int `json:"in_progress"`
	Closed     int `json:"closed"`
}
