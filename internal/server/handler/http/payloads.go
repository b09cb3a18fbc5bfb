package http

import (
	"fmt"

	"github.com/atinyakov/TaskTracker/internal/models"
)

// Validation bounds for request payloads.
const (
	maxUsernameLen    = 100
	minPasswordLen    = 8
	maxPasswordLen    = 72 // bcrypt rejects inputs over 72 bytes
	maxTitleLen       = 200
	maxDescriptionLen = 2000
	maxAssigneeLen    = 100
	minPriority       = 1
	maxPriority       = 5
	maxBulkIDs        = 100
)

// credentialsRequest is the JSON payload for registration and login.
type credentialsRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (r credentialsRequest) validate() fieldErrors {
	fe := fieldErrors{}
	if r.Username == "" {
		fe.add("username", "username is required")
	} else if len(r.Username) > maxUsernameLen {
		fe.add("username", fmt.Sprintf("username must be at most %d characters", maxUsernameLen))
	}
	if len(r.Password) < minPasswordLen {
		fe.add("password", fmt.Sprintf("password must be at least %d characters", minPasswordLen))
	} else if len(r.Password) > maxPasswordLen {
		fe.add("password", fmt.Sprintf("password must be at most %d characters", maxPasswordLen))
	}
	return fe
}

// createTaskRequest is the JSON payload for task creation. Optional fields
// receive their documented defaults during validation.
type createTaskRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Assignee    string  `json:"assignee"`
	Priority    *int    `json:"priority"`
}

func (r createTaskRequest) validate() fieldErrors {
	fe := fieldErrors{}
	if r.Title == "" {
		fe.add("title", "title is required")
	} else if len(r.Title) > maxTitleLen {
		fe.add("title", fmt.Sprintf("title must be at most %d characters", maxTitleLen))
	}
	if r.Description != nil && len(*r.Description) > maxDescriptionLen {
		fe.add("description", fmt.Sprintf("description must be at most %d characters", maxDescriptionLen))
	}
	if r.Status != nil && !models.ValidStatus(*r.Status) {
		fe.add("status", "status must be one of: open, in_progress, closed")
	}
	if r.Assignee == "" {
		fe.add("assignee", "assignee is required")
	} else if len(r.Assignee) > maxAssigneeLen {
		fe.add("assignee", fmt.Sprintf("assignee must be at most %d characters", maxAssigneeLen))
	}
	if r.Priority != nil && (*r.Priority < minPriority || *r.Priority > maxPriority) {
		fe.add("priority", fmt.Sprintf("priority must be between %d and %d", minPriority, maxPriority))
	}
	return fe
}

// toTask builds a models.Task for the owning user, applying defaults.
func (r createTaskRequest) toTask(userID int64) models.Task {
	task := models.Task{
		UserID:   userID,
		Title:    r.Title,
		Status:   models.StatusOpen,
		Assignee: r.Assignee,
		Priority: 3,
	}
	if r.Description != nil {
		task.Description = *r.Description
	}
	if r.Status != nil {
		task.Status = *r.Status
	}
	if r.Priority != nil {
		task.Priority = *r.Priority
	}
	return task
}

// updateTaskRequest is the JSON payload for partial updates. Nil fields
// were absent from the body and leave the stored value unchanged.
type updateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
	Assignee    *string `json:"assignee"`
	Priority    *int    `json:"priority"`
}

func (r updateTaskRequest) validate() fieldErrors {
	fe := fieldErrors{}
	if r.Title != nil {
		if *r.Title == "" {
			fe.add("title", "title must not be empty")
		} else if len(*r.Title) > maxTitleLen {
			fe.add("title", fmt.Sprintf("title must be at most %d characters", maxTitleLen))
		}
	}
	if r.Description != nil && len(*r.Description) > maxDescriptionLen {
		fe.add("description", fmt.Sprintf("description must be at most %d characters", maxDescriptionLen))
	}
	if r.Status != nil && !models.ValidStatus(*r.Status) {
		fe.add("status", "status must be one of: open, in_progress, closed")
	}
	if r.Assignee != nil {
		if *r.Assignee == "" {
			fe.add("assignee", "assignee must not be empty")
		} else if len(*r.Assignee) > maxAssigneeLen {
			fe.add("assignee", fmt.Sprintf("assignee must be at most %d characters", maxAssigneeLen))
		}
	}
	if r.Priority != nil && (*r.Priority < minPriority || *r.Priority > maxPriority) {
		fe.add("priority", fmt.Sprintf("priority must be between %d and %d", minPriority, maxPriority))
	}
	return fe
}

func (r updateTaskRequest) toPatch() models.TaskPatch {
	return models.TaskPatch{
		Title:       r.Title,
		Description: r.Description,
		Status:      r.Status,
		Assignee:    r.Assignee,
		Priority:    r.Priority,
	}
}

func validateIDs(fe fieldErrors, ids []int64) {
	if len(ids) == 0 {
		fe.add("ids", "ids must contain at least one id")
		return
	}
	if len(ids) > maxBulkIDs {
		fe.add("ids", fmt.Sprintf("ids must contain at most %d ids", maxBulkIDs))
		return
	}
	for _, id := range ids {
		if id <= 0 {
			fe.add("ids", "ids must be positive integers")
			return
		}
	}
}

// bulkUpdateRequest applies one partial update to a bounded list of tasks.
type bulkUpdateRequest struct {
	IDs     []int64           `json:"ids"`
	Updates updateTaskRequest `json:"updates"`
}

func (r bulkUpdateRequest) validate() fieldErrors {
	fe := r.Updates.validate()
	validateIDs(fe, r.IDs)
	return fe
}

// bulkDeleteRequest removes a bounded list of tasks.
type bulkDeleteRequest struct {
	IDs []int64 `json:"ids"`
}

func (r bulkDeleteRequest) validate() fieldErrors {
	fe := fieldErrors{}
	validateIDs(fe, r.IDs)
	return fe
}
