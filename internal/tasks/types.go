package tasks

import (
	"strings"
	"time"
)

type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusCompleted:
		return true
	default:
		return false
	}
}

// Task is the single persisted entity. ID and CreatedAt are assigned by the
// store at creation and never change afterwards.
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Status      Status    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

type CreateRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateRequest carries a partial edit. Nil fields are left untouched.
type UpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *Status `json:"status"`
}

func (r CreateRequest) normalize() (CreateRequest, error) {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
	if r.Title == "" {
		return CreateRequest{}, &ValidationError{Message: "Title is required"}
	}
	return r, nil
}

func (r UpdateRequest) normalize() (UpdateRequest, error) {
	if r.Title != nil {
		title := strings.TrimSpace(*r.Title)
		if title == "" {
			return UpdateRequest{}, &ValidationError{Message: "Title is required"}
		}
		r.Title = &title
	}
	if r.Description != nil {
		desc := strings.TrimSpace(*r.Description)
		r.Description = &desc
	}
	if r.Status != nil && !r.Status.Valid() {
		return UpdateRequest{}, &ValidationError{Message: "Invalid status value"}
	}
	return r, nil
}
