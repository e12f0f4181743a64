package model

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyTitle  = errors.New("model: task title is required")
	ErrEmptyID     = errors.New("model: task id is required")
	ErrDuplicateID = errors.New("model: duplicate task id")
)

// ValidationError reports a task field rejected on add or update.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

type Task struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Image    string `json:"image"`
}

// HasImage reports whether the task carries an image reference. The value is
// opaque; it is never checked for reachability.
func (t Task) HasImage() bool {
	return strings.TrimSpace(t.Image) != ""
}

func (t Task) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return &ValidationError{Field: "id", Err: ErrEmptyID}
	}
	if strings.TrimSpace(t.Title) == "" {
		return &ValidationError{Field: "title", Err: ErrEmptyTitle}
	}
	return nil
}

// Draft holds the user-editable fields of a task before an id is assigned.
type Draft struct {
	Title    string
	Category string
	Image    string
}

func (d Draft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return &ValidationError{Field: "title", Err: ErrEmptyTitle}
	}
	return nil
}

func (d Draft) WithID(id string) Task {
	return Task{
		ID:       id,
		Title:    d.Title,
		Category: d.Category,
		Image:    d.Image,
	}
}

func DraftFrom(t Task) Draft {
	return Draft{Title: t.Title, Category: t.Category, Image: t.Image}
}
