// Package lifecycle holds the task/application status state machines and the
// error kinds the marketplace services surface to their callers.
package lifecycle

import (
	"errors"

	"github.com/taskreel/taskreel-api/internal/models"
)

var (
	ErrNotConfigured = errors.New("store not configured")
	ErrNotFound      = errors.New("not found")
	ErrValidation    = errors.New("validation failed")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrConflict      = errors.New("conflict")
)

// taskTransitions lists the legal next states per current state. A terminal
// state has no entry. Same-state transitions are allowed everywhere as a
// no-op that still bumps updated_at; CanTaskTransition handles that case
// before consulting the table.
var taskTransitions = map[models.TaskStatus][]models.TaskStatus{
	models.TaskStatusOpen:       {models.TaskStatusInProgress, models.TaskStatusCancelled},
	models.TaskStatusInProgress: {models.TaskStatusCompleted, models.TaskStatusCancelled},
}

func ValidTaskStatus(s models.TaskStatus) bool {
	switch s {
	case models.TaskStatusOpen, models.TaskStatusInProgress,
		models.TaskStatusCompleted, models.TaskStatusCancelled:
		return true
	}
	return false
}

func ValidApplicationStatus(s models.ApplicationStatus) bool {
	switch s {
	case models.ApplicationStatusPending, models.ApplicationStatusAccepted,
		models.ApplicationStatusRejected:
		return true
	}
	return false
}

// CanTaskTransition reports whether a task may move from one status to
// another. Re-entering the current status is always permitted.
func CanTaskTransition(from, to models.TaskStatus) bool {
	if !ValidTaskStatus(from) || !ValidTaskStatus(to) {
		return false
	}
	if from == to {
		return true
	}
	for _, next := range taskTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// TaskTerminal reports whether a task status admits no further change.
func TaskTerminal(s models.TaskStatus) bool {
	return s == models.TaskStatusCompleted || s == models.TaskStatusCancelled
}

// ApplicationTerminal reports whether an application has been decided.
// Accepted and rejected are both final; there is no reversal.
func ApplicationTerminal(s models.ApplicationStatus) bool {
	return s == models.ApplicationStatusAccepted || s == models.ApplicationStatusRejected
}

// CanApplicationTransition reports whether an application may move from one
// status to another. Only pending applications can be decided.
func CanApplicationTransition(from, to models.ApplicationStatus) bool {
	if !ValidApplicationStatus(from) || !ValidApplicationStatus(to) {
		return false
	}
	if ApplicationTerminal(from) {
		return false
	}
	return to == models.ApplicationStatusAccepted || to == models.ApplicationStatusRejected
}

// Acceptable reports whether a task can still take a first acceptance.
// Accepting drives the task to in_progress, so only an open task (or one
// already in_progress through the same acceptance, for idempotent retries)
// qualifies; the caller must separately ensure no other application on the
// task has been accepted.
func Acceptable(s models.TaskStatus) bool {
	return s == models.TaskStatusOpen || s == models.TaskStatusInProgress
}
