package lifecycle

import (
	"testing"

	"github.com/taskreel/taskreel-api/internal/models"
)

func TestCanTaskTransition(t *testing.T) {
	cases := []struct {
		from, to models.TaskStatus
		want     bool
	}{
		{models.TaskStatusOpen, models.TaskStatusInProgress, true},
		{models.TaskStatusOpen, models.TaskStatusCancelled, true},
		{models.TaskStatusOpen, models.TaskStatusCompleted, false},
		{models.TaskStatusInProgress, models.TaskStatusCompleted, true},
		{models.TaskStatusInProgress, models.TaskStatusCancelled, true},
		{models.TaskStatusInProgress, models.TaskStatusOpen, false},
		{models.TaskStatusCompleted, models.TaskStatusOpen, false},
		{models.TaskStatusCompleted, models.TaskStatusCancelled, false},
		{models.TaskStatusCancelled, models.TaskStatusInProgress, false},
		// same-state is a no-op but legal, even for terminal states
		{models.TaskStatusOpen, models.TaskStatusOpen, true},
		{models.TaskStatusInProgress, models.TaskStatusInProgress, true},
		{models.TaskStatusCompleted, models.TaskStatusCompleted, true},
		{models.TaskStatusCancelled, models.TaskStatusCancelled, true},
		// unknown statuses never transition
		{"archived", models.TaskStatusOpen, false},
		{models.TaskStatusOpen, "archived", false},
	}

	for _, c := range cases {
		if got := CanTaskTransition(c.from, c.to); got != c.want {
			t.Errorf("CanTaskTransition(%q, %q) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestTaskTerminal(t *testing.T) {
	if TaskTerminal(models.TaskStatusOpen) || TaskTerminal(models.TaskStatusInProgress) {
		t.Error("open/in_progress must not be terminal")
	}
	if !TaskTerminal(models.TaskStatusCompleted) || !TaskTerminal(models.TaskStatusCancelled) {
		t.Error("completed/cancelled must be terminal")
	}
}

func TestCanApplicationTransition(t *testing.T) {
	cases := []struct {
		from, to models.ApplicationStatus
		want     bool
	}{
		{models.ApplicationStatusPending, models.ApplicationStatusAccepted, true},
		{models.ApplicationStatusPending, models.ApplicationStatusRejected, true},
		{models.ApplicationStatusAccepted, models.ApplicationStatusRejected, false},
		{models.ApplicationStatusAccepted, models.ApplicationStatusPending, false},
		{models.ApplicationStatusRejected, models.ApplicationStatusAccepted, false},
		{models.ApplicationStatusRejected, models.ApplicationStatusRejected, false},
		{models.ApplicationStatusPending, "withdrawn", false},
	}

	for _, c := range cases {
		if got := CanApplicationTransition(c.from, c.to); got != c.want {
			t.Errorf("CanApplicationTransition(%q, %q) = %v, want %v", c.from, c.to, got, c.want)
		}
	}
}

func TestAcceptable(t *testing.T) {
	if !Acceptable(models.TaskStatusOpen) || !Acceptable(models.TaskStatusInProgress) {
		t.Error("open and in_progress tasks must be acceptable")
	}
	if Acceptable(models.TaskStatusCompleted) || Acceptable(models.TaskStatusCancelled) {
		t.Error("terminal tasks must not be acceptable")
	}
}
