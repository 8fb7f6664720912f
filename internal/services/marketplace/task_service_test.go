package marketplace

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/taskreel/taskreel-api/internal/lifecycle"
	"github.com/taskreel/taskreel-api/internal/models"
	"github.com/taskreel/taskreel-api/internal/store"
)

func seedUser(m *memStore, role models.Role) *models.User {
	u := &models.User{
		ID:        uuid.New(),
		FullName:  "Test " + string(role),
		Email:     uuid.New().String() + "@example.com",
		Role:      role,
		IsActive:  true,
		CreatedAt: time.Now(),
	}
	m.users[u.ID] = u
	return u
}

func seedTask(m *memStore, owner uuid.UUID, status models.TaskStatus, createdAt time.Time) *models.Task {
	t := &models.Task{
		ID:              uuid.New(),
		Title:           "Edit my reel",
		Description:     "Cut a 30s reel from raw footage",
		Category:        "Video Editing",
		Budget:          5000,
		Location:        "Jakarta",
		BusinessOwnerID: owner,
		Status:          status,
		CreatedAt:       createdAt,
		UpdatedAt:       createdAt,
	}
	m.tasks[t.ID] = t
	return t
}

func TestCreateTask(t *testing.T) {
	m := newMemStore()
	owner := seedUser(m, models.RoleBusinessOwner)
	svc := NewTaskService(m, NewNotifyService(m, nil))

	task, err := svc.Create(owner.ID, CreateTaskInput{
		Title:       "Edit my reel",
		Description: "Cut a 30s reel from raw footage",
		Category:    "Video Editing",
		Budget:      5000,
		Location:    "Jakarta",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if task.Status != models.TaskStatusOpen {
		t.Errorf("fresh task status = %s, want open", task.Status)
	}
	if !task.CreatedAt.Equal(task.UpdatedAt) {
		t.Errorf("fresh task created_at != updated_at")
	}
	if task.BusinessOwner == nil || task.BusinessOwner.ID != owner.ID {
		t.Errorf("task not enriched with its owner")
	}
}

func TestCreateTaskValidation(t *testing.T) {
	m := newMemStore()
	owner := seedUser(m, models.RoleBusinessOwner)
	svc := NewTaskService(m, nil)

	cases := []struct {
		name string
		in   CreateTaskInput
	}{
		{"empty title", CreateTaskInput{Description: "d", Category: "Video Editing", Budget: 100}},
		{"empty description", CreateTaskInput{Title: "t", Category: "Video Editing", Budget: 100}},
		{"unknown category", CreateTaskInput{Title: "t", Description: "d", Category: "Plumbing", Budget: 100}},
		{"zero budget", CreateTaskInput{Title: "t", Description: "d", Category: "Video Editing", Budget: 0}},
		{"negative budget", CreateTaskInput{Title: "t", Description: "d", Category: "Video Editing", Budget: -5}},
	}

	for _, c := range cases {
		if _, err := svc.Create(owner.ID, c.in); !errors.Is(err, lifecycle.ErrValidation) {
			t.Errorf("%s: err = %v, want ErrValidation", c.name, err)
		}
	}
}

func TestListTasksFilterAndOrder(t *testing.T) {
	m := newMemStore()
	owner := seedUser(m, models.RoleBusinessOwner)
	svc := NewTaskService(m, nil)

	base := time.Now()
	// insert out of creation order on purpose
	mid := seedTask(m, owner.ID, models.TaskStatusOpen, base.Add(-1*time.Hour))
	newest := seedTask(m, owner.ID, models.TaskStatusOpen, base)
	oldest := seedTask(m, owner.ID, models.TaskStatusOpen, base.Add(-2*time.Hour))

	closed := seedTask(m, owner.ID, models.TaskStatusCompleted, base.Add(-30*time.Minute))
	otherCat := seedTask(m, owner.ID, models.TaskStatusOpen, base.Add(-45*time.Minute))
	otherCat.Category = "Photography"

	got, err := svc.List(store.TaskFilter{Status: models.TaskStatusOpen, Category: "Video Editing"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}

	want := []uuid.UUID{newest.ID, mid.ID, oldest.ID}
	if len(got) != len(want) {
		t.Fatalf("List returned %d tasks, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("List[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
	for _, task := range got {
		if task.ID == closed.ID || task.ID == otherCat.ID {
			t.Errorf("filtered-out task %s leaked into results", task.ID)
		}
	}
}

func TestListTasksLocationSubstring(t *testing.T) {
	m := newMemStore()
	owner := seedUser(m, models.RoleBusinessOwner)
	svc := NewTaskService(m, nil)

	hit := seedTask(m, owner.ID, models.TaskStatusOpen, time.Now())
	hit.Location = "South Jakarta"
	miss := seedTask(m, owner.ID, models.TaskStatusOpen, time.Now().Add(-time.Minute))
	miss.Location = "Bandung"

	got, err := svc.List(store.TaskFilter{Location: "jakarta"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].ID != hit.ID {
		t.Fatalf("location filter returned %d tasks, want just %s", len(got), hit.ID)
	}
}

func TestListTasksMissingOwnerEnrichment(t *testing.T) {
	m := newMemStore()
	svc := NewTaskService(m, nil)

	// owner never existed; enrichment must degrade, not fail
	seedTask(m, uuid.New(), models.TaskStatusOpen, time.Now())

	got, err := svc.List(store.TaskFilter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("List returned %d tasks, want 1", len(got))
	}
	if got[0].BusinessOwner != nil {
		t.Errorf("missing owner should leave business_owner nil")
	}
}

func TestGetTaskNotFound(t *testing.T) {
	m := newMemStore()
	svc := NewTaskService(m, nil)

	if _, err := svc.Get(uuid.New()); !errors.Is(err, lifecycle.ErrNotFound) {
		t.Errorf("Get unknown id: err = %v, want ErrNotFound", err)
	}
}

func TestUpdateTaskStatus(t *testing.T) {
	m := newMemStore()
	owner := seedUser(m, models.RoleBusinessOwner)
	stranger := seedUser(m, models.RoleBusinessOwner)
	svc := NewTaskService(m, nil)

	task := seedTask(m, owner.ID, models.TaskStatusOpen, time.Now().Add(-time.Hour))

	// non-owner may not touch it
	if _, err := svc.UpdateStatus(task.ID, models.TaskStatusCancelled, stranger.ID, models.RoleBusinessOwner); !errors.Is(err, lifecycle.ErrUnauthorized) {
		t.Errorf("non-owner update: err = %v, want ErrUnauthorized", err)
	}

	// open -> completed skips in_progress
	if _, err := svc.UpdateStatus(task.ID, models.TaskStatusCompleted, owner.ID, models.RoleBusinessOwner); !errors.Is(err, lifecycle.ErrConflict) {
		t.Errorf("open->completed: err = %v, want ErrConflict", err)
	}

	// same-state no-op still bumps updated_at
	before := m.tasks[task.ID].UpdatedAt
	got, err := svc.UpdateStatus(task.ID, models.TaskStatusOpen, owner.ID, models.RoleBusinessOwner)
	if err != nil {
		t.Fatalf("same-state update: %v", err)
	}
	if got.Status != models.TaskStatusOpen {
		t.Errorf("same-state update changed status to %s", got.Status)
	}
	if !got.UpdatedAt.After(before) {
		t.Errorf("same-state update did not bump updated_at")
	}

	// admin may cancel someone else's task
	if _, err := svc.UpdateStatus(task.ID, models.TaskStatusCancelled, stranger.ID, models.RoleAdmin); err != nil {
		t.Fatalf("admin cancel: %v", err)
	}

	// cancelled is terminal
	if _, err := svc.UpdateStatus(task.ID, models.TaskStatusOpen, owner.ID, models.RoleBusinessOwner); !errors.Is(err, lifecycle.ErrConflict) {
		t.Errorf("reopen cancelled: err = %v, want ErrConflict", err)
	}
}
