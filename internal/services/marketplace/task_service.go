package marketplace

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taskreel/taskreel-api/internal/lifecycle"
	"github.com/taskreel/taskreel-api/internal/models"
	"github.com/taskreel/taskreel-api/internal/store"
)

type TaskService struct {
	Store    store.Store
	Notifier *NotifyService
}

func NewTaskService(st store.Store, notifier *NotifyService) *TaskService {
	return &TaskService{Store: st, Notifier: notifier}
}

type CreateTaskInput struct {
	Title       string
	Description string
	Category    string
	Budget      int64
	Location    string
}

// Create persists a new open task and fans out a notification to every
// freelancer. Fan-out failures are logged inside the notifier and never
// reach the caller.
func (s *TaskService) Create(ownerID uuid.UUID, in CreateTaskInput) (*models.Task, error) {
	if s.Store == nil {
		return nil, lifecycle.ErrNotConfigured
	}

	in.Title = strings.TrimSpace(in.Title)
	in.Description = strings.TrimSpace(in.Description)
	in.Location = strings.TrimSpace(in.Location)

	if in.Title == "" {
		return nil, fmt.Errorf("%w: title is required", lifecycle.ErrValidation)
	}
	if in.Description == "" {
		return nil, fmt.Errorf("%w: description is required", lifecycle.ErrValidation)
	}
	if !models.ValidTaskCategory(in.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", lifecycle.ErrValidation, in.Category)
	}
	if in.Budget <= 0 {
		return nil, fmt.Errorf("%w: budget must be positive", lifecycle.ErrValidation)
	}

	now := time.Now()
	task := &models.Task{
		ID:              uuid.New(),
		Title:           in.Title,
		Description:     in.Description,
		Category:        in.Category,
		Budget:          in.Budget,
		Location:        in.Location,
		BusinessOwnerID: ownerID,
		Status:          models.TaskStatusOpen,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.Store.Tasks().Create(task); err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		s.Notifier.TaskCreated(task)
	}

	s.enrich(task)
	return task, nil
}

// List returns tasks matching the filter, newest first, each enriched with
// its owner. A missing owner leaves the relation nil.
func (s *TaskService) List(filter store.TaskFilter) ([]models.Task, error) {
	if s.Store == nil {
		return nil, lifecycle.ErrNotConfigured
	}
	tasks, err := s.Store.Tasks().List(filter)
	if err != nil {
		return nil, err
	}
	for i := range tasks {
		s.enrich(&tasks[i])
	}
	return tasks, nil
}

func (s *TaskService) Get(id uuid.UUID) (*models.Task, error) {
	if s.Store == nil {
		return nil, lifecycle.ErrNotConfigured
	}
	task, err := s.Store.Tasks().GetByID(id)
	if err != nil {
		return nil, err
	}
	s.enrich(task)
	return task, nil
}

// UpdateStatus moves a task through its state machine. Only the task's
// owner or an admin may do it, and only transitions the lifecycle table
// permits go through; re-entering the current status is a no-op that still
// bumps updated_at.
func (s *TaskService) UpdateStatus(id uuid.UUID, next models.TaskStatus, actorID uuid.UUID, actorRole models.Role) (*models.Task, error) {
	if s.Store == nil {
		return nil, lifecycle.ErrNotConfigured
	}
	if !lifecycle.ValidTaskStatus(next) {
		return nil, fmt.Errorf("%w: unknown status %q", lifecycle.ErrValidation, next)
	}

	var task *models.Task
	err := s.Store.Transaction(func(tx store.Store) error {
		t, err := tx.Tasks().GetForUpdate(id)
		if err != nil {
			return err
		}
		if t.BusinessOwnerID != actorID && actorRole != models.RoleAdmin {
			return fmt.Errorf("%w: not the task owner", lifecycle.ErrUnauthorized)
		}
		if !lifecycle.CanTaskTransition(t.Status, next) {
			return fmt.Errorf("%w: cannot move task from %s to %s", lifecycle.ErrConflict, t.Status, next)
		}
		t.Status = next
		t.UpdatedAt = time.Now()
		if err := tx.Tasks().Update(t); err != nil {
			return err
		}
		task = t
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.enrich(task)
	return task, nil
}

func (s *TaskService) enrich(t *models.Task) {
	owner, err := s.Store.Users().GetByID(t.BusinessOwnerID)
	if err != nil {
		// enrichment degrades gracefully
		t.BusinessOwner = nil
		return
	}
	t.BusinessOwner = owner
}
