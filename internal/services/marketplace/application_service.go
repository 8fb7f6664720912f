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

type ApplicationService struct {
	Store    store.Store
	Notifier *NotifyService
}

func NewApplicationService(st store.Store, notifier *NotifyService) *ApplicationService {
	return &ApplicationService{Store: st, Notifier: notifier}
}

type ApplyInput struct {
	TaskID        uuid.UUID
	FreelancerID  uuid.UUID
	Proposal      string
	ProposedPrice int64
}

// Apply submits a freelancer's bid on an open task. One application per
// (task, freelancer) pair: a duplicate is a Conflict, mirrored by a unique
// index so a race between two submissions cannot slip through.
func (s *ApplicationService) Apply(in ApplyInput) (*models.Application, error) {
	if s.Store == nil {
		return nil, lifecycle.ErrNotConfigured
	}

	in.Proposal = strings.TrimSpace(in.Proposal)
	if len(in.Proposal) < models.MinProposalLen {
		return nil, fmt.Errorf("%w: proposal must be at least %d characters",
			lifecycle.ErrValidation, models.MinProposalLen)
	}
	if in.ProposedPrice <= 0 {
		return nil, fmt.Errorf("%w: proposed price must be positive", lifecycle.ErrValidation)
	}

	task, err := s.Store.Tasks().GetByID(in.TaskID)
	if err != nil {
		return nil, err
	}
	if task.Status != models.TaskStatusOpen {
		return nil, fmt.Errorf("%w: task is not open for applications", lifecycle.ErrConflict)
	}

	exists, err := s.Store.Applications().ExistsForTaskAndFreelancer(in.TaskID, in.FreelancerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, fmt.Errorf("%w: already applied to this task", lifecycle.ErrConflict)
	}

	now := time.Now()
	app := &models.Application{
		ID:            uuid.New(),
		TaskID:        in.TaskID,
		FreelancerID:  in.FreelancerID,
		Proposal:      in.Proposal,
		ProposedPrice: in.ProposedPrice,
		Status:        models.ApplicationStatusPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := s.Store.Applications().Create(app); err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		s.Notifier.ApplicationReceived(task, app)
	}

	s.enrichFreelancer(app)
	return app, nil
}

// ListByTask returns a task's applications, newest first, enriched with the
// applying freelancer. Only the task's owner or an admin may look.
func (s *ApplicationService) ListByTask(taskID, actorID uuid.UUID, actorRole models.Role) ([]models.Application, error) {
	if s.Store == nil {
		return nil, lifecycle.ErrNotConfigured
	}
	task, err := s.Store.Tasks().GetByID(taskID)
	if err != nil {
		return nil, err
	}
	if task.BusinessOwnerID != actorID && actorRole != models.RoleAdmin {
		return nil, fmt.Errorf("%w: not the task owner", lifecycle.ErrUnauthorized)
	}

	apps, err := s.Store.Applications().ListByTask(taskID)
	if err != nil {
		return nil, err
	}
	for i := range apps {
		s.enrichFreelancer(&apps[i])
	}
	return apps, nil
}

// ListByFreelancer returns a freelancer's applications, newest first, each
// enriched with the current stored state of its task.
func (s *ApplicationService) ListByFreelancer(freelancerID uuid.UUID) ([]models.Application, error) {
	if s.Store == nil {
		return nil, lifecycle.ErrNotConfigured
	}
	apps, err := s.Store.Applications().ListByFreelancer(freelancerID)
	if err != nil {
		return nil, err
	}
	for i := range apps {
		s.enrichTask(&apps[i])
	}
	return apps, nil
}

// Accept marks an application accepted and advances its task to in_progress
// in the same transaction, with both rows locked. Accepting is idempotent
// with respect to the task (an in_progress task stays in_progress) but a
// second application on the same task is a Conflict, as is deciding an
// application that has already been decided.
func (s *ApplicationService) Accept(id, actorID uuid.UUID, actorRole models.Role) (*models.Application, error) {
	if s.Store == nil {
		return nil, lifecycle.ErrNotConfigured
	}

	var (
		app  *models.Application
		task *models.Task
	)
	err := s.Store.Transaction(func(tx store.Store) error {
		a, err := tx.Applications().GetForUpdate(id)
		if err != nil {
			return err
		}
		t, err := tx.Tasks().GetForUpdate(a.TaskID)
		if err != nil {
			return err
		}
		if t.BusinessOwnerID != actorID && actorRole != models.RoleAdmin {
			return fmt.Errorf("%w: not the task owner", lifecycle.ErrUnauthorized)
		}
		if !lifecycle.CanApplicationTransition(a.Status, models.ApplicationStatusAccepted) {
			return fmt.Errorf("%w: application already %s", lifecycle.ErrConflict, a.Status)
		}
		if !lifecycle.Acceptable(t.Status) {
			return fmt.Errorf("%w: task is %s", lifecycle.ErrConflict, t.Status)
		}
		taken, err := tx.Applications().AcceptedExistsForTask(t.ID, a.ID)
		if err != nil {
			return err
		}
		if taken {
			return fmt.Errorf("%w: task already has an accepted application", lifecycle.ErrConflict)
		}

		now := time.Now()
		a.Status = models.ApplicationStatusAccepted
		a.UpdatedAt = now
		if err := tx.Applications().Update(a); err != nil {
			return err
		}

		t.Status = models.TaskStatusInProgress
		t.UpdatedAt = now
		if err := tx.Tasks().Update(t); err != nil {
			return err
		}

		app, task = a, t
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		s.Notifier.ApplicationDecided(task, app)
	}

	s.enrichFreelancer(app)
	return app, nil
}

// Reject marks an application rejected. The task is never touched.
func (s *ApplicationService) Reject(id, actorID uuid.UUID, actorRole models.Role) (*models.Application, error) {
	if s.Store == nil {
		return nil, lifecycle.ErrNotConfigured
	}

	var (
		app  *models.Application
		task *models.Task
	)
	err := s.Store.Transaction(func(tx store.Store) error {
		a, err := tx.Applications().GetForUpdate(id)
		if err != nil {
			return err
		}
		t, err := tx.Tasks().GetByID(a.TaskID)
		if err != nil {
			return err
		}
		if t.BusinessOwnerID != actorID && actorRole != models.RoleAdmin {
			return fmt.Errorf("%w: not the task owner", lifecycle.ErrUnauthorized)
		}
		if !lifecycle.CanApplicationTransition(a.Status, models.ApplicationStatusRejected) {
			return fmt.Errorf("%w: application already %s", lifecycle.ErrConflict, a.Status)
		}

		a.Status = models.ApplicationStatusRejected
		a.UpdatedAt = time.Now()
		if err := tx.Applications().Update(a); err != nil {
			return err
		}

		app, task = a, t
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.Notifier != nil {
		s.Notifier.ApplicationDecided(task, app)
	}

	s.enrichFreelancer(app)
	return app, nil
}

func (s *ApplicationService) enrichFreelancer(a *models.Application) {
	freelancer, err := s.Store.Users().GetByID(a.FreelancerID)
	if err != nil {
		a.Freelancer = nil
		return
	}
	a.Freelancer = freelancer
}

func (s *ApplicationService) enrichTask(a *models.Application) {
	task, err := s.Store.Tasks().GetByID(a.TaskID)
	if err != nil {
		a.Task = nil
		return
	}
	a.Task = task
}
