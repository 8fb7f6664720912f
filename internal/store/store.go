// Package store is the persistence boundary of the marketplace. Services
// talk to the Store interface only; the gorm implementation backs it with
// Postgres and tests back it with an in-memory fake.
package store

import (
	"github.com/google/uuid"

	"github.com/taskreel/taskreel-api/internal/models"
)

// TaskFilter narrows ListTasks. Zero values mean "no constraint". Category,
// status and owner are exact matches; Location is a case-insensitive
// substring match. Results always come back newest first.
type TaskFilter struct {
	Category        string
	Location        string
	Status          models.TaskStatus
	BusinessOwnerID uuid.UUID
}

type UserRepository interface {
	Create(u *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	ListByRole(role models.Role) ([]models.User, error)
	ListAll() ([]models.User, error)
	Update(u *models.User) error
	CountByRole() (map[models.Role]int64, error)
}

type TaskRepository interface {
	Create(t *models.Task) error
	GetByID(id uuid.UUID) (*models.Task, error)
	// GetForUpdate locks the row for the rest of the enclosing transaction.
	GetForUpdate(id uuid.UUID) (*models.Task, error)
	List(filter TaskFilter) ([]models.Task, error)
	Update(t *models.Task) error
	CountByStatus() (map[models.TaskStatus]int64, error)
}

type ApplicationRepository interface {
	Create(a *models.Application) error
	GetByID(id uuid.UUID) (*models.Application, error)
	GetForUpdate(id uuid.UUID) (*models.Application, error)
	ListByTask(taskID uuid.UUID) ([]models.Application, error)
	ListByFreelancer(freelancerID uuid.UUID) ([]models.Application, error)
	ListAll() ([]models.Application, error)
	// ExistsForTaskAndFreelancer backs the one-application-per-pair policy.
	ExistsForTaskAndFreelancer(taskID, freelancerID uuid.UUID) (bool, error)
	// AcceptedExistsForTask reports whether some other application on the
	// task has already been accepted.
	AcceptedExistsForTask(taskID, excludeID uuid.UUID) (bool, error)
	Update(a *models.Application) error
	CountByStatus() (map[models.ApplicationStatus]int64, error)
}

type NotificationRepository interface {
	Create(n *models.Notification) error
	ListByUser(userID uuid.UUID) ([]models.Notification, error)
	CountUnread(userID uuid.UUID) (int64, error)
	MarkRead(id, userID uuid.UUID) error
	MarkAllRead(userID uuid.UUID) error
}

type Store interface {
	Users() UserRepository
	Tasks() TaskRepository
	Applications() ApplicationRepository
	Notifications() NotificationRepository

	// Transaction runs fn against a store view bound to a single database
	// transaction. Row locks taken via GetForUpdate hold until fn returns.
	Transaction(fn func(Store) error) error
}
