package marketplace

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/taskreel/taskreel-api/internal/lifecycle"
	"github.com/taskreel/taskreel-api/internal/models"
	"github.com/taskreel/taskreel-api/internal/store"
)

// memStore is an in-memory store.Store for service tests.
type memStore struct {
	users         map[uuid.UUID]*models.User
	tasks         map[uuid.UUID]*models.Task
	applications  map[uuid.UUID]*models.Application
	notifications []*models.Notification

	userErr error
}

func newMemStore() *memStore {
	return &memStore{
		users:        make(map[uuid.UUID]*models.User),
		tasks:        make(map[uuid.UUID]*models.Task),
		applications: make(map[uuid.UUID]*models.Application),
	}
}

func (m *memStore) Users() store.UserRepository                 { return &memUsers{m} }
func (m *memStore) Tasks() store.TaskRepository                 { return &memTasks{m} }
func (m *memStore) Applications() store.ApplicationRepository   { return &memApplications{m} }
func (m *memStore) Notifications() store.NotificationRepository { return &memNotifications{m} }

func (m *memStore) Transaction(fn func(store.Store) error) error {
	return fn(m)
}

type memUsers struct{ m *memStore }

func (r *memUsers) Create(u *models.User) error {
	if r.m.userErr != nil {
		return r.m.userErr
	}
	cp := *u
	r.m.users[u.ID] = &cp
	return nil
}

func (r *memUsers) GetByID(id uuid.UUID) (*models.User, error) {
	if r.m.userErr != nil {
		return nil, r.m.userErr
	}
	u, ok := r.m.users[id]
	if !ok {
		return nil, lifecycle.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memUsers) GetByEmail(email string) (*models.User, error) {
	for _, u := range r.m.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, lifecycle.ErrNotFound
}

func (r *memUsers) ListByRole(role models.Role) ([]models.User, error) {
	if r.m.userErr != nil {
		return nil, r.m.userErr
	}
	var out []models.User
	for _, u := range r.m.users {
		if u.Role == role {
			out = append(out, *u)
		}
	}
	return out, nil
}

func (r *memUsers) ListAll() ([]models.User, error) {
	var out []models.User
	for _, u := range r.m.users {
		out = append(out, *u)
	}
	return out, nil
}

func (r *memUsers) Update(u *models.User) error {
	cp := *u
	r.m.users[u.ID] = &cp
	return nil
}

func (r *memUsers) CountByRole() (map[models.Role]int64, error) {
	out := make(map[models.Role]int64)
	for _, u := range r.m.users {
		out[u.Role]++
	}
	return out, nil
}

type memTasks struct{ m *memStore }

func (r *memTasks) Create(t *models.Task) error {
	cp := *t
	cp.BusinessOwner = nil
	r.m.tasks[t.ID] = &cp
	return nil
}

func (r *memTasks) get(id uuid.UUID) (*models.Task, error) {
	t, ok := r.m.tasks[id]
	if !ok {
		return nil, lifecycle.ErrNotFound
	}
	cp := *t
	return &cp, nil
}

func (r *memTasks) GetByID(id uuid.UUID) (*models.Task, error)     { return r.get(id) }
func (r *memTasks) GetForUpdate(id uuid.UUID) (*models.Task, error) { return r.get(id) }

func (r *memTasks) List(filter store.TaskFilter) ([]models.Task, error) {
	var out []models.Task
	for _, t := range r.m.tasks {
		if filter.Category != "" && t.Category != filter.Category {
			continue
		}
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.BusinessOwnerID != uuid.Nil && t.BusinessOwnerID != filter.BusinessOwnerID {
			continue
		}
		if filter.Location != "" &&
			!strings.Contains(strings.ToLower(t.Location), strings.ToLower(filter.Location)) {
			continue
		}
		out = append(out, *t)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memTasks) Update(t *models.Task) error {
	if _, ok := r.m.tasks[t.ID]; !ok {
		return lifecycle.ErrNotFound
	}
	cp := *t
	cp.BusinessOwner = nil
	r.m.tasks[t.ID] = &cp
	return nil
}

func (r *memTasks) CountByStatus() (map[models.TaskStatus]int64, error) {
	out := make(map[models.TaskStatus]int64)
	for _, t := range r.m.tasks {
		out[t.Status]++
	}
	return out, nil
}

type memApplications struct{ m *memStore }

func (r *memApplications) Create(a *models.Application) error {
	for _, other := range r.m.applications {
		if other.TaskID == a.TaskID && other.FreelancerID == a.FreelancerID {
			return fmt.Errorf("duplicate key value violates unique constraint")
		}
	}
	cp := *a
	cp.Freelancer = nil
	cp.Task = nil
	r.m.applications[a.ID] = &cp
	return nil
}

func (r *memApplications) get(id uuid.UUID) (*models.Application, error) {
	a, ok := r.m.applications[id]
	if !ok {
		return nil, lifecycle.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (r *memApplications) GetByID(id uuid.UUID) (*models.Application, error)     { return r.get(id) }
func (r *memApplications) GetForUpdate(id uuid.UUID) (*models.Application, error) { return r.get(id) }

func (r *memApplications) ListByTask(taskID uuid.UUID) ([]models.Application, error) {
	var out []models.Application
	for _, a := range r.m.applications {
		if a.TaskID == taskID {
			out = append(out, *a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memApplications) ListByFreelancer(freelancerID uuid.UUID) ([]models.Application, error) {
	var out []models.Application
	for _, a := range r.m.applications {
		if a.FreelancerID == freelancerID {
			out = append(out, *a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memApplications) ListAll() ([]models.Application, error) {
	var out []models.Application
	for _, a := range r.m.applications {
		out = append(out, *a)
	}
	return out, nil
}

func (r *memApplications) ExistsForTaskAndFreelancer(taskID, freelancerID uuid.UUID) (bool, error) {
	for _, a := range r.m.applications {
		if a.TaskID == taskID && a.FreelancerID == freelancerID {
			return true, nil
		}
	}
	return false, nil
}

func (r *memApplications) AcceptedExistsForTask(taskID, excludeID uuid.UUID) (bool, error) {
	for _, a := range r.m.applications {
		if a.TaskID == taskID && a.ID != excludeID && a.Status == models.ApplicationStatusAccepted {
			return true, nil
		}
	}
	return false, nil
}

func (r *memApplications) Update(a *models.Application) error {
	if _, ok := r.m.applications[a.ID]; !ok {
		return lifecycle.ErrNotFound
	}
	cp := *a
	cp.Freelancer = nil
	cp.Task = nil
	r.m.applications[a.ID] = &cp
	return nil
}

func (r *memApplications) CountByStatus() (map[models.ApplicationStatus]int64, error) {
	out := make(map[models.ApplicationStatus]int64)
	for _, a := range r.m.applications {
		out[a.Status]++
	}
	return out, nil
}

type memNotifications struct{ m *memStore }

func (r *memNotifications) Create(n *models.Notification) error {
	cp := *n
	r.m.notifications = append(r.m.notifications, &cp)
	return nil
}

func (r *memNotifications) ListByUser(userID uuid.UUID) ([]models.Notification, error) {
	var out []models.Notification
	for _, n := range r.m.notifications {
		if n.UserID == userID {
			out = append(out, *n)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

func (r *memNotifications) CountUnread(userID uuid.UUID) (int64, error) {
	var count int64
	for _, n := range r.m.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

func (r *memNotifications) MarkRead(id, userID uuid.UUID) error {
	for _, n := range r.m.notifications {
		if n.ID == id && n.UserID == userID {
			n.Read = true
			return nil
		}
	}
	return lifecycle.ErrNotFound
}

func (r *memNotifications) MarkAllRead(userID uuid.UUID) error {
	for _, n := range r.m.notifications {
		if n.UserID == userID {
			n.Read = true
		}
	}
	return nil
}
