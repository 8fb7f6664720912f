package store

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/taskreel/taskreel-api/internal/lifecycle"
	"github.com/taskreel/taskreel-api/internal/models"
)

// GormStore implements Store on top of gorm/Postgres.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

func (s *GormStore) Users() UserRepository                 { return &gormUsers{db: s.db} }
func (s *GormStore) Tasks() TaskRepository                 { return &gormTasks{db: s.db} }
func (s *GormStore) Applications() ApplicationRepository   { return &gormApplications{db: s.db} }
func (s *GormStore) Notifications() NotificationRepository { return &gormNotifications{db: s.db} }

func (s *GormStore) Transaction(fn func(Store) error) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		return fn(&GormStore{db: tx})
	})
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return lifecycle.ErrNotFound
	}
	return err
}

// ---- users ----

type gormUsers struct {
	db *gorm.DB
}

func (r *gormUsers) Create(u *models.User) error {
	return r.db.Create(u).Error
}

func (r *gormUsers) GetByID(id uuid.UUID) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *gormUsers) GetByEmail(email string) (*models.User, error) {
	var u models.User
	if err := r.db.First(&u, "email = ?", strings.ToLower(email)).Error; err != nil {
		return nil, translate(err)
	}
	return &u, nil
}

func (r *gormUsers) ListByRole(role models.Role) ([]models.User, error) {
	var users []models.User
	if err := r.db.Where("role = ?", role).Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *gormUsers) ListAll() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("created_at DESC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *gormUsers) Update(u *models.User) error {
	return r.db.Save(u).Error
}

func (r *gormUsers) CountByRole() (map[models.Role]int64, error) {
	var rows []struct {
		Role  models.Role
		Count int64
	}
	if err := r.db.Model(&models.User{}).
		Select("role, COUNT(*) as count").
		Group("role").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[models.Role]int64, len(rows))
	for _, row := range rows {
		out[row.Role] = row.Count
	}
	return out, nil
}

// ---- tasks ----

type gormTasks struct {
	db *gorm.DB
}

func (r *gormTasks) Create(t *models.Task) error {
	return r.db.Create(t).Error
}

func (r *gormTasks) GetByID(id uuid.UUID) (*models.Task, error) {
	var t models.Task
	if err := r.db.First(&t, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

func (r *gormTasks) GetForUpdate(id uuid.UUID) (*models.Task, error) {
	var t models.Task
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&t, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &t, nil
}

// List pushes the documented filter semantics into SQL: exact match for
// category/status/owner, ILIKE substring for location, newest first.
func (r *gormTasks) List(filter TaskFilter) ([]models.Task, error) {
	q := r.db.Model(&models.Task{})
	if filter.Category != "" {
		q = q.Where("category = ?", filter.Category)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	if filter.BusinessOwnerID != uuid.Nil {
		q = q.Where("business_owner_id = ?", filter.BusinessOwnerID)
	}
	if filter.Location != "" {
		q = q.Where("location ILIKE ?", "%"+filter.Location+"%")
	}

	var tasks []models.Task
	if err := q.Order("created_at DESC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *gormTasks) Update(t *models.Task) error {
	return r.db.Save(t).Error
}

func (r *gormTasks) CountByStatus() (map[models.TaskStatus]int64, error) {
	var rows []struct {
		Status models.TaskStatus
		Count  int64
	}
	if err := r.db.Model(&models.Task{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[models.TaskStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

// ---- applications ----

type gormApplications struct {
	db *gorm.DB
}

func (r *gormApplications) Create(a *models.Application) error {
	return r.db.Create(a).Error
}

func (r *gormApplications) GetByID(id uuid.UUID) (*models.Application, error) {
	var a models.Application
	if err := r.db.First(&a, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *gormApplications) GetForUpdate(id uuid.UUID) (*models.Application, error) {
	var a models.Application
	if err := r.db.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&a, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &a, nil
}

func (r *gormApplications) ListByTask(taskID uuid.UUID) ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.Where("task_id = ?", taskID).
		Order("created_at DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *gormApplications) ListByFreelancer(freelancerID uuid.UUID) ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.Where("freelancer_id = ?", freelancerID).
		Order("created_at DESC").
		Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *gormApplications) ListAll() ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.Order("created_at DESC").Find(&apps).Error; err != nil {
		return nil, err
	}
	return apps, nil
}

func (r *gormApplications) ExistsForTaskAndFreelancer(taskID, freelancerID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Application{}).
		Where("task_id = ? AND freelancer_id = ?", taskID, freelancerID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gormApplications) AcceptedExistsForTask(taskID, excludeID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Application{}).
		Where("task_id = ? AND status = ? AND id != ?",
			taskID, models.ApplicationStatusAccepted, excludeID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *gormApplications) Update(a *models.Application) error {
	return r.db.Save(a).Error
}

func (r *gormApplications) CountByStatus() (map[models.ApplicationStatus]int64, error) {
	var rows []struct {
		Status models.ApplicationStatus
		Count  int64
	}
	if err := r.db.Model(&models.Application{}).
		Select("status, COUNT(*) as count").
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[models.ApplicationStatus]int64, len(rows))
	for _, row := range rows {
		out[row.Status] = row.Count
	}
	return out, nil
}

// ---- notifications ----

type gormNotifications struct {
	db *gorm.DB
}

func (r *gormNotifications) Create(n *models.Notification) error {
	return r.db.Create(n).Error
}

func (r *gormNotifications) ListByUser(userID uuid.UUID) ([]models.Notification, error) {
	var list []models.Notification
	if err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *gormNotifications) CountUnread(userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = false", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *gormNotifications) MarkRead(id, userID uuid.UUID) error {
	res := r.db.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return lifecycle.ErrNotFound
	}
	return nil
}

func (r *gormNotifications) MarkAllRead(userID uuid.UUID) error {
	return r.db.Model(&models.Notification{}).
		Where("user_id = ? AND read = false", userID).
		Update("read", true).Error
}
