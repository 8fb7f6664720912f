package marketplace

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/taskreel/taskreel-api/internal/models"
	"github.com/taskreel/taskreel-api/internal/store"
)

// Pusher delivers a live payload to a connected user. The websocket hub and
// the Redis bridge implement it; nil means persistence only.
type Pusher interface {
	Push(userID uuid.UUID, payload interface{})
}

// NotifyService writes per-recipient notification rows and pushes them to
// connected clients. Every method is best-effort: errors are logged and
// swallowed so a notification failure can never fail the operation that
// triggered it.
type NotifyService struct {
	Store  store.Store
	Pusher Pusher
}

func NewNotifyService(st store.Store, pusher Pusher) *NotifyService {
	return &NotifyService{Store: st, Pusher: pusher}
}

// TaskCreated fans out one notification per freelancer that exists right
// now. Freelancers who sign up later never see it.
func (s *NotifyService) TaskCreated(task *models.Task) {
	freelancers, err := s.Store.Users().ListByRole(models.RoleFreelancer)
	if err != nil {
		log.Printf("notify: listing freelancers for task %s: %v", task.ID, err)
		return
	}

	for i := range freelancers {
		s.deliver(freelancers[i].ID, &models.Notification{
			ID:      uuid.New(),
			UserID:  freelancers[i].ID,
			Type:    models.NotificationNewTask,
			Title:   "New task posted",
			Message: fmt.Sprintf("%s (budget %d). Check it out and apply.", task.Title, task.Budget),
			TaskID:  &task.ID,
		})
	}
}

// ApplicationReceived tells the task owner a freelancer has applied.
func (s *NotifyService) ApplicationReceived(task *models.Task, app *models.Application) {
	s.deliver(task.BusinessOwnerID, &models.Notification{
		ID:      uuid.New(),
		UserID:  task.BusinessOwnerID,
		Type:    models.NotificationApplicationReceived,
		Title:   "New application",
		Message: fmt.Sprintf("A freelancer applied to %q for %d.", task.Title, app.ProposedPrice),
		TaskID:  &task.ID,
	})
}

// ApplicationDecided tells the freelancer their application was accepted or
// rejected.
func (s *NotifyService) ApplicationDecided(task *models.Task, app *models.Application) {
	typ := models.NotificationApplicationRejected
	title := "Application rejected"
	msg := fmt.Sprintf("Your application for %q was not selected this time.", task.Title)
	if app.Status == models.ApplicationStatusAccepted {
		typ = models.NotificationApplicationAccepted
		title = "Application accepted"
		msg = fmt.Sprintf("You got the task %q. The owner will be in touch.", task.Title)
	}

	s.deliver(app.FreelancerID, &models.Notification{
		ID:      uuid.New(),
		UserID:  app.FreelancerID,
		Type:    typ,
		Title:   title,
		Message: msg,
		TaskID:  &task.ID,
	})
}

func (s *NotifyService) deliver(userID uuid.UUID, n *models.Notification) {
	n.CreatedAt = time.Now()
	if err := s.Store.Notifications().Create(n); err != nil {
		log.Printf("notify: writing notification for user %s: %v", userID, err)
		return
	}
	if s.Pusher != nil {
		s.Pusher.Push(userID, map[string]interface{}{
			"type":         "notification",
			"notification": n,
		})
	}
}
