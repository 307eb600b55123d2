package service

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"competition_portal_backend/internals/features/notifications/model"
)

// Pusher is the realtime side channel; the hub implements it.
type Pusher interface {
	Push(userID uuid.UUID, event string, payload interface{})
}

type NotificationService struct {
	DB     *gorm.DB
	Pusher Pusher
}

func NewNotificationService(db *gorm.DB, pusher Pusher) *NotificationService {
	return &NotificationService{DB: db, Pusher: pusher}
}

type notificationEvent struct {
	ID        uuid.UUID `json:"id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt string    `json:"created_at"`
}

// Notify persists the notification row, then pushes it to the user's
// realtime channel. The push is fire and forget: it runs after the
// authoritative write and its failure never reaches the caller.
func (s *NotificationService) Notify(db *gorm.DB, userID uuid.UUID, typ, title, content string) (*model.NotificationModel, error) {
	if db == nil {
		db = s.DB
	}

	notif := model.NotificationModel{
		UserID:  userID,
		Type:    typ,
		Title:   title,
		Content: content,
	}
	if err := db.Create(&notif).Error; err != nil {
		return nil, err
	}

	if s.Pusher != nil {
		go s.Pusher.Push(userID, "notification", notificationEvent{
			ID:        notif.ID,
			Type:      notif.Type,
			Title:     notif.Title,
			Content:   notif.Content,
			CreatedAt: notif.CreatedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return &notif, nil
}

// NotifyBestEffort is used from review flows where the primary write already
// committed: failures are logged, never propagated.
func (s *NotificationService) NotifyBestEffort(userID uuid.UUID, typ, title, content string) {
	if _, err := s.Notify(nil, userID, typ, title, content); err != nil {
		log.Printf("[WARN] notification dispatch failed for user %s: %v", userID, err)
	}
}
