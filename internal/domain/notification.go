package domain

import (
	"context"
	"time"
)

// Notification kinds.
const (
	NotificationAnimalUpdated = "animal_updated"
	NotificationAnimalRemoved = "animal_removed"
	NotificationAnimalAdopted = "animal_adopted"
	NotificationNewMessage    = "new_message"
)

// Notification is a per-user inbox entry, created by the favorite fan-out
// on animal mutation and by chat activity.
type Notification struct {
	BaseModel
	UserID   uint       `gorm:"not null;index" json:"user_id"`
	Kind     string     `gorm:"size:50;not null" json:"kind"`
	Title    string     `gorm:"size:255;not null" json:"title"`
	Body     string     `gorm:"type:text" json:"body"`
	AnimalID *uint      `json:"animal_id"`
	ReadAt   *time.Time `json:"read_at"`
}

// NotificationRepository defines the data access interface for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *Notification) error
	GetByID(ctx context.Context, id uint) (*Notification, error)
	ListByUser(ctx context.Context, userID uint, page PageRequest) (*PageResult[Notification], error)
	MarkRead(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}
