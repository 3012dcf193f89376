package domain

import (
	"context"
	"time"
)

// Chat is a conversation between an adopter and the shelter owning an
// animal. One chat exists per adopter/animal pair.
type Chat struct {
	BaseModel
	AnimalID  uint `gorm:"not null;uniqueIndex:idx_chat_adopter_animal" json:"animal_id"`
	AdopterID uint `gorm:"not null;uniqueIndex:idx_chat_adopter_animal" json:"adopter_id"`
	ShelterID uint `gorm:"not null;index" json:"shelter_id"`
}

// Participant reports whether the given user takes part in the chat.
func (c *Chat) Participant(userID uint) bool {
	return userID == c.AdopterID || userID == c.ShelterID
}

// Message is a single chat message. ReadAt is nil until the counterpart
// reads it.
type Message struct {
	BaseModel
	ChatID   uint       `gorm:"not null;index" json:"chat_id"`
	SenderID uint       `gorm:"not null" json:"sender_id"`
	Body     string     `gorm:"type:text;not null" json:"body"`
	ReadAt   *time.Time `json:"read_at"`
}

// ChatRepository defines the data access interface for chats and messages.
type ChatRepository interface {
	Create(ctx context.Context, chat *Chat) error
	GetByID(ctx context.Context, id uint) (*Chat, error)
	GetByAdopterAndAnimal(ctx context.Context, adopterID, animalID uint) (*Chat, error)
	ListByUser(ctx context.Context, userID uint, page PageRequest) (*PageResult[Chat], error)
	AddMessage(ctx context.Context, msg *Message) error
	ListMessages(ctx context.Context, chatID uint, page PageRequest) (*PageResult[Message], error)
	// MarkRead stamps every unread message in the chat not sent by userID.
	MarkRead(ctx context.Context, chatID, userID uint) error
}
