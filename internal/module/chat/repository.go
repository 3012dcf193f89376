package chat

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/pawmarket/pawmarket/internal/domain"
	"github.com/pawmarket/pawmarket/internal/pkg"
)

// chatRepository implements domain.ChatRepository using GORM.
type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new ChatRepository backed by the given GORM database.
func NewChatRepository(db *gorm.DB) domain.ChatRepository {
	return &chatRepository{db: db}
}

// Create inserts a new chat. The unique index on (adopter_id, animal_id)
// rejects a second chat for the same pair.
func (r *chatRepository) Create(ctx context.Context, chat *domain.Chat) error {
	if err := r.db.WithContext(ctx).Create(chat).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// GetByID retrieves a chat by its primary key.
func (r *chatRepository) GetByID(ctx context.Context, id uint) (*domain.Chat, error) {
	var chat domain.Chat
	if err := r.db.WithContext(ctx).First(&chat, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &chat, nil
}

// GetByAdopterAndAnimal retrieves the chat for the given adopter/animal pair.
func (r *chatRepository) GetByAdopterAndAnimal(ctx context.Context, adopterID, animalID uint) (*domain.Chat, error) {
	var chat domain.Chat
	if err := r.db.WithContext(ctx).
		Where("adopter_id = ? AND animal_id = ?", adopterID, animalID).
		First(&chat).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &chat, nil
}

// ListByUser returns the chats the user takes part in, newest first.
func (r *chatRepository) ListByUser(ctx context.Context, userID uint, page domain.PageRequest) (*domain.PageResult[domain.Chat], error) {
	query := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&domain.Chat{}).
			Where("adopter_id = ? OR shelter_id = ?", userID, userID)
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	var chats []domain.Chat
	if err := query().
		Order("updated_at DESC, id DESC").
		Scopes(pkg.Paginate(page)).
		Find(&chats).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	return pkg.NewPageResult(chats, total, page), nil
}

// AddMessage inserts a message and touches the chat's updated_at so the chat
// list sorts by recent activity.
func (r *chatRepository) AddMessage(ctx context.Context, msg *domain.Message) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(msg).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Chat{}).
			Where("id = ?", msg.ChatID).
			Update("updated_at", time.Now()).Error
	})
	if err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// ListMessages returns the chat's messages, newest first.
func (r *chatRepository) ListMessages(ctx context.Context, chatID uint, page domain.PageRequest) (*domain.PageResult[domain.Message], error) {
	query := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&domain.Message{}).
			Where("chat_id = ?", chatID)
	}

	var total int64
	if err := query().Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	var messages []domain.Message
	if err := query().
		Order("created_at DESC, id DESC").
		Scopes(pkg.Paginate(page)).
		Find(&messages).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	return pkg.NewPageResult(messages, total, page), nil
}

// MarkRead stamps every unread message in the chat not sent by userID.
func (r *chatRepository) MarkRead(ctx context.Context, chatID, userID uint) error {
	if err := r.db.WithContext(ctx).Model(&domain.Message{}).
		Where("chat_id = ? AND sender_id <> ? AND read_at IS NULL", chatID, userID).
		Update("read_at", time.Now()).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}
