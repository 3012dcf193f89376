package chat

import (
	"context"
	"log/slog"
	"strconv"

	"github.com/pawmarket/pawmarket/internal/domain"
)

// Notifier receives chat activity for the recipient's inbox. Implementations
// are best-effort and never fail the send.
type Notifier interface {
	NewMessage(ctx context.Context, recipientID uint, senderName string, animalID uint)
}

// Service defines the chat business operations.
type Service interface {
	Start(ctx context.Context, actor domain.Actor, animalTerm string) (*domain.Chat, error)
	ListChats(ctx context.Context, actor domain.Actor, page domain.PageRequest) (*domain.PageResult[domain.Chat], error)
	ListMessages(ctx context.Context, actor domain.Actor, chatID uint, page domain.PageRequest) (*domain.PageResult[domain.Message], error)
	SendMessage(ctx context.Context, actor domain.Actor, chatID uint, body string) (*domain.Message, error)
}

type chatService struct {
	repo     domain.ChatRepository
	animals  domain.AnimalRepository
	notifier Notifier
	logger   *slog.Logger
}

// NewService creates a new chat Service. notifier may be nil when
// notifications are not wired.
func NewService(repo domain.ChatRepository, animals domain.AnimalRepository, notifier Notifier, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &chatService{repo: repo, animals: animals, notifier: notifier, logger: logger}
}

// Start opens a chat between the actor and the shelter owning the animal.
// Starting a chat that already exists returns the existing one.
func (s *chatService) Start(ctx context.Context, actor domain.Actor, animalTerm string) (*domain.Chat, error) {
	animal, err := s.resolveAnimal(ctx, animalTerm)
	if err != nil {
		return nil, err
	}
	if animal.ShelterID == actor.ID {
		return nil, domain.NewAppError(domain.CodeValidation, "cannot open a chat about your own listing", nil)
	}

	chat := &domain.Chat{
		AnimalID:  animal.ID,
		AdopterID: actor.ID,
		ShelterID: animal.ShelterID,
	}
	if err := s.repo.Create(ctx, chat); err != nil {
		if domain.IsAlreadyExists(err) {
			return s.repo.GetByAdopterAndAnimal(ctx, actor.ID, animal.ID)
		}
		return nil, err
	}
	return chat, nil
}

// ListChats returns the chats the actor takes part in.
func (s *chatService) ListChats(ctx context.Context, actor domain.Actor, page domain.PageRequest) (*domain.PageResult[domain.Chat], error) {
	return s.repo.ListByUser(ctx, actor.ID, page)
}

// ListMessages returns the chat's messages and marks the counterpart's
// messages as read by the actor.
func (s *chatService) ListMessages(ctx context.Context, actor domain.Actor, chatID uint, page domain.PageRequest) (*domain.PageResult[domain.Message], error) {
	chat, err := s.authorized(ctx, actor, chatID)
	if err != nil {
		return nil, err
	}

	result, err := s.repo.ListMessages(ctx, chat.ID, page)
	if err != nil {
		return nil, err
	}

	if err := s.repo.MarkRead(ctx, chat.ID, actor.ID); err != nil {
		s.logger.Warn("mark read failed",
			slog.Uint64("chat_id", uint64(chat.ID)),
			slog.Any("error", err),
		)
	}

	return result, nil
}

// SendMessage appends a message to the chat and notifies the counterpart.
func (s *chatService) SendMessage(ctx context.Context, actor domain.Actor, chatID uint, body string) (*domain.Message, error) {
	chat, err := s.authorized(ctx, actor, chatID)
	if err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ChatID:   chat.ID,
		SenderID: actor.ID,
		Body:     body,
	}
	if err := s.repo.AddMessage(ctx, msg); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		recipient := chat.AdopterID
		if actor.ID == chat.AdopterID {
			recipient = chat.ShelterID
		}
		s.notifier.NewMessage(ctx, recipient, actor.Name, chat.AnimalID)
	}

	return msg, nil
}

// authorized loads the chat and checks the actor is a participant or admin.
func (s *chatService) authorized(ctx context.Context, actor domain.Actor, chatID uint) (*domain.Chat, error) {
	chat, err := s.repo.GetByID(ctx, chatID)
	if err != nil {
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && !chat.Participant(actor.ID) {
		return nil, domain.ErrForbidden
	}
	return chat, nil
}

func (s *chatService) resolveAnimal(ctx context.Context, term string) (*domain.Animal, error) {
	if id, err := strconv.ParseUint(term, 10, 64); err == nil {
		return s.animals.GetByID(ctx, uint(id))
	}
	return s.animals.GetBySlug(ctx, term)
}
