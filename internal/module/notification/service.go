package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pawmarket/pawmarket/internal/domain"
	"github.com/pawmarket/pawmarket/internal/platform/mailer"
	"github.com/pawmarket/pawmarket/internal/platform/queue"
)

// Service defines the notification inbox operations plus the animal mutation
// fan-out consumed by the animal module.
type Service interface {
	List(ctx context.Context, actor domain.Actor, page domain.PageRequest) (*domain.PageResult[domain.Notification], error)
	MarkRead(ctx context.Context, actor domain.Actor, id uint) error
	Delete(ctx context.Context, actor domain.Actor, id uint) error

	AnimalUpdated(ctx context.Context, animal *domain.Animal)
	AnimalAdopted(ctx context.Context, animal *domain.Animal)
	AnimalRemoved(ctx context.Context, animal *domain.Animal)
	NewMessage(ctx context.Context, recipientID uint, senderName string, animalID uint)
}

// event is the payload published on the notifications subject.
type event struct {
	Kind     string `json:"kind"`
	UserID   uint   `json:"user_id"`
	AnimalID uint   `json:"animal_id,omitempty"`
	Title    string `json:"title"`
}

// emailEvent is the payload published on the emails subject. Every outgoing
// mail is mirrored there so an external mail worker can consume the stream.
type emailEvent struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type notificationService struct {
	repo      domain.NotificationRepository
	favorites domain.FavoriteRepository
	users     domain.UserRepository
	publisher queue.Publisher
	mail      mailer.Mailer
	logger    *slog.Logger
}

// NewService creates a new notification Service. publisher and mail may be
// nil when the corresponding backend is not configured.
func NewService(repo domain.NotificationRepository, favorites domain.FavoriteRepository, users domain.UserRepository, publisher queue.Publisher, mail mailer.Mailer, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &notificationService{
		repo:      repo,
		favorites: favorites,
		users:     users,
		publisher: publisher,
		mail:      mail,
		logger:    logger,
	}
}

// List returns the actor's notifications.
func (s *notificationService) List(ctx context.Context, actor domain.Actor, page domain.PageRequest) (*domain.PageResult[domain.Notification], error) {
	return s.repo.ListByUser(ctx, actor.ID, page)
}

// MarkRead stamps one of the actor's notifications as read.
func (s *notificationService) MarkRead(ctx context.Context, actor domain.Actor, id uint) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := domain.CheckPermission(actor, n.UserID); err != nil {
		return err
	}
	return s.repo.MarkRead(ctx, id)
}

// Delete removes one of the actor's notifications.
func (s *notificationService) Delete(ctx context.Context, actor domain.Actor, id uint) error {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := domain.CheckPermission(actor, n.UserID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

// AnimalUpdated notifies everyone who favorited the animal about the change.
func (s *notificationService) AnimalUpdated(ctx context.Context, animal *domain.Animal) {
	title := fmt.Sprintf("%s has been updated", animal.Name)
	s.fanOut(ctx, animal, domain.NotificationAnimalUpdated, title, false)
}

// AnimalAdopted notifies everyone who favorited the animal that it found a
// home, by inbox entry and by mail.
func (s *notificationService) AnimalAdopted(ctx context.Context, animal *domain.Animal) {
	title := fmt.Sprintf("%s has found a home", animal.Name)
	s.fanOut(ctx, animal, domain.NotificationAnimalAdopted, title, true)
}

// AnimalRemoved notifies everyone who favorited the animal that the listing
// is gone.
func (s *notificationService) AnimalRemoved(ctx context.Context, animal *domain.Animal) {
	title := fmt.Sprintf("%s is no longer listed", animal.Name)
	s.fanOut(ctx, animal, domain.NotificationAnimalRemoved, title, false)
}

// NewMessage creates an inbox entry for an incoming chat message.
func (s *notificationService) NewMessage(ctx context.Context, recipientID uint, senderName string, animalID uint) {
	n := &domain.Notification{
		UserID:   recipientID,
		Kind:     domain.NotificationNewMessage,
		Title:    fmt.Sprintf("New message from %s", senderName),
		AnimalID: &animalID,
	}
	if err := s.repo.Create(ctx, n); err != nil {
		s.logger.Warn("notification create failed",
			slog.Uint64("user_id", uint64(recipientID)),
			slog.Any("error", err),
		)
		return
	}
	s.publish(ctx, n)
}

// fanOut writes one inbox entry per favoriter, publishes each on the queue,
// and optionally mails the favoriter. Every step is best-effort.
func (s *notificationService) fanOut(ctx context.Context, animal *domain.Animal, kind, title string, withMail bool) {
	userIDs, err := s.favorites.UserIDsByAnimal(ctx, animal.ID)
	if err != nil {
		s.logger.Warn("favorite fan-out lookup failed",
			slog.Uint64("animal_id", uint64(animal.ID)),
			slog.Any("error", err),
		)
		return
	}

	animalID := animal.ID
	for _, userID := range userIDs {
		n := &domain.Notification{
			UserID:   userID,
			Kind:     kind,
			Title:    title,
			AnimalID: &animalID,
		}
		if err := s.repo.Create(ctx, n); err != nil {
			s.logger.Warn("notification create failed",
				slog.Uint64("user_id", uint64(userID)),
				slog.Any("error", err),
			)
			continue
		}
		s.publish(ctx, n)

		if withMail {
			s.sendMail(ctx, userID, title, animal)
		}
	}
}

func (s *notificationService) publish(ctx context.Context, n *domain.Notification) {
	if s.publisher == nil {
		return
	}
	ev := event{Kind: n.Kind, UserID: n.UserID, Title: n.Title}
	if n.AnimalID != nil {
		ev.AnimalID = *n.AnimalID
	}
	if err := s.publisher.Publish(ctx, queue.SubjectNotifications, ev); err != nil {
		s.logger.Warn("notification publish failed",
			slog.String("kind", n.Kind),
			slog.Any("error", err),
		)
	}
}

// sendMail delivers the adoption mail directly and mirrors it on the emails
// subject. Both paths are best-effort and independent of each other.
func (s *notificationService) sendMail(ctx context.Context, userID uint, subject string, animal *domain.Animal) {
	if s.mail == nil && s.publisher == nil {
		return
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		s.logger.Warn("notification mail lookup failed",
			slog.Uint64("user_id", uint64(userID)),
			slog.Any("error", err),
		)
		return
	}
	body := fmt.Sprintf("Good news: %s has been adopted. Thank you for caring.", animal.Name)

	if s.publisher != nil {
		ev := emailEvent{To: user.Email, Subject: subject, Body: body}
		if err := s.publisher.Publish(ctx, queue.SubjectEmails, ev); err != nil {
			s.logger.Warn("email publish failed",
				slog.Uint64("user_id", uint64(userID)),
				slog.Any("error", err),
			)
		}
	}

	if s.mail == nil {
		return
	}
	if err := s.mail.Send(user.Email, subject, body); err != nil {
		s.logger.Warn("notification mail failed",
			slog.Uint64("user_id", uint64(userID)),
			slog.Any("error", err),
		)
	}
}
