package user

import (
	"context"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/pawmarket/pawmarket/internal/domain"
	"github.com/pawmarket/pawmarket/internal/platform/objstore"
)

// userService implements domain.UserService.
type userService struct {
	repo   domain.UserRepository
	cities domain.CityRepository
	store  objstore.Store
	logger *slog.Logger
}

// NewUserService creates a new UserService with the given repository.
// store may be nil when object storage is not configured.
func NewUserService(repo domain.UserRepository, cities domain.CityRepository, store objstore.Store, logger *slog.Logger) domain.UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &userService{repo: repo, cities: cities, store: store, logger: logger}
}

// GetUser retrieves a user by ID.
func (s *userService) GetUser(ctx context.Context, id uint) (*domain.User, error) {
	return s.repo.GetByID(ctx, id)
}

// ListUsers returns a paginated list of users.
func (s *userService) ListUsers(ctx context.Context, filter domain.UserFilter, page domain.PageRequest) (*domain.PageResult[domain.User], error) {
	return s.repo.List(ctx, filter, page)
}

// UpdateUser applies profile changes. Only the user itself or an admin may
// update; email, role, and username are immutable here.
func (s *userService) UpdateUser(ctx context.Context, actor domain.Actor, id uint, name string, cityID *uint) (*domain.User, error) {
	if err := domain.CheckPermission(actor, id); err != nil {
		return nil, err
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "name is required", nil)
	}
	if utf8.RuneCountInString(name) > 100 {
		return nil, domain.NewAppError(domain.CodeValidation, "name must be at most 100 characters", nil)
	}

	if cityID != nil {
		if _, err := s.cities.GetByID(ctx, *cityID); err != nil {
			if domain.IsNotFound(err) {
				return nil, domain.NewAppError(domain.CodeValidation, "city does not exist", nil)
			}
			return nil, err
		}
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	user.Name = name
	if cityID != nil {
		user.CityID = cityID
	}

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// DeleteUser removes a user and its stored avatar.
func (s *userService) DeleteUser(ctx context.Context, actor domain.Actor, id uint) error {
	if err := domain.CheckPermission(actor, id); err != nil {
		return err
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	if s.store != nil && user.AvatarKey != "" {
		if err := s.store.Delete(ctx, user.AvatarKey); err != nil {
			s.logger.Warn("avatar cleanup failed",
				slog.Uint64("user_id", uint64(id)),
				slog.Any("error", err),
			)
		}
	}

	return nil
}

// SetAvatar records a freshly uploaded avatar and removes the previous one.
func (s *userService) SetAvatar(ctx context.Context, actor domain.Actor, id uint, url, key string) (*domain.User, error) {
	if err := domain.CheckPermission(actor, id); err != nil {
		return nil, err
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldKey := user.AvatarKey
	user.AvatarURL = url
	user.AvatarKey = key

	if err := s.repo.Update(ctx, user); err != nil {
		return nil, err
	}

	if s.store != nil && oldKey != "" && oldKey != key {
		if err := s.store.Delete(ctx, oldKey); err != nil {
			s.logger.Warn("avatar cleanup failed",
				slog.Uint64("user_id", uint64(id)),
				slog.Any("error", err),
			)
		}
	}

	return user, nil
}
