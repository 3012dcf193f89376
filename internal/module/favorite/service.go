package favorite

import (
	"context"
	"strconv"

	"github.com/pawmarket/pawmarket/internal/domain"
)

// Service defines the favorite business operations.
type Service interface {
	Favorite(ctx context.Context, actor domain.Actor, term string) error
	Unfavorite(ctx context.Context, actor domain.Actor, term string) error
	ListFavorites(ctx context.Context, actor domain.Actor, page domain.PageRequest) (*domain.PageResult[domain.Animal], error)
}

type favoriteService struct {
	repo    domain.FavoriteRepository
	animals domain.AnimalRepository
}

// NewFavoriteService creates a new favorite Service.
func NewFavoriteService(repo domain.FavoriteRepository, animals domain.AnimalRepository) Service {
	return &favoriteService{repo: repo, animals: animals}
}

// Favorite marks the animal identified by term (numeric id or slug) as a
// favorite of the actor. Favoriting twice is an error.
func (s *favoriteService) Favorite(ctx context.Context, actor domain.Actor, term string) error {
	animal, err := s.resolve(ctx, term)
	if err != nil {
		return err
	}

	if err := s.repo.Add(ctx, actor.ID, animal.ID); err != nil {
		if domain.IsAlreadyExists(err) {
			return domain.NewAppError(domain.CodeAlreadyExists, "animal already favorited", err)
		}
		return err
	}
	return nil
}

// Unfavorite removes the actor's favorite of the animal identified by term.
func (s *favoriteService) Unfavorite(ctx context.Context, actor domain.Actor, term string) error {
	animal, err := s.resolve(ctx, term)
	if err != nil {
		return err
	}

	if err := s.repo.Remove(ctx, actor.ID, animal.ID); err != nil {
		if domain.IsNotFound(err) {
			return domain.NewAppError(domain.CodeNotFound, "animal is not favorited", err)
		}
		return err
	}
	return nil
}

// ListFavorites returns the actor's favorited animals.
func (s *favoriteService) ListFavorites(ctx context.Context, actor domain.Actor, page domain.PageRequest) (*domain.PageResult[domain.Animal], error) {
	return s.repo.ListAnimalsByUser(ctx, actor.ID, page)
}

func (s *favoriteService) resolve(ctx context.Context, term string) (*domain.Animal, error) {
	if id, err := strconv.ParseUint(term, 10, 64); err == nil {
		return s.animals.GetByID(ctx, uint(id))
	}
	return s.animals.GetBySlug(ctx, term)
}
