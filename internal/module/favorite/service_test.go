package favorite

import (
	"context"
	"testing"

	"github.com/pawmarket/pawmarket/internal/domain"
)

type fakeFavoriteRepo struct {
	pairs map[[2]uint]bool
}

func newFakeFavoriteRepo() *fakeFavoriteRepo {
	return &fakeFavoriteRepo{pairs: make(map[[2]uint]bool)}
}

func (f *fakeFavoriteRepo) Add(_ context.Context, userID, animalID uint) error {
	key := [2]uint{userID, animalID}
	if f.pairs[key] {
		return domain.NewAppError(domain.CodeAlreadyExists, "duplicate", nil)
	}
	f.pairs[key] = true
	return nil
}

func (f *fakeFavoriteRepo) Remove(_ context.Context, userID, animalID uint) error {
	key := [2]uint{userID, animalID}
	if !f.pairs[key] {
		return domain.ErrNotFound
	}
	delete(f.pairs, key)
	return nil
}

func (f *fakeFavoriteRepo) Exists(_ context.Context, userID, animalID uint) (bool, error) {
	return f.pairs[[2]uint{userID, animalID}], nil
}

func (f *fakeFavoriteRepo) ListAnimalsByUser(_ context.Context, _ uint, _ domain.PageRequest) (*domain.PageResult[domain.Animal], error) {
	return &domain.PageResult[domain.Animal]{Items: []domain.Animal{}}, nil
}

func (f *fakeFavoriteRepo) UserIDsByAnimal(_ context.Context, _ uint) ([]uint, error) {
	return nil, nil
}

// stubAnimalRepo resolves a single known animal by id or slug.
type stubAnimalRepo struct {
	animal domain.Animal
}

func (s *stubAnimalRepo) Create(_ context.Context, _ *domain.Animal) error { return nil }

func (s *stubAnimalRepo) GetByID(_ context.Context, id uint) (*domain.Animal, error) {
	if id == s.animal.ID {
		copied := s.animal
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubAnimalRepo) GetBySlug(_ context.Context, slug string) (*domain.Animal, error) {
	if slug == s.animal.Slug {
		copied := s.animal
		return &copied, nil
	}
	return nil, domain.ErrNotFound
}

func (s *stubAnimalRepo) SlugExists(_ context.Context, _ string) (bool, error) { return false, nil }

func (s *stubAnimalRepo) List(_ context.Context, _ domain.AnimalFilter, _ domain.PageRequest) ([]domain.Animal, int64, domain.StatusCounts, error) {
	return nil, 0, domain.StatusCounts{}, nil
}

func (s *stubAnimalRepo) Update(_ context.Context, _ *domain.Animal) error { return nil }
func (s *stubAnimalRepo) Delete(_ context.Context, _ uint) error           { return nil }
func (s *stubAnimalRepo) AddImage(_ context.Context, _ *domain.AnimalImage) error {
	return nil
}
func (s *stubAnimalRepo) GetImage(_ context.Context, _, _ uint) (*domain.AnimalImage, error) {
	return nil, domain.ErrNotFound
}
func (s *stubAnimalRepo) DeleteImage(_ context.Context, _, _ uint) error { return nil }

func testFavoriteService() (Service, *fakeFavoriteRepo) {
	repo := newFakeFavoriteRepo()
	animals := &stubAnimalRepo{animal: domain.Animal{
		BaseModel: domain.BaseModel{ID: 5}, Slug: "paws-nero",
	}}
	return NewFavoriteService(repo, animals), repo
}

func TestFavorite_ResolvesByIDAndSlug(t *testing.T) {
	actor := domain.Actor{ID: 1, Role: domain.RoleAdopter}

	t.Run("by id", func(t *testing.T) {
		svc, repo := testFavoriteService()
		if err := svc.Favorite(context.Background(), actor, "5"); err != nil {
			t.Fatalf("Favorite: %v", err)
		}
		if !repo.pairs[[2]uint{1, 5}] {
			t.Error("favorite pair not stored")
		}
	})

	t.Run("by slug", func(t *testing.T) {
		svc, repo := testFavoriteService()
		if err := svc.Favorite(context.Background(), actor, "paws-nero"); err != nil {
			t.Fatalf("Favorite: %v", err)
		}
		if !repo.pairs[[2]uint{1, 5}] {
			t.Error("favorite pair not stored")
		}
	})
}

func TestFavorite_UnknownAnimal(t *testing.T) {
	svc, _ := testFavoriteService()
	err := svc.Favorite(context.Background(), domain.Actor{ID: 1}, "ghost-slug")
	if !domain.IsNotFound(err) {
		t.Errorf("error = %v; want not found", err)
	}
}

func TestFavorite_Twice(t *testing.T) {
	svc, _ := testFavoriteService()
	actor := domain.Actor{ID: 1, Role: domain.RoleAdopter}

	if err := svc.Favorite(context.Background(), actor, "paws-nero"); err != nil {
		t.Fatalf("Favorite: %v", err)
	}
	err := svc.Favorite(context.Background(), actor, "paws-nero")
	if !domain.IsAlreadyExists(err) {
		t.Errorf("error = %v; want already exists", err)
	}
}

func TestUnfavorite_NotFavorited(t *testing.T) {
	svc, _ := testFavoriteService()
	err := svc.Unfavorite(context.Background(), domain.Actor{ID: 1}, "paws-nero")
	if !domain.IsNotFound(err) {
		t.Errorf("error = %v; want not found", err)
	}
}

func TestUnfavorite_RoundTrip(t *testing.T) {
	svc, repo := testFavoriteService()
	actor := domain.Actor{ID: 1, Role: domain.RoleAdopter}

	if err := svc.Favorite(context.Background(), actor, "paws-nero"); err != nil {
		t.Fatalf("Favorite: %v", err)
	}
	if err := svc.Unfavorite(context.Background(), actor, "5"); err != nil {
		t.Fatalf("Unfavorite: %v", err)
	}
	if len(repo.pairs) != 0 {
		t.Errorf("pairs = %v; want empty", repo.pairs)
	}
}
