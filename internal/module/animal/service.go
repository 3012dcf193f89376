package animal

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/pawmarket/pawmarket/internal/domain"
	"github.com/pawmarket/pawmarket/internal/pkg"
	"github.com/pawmarket/pawmarket/internal/platform/objstore"
)

// maxSlugAttempts bounds the collision probe loop. Exhaustion means the
// storage layer never reported a free slot, which is treated as internal.
const maxSlugAttempts = 100

// Service defines the animal listing operations.
type Service interface {
	List(ctx context.Context, query ListQuery, page domain.PageRequest, basePath string) (*domain.ListingPage, error)
	GetByTerm(ctx context.Context, term string) (*domain.Animal, error)
	Create(ctx context.Context, actor domain.Actor, animalType string, req CreateAnimalRequest) (*domain.Animal, error)
	Update(ctx context.Context, actor domain.Actor, term string, req UpdateAnimalRequest) (*domain.Animal, error)
	Delete(ctx context.Context, actor domain.Actor, term string) error
	AddImage(ctx context.Context, actor domain.Actor, term, fileName, contentType string, data []byte) (*domain.Animal, error)
	RemoveImage(ctx context.Context, actor domain.Actor, term string, imageID uint) error
}

// Notifier receives animal mutation events for the favorite fan-out.
// Implementations are best-effort and never fail the mutation.
type Notifier interface {
	AnimalUpdated(ctx context.Context, animal *domain.Animal)
	AnimalAdopted(ctx context.Context, animal *domain.Animal)
	AnimalRemoved(ctx context.Context, animal *domain.Animal)
}

// animalService implements Service.
type animalService struct {
	repo     domain.AnimalRepository
	users    domain.UserRepository
	cities   domain.CityRepository
	store    objstore.Store
	notifier Notifier
	logger   *slog.Logger
}

// NewService creates a new animal Service. store and notifier may be nil
// when the corresponding backend is not configured.
func NewService(repo domain.AnimalRepository, users domain.UserRepository, cities domain.CityRepository, store objstore.Store, notifier Notifier, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &animalService{
		repo:     repo,
		users:    users,
		cities:   cities,
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// List resolves the raw query into a normalized filter and returns the
// paginated envelope. Resolution failures (unknown city or shelter name)
// short-circuit before any listing read.
func (s *animalService) List(ctx context.Context, query ListQuery, page domain.PageRequest, basePath string) (*domain.ListingPage, error) {
	filter, err := s.resolveFilter(ctx, query)
	if err != nil {
		return nil, err
	}

	animals, total, counts, err := s.repo.List(ctx, filter, page)
	if err != nil {
		return nil, err
	}

	maxPages := pkg.MaxPages(total, page.Limit)

	result := &domain.ListingPage{
		CurrentPage: page.Page,
		MaxPages:    maxPages,
		Limit:       page.Limit,
		Total:       total,
		Counts:      counts,
		Animals:     animals,
	}
	// The links reproduce the active filters so following next/prev keeps
	// the same result set.
	filters := ""
	if encoded := query.Values().Encode(); encoded != "" {
		filters = "&" + encoded
	}
	if page.Page+1 <= maxPages {
		next := fmt.Sprintf("%s?page=%d&limit=%d%s", basePath, page.Page+1, page.Limit, filters)
		result.Next = &next
	}
	if page.Page > 1 {
		prev := fmt.Sprintf("%s?page=%d&limit=%d%s", basePath, page.Page-1, page.Limit, filters)
		result.Prev = &prev
	}

	return result, nil
}

// resolveFilter maps the raw query onto a storage-ready predicate set.
func (s *animalService) resolveFilter(ctx context.Context, query ListQuery) (domain.AnimalFilter, error) {
	filter := domain.AnimalFilter{
		NameContains: strings.TrimSpace(query.Name),
		Type:         query.Type,
		Size:         query.Size,
		Gender:       query.Gender,
		Status:       query.Status,
		AgeBucket:    query.AgeBucket,
	}

	if name := strings.TrimSpace(query.City); name != "" {
		city, err := s.cities.GetByName(ctx, name)
		if err != nil {
			if domain.IsNotFound(err) {
				return domain.AnimalFilter{}, domain.NewAppError(domain.CodeNotFound,
					fmt.Sprintf("city %q not found", name), nil)
			}
			return domain.AnimalFilter{}, err
		}
		filter.CityID = city.ID
	}

	if name := strings.TrimSpace(query.ShelterName); name != "" {
		shelter, err := s.users.GetByUsername(ctx, name)
		if err != nil {
			if domain.IsNotFound(err) {
				return domain.AnimalFilter{}, domain.NewAppError(domain.CodeNotFound,
					fmt.Sprintf("shelter %q not found", name), nil)
			}
			return domain.AnimalFilter{}, err
		}
		filter.ShelterID = shelter.ID
	}

	return filter, nil
}

// GetByTerm retrieves an animal by numeric id or by slug.
func (s *animalService) GetByTerm(ctx context.Context, term string) (*domain.Animal, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, domain.NewAppError(domain.CodeValidation, "term is required", nil)
	}
	if id, err := strconv.ParseUint(term, 10, 64); err == nil {
		return s.repo.GetByID(ctx, uint(id))
	}
	return s.repo.GetBySlug(ctx, term)
}

// Create publishes a new listing for the acting shelter and assigns its
// unique slug.
func (s *animalService) Create(ctx context.Context, actor domain.Actor, animalType string, req CreateAnimalRequest) (*domain.Animal, error) {
	if animalType != domain.TypeCat && animalType != domain.TypeDog {
		return nil, domain.NewAppError(domain.CodeValidation,
			fmt.Sprintf("invalid animal type %q", animalType), nil)
	}

	shelter, err := s.users.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if shelter.Role != domain.RoleShelter {
		return nil, domain.NewAppError(domain.CodeValidation, "only shelters can publish listings", nil)
	}

	if _, err := s.cities.GetByID(ctx, req.CityID); err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewAppError(domain.CodeValidation, "city does not exist", nil)
		}
		return nil, err
	}

	animal := &domain.Animal{
		Name:        strings.TrimSpace(req.Name),
		Age:         req.Age,
		Size:        req.Size,
		Gender:      req.Gender,
		Type:        animalType,
		Description: strings.TrimSpace(req.Description),
		Status:      domain.StatusPending,
		ShelterID:   shelter.ID,
		CityID:      req.CityID,
	}

	if err := s.assignSlugAndCreate(ctx, animal, shelter.Username); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, animal.ID)
}

// assignSlugAndCreate probes for a free slug and inserts the animal. The
// unique index on slug is the final authority: losing a probe-to-insert race
// to a concurrent creation moves on to the next suffix instead of failing.
func (s *animalService) assignSlugAndCreate(ctx context.Context, animal *domain.Animal, shelterUsername string) error {
	for suffix := 0; suffix < maxSlugAttempts; suffix++ {
		candidate := SlugCandidate(shelterUsername, animal.Name, suffix)

		exists, err := s.repo.SlugExists(ctx, candidate)
		if err != nil {
			return err
		}
		if exists {
			continue
		}

		animal.Slug = candidate
		err = s.repo.Create(ctx, animal)
		if err == nil {
			return nil
		}
		if domain.IsAlreadyExists(err) {
			continue
		}
		return err
	}
	return domain.NewAppError(domain.CodeInternal, "could not assign a unique slug", nil)
}

// Update applies changes to a listing. The slug and owning shelter are never
// touched. Favoriting users are notified after a successful mutation.
func (s *animalService) Update(ctx context.Context, actor domain.Actor, term string, req UpdateAnimalRequest) (*domain.Animal, error) {
	animal, err := s.GetByTerm(ctx, term)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckPermission(actor, animal.ShelterID); err != nil {
		return nil, err
	}

	if !domain.ValidAnimalStatus(req.Status) {
		return nil, domain.NewAppError(domain.CodeValidation,
			fmt.Sprintf("invalid status %q", req.Status), nil)
	}
	if _, err := s.cities.GetByID(ctx, req.CityID); err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.NewAppError(domain.CodeValidation, "city does not exist", nil)
		}
		return nil, err
	}

	adopted := animal.Status != domain.StatusAdopted && req.Status == domain.StatusAdopted

	animal.Name = strings.TrimSpace(req.Name)
	animal.Age = req.Age
	animal.Size = req.Size
	animal.Gender = req.Gender
	animal.Description = strings.TrimSpace(req.Description)
	animal.Status = req.Status
	animal.CityID = req.CityID

	if err := s.repo.Update(ctx, animal); err != nil {
		return nil, err
	}

	updated, err := s.repo.GetByID(ctx, animal.ID)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if adopted {
			s.notifier.AnimalAdopted(ctx, updated)
		} else {
			s.notifier.AnimalUpdated(ctx, updated)
		}
	}

	return updated, nil
}

// Delete removes a listing, its stored images, and notifies favoriting users.
func (s *animalService) Delete(ctx context.Context, actor domain.Actor, term string) error {
	animal, err := s.GetByTerm(ctx, term)
	if err != nil {
		return err
	}
	if err := domain.CheckPermission(actor, animal.ShelterID); err != nil {
		return err
	}

	if s.notifier != nil {
		s.notifier.AnimalRemoved(ctx, animal)
	}

	if err := s.repo.Delete(ctx, animal.ID); err != nil {
		return err
	}

	if s.store != nil && len(animal.Images) > 0 {
		keys := make([]string, 0, len(animal.Images))
		for _, img := range animal.Images {
			keys = append(keys, img.ObjectKey)
		}
		if err := s.store.Delete(ctx, keys...); err != nil {
			s.logger.Warn("image cleanup failed",
				slog.Uint64("animal_id", uint64(animal.ID)),
				slog.Any("error", err),
			)
		}
	}

	return nil
}

// AddImage uploads an image to the object store and appends it to the
// animal's ordered image list.
func (s *animalService) AddImage(ctx context.Context, actor domain.Actor, term, fileName, contentType string, data []byte) (*domain.Animal, error) {
	if s.store == nil {
		return nil, domain.NewAppError(domain.CodeInternal, "object storage is not configured", nil)
	}

	animal, err := s.GetByTerm(ctx, term)
	if err != nil {
		return nil, err
	}
	if err := domain.CheckPermission(actor, animal.ShelterID); err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, domain.NewAppError(domain.CodeValidation, "image file is empty", nil)
	}

	url, key, err := s.store.Upload(ctx, "animals", fileName, contentType, data)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "image upload failed", err)
	}

	image := &domain.AnimalImage{
		AnimalID:  animal.ID,
		URL:       url,
		ObjectKey: key,
		Position:  len(animal.Images),
	}
	if err := s.repo.AddImage(ctx, image); err != nil {
		return nil, err
	}

	return s.repo.GetByID(ctx, animal.ID)
}

// RemoveImage deletes one image row and its stored object.
func (s *animalService) RemoveImage(ctx context.Context, actor domain.Actor, term string, imageID uint) error {
	animal, err := s.GetByTerm(ctx, term)
	if err != nil {
		return err
	}
	if err := domain.CheckPermission(actor, animal.ShelterID); err != nil {
		return err
	}

	image, err := s.repo.GetImage(ctx, animal.ID, imageID)
	if err != nil {
		return err
	}
	if err := s.repo.DeleteImage(ctx, animal.ID, imageID); err != nil {
		return err
	}

	if s.store != nil {
		if err := s.store.Delete(ctx, image.ObjectKey); err != nil {
			s.logger.Warn("image cleanup failed",
				slog.Uint64("animal_id", uint64(animal.ID)),
				slog.String("key", image.ObjectKey),
				slog.Any("error", err),
			)
		}
	}

	return nil
}
