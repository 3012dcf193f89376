package animal

import (
	"context"

	"gorm.io/gorm"

	"github.com/pawmarket/pawmarket/internal/domain"
	"github.com/pawmarket/pawmarket/internal/pkg"
)

// animalRepository implements domain.AnimalRepository using GORM.
type animalRepository struct {
	db *gorm.DB
}

// NewAnimalRepository creates a new AnimalRepository backed by the given GORM database.
func NewAnimalRepository(db *gorm.DB) domain.AnimalRepository {
	return &animalRepository{db: db}
}

// Create inserts a new animal. A slug collision surfaces as an
// already-exists error via pkg.MapDBError; the unique index on slug is the
// final authority on slug uniqueness.
func (r *animalRepository) Create(ctx context.Context, animal *domain.Animal) error {
	if err := r.db.WithContext(ctx).Create(animal).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// GetByID retrieves an animal with its images, shelter, and city.
func (r *animalRepository) GetByID(ctx context.Context, id uint) (*domain.Animal, error) {
	var animal domain.Animal
	if err := r.preloaded(ctx).First(&animal, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &animal, nil
}

// GetBySlug retrieves an animal by its unique slug.
func (r *animalRepository) GetBySlug(ctx context.Context, slug string) (*domain.Animal, error) {
	var animal domain.Animal
	if err := r.preloaded(ctx).Where("slug = ?", slug).First(&animal).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &animal, nil
}

// SlugExists reports whether any animal already carries the given slug.
func (r *animalRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Animal{}).
		Where("slug = ?", slug).Count(&count).Error; err != nil {
		return false, pkg.MapDBError(err)
	}
	return count > 0, nil
}

// List runs the listing read: total, per-status counts, and the page itself,
// all inside one transaction so the envelope is a consistent snapshot.
//
// The per-status counts apply every predicate except the status filter.
// The total and the page exclude adopted animals unless the caller filtered
// on an explicit status. Ordering is newest-first with id as a deterministic
// tie-break.
func (r *animalRepository) List(ctx context.Context, filter domain.AnimalFilter, page domain.PageRequest) ([]domain.Animal, int64, domain.StatusCounts, error) {
	var (
		animals []domain.Animal
		total   int64
		counts  domain.StatusCounts
	)

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Fresh query per statement: GORM chains accumulate conditions.
		base := func() *gorm.DB {
			return applyFilter(tx.Model(&domain.Animal{}), filter)
		}
		listed := func() *gorm.DB {
			q := base()
			if filter.Status != "" {
				return q.Where("status = ?", filter.Status)
			}
			return q.Where("status <> ?", domain.StatusAdopted)
		}

		statusCounts := []struct {
			status string
			dest   *int64
		}{
			{domain.StatusAdopted, &counts.Adopted},
			{domain.StatusFostered, &counts.Fostered},
			{domain.StatusAwaitingHome, &counts.AwaitingHome},
		}
		for _, sc := range statusCounts {
			if err := base().Where("status = ?", sc.status).Count(sc.dest).Error; err != nil {
				return err
			}
		}

		if err := listed().Count(&total).Error; err != nil {
			return err
		}

		return listed().
			Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
			Preload("Shelter").
			Preload("City").
			Order("created_at DESC, id DESC").
			Scopes(pkg.Paginate(page)).
			Find(&animals).Error
	})
	if err != nil {
		return nil, 0, domain.StatusCounts{}, pkg.MapDBError(err)
	}

	return animals, total, counts, nil
}

// Update writes the mutable columns of an existing animal. The slug, the
// owning shelter, and the favorite counter are never written: the counter
// only moves through the atomic increments in the favorite repository, and
// writing a loaded copy back would clobber concurrent favorites.
func (r *animalRepository) Update(ctx context.Context, animal *domain.Animal) error {
	result := r.db.WithContext(ctx).Model(&domain.Animal{}).
		Where("id = ?", animal.ID).
		Select("name", "age", "size", "gender", "description", "status", "city_id", "updated_at").
		Updates(animal)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete removes an animal and its dependent rows.
func (r *animalRepository) Delete(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&domain.Animal{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return domain.ErrNotFound
		}
		if err := tx.Where("animal_id = ?", id).Delete(&domain.AnimalImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("animal_id = ?", id).Delete(&domain.Favorite{}).Error; err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if domain.IsNotFound(err) {
			return err
		}
		return pkg.MapDBError(err)
	}
	return nil
}

// AddImage appends an image to an animal's ordered image list.
func (r *animalRepository) AddImage(ctx context.Context, image *domain.AnimalImage) error {
	if err := r.db.WithContext(ctx).Create(image).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// GetImage retrieves one image of an animal.
func (r *animalRepository) GetImage(ctx context.Context, animalID, imageID uint) (*domain.AnimalImage, error) {
	var image domain.AnimalImage
	if err := r.db.WithContext(ctx).
		Where("animal_id = ?", animalID).
		First(&image, imageID).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &image, nil
}

// DeleteImage removes one image of an animal.
func (r *animalRepository) DeleteImage(ctx context.Context, animalID, imageID uint) error {
	result := r.db.WithContext(ctx).
		Where("animal_id = ?", animalID).
		Delete(&domain.AnimalImage{}, imageID)
	if result.Error != nil {
		return pkg.MapDBError(result.Error)
	}
	if result.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *animalRepository) preloaded(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Shelter").
		Preload("City")
}

// applyFilter translates every non-status predicate of the normalized filter
// into WHERE conditions. Age buckets become half-open ranges.
func applyFilter(q *gorm.DB, filter domain.AnimalFilter) *gorm.DB {
	if filter.NameContains != "" {
		q = q.Where("name LIKE ?", "%"+filter.NameContains+"%")
	}
	if filter.Type != "" {
		q = q.Where("type = ?", filter.Type)
	}
	if filter.Size != "" {
		q = q.Where("size = ?", filter.Size)
	}
	if filter.Gender != "" {
		q = q.Where("gender = ?", filter.Gender)
	}
	if filter.CityID != 0 {
		q = q.Where("city_id = ?", filter.CityID)
	}
	if filter.ShelterID != 0 {
		q = q.Where("shelter_id = ?", filter.ShelterID)
	}
	if filter.AgeBucket != "" {
		if min, max, hasMax, ok := domain.AgeRange(filter.AgeBucket); ok {
			q = q.Where("age >= ?", min)
			if hasMax {
				q = q.Where("age < ?", max)
			}
		}
	}
	return q
}
