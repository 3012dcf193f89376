package favorite

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/pawmarket/pawmarket/internal/domain"
	"github.com/pawmarket/pawmarket/internal/pkg"
)

// favoriteRepository implements domain.FavoriteRepository using GORM.
type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new FavoriteRepository backed by the given
// GORM database.
func NewFavoriteRepository(db *gorm.DB) domain.FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Add inserts the favorite row and bumps the animal's counter in one
// transaction. The unique index on (user_id, animal_id) rejects duplicates.
func (r *favoriteRepository) Add(ctx context.Context, userID, animalID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fav := domain.Favorite{UserID: userID, AnimalID: animalID}
		if err := tx.Create(&fav).Error; err != nil {
			return err
		}
		return tx.Model(&domain.Animal{}).
			Where("id = ?", animalID).
			UpdateColumn("favorite_count", gorm.Expr("favorite_count + 1")).Error
	})
	if err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// Remove deletes the favorite row and drops the counter in one transaction.
// Removing a favorite that does not exist is ErrNotFound.
func (r *favoriteRepository) Remove(ctx context.Context, userID, animalID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND animal_id = ?", userID, animalID).
			Delete(&domain.Favorite{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&domain.Animal{}).
			Where("id = ? AND favorite_count > 0", animalID).
			UpdateColumn("favorite_count", gorm.Expr("favorite_count - 1")).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrNotFound
		}
		return pkg.MapDBError(err)
	}
	return nil
}

// Exists reports whether the user already favorited the animal.
func (r *favoriteRepository) Exists(ctx context.Context, userID, animalID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Favorite{}).
		Where("user_id = ? AND animal_id = ?", userID, animalID).
		Count(&count).Error; err != nil {
		return false, pkg.MapDBError(err)
	}
	return count > 0, nil
}

// ListAnimalsByUser returns the user's favorited animals, most recently
// favorited first.
func (r *favoriteRepository) ListAnimalsByUser(ctx context.Context, userID uint, page domain.PageRequest) (*domain.PageResult[domain.Animal], error) {
	base := func() *gorm.DB {
		return r.db.WithContext(ctx).Model(&domain.Animal{}).
			Joins("JOIN favorites ON favorites.animal_id = animals.id").
			Where("favorites.user_id = ?", userID)
	}

	var total int64
	if err := base().Count(&total).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	var animals []domain.Animal
	if err := base().
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Shelter").
		Preload("City").
		Order("favorites.created_at DESC, favorites.id DESC").
		Scopes(pkg.Paginate(page)).
		Find(&animals).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}

	return pkg.NewPageResult(animals, total, page), nil
}

// UserIDsByAnimal returns the ids of every user that favorited the animal.
func (r *favoriteRepository) UserIDsByAnimal(ctx context.Context, animalID uint) ([]uint, error) {
	var ids []uint
	if err := r.db.WithContext(ctx).Model(&domain.Favorite{}).
		Where("animal_id = ?", animalID).
		Pluck("user_id", &ids).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return ids, nil
}
