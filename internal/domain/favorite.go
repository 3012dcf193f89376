package domain

import "context"

// Favorite marks an animal as favorited by a user. A user favorites a given
// animal at most once.
type Favorite struct {
	BaseModel
	UserID   uint `gorm:"not null;uniqueIndex:idx_favorite_user_animal" json:"user_id"`
	AnimalID uint `gorm:"not null;uniqueIndex:idx_favorite_user_animal" json:"animal_id"`
}

// FavoriteRepository defines the data access interface for favorites.
// Add and Remove adjust the animal's favorite counter with a storage-level
// atomic increment/decrement; the counter is never read-modify-written in
// application code.
type FavoriteRepository interface {
	Add(ctx context.Context, userID, animalID uint) error
	Remove(ctx context.Context, userID, animalID uint) error
	Exists(ctx context.Context, userID, animalID uint) (bool, error)
	ListAnimalsByUser(ctx context.Context, userID uint, page PageRequest) (*PageResult[Animal], error)
	// UserIDsByAnimal returns the ids of every user that favorited the
	// animal, for notification fan-out on mutation.
	UserIDsByAnimal(ctx context.Context, animalID uint) ([]uint, error)
}
