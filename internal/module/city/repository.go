package city

import (
	"context"

	"gorm.io/gorm"

	"github.com/pawmarket/pawmarket/internal/domain"
	"github.com/pawmarket/pawmarket/internal/pkg"
)

// cityRepository implements domain.CityRepository using GORM.
type cityRepository struct {
	db *gorm.DB
}

// NewCityRepository creates a new CityRepository backed by the given GORM database.
func NewCityRepository(db *gorm.DB) domain.CityRepository {
	return &cityRepository{db: db}
}

// Create inserts a new city.
func (r *cityRepository) Create(ctx context.Context, city *domain.City) error {
	if err := r.db.WithContext(ctx).Create(city).Error; err != nil {
		return pkg.MapDBError(err)
	}
	return nil
}

// GetByID retrieves a city by its primary key.
func (r *cityRepository) GetByID(ctx context.Context, id uint) (*domain.City, error) {
	var city domain.City
	if err := r.db.WithContext(ctx).First(&city, id).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &city, nil
}

// GetByName retrieves a city by its unique name.
func (r *cityRepository) GetByName(ctx context.Context, name string) (*domain.City, error) {
	var city domain.City
	if err := r.db.WithContext(ctx).Where("name = ?", name).First(&city).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return &city, nil
}

// List returns all cities ordered by name.
func (r *cityRepository) List(ctx context.Context) ([]domain.City, error) {
	var cities []domain.City
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&cities).Error; err != nil {
		return nil, pkg.MapDBError(err)
	}
	return cities, nil
}
