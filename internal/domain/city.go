package domain

import "context"

// City is a reference entity animals and users point at. Filtering by city
// name resolves against this table before any listing read.
type City struct {
	BaseModel
	Name string `gorm:"size:100;uniqueIndex;not null" json:"name"`
}

// CityRepository defines the data access interface for cities.
type CityRepository interface {
	Create(ctx context.Context, city *City) error
	GetByID(ctx context.Context, id uint) (*City, error)
	GetByName(ctx context.Context, name string) (*City, error)
	List(ctx context.Context) ([]City, error)
}
