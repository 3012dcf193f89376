package domain

import "context"

// Animal types.
const (
	TypeCat = "cat"
	TypeDog = "dog"
)

// Animal sizes.
const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

// Animal genders.
const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Animal statuses. The first three track moderation, the rest the adoption
// lifecycle. An animal carries exactly one status at a time.
const (
	StatusPending      = "pending"
	StatusRejected     = "rejected"
	StatusPublished    = "published"
	StatusAdopted      = "adopted"
	StatusFostered     = "fostered"
	StatusReserved     = "reserved"
	StatusAwaitingHome = "awaiting_home"
)

// AnimalStatuses lists every valid animal status.
var AnimalStatuses = []string{
	StatusPending, StatusRejected, StatusPublished,
	StatusAdopted, StatusFostered, StatusReserved, StatusAwaitingHome,
}

// ValidAnimalStatus reports whether s is a known animal status.
func ValidAnimalStatus(s string) bool {
	for _, known := range AnimalStatuses {
		if s == known {
			return true
		}
	}
	return false
}

// Age buckets. The partition is total and disjoint over non-negative ages:
// puppy [0,2), adult [2,10), senior [10,∞).
const (
	BucketPuppy  = "puppy"
	BucketAdult  = "adult"
	BucketSenior = "senior"
)

// AgeRange returns the half-open [min, max) age range for a bucket.
// hasMax is false for the unbounded senior bucket. ok is false for an
// unknown bucket name.
func AgeRange(bucket string) (min, max int, hasMax, ok bool) {
	switch bucket {
	case BucketPuppy:
		return 0, 2, true, true
	case BucketAdult:
		return 2, 10, true, true
	case BucketSenior:
		return 10, 0, false, true
	}
	return 0, 0, false, false
}

// BucketForAge returns the bucket a given age falls into.
func BucketForAge(age int) string {
	switch {
	case age < 2:
		return BucketPuppy
	case age < 10:
		return BucketAdult
	default:
		return BucketSenior
	}
}

// Animal is a published adoption listing. Slug is a second, human-friendly
// unique key assigned at creation and never changed afterwards; ShelterID is
// the immutable owner reference.
type Animal struct {
	BaseModel
	Slug          string        `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Name          string        `gorm:"size:100;not null" json:"name"`
	Age           int           `gorm:"not null" json:"age"`
	Size          string        `gorm:"size:20;not null" json:"size"`
	Gender        string        `gorm:"size:20;not null" json:"gender"`
	Type          string        `gorm:"size:20;not null" json:"type"`
	Description   string        `gorm:"type:text" json:"description"`
	Status        string        `gorm:"size:20;not null;default:pending;index" json:"status"`
	ShelterID     uint          `gorm:"not null;index" json:"shelter_id"`
	CityID        uint          `gorm:"not null;index" json:"city_id"`
	FavoriteCount int64         `gorm:"not null;default:0" json:"favorite_count"`
	Images        []AnimalImage `gorm:"constraint:OnDelete:CASCADE" json:"images"`

	Shelter *User `gorm:"foreignKey:ShelterID" json:"-"`
	City    *City `gorm:"foreignKey:CityID" json:"-"`
}

// AnimalImage is one entry of an animal's ordered image list. ObjectKey is
// the object-store key used for deletion.
type AnimalImage struct {
	BaseModel
	AnimalID  uint   `gorm:"not null;index" json:"-"`
	URL       string `gorm:"size:512;not null" json:"url"`
	ObjectKey string `gorm:"size:255;not null" json:"-"`
	Position  int    `gorm:"not null;default:0" json:"position"`
}

// AnimalFilter is the normalized, typed predicate set for listing reads.
// City and shelter names are resolved to foreign-key ids before the filter
// reaches storage; zero values mean "no constraint".
type AnimalFilter struct {
	NameContains string
	Type         string
	Size         string
	Gender       string
	Status       string
	AgeBucket    string
	CityID       uint
	ShelterID    uint
}

// StatusCounts holds per-lifecycle-status counts computed against the same
// predicate as the listing read, minus any status filter.
type StatusCounts struct {
	Adopted      int64 `json:"adopted"`
	Fostered     int64 `json:"fostered"`
	AwaitingHome int64 `json:"awaiting_home"`
}

// ListingPage is the paginated envelope returned by the public listing view.
// Next and Prev are relative URLs, nil at the respective boundary.
type ListingPage struct {
	CurrentPage int          `json:"current_page"`
	MaxPages    int          `json:"max_pages"`
	Limit       int          `json:"limit"`
	Total       int64        `json:"total"`
	Counts      StatusCounts `json:"counts"`
	Next        *string      `json:"next"`
	Prev        *string      `json:"prev"`
	Animals     []Animal     `json:"animals"`
}

// AnimalRepository defines the data access interface for animal listings.
type AnimalRepository interface {
	// Create inserts the animal. A duplicate slug surfaces as an
	// already-exists error distinguishable via IsAlreadyExists.
	Create(ctx context.Context, animal *Animal) error
	GetByID(ctx context.Context, id uint) (*Animal, error)
	GetBySlug(ctx context.Context, slug string) (*Animal, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	// List runs the count, per-status counts, and page fetch in one read
	// transaction so the envelope is internally consistent under
	// concurrent writes.
	List(ctx context.Context, filter AnimalFilter, page PageRequest) ([]Animal, int64, StatusCounts, error)
	// Update writes the mutable columns only. Slug, ShelterID, and
	// FavoriteCount are never written back from a loaded copy; the counter
	// moves exclusively through FavoriteRepository's atomic increments.
	Update(ctx context.Context, animal *Animal) error
	Delete(ctx context.Context, id uint) error
	AddImage(ctx context.Context, image *AnimalImage) error
	GetImage(ctx context.Context, animalID, imageID uint) (*AnimalImage, error)
	DeleteImage(ctx context.Context, animalID, imageID uint) error
}
