package animal

import (
	"fmt"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pawmarket/pawmarket/internal/domain"
)

// CreateAnimalRequest represents the input for publishing a new listing.
// The animal type (cat or dog) comes from the route, not the body.
type CreateAnimalRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Age         int    `json:"age" binding:"min=0,max=100"`
	Size        string `json:"size" binding:"required,oneof=small medium large"`
	Gender      string `json:"gender" binding:"required,oneof=male female"`
	Description string `json:"description" binding:"max=5000"`
	CityID      uint   `json:"cityId" binding:"required"`
}

// UpdateAnimalRequest represents the input for updating a listing. The slug
// and the owning shelter are immutable and absent here.
type UpdateAnimalRequest struct {
	Name        string `json:"name" binding:"required,min=1,max=100"`
	Age         int    `json:"age" binding:"min=0,max=100"`
	Size        string `json:"size" binding:"required,oneof=small medium large"`
	Gender      string `json:"gender" binding:"required,oneof=male female"`
	Description string `json:"description" binding:"max=5000"`
	Status      string `json:"status" binding:"required"`
	CityID      uint   `json:"cityId" binding:"required"`
}

// ListQuery is the raw, unresolved filter set taken from the query string.
// City and shelter names are resolved to ids by the service.
type ListQuery struct {
	Name        string
	Type        string
	Size        string
	Gender      string
	Status      string
	AgeBucket   string
	City        string
	ShelterName string
}

// listQueryKeys is the allow-list of recognized filter keys. Anything else
// in the query string is rejected instead of passed through to storage.
var listQueryKeys = map[string]bool{
	"page":        true,
	"limit":       true,
	"name":        true,
	"type":        true,
	"size":        true,
	"gender":      true,
	"status":      true,
	"age":         true,
	"city":        true,
	"shelterName": true,
}

// ParseListQuery extracts and validates the filter parameters. Unknown keys
// and out-of-enumeration values are validation errors.
func ParseListQuery(c *gin.Context) (ListQuery, error) {
	for key := range c.Request.URL.Query() {
		if !listQueryKeys[key] {
			return ListQuery{}, domain.NewAppError(domain.CodeValidation,
				fmt.Sprintf("unknown filter %q", key), nil)
		}
	}

	q := ListQuery{
		Name:        c.Query("name"),
		Type:        c.Query("type"),
		Size:        c.Query("size"),
		Gender:      c.Query("gender"),
		Status:      c.Query("status"),
		AgeBucket:   c.Query("age"),
		City:        c.Query("city"),
		ShelterName: c.Query("shelterName"),
	}

	if q.Type != "" && q.Type != domain.TypeCat && q.Type != domain.TypeDog {
		return ListQuery{}, domain.NewAppError(domain.CodeValidation,
			fmt.Sprintf("invalid type %q", q.Type), nil)
	}
	switch q.Size {
	case "", domain.SizeSmall, domain.SizeMedium, domain.SizeLarge:
	default:
		return ListQuery{}, domain.NewAppError(domain.CodeValidation,
			fmt.Sprintf("invalid size %q", q.Size), nil)
	}
	switch q.Gender {
	case "", domain.GenderMale, domain.GenderFemale:
	default:
		return ListQuery{}, domain.NewAppError(domain.CodeValidation,
			fmt.Sprintf("invalid gender %q", q.Gender), nil)
	}
	if q.Status != "" && !domain.ValidAnimalStatus(q.Status) {
		return ListQuery{}, domain.NewAppError(domain.CodeValidation,
			fmt.Sprintf("invalid status %q", q.Status), nil)
	}
	switch q.AgeBucket {
	case "", domain.BucketPuppy, domain.BucketAdult, domain.BucketSenior:
	default:
		return ListQuery{}, domain.NewAppError(domain.CodeValidation,
			fmt.Sprintf("invalid age bucket %q", q.AgeBucket), nil)
	}

	return q, nil
}

// Values re-encodes the non-empty filters as URL query parameters, using the
// same keys ParseListQuery accepts. The envelope's next/prev links carry them
// so following a link keeps the active filters.
func (q ListQuery) Values() url.Values {
	v := url.Values{}
	set := func(key, val string) {
		if val != "" {
			v.Set(key, val)
		}
	}
	set("name", q.Name)
	set("type", q.Type)
	set("size", q.Size)
	set("gender", q.Gender)
	set("status", q.Status)
	set("age", q.AgeBucket)
	set("city", q.City)
	set("shelterName", q.ShelterName)
	return v
}

// ShelterRef is the flattened shelter reference inside an animal detail.
type ShelterRef struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// CityRef is the flattened city reference inside an animal detail.
type CityRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// AnimalDetail is the flat response shape for a listing, joined records
// collapsed into plain fields.
type AnimalDetail struct {
	ID            uint       `json:"id"`
	Slug          string     `json:"slug"`
	Name          string     `json:"name"`
	Age           int        `json:"age"`
	AgeBucket     string     `json:"ageBucket"`
	Size          string     `json:"size"`
	Gender        string     `json:"gender"`
	Type          string     `json:"type"`
	Description   string     `json:"description"`
	Status        string     `json:"status"`
	FavoriteCount int64      `json:"favoriteCount"`
	Images        []string   `json:"images"`
	Shelter       ShelterRef `json:"shelter"`
	City          CityRef    `json:"city"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// NewAnimalDetail flattens a preloaded animal into its response shape.
func NewAnimalDetail(a *domain.Animal) AnimalDetail {
	images := make([]string, 0, len(a.Images))
	for _, img := range a.Images {
		images = append(images, img.URL)
	}

	detail := AnimalDetail{
		ID:            a.ID,
		Slug:          a.Slug,
		Name:          a.Name,
		Age:           a.Age,
		AgeBucket:     domain.BucketForAge(a.Age),
		Size:          a.Size,
		Gender:        a.Gender,
		Type:          a.Type,
		Description:   a.Description,
		Status:        a.Status,
		FavoriteCount: a.FavoriteCount,
		Images:        images,
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
	if a.Shelter != nil {
		detail.Shelter = ShelterRef{ID: a.Shelter.ID, Name: a.Shelter.Name, Username: a.Shelter.Username}
	} else {
		detail.Shelter = ShelterRef{ID: a.ShelterID}
	}
	if a.City != nil {
		detail.City = CityRef{ID: a.City.ID, Name: a.City.Name}
	} else {
		detail.City = CityRef{ID: a.CityID}
	}
	return detail
}

// ListResponse is the paginated listing envelope.
type ListResponse struct {
	CurrentPage  int            `json:"currentPage"`
	MaxPages     int            `json:"maxPages"`
	Limit        int            `json:"limit"`
	Total        int64          `json:"total"`
	Adopted      int64          `json:"adopted"`
	Fostered     int64          `json:"fostered"`
	AwaitingHome int64          `json:"awaitingHome"`
	Next         *string        `json:"next"`
	Prev         *string        `json:"prev"`
	Animals      []AnimalDetail `json:"animals"`
}

// NewListResponse flattens a domain listing page into the response envelope.
func NewListResponse(page *domain.ListingPage) ListResponse {
	animals := make([]AnimalDetail, 0, len(page.Animals))
	for idx := range page.Animals {
		animals = append(animals, NewAnimalDetail(&page.Animals[idx]))
	}

	return ListResponse{
		CurrentPage:  page.CurrentPage,
		MaxPages:     page.MaxPages,
		Limit:        page.Limit,
		Total:        page.Total,
		Adopted:      page.Counts.Adopted,
		Fostered:     page.Counts.Fostered,
		AwaitingHome: page.Counts.AwaitingHome,
		Next:         page.Next,
		Prev:         page.Prev,
		Animals:      animals,
	}
}
