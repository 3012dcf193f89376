package animal

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/pawmarket/pawmarket/internal/domain"
)

func newListQueryContext(t *testing.T, rawQuery string) *gin.Context {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/animals?"+rawQuery, nil)
	return c
}

func TestParseListQuery_AcceptsKnownKeys(t *testing.T) {
	c := newListQueryContext(t,
		"name=nero&type=cat&size=small&gender=male&status=published&age=puppy&city=Lisbon&shelterName=paws&page=2&limit=20")

	q, err := ParseListQuery(c)
	if err != nil {
		t.Fatalf("ParseListQuery: %v", err)
	}
	want := ListQuery{
		Name: "nero", Type: domain.TypeCat, Size: domain.SizeSmall,
		Gender: domain.GenderMale, Status: domain.StatusPublished,
		AgeBucket: domain.BucketPuppy, City: "Lisbon", ShelterName: "paws",
	}
	if q != want {
		t.Errorf("query = %+v; want %+v", q, want)
	}
}

func TestParseListQuery_RejectsUnknownKey(t *testing.T) {
	tests := []string{"color=black", "Name=nero", "offset=5"}
	for _, raw := range tests {
		t.Run(raw, func(t *testing.T) {
			c := newListQueryContext(t, raw)
			if _, err := ParseListQuery(c); !domain.IsValidation(err) {
				t.Errorf("error = %v; want validation", err)
			}
		})
	}
}

func TestParseListQuery_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "unknown type", raw: "type=hamster"},
		{name: "unknown size", raw: "size=huge"},
		{name: "unknown gender", raw: "gender=other"},
		{name: "unknown status", raw: "status=available"},
		{name: "unknown age bucket", raw: "age=elder"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newListQueryContext(t, tt.raw)
			if _, err := ParseListQuery(c); !domain.IsValidation(err) {
				t.Errorf("error = %v; want validation", err)
			}
		})
	}
}

func TestNewAnimalDetail_FlattensAssociations(t *testing.T) {
	animal := &domain.Animal{
		BaseModel: domain.BaseModel{ID: 5},
		Slug:      "paws-nero", Name: "Nero", Age: 12,
		Size: domain.SizeSmall, Gender: domain.GenderMale, Type: domain.TypeCat,
		Status: domain.StatusPublished, ShelterID: 1, CityID: 2, FavoriteCount: 3,
		Images: []domain.AnimalImage{
			{URL: "http://img/1", Position: 0},
			{URL: "http://img/2", Position: 1},
		},
		Shelter: &domain.User{BaseModel: domain.BaseModel{ID: 1}, Name: "Paw Haven", Username: "paws"},
		City:    &domain.City{BaseModel: domain.BaseModel{ID: 2}, Name: "Lisbon"},
	}

	detail := NewAnimalDetail(animal)

	if detail.AgeBucket != domain.BucketSenior {
		t.Errorf("AgeBucket = %q; want senior", detail.AgeBucket)
	}
	if len(detail.Images) != 2 || detail.Images[0] != "http://img/1" {
		t.Errorf("Images = %v; want urls in position order", detail.Images)
	}
	if detail.Shelter.Username != "paws" || detail.City.Name != "Lisbon" {
		t.Errorf("refs = %+v / %+v; want flattened shelter and city", detail.Shelter, detail.City)
	}
}

func TestNewAnimalDetail_MissingAssociationsKeepIDs(t *testing.T) {
	detail := NewAnimalDetail(&domain.Animal{
		BaseModel: domain.BaseModel{ID: 5}, ShelterID: 7, CityID: 8,
	})
	if detail.Shelter.ID != 7 || detail.City.ID != 8 {
		t.Errorf("refs = %+v / %+v; want bare ids", detail.Shelter, detail.City)
	}
	if detail.Images == nil {
		t.Error("Images should be an empty slice, not nil")
	}
}
