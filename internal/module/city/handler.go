package city

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pawmarket/pawmarket/internal/domain"
	"github.com/pawmarket/pawmarket/internal/pkg"
)

// CreateCityRequest represents the input for creating a city.
type CreateCityRequest struct {
	Name string `json:"name" form:"name" binding:"required,min=1,max=100"`
}

// CityHandler handles REST API requests for the city resource.
type CityHandler struct {
	repo domain.CityRepository
}

// NewCityHandler creates a new CityHandler with the given repository.
func NewCityHandler(repo domain.CityRepository) *CityHandler {
	return &CityHandler{repo: repo}
}

// List handles GET /api/v1/cities.
func (h *CityHandler) List(c *gin.Context) {
	cities, err := h.repo.List(c.Request.Context())
	if err != nil {
		pkg.Error(c, err)
		return
	}
	pkg.Success(c, cities)
}

// Create handles POST /api/v1/cities (admin only).
func (h *CityHandler) Create(c *gin.Context) {
	var req CreateCityRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	city := &domain.City{Name: strings.TrimSpace(req.Name)}
	if err := h.repo.Create(c.Request.Context(), city); err != nil {
		if domain.IsAlreadyExists(err) {
			pkg.Error(c, domain.NewAppError(domain.CodeAlreadyExists, "city already exists", err))
			return
		}
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, city)
}
