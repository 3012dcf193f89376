package favorite

import (
	"github.com/gin-gonic/gin"

	"github.com/pawmarket/pawmarket/internal/domain"
	"github.com/pawmarket/pawmarket/internal/middleware"
	"github.com/pawmarket/pawmarket/internal/module/animal"
	"github.com/pawmarket/pawmarket/internal/pkg"
)

// FavoriteHandler handles REST API requests for favorites.
type FavoriteHandler struct {
	svc Service
}

// NewFavoriteHandler creates a new FavoriteHandler with the given service.
func NewFavoriteHandler(svc Service) *FavoriteHandler {
	return &FavoriteHandler{svc: svc}
}

// Add handles POST /api/v1/animals/:term/favorite.
func (h *FavoriteHandler) Add(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthenticated)
		return
	}

	if err := h.svc.Favorite(c.Request.Context(), actor, c.Param("term")); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}

// Remove handles DELETE /api/v1/animals/:term/favorite.
func (h *FavoriteHandler) Remove(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthenticated)
		return
	}

	if err := h.svc.Unfavorite(c.Request.Context(), actor, c.Param("term")); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}

// List handles GET /api/v1/favorites.
func (h *FavoriteHandler) List(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthenticated)
		return
	}

	page := pkg.ParsePageRequest(c)
	result, err := h.svc.ListFavorites(c.Request.Context(), actor, page)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	animals := make([]animal.AnimalDetail, 0, len(result.Items))
	for idx := range result.Items {
		animals = append(animals, animal.NewAnimalDetail(&result.Items[idx]))
	}

	pkg.List(c, domain.PageResult[animal.AnimalDetail]{
		Items:      animals,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}
