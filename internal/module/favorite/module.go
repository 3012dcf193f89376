package favorite

import (
	"github.com/gin-gonic/gin"

	"github.com/pawmarket/pawmarket/internal/domain"
	"github.com/pawmarket/pawmarket/internal/middleware"
)

// FavoriteModule implements the app.Module interface for favorites.
type FavoriteModule struct {
	handler *FavoriteHandler
	auth    gin.HandlerFunc
}

// NewModule creates a new FavoriteModule with the given handler and auth
// middleware. Panics if either is nil.
func NewModule(h *FavoriteHandler, auth gin.HandlerFunc) *FavoriteModule {
	if h == nil {
		panic("favorite.NewModule: handler must not be nil")
	}
	if auth == nil {
		panic("favorite.NewModule: auth middleware must not be nil")
	}
	return &FavoriteModule{handler: h, auth: auth}
}

// RegisterRoutes registers favorite API routes.
func (m *FavoriteModule) RegisterRoutes(api *gin.RouterGroup) {
	adopter := middleware.RequireRole(domain.RoleAdopter)
	api.POST("/animals/:term/favorite", m.auth, adopter, m.handler.Add)
	api.DELETE("/animals/:term/favorite", m.auth, adopter, m.handler.Remove)
	api.GET("/favorites", m.auth, m.handler.List)
}
