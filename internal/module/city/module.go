package city

import (
	"github.com/gin-gonic/gin"

	"github.com/pawmarket/pawmarket/internal/domain"
	"github.com/pawmarket/pawmarket/internal/middleware"
)

// CityModule implements the app.Module interface for the city domain.
type CityModule struct {
	handler *CityHandler
	auth    gin.HandlerFunc
}

// NewModule creates a new CityModule with the given handler and auth
// middleware. Panics if either is nil.
func NewModule(h *CityHandler, auth gin.HandlerFunc) *CityModule {
	if h == nil {
		panic("city.NewModule: handler must not be nil")
	}
	if auth == nil {
		panic("city.NewModule: auth middleware must not be nil")
	}
	return &CityModule{handler: h, auth: auth}
}

// RegisterRoutes registers city API routes.
func (m *CityModule) RegisterRoutes(api *gin.RouterGroup) {
	cities := api.Group("/cities")
	cities.GET("", m.handler.List)
	cities.POST("", m.auth, middleware.RequireRole(domain.RoleAdmin), m.handler.Create)
}
