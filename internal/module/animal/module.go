package animal

import (
	"github.com/gin-gonic/gin"

	"github.com/pawmarket/pawmarket/internal/domain"
	"github.com/pawmarket/pawmarket/internal/middleware"
)

// AnimalModule implements the app.Module interface for the animal domain.
type AnimalModule struct {
	handler *AnimalHandler
	auth    gin.HandlerFunc
}

// NewModule creates a new AnimalModule with the given handler and auth
// middleware. Panics if either is nil.
func NewModule(h *AnimalHandler, auth gin.HandlerFunc) *AnimalModule {
	if h == nil {
		panic("animal.NewModule: handler must not be nil")
	}
	if auth == nil {
		panic("animal.NewModule: auth middleware must not be nil")
	}
	return &AnimalModule{handler: h, auth: auth}
}

// RegisterRoutes registers animal API routes. Browsing is public; creation
// requires the shelter role and mutation is owner-or-admin (checked in the
// service).
func (m *AnimalModule) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/animals", m.handler.List)
	api.GET("/animals/:term", m.handler.Get)

	shelterOnly := middleware.RequireRole(domain.RoleShelter)
	api.POST("/animals/cat", m.auth, shelterOnly, m.handler.Create(domain.TypeCat))
	api.POST("/animals/dog", m.auth, shelterOnly, m.handler.Create(domain.TypeDog))

	api.PUT("/animals/:term", m.auth, m.handler.Update)
	api.DELETE("/animals/:term", m.auth, m.handler.Delete)
	api.POST("/animals/:term/images", m.auth, m.handler.UploadImage)
	api.DELETE("/animals/:term/images/:imageID", m.auth, m.handler.DeleteImage)
}
