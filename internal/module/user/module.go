package user

import (
	"github.com/gin-gonic/gin"

	"github.com/pawmarket/pawmarket/internal/domain"
	"github.com/pawmarket/pawmarket/internal/middleware"
)

// UserModule implements the app.Module interface for the user domain.
type UserModule struct {
	handler *UserHandler
	auth    gin.HandlerFunc
}

// NewModule creates a new UserModule with the given handler and auth
// middleware. Panics if either is nil.
func NewModule(h *UserHandler, auth gin.HandlerFunc) *UserModule {
	if h == nil {
		panic("user.NewModule: handler must not be nil")
	}
	if auth == nil {
		panic("user.NewModule: auth middleware must not be nil")
	}
	return &UserModule{handler: h, auth: auth}
}

// RegisterRoutes registers user API routes.
func (m *UserModule) RegisterRoutes(api *gin.RouterGroup) {
	users := api.Group("/users", m.auth)
	users.GET("/me", m.handler.Me)
	users.PUT("/me", m.handler.UpdateMe)
	users.DELETE("/me", m.handler.DeleteMe)
	users.POST("/me/avatar", m.handler.UploadAvatar)

	admin := users.Group("", middleware.RequireRole(domain.RoleAdmin))
	admin.GET("", m.handler.List)
	admin.GET("/:id", m.handler.Get)
	admin.DELETE("/:id", m.handler.Delete)
}
