package chat

import (
	"github.com/gin-gonic/gin"

	"github.com/pawmarket/pawmarket/internal/domain"
	"github.com/pawmarket/pawmarket/internal/middleware"
)

// ChatModule implements the app.Module interface for chats.
type ChatModule struct {
	handler *ChatHandler
	auth    gin.HandlerFunc
}

// NewModule creates a new ChatModule with the given handler and auth
// middleware. Panics if either is nil.
func NewModule(h *ChatHandler, auth gin.HandlerFunc) *ChatModule {
	if h == nil {
		panic("chat.NewModule: handler must not be nil")
	}
	if auth == nil {
		panic("chat.NewModule: auth middleware must not be nil")
	}
	return &ChatModule{handler: h, auth: auth}
}

// RegisterRoutes registers chat API routes.
func (m *ChatModule) RegisterRoutes(api *gin.RouterGroup) {
	chats := api.Group("/chats", m.auth)
	chats.POST("", middleware.RequireRole(domain.RoleAdopter), m.handler.Start)
	chats.GET("", m.handler.List)
	chats.GET("/:id/messages", m.handler.Messages)
	chats.POST("/:id/messages", m.handler.Send)
}
