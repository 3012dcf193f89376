package notification

import "github.com/gin-gonic/gin"

// NotificationModule implements the app.Module interface for notifications.
type NotificationModule struct {
	handler *NotificationHandler
	auth    gin.HandlerFunc
}

// NewModule creates a new NotificationModule with the given handler and auth
// middleware. Panics if either is nil.
func NewModule(h *NotificationHandler, auth gin.HandlerFunc) *NotificationModule {
	if h == nil {
		panic("notification.NewModule: handler must not be nil")
	}
	if auth == nil {
		panic("notification.NewModule: auth middleware must not be nil")
	}
	return &NotificationModule{handler: h, auth: auth}
}

// RegisterRoutes registers notification API routes.
func (m *NotificationModule) RegisterRoutes(api *gin.RouterGroup) {
	notifications := api.Group("/notifications", m.auth)
	notifications.GET("", m.handler.List)
	notifications.PUT("/:id/read", m.handler.MarkRead)
	notifications.DELETE("/:id", m.handler.Delete)
}
