package notification

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pawmarket/pawmarket/internal/domain"
	"github.com/pawmarket/pawmarket/internal/middleware"
	"github.com/pawmarket/pawmarket/internal/pkg"
)

// NotificationHandler handles REST API requests for the notification inbox.
type NotificationHandler struct {
	svc Service
}

// NewNotificationHandler creates a new NotificationHandler with the given service.
func NewNotificationHandler(svc Service) *NotificationHandler {
	return &NotificationHandler{svc: svc}
}

// List handles GET /api/v1/notifications.
func (h *NotificationHandler) List(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthenticated)
		return
	}

	page := pkg.ParsePageRequest(c)
	result, err := h.svc.List(c.Request.Context(), actor, page)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// MarkRead handles PUT /api/v1/notifications/:id/read.
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthenticated)
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.svc.MarkRead(c.Request.Context(), actor, id); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}

// Delete handles DELETE /api/v1/notifications/:id.
func (h *NotificationHandler) Delete(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthenticated)
		return
	}

	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), actor, id); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}

func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "invalid id", err))
		return 0, false
	}
	return uint(id), true
}
