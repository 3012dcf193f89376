package chat

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pawmarket/pawmarket/internal/domain"
	"github.com/pawmarket/pawmarket/internal/middleware"
	"github.com/pawmarket/pawmarket/internal/pkg"
)

// ChatHandler handles REST API requests for chats and messages.
type ChatHandler struct {
	svc Service
}

// NewChatHandler creates a new ChatHandler with the given service.
func NewChatHandler(svc Service) *ChatHandler {
	return &ChatHandler{svc: svc}
}

// Start handles POST /api/v1/chats.
func (h *ChatHandler) Start(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthenticated)
		return
	}

	var req StartChatRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	chat, err := h.svc.Start(c.Request.Context(), actor, req.Animal)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, chat)
}

// List handles GET /api/v1/chats.
func (h *ChatHandler) List(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthenticated)
		return
	}

	page := pkg.ParsePageRequest(c)
	result, err := h.svc.ListChats(c.Request.Context(), actor, page)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// Messages handles GET /api/v1/chats/:id/messages.
func (h *ChatHandler) Messages(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthenticated)
		return
	}

	chatID, ok := parseChatID(c)
	if !ok {
		return
	}

	page := pkg.ParsePageRequest(c)
	result, err := h.svc.ListMessages(c.Request.Context(), actor, chatID, page)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.List(c, result)
}

// Send handles POST /api/v1/chats/:id/messages.
func (h *ChatHandler) Send(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthenticated)
		return
	}

	chatID, ok := parseChatID(c)
	if !ok {
		return
	}

	var req SendMessageRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	msg, err := h.svc.SendMessage(c.Request.Context(), actor, chatID, req.Body)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, msg)
}

func parseChatID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "invalid chat id", err))
		return 0, false
	}
	return uint(id), true
}
