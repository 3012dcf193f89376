package user

import (
	"io"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/pawmarket/pawmarket/internal/domain"
	"github.com/pawmarket/pawmarket/internal/middleware"
	"github.com/pawmarket/pawmarket/internal/pkg"
	"github.com/pawmarket/pawmarket/internal/platform/objstore"
)

const maxAvatarBytes = 5 << 20

// UserHandler handles REST API requests for the user resource.
type UserHandler struct {
	svc   domain.UserService
	store objstore.Store
}

// NewUserHandler creates a new UserHandler with the given service.
// store may be nil when object storage is not configured.
func NewUserHandler(svc domain.UserService, store objstore.Store) *UserHandler {
	return &UserHandler{svc: svc, store: store}
}

// Me handles GET /api/v1/users/me.
func (h *UserHandler) Me(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthenticated)
		return
	}

	user, err := h.svc.GetUser(c.Request.Context(), actor.ID)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, NewUserResponse(user))
}

// UpdateMe handles PUT /api/v1/users/me.
func (h *UserHandler) UpdateMe(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthenticated)
		return
	}

	var req UpdateUserRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	user, err := h.svc.UpdateUser(c.Request.Context(), actor, actor.ID, req.Name, req.CityID)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, NewUserResponse(user))
}

// DeleteMe handles DELETE /api/v1/users/me.
func (h *UserHandler) DeleteMe(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthenticated)
		return
	}

	if err := h.svc.DeleteUser(c.Request.Context(), actor, actor.ID); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}

// UploadAvatar handles POST /api/v1/users/me/avatar (multipart form, field
// "avatar").
func (h *UserHandler) UploadAvatar(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthenticated)
		return
	}
	if h.store == nil {
		pkg.Error(c, domain.NewAppError(domain.CodeInternal, "object storage is not configured", nil))
		return
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "avatar file is required", err))
		return
	}
	if fileHeader.Size > maxAvatarBytes {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "avatar file too large", nil))
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeInternal, "could not read uploaded file", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxAvatarBytes))
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeInternal, "could not read uploaded file", err))
		return
	}

	url, key, err := h.store.Upload(c.Request.Context(), "avatars",
		fileHeader.Filename, fileHeader.Header.Get("Content-Type"), data)
	if err != nil {
		pkg.Error(c, domain.NewAppError(domain.CodeInternal, "avatar upload failed", err))
		return
	}

	user, err := h.svc.SetAvatar(c.Request.Context(), actor, actor.ID, url, key)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, NewUserResponse(user))
}

// Get handles GET /api/v1/users/:id (admin only).
func (h *UserHandler) Get(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	user, err := h.svc.GetUser(c.Request.Context(), id)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, NewUserResponse(user))
}

// List handles GET /api/v1/users (admin only).
func (h *UserHandler) List(c *gin.Context) {
	page := pkg.ParsePageRequest(c)
	filter := domain.UserFilter{
		NameContains: c.Query("name"),
		Role:         c.Query("role"),
	}
	if cityID, err := strconv.ParseUint(c.Query("city_id"), 10, 64); err == nil {
		filter.CityID = uint(cityID)
	}
	if filter.Role != "" && !domain.ValidRole(filter.Role) {
		pkg.Error(c, domain.NewAppError(domain.CodeValidation, "invalid role filter", nil))
		return
	}

	result, err := h.svc.ListUsers(c.Request.Context(), filter, page)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	users := make([]UserResponse, 0, len(result.Items))
	for idx := range result.Items {
		users = append(users, NewUserResponse(&result.Items[idx]))
	}

	pkg.List(c, domain.PageResult[UserResponse]{
		Items:      users,
		Total:      result.Total,
		Page:       result.Page,
		Limit:      result.Limit,
		TotalPages: result.TotalPages,
	})
}

// Delete handles DELETE /api/v1/users/:id (admin only).
func (h *UserHandler) Delete(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		pkg.Error(c, domain.ErrUnauthenticated)
		return
	}

	id, err := parseID(c)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	if err := h.svc.DeleteUser(c.Request.Context(), actor, id); err != nil {
		pkg.Error(c, err)
		return
	}

	pkg.Success(c, nil)
}

func parseID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, errInvalidID
	}
	return uint(id), nil
}

var errInvalidID = domain.NewAppError(domain.CodeValidation, "invalid id", nil)
