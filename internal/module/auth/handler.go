package auth

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pawmarket/pawmarket/internal/domain"
	"github.com/pawmarket/pawmarket/internal/pkg"
)

const refreshCookieName = "refresh_token"

// CookieConfig controls how the refresh cookie is written.
type CookieConfig struct {
	Domain string
	Secure bool
}

// AuthHandler handles REST API requests for authentication.
type AuthHandler struct {
	svc    Service
	cookie CookieConfig
}

// NewHandler creates a new AuthHandler with the given service.
func NewHandler(svc Service, cookie CookieConfig) *AuthHandler {
	return &AuthHandler{svc: svc, cookie: cookie}
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	user, err := h.svc.Register(c.Request.Context(), req)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, pkg.Response{
		Code:    http.StatusCreated,
		Message: "user registered successfully",
		Data: RegisterResponse{
			ID:        user.ID,
			Name:      user.Name,
			Username:  user.Username,
			Email:     user.Email,
			Role:      user.Role,
			CreatedAt: user.CreatedAt,
		},
	})
}

// Login handles POST /api/v1/auth/login. The access token is returned in the
// body; the refresh token is set as an httpOnly cookie.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !pkg.BindAndValidate(c, &req) {
		return
	}

	pair, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	h.setRefreshCookie(c, pair)
	pkg.Success(c, TokenResponse{
		AccessToken: pair.AccessToken,
		ExpiresAt:   pair.AccessExpiresAt.Unix(),
	})
}

// Refresh handles POST /api/v1/auth/refresh. It reads the refresh cookie,
// rotates the pair, and sets the new cookie.
func (h *AuthHandler) Refresh(c *gin.Context) {
	refresh, err := c.Cookie(refreshCookieName)
	if err != nil || refresh == "" {
		pkg.Error(c, domain.ErrUnauthenticated)
		return
	}

	pair, err := h.svc.Refresh(c.Request.Context(), refresh)
	if err != nil {
		pkg.Error(c, err)
		return
	}

	h.setRefreshCookie(c, pair)
	pkg.Success(c, TokenResponse{
		AccessToken: pair.AccessToken,
		ExpiresAt:   pair.AccessExpiresAt.Unix(),
	})
}

// Logout handles POST /api/v1/auth/logout by expiring the refresh cookie.
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetCookie(refreshCookieName, "", -1, "/api/v1/auth", h.cookie.Domain, h.cookie.Secure, true)
	pkg.Success(c, nil)
}

func (h *AuthHandler) setRefreshCookie(c *gin.Context, pair *TokenPair) {
	maxAge := int(time.Until(pair.RefreshExpiresAt).Seconds())
	c.SetCookie(refreshCookieName, pair.RefreshToken, maxAge, "/api/v1/auth", h.cookie.Domain, h.cookie.Secure, true)
}
