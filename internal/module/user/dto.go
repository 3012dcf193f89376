package user

import (
	"time"

	"github.com/pawmarket/pawmarket/internal/domain"
)

// UpdateUserRequest represents the input for updating a profile.
type UpdateUserRequest struct {
	Name   string `json:"name" form:"name" binding:"required,min=1,max=100"`
	CityID *uint  `json:"city_id" form:"city_id"`
}

// UserResponse is the role-shaped public view of a user. The role mapping is
// an explicit switch: adopters never pick up shelter-only fields.
type UserResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Username  string    `json:"username,omitempty"`
	CityID    *uint     `json:"city_id,omitempty"`
	AvatarURL string    `json:"avatar_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// NewUserResponse maps a user onto its role-specific response shape.
func NewUserResponse(u *domain.User) UserResponse {
	resp := UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
	}

	switch u.Role {
	case domain.RoleShelter:
		resp.Username = u.Username
		resp.CityID = u.CityID
	case domain.RoleAdopter:
		resp.CityID = u.CityID
	case domain.RoleAdmin:
		resp.Username = u.Username
	}

	return resp
}
