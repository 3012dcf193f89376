package domain

import "context"

// User roles. A shelter publishes animal listings; an adopter browses and
// favorites them; an admin may act on any resource.
const (
	RoleAdmin   = "admin"
	RoleShelter = "shelter"
	RoleAdopter = "adopter"
)

// ValidRole reports whether role is one of the known user roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleShelter, RoleAdopter:
		return true
	}
	return false
}

// User represents an account in the system. Username is required for
// shelters and doubles as the slug prefix for their listings. The unique
// index is partial: adopters may leave the username empty.
type User struct {
	BaseModel
	Name         string `gorm:"size:100;not null" json:"name"`
	Username     string `gorm:"size:100;uniqueIndex:idx_users_username,where:username <> ''" json:"username"`
	Email        string `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255" json:"-"`
	Role         string `gorm:"size:20;not null;default:adopter" json:"role"`
	CityID       *uint  `json:"city_id"`
	AvatarURL    string `gorm:"size:512" json:"avatar_url"`
	AvatarKey    string `gorm:"size:255" json:"-"`
}

// Actor identifies the authenticated caller of a request.
type Actor struct {
	ID    uint
	Name  string
	Email string
	Role  string
}

// CheckPermission is the centralized ownership check: an actor may act on a
// resource iff it is an admin or it owns the resource. Returns ErrForbidden
// otherwise.
func CheckPermission(actor Actor, ownerID uint) error {
	if actor.Role == RoleAdmin {
		return nil
	}
	if actor.ID == ownerID {
		return nil
	}
	return ErrForbidden
}

// UserFilter holds the typed filter set for listing users.
type UserFilter struct {
	NameContains string
	Role         string
	CityID       uint
}

// UserRepository defines the data access interface for users.
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id uint) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context, filter UserFilter, page PageRequest) (*PageResult[User], error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uint) error
}

// UserService defines the business logic interface for users.
type UserService interface {
	GetUser(ctx context.Context, id uint) (*User, error)
	ListUsers(ctx context.Context, filter UserFilter, page PageRequest) (*PageResult[User], error)
	UpdateUser(ctx context.Context, actor Actor, id uint, name string, cityID *uint) (*User, error)
	DeleteUser(ctx context.Context, actor Actor, id uint) error
	SetAvatar(ctx context.Context, actor Actor, id uint, url, key string) (*User, error)
}
