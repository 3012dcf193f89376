package auth

import (
	"context"
	"log/slog"
	"net/mail"
	"strings"
	"time"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"github.com/pawmarket/pawmarket/internal/domain"
	"github.com/pawmarket/pawmarket/internal/platform/mailer"
	"github.com/pawmarket/pawmarket/internal/platform/token"
)

// TokenPair carries a freshly minted access/refresh pair.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  time.Time
	RefreshToken     string
	RefreshExpiresAt time.Time
}

// Service defines the authentication operations.
type Service interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	// Refresh validates a refresh token, reloads the user, and rotates the
	// pair. A stale token for a deleted user fails as unauthenticated.
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
}

// authService implements Service.
type authService struct {
	issuer   *token.Issuer
	userRepo domain.UserRepository
	cities   domain.CityRepository
	mail     mailer.Mailer
	logger   *slog.Logger
}

// NewService creates a new auth Service. mail may be nil when SMTP is not
// configured.
func NewService(issuer *token.Issuer, userRepo domain.UserRepository, cities domain.CityRepository, mail mailer.Mailer, logger *slog.Logger) Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &authService{
		issuer:   issuer,
		userRepo: userRepo,
		cities:   cities,
		mail:     mail,
		logger:   logger,
	}
}

// Register creates a new adopter or shelter account. The admin role can
// never be self-assigned.
func (s *authService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	name := strings.TrimSpace(req.Name)
	email := strings.TrimSpace(req.Email)
	username := strings.TrimSpace(req.Username)

	if err := validateRegisterInput(name, email, req.Password); err != nil {
		return nil, err
	}

	switch req.Role {
	case domain.RoleAdopter, domain.RoleShelter:
	default:
		return nil, domain.NewAppError(domain.CodeValidation, "role must be adopter or shelter", nil)
	}

	if req.Role == domain.RoleShelter {
		if username == "" {
			return nil, domain.NewAppError(domain.CodeValidation, "username is required for shelters", nil)
		}
		if req.CityID == nil {
			return nil, domain.NewAppError(domain.CodeValidation, "city is required for shelters", nil)
		}
	}

	if req.CityID != nil {
		if _, err := s.cities.GetByID(ctx, *req.CityID); err != nil {
			if domain.IsNotFound(err) {
				return nil, domain.NewAppError(domain.CodeValidation, "city does not exist", nil)
			}
			return nil, err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, domain.NewAppError(domain.CodeInternal, "failed to hash password", err)
	}

	user := domain.User{
		Name:         name,
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		Role:         req.Role,
		CityID:       req.CityID,
	}

	if err := s.userRepo.Create(ctx, &user); err != nil {
		return nil, err
	}

	if s.mail != nil {
		if err := s.mail.Send(user.Email, "Welcome to PawMarket",
			"Hi "+user.Name+", your account is ready."); err != nil {
			s.logger.Warn("welcome mail failed",
				slog.String("email", user.Email),
				slog.Any("error", err),
			)
		}
	}

	return &user, nil
}

// Login authenticates a user by email and password and returns a token pair.
func (s *authService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	user, err := s.userRepo.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		// Don't reveal whether the user exists — always return unauthenticated.
		if domain.IsNotFound(err) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrUnauthenticated
	}

	return s.issuePair(user)
}

// Refresh rotates an access/refresh pair.
func (s *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	actor, err := s.issuer.ParseRefresh(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, actor.ID)
	if err != nil {
		if domain.IsNotFound(err) {
			return nil, domain.ErrUnauthenticated
		}
		return nil, err
	}

	return s.issuePair(user)
}

func (s *authService) issuePair(user *domain.User) (*TokenPair, error) {
	actor := domain.Actor{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Role:  user.Role,
	}

	access, accessExp, err := s.issuer.IssueAccess(actor)
	if err != nil {
		return nil, err
	}
	refresh, refreshExp, err := s.issuer.IssueRefresh(actor)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:      access,
		AccessExpiresAt:  accessExp,
		RefreshToken:     refresh,
		RefreshExpiresAt: refreshExp,
	}, nil
}

// validateRegisterInput validates registration input. name and email are expected
// to be pre-trimmed by callers; TrimSpace here ensures the validator is self-contained.
func validateRegisterInput(name, email, password string) error {
	nameLen := utf8.RuneCountInString(strings.TrimSpace(name))
	if nameLen == 0 {
		return domain.NewAppError(domain.CodeValidation, "name is required", nil)
	}
	if nameLen > 100 {
		return domain.NewAppError(domain.CodeValidation, "name must not exceed 100 characters", nil)
	}
	trimmedEmail := strings.TrimSpace(email)
	if len(trimmedEmail) == 0 {
		return domain.NewAppError(domain.CodeValidation, "email is required", nil)
	}
	addr, err := mail.ParseAddress(trimmedEmail)
	if err != nil || addr.Name != "" || addr.Address != trimmedEmail {
		return domain.NewAppError(domain.CodeValidation, "email must be a valid email address", nil)
	}
	if len(password) < 8 {
		return domain.NewAppError(domain.CodeValidation, "password must be at least 8 characters", nil)
	}
	if len(password) > 72 {
		return domain.NewAppError(domain.CodeValidation, "password must not exceed 72 characters", nil)
	}
	return nil
}
