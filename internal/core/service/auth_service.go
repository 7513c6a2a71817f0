package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/resumeforge/resume-api/internal/core/domain"
	"github.com/resumeforge/resume-api/internal/core/ports"
)

const (
	defaultTokenTTL   = 7 * 24 * time.Hour
	minPasswordLength = 6
)

// AuthService implements registration, login and account management.
type AuthService struct {
	repo      ports.UserRepository
	google    ports.GoogleVerifier
	jwtSecret string
	tokenTTL  time.Duration
	logger    zerolog.Logger
	now       func() time.Time
}

// NewAuthService builds the service. google may be nil, in which case Google
// sign-in is rejected as an invalid token.
func NewAuthService(repo ports.UserRepository, google ports.GoogleVerifier, jwtSecret string, tokenTTL time.Duration, logger zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = defaultTokenTTL
	}
	return &AuthService{
		repo:      repo,
		google:    google,
		jwtSecret: jwtSecret,
		tokenTTL:  tokenTTL,
		logger:    logger,
		now:       utcNow,
	}
}

// HashPassword returns the bcrypt hash of password.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword reports whether candidate matches hash. An empty hash (an
// account created through Google) never matches.
func VerifyPassword(hash, candidate string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(candidate)) == nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*ports.AuthResult, error) {
	email := normalizeEmail(input.Email)
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, domain.NewValidationError("name", "name is required")
	}
	if email == "" {
		return nil, domain.NewValidationError("email", "email is required")
	}
	if len(input.Password) < minPasswordLength {
		return nil, domain.NewValidationError("password", "password must be at least 6 characters")
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, err
	}

	now := s.now()
	user := &domain.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		AuthProvider: domain.AuthProviderLocal,
	}
	domain.RefreshTimestamps(&user.Timestamps, now)

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID.Hex()).Msg("user registered")
	return s.issue(user)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !VerifyPassword(user.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	s.touchLogin(ctx, user)
	return s.issue(user)
}

// GoogleLogin verifies a Google ID token, links it to an existing account with
// the same email or creates a new Google account.
func (s *AuthService) GoogleLogin(ctx context.Context, idToken string) (*ports.AuthResult, error) {
	if s.google == nil || idToken == "" {
		return nil, domain.ErrInvalidToken
	}

	identity, err := s.google.Verify(ctx, idToken)
	if err != nil {
		s.logger.Warn().Err(err).Msg("google token rejected")
		return nil, domain.ErrInvalidToken
	}
	email := normalizeEmail(identity.Email)
	if email == "" || !identity.EmailVerified {
		return nil, domain.ErrInvalidToken
	}

	user, err := s.repo.FindByEmail(ctx, email)
	switch {
	case err == nil:
		if user.GoogleID == "" {
			if err := s.repo.LinkGoogle(ctx, user.ID, identity.Subject, identity.Picture); err != nil {
				return nil, fmt.Errorf("link google account: %w", err)
			}
			user.GoogleID = identity.Subject
			if user.Avatar == "" {
				user.Avatar = identity.Picture
			}
			s.logger.Info().Str("user_id", user.ID.Hex()).Msg("google account linked")
		}
	case errors.Is(err, domain.ErrUserNotFound):
		name := identity.Name
		if name == "" {
			name = strings.Split(email, "@")[0]
		}
		user = &domain.User{
			Name:         name,
			Email:        email,
			Avatar:       identity.Picture,
			AuthProvider: domain.AuthProviderGoogle,
			GoogleID:     identity.Subject,
		}
		domain.RefreshTimestamps(&user.Timestamps, s.now())
		if err := s.repo.Create(ctx, user); err != nil {
			return nil, err
		}
		s.logger.Info().Str("user_id", user.ID.Hex()).Msg("user registered via google")
	default:
		return nil, err
	}

	s.touchLogin(ctx, user)
	return s.issue(user)
}

func (s *AuthService) Me(ctx context.Context, userID string) (*domain.User, error) {
	id, err := parseOwner(userID)
	if err != nil {
		return nil, err
	}
	return s.repo.FindByID(ctx, id)
}

func (s *AuthService) UpdateProfile(ctx context.Context, userID string, update *domain.ProfileUpdate) (*domain.User, error) {
	id, err := parseOwner(userID)
	if err != nil {
		return nil, err
	}
	if update == nil {
		update = &domain.ProfileUpdate{}
	}
	if update.Name != nil {
		trimmed := strings.TrimSpace(*update.Name)
		if trimmed == "" {
			return nil, domain.NewValidationError("name", "name cannot be empty")
		}
		update.Name = &trimmed
	}
	return s.repo.UpdateProfile(ctx, id, update)
}

func (s *AuthService) ChangePassword(ctx context.Context, userID, current, next string) (string, error) {
	id, err := parseOwner(userID)
	if err != nil {
		return "", err
	}
	if len(next) < minPasswordLength {
		return "", domain.NewValidationError("newPassword", "new password must be at least 6 characters")
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return "", err
	}
	if !VerifyPassword(user.PasswordHash, current) {
		return "", domain.NewValidationError("currentPassword", "current password is incorrect")
	}

	hash, err := HashPassword(next)
	if err != nil {
		return "", err
	}
	if err := s.repo.UpdatePassword(ctx, id, hash); err != nil {
		return "", fmt.Errorf("update password: %w", err)
	}

	s.logger.Info().Str("user_id", userID).Msg("password changed")
	return s.generateToken(user)
}

func (s *AuthService) touchLogin(ctx context.Context, user *domain.User) {
	now := s.now()
	if err := s.repo.TouchLastLogin(ctx, user.ID, now); err != nil {
		s.logger.Warn().Err(err).Str("user_id", user.ID.Hex()).Msg("failed to record last login")
		return
	}
	user.LastLogin = &now
}

func (s *AuthService) issue(user *domain.User) (*ports.AuthResult, error) {
	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}
	return &ports.AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":   user.ID.Hex(),
		"email": user.Email,
		"iat":   now.Unix(),
		"exp":   now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}
