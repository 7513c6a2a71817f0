package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"

	"github.com/resumeforge/resume-api/internal/core/domain"
	"github.com/resumeforge/resume-api/internal/core/ports"
)

type stubUserRepo struct {
	users map[primitive.ObjectID]*domain.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[primitive.ObjectID]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return domain.ErrUserExists
		}
	}
	user.ID = primitive.NewObjectID()
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id primitive.ObjectID, update *domain.ProfileUpdate) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	if update.Name != nil {
		u.Name = *update.Name
	}
	if update.Bio != nil {
		u.Bio = *update.Bio
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id primitive.ObjectID, hash string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = hash
	return nil
}

func (r *stubUserRepo) LinkGoogle(_ context.Context, id primitive.ObjectID, googleID, avatar string) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.GoogleID = googleID
	if u.Avatar == "" {
		u.Avatar = avatar
	}
	return nil
}

func (r *stubUserRepo) TouchLastLogin(_ context.Context, id primitive.ObjectID, at time.Time) error {
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.LastLogin = &at
	return nil
}

type stubGoogleVerifier struct {
	identity *ports.GoogleIdentity
	err      error
}

func (v *stubGoogleVerifier) Verify(_ context.Context, _ string) (*ports.GoogleIdentity, error) {
	return v.identity, v.err
}

func newTestAuthService(repo ports.UserRepository, google ports.GoogleVerifier) *AuthService {
	return NewAuthService(repo, google, "secret", time.Hour, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)

	res, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Ann", Email: " A@Test.com ", Password: "secret1"})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if res.Token == "" {
		t.Fatalf("expected token")
	}
	if res.User.Email != "a@test.com" {
		t.Fatalf("expected normalized email, got %q", res.User.Email)
	}
	if res.User.AuthProvider != domain.AuthProviderLocal {
		t.Fatalf("unexpected provider %q", res.User.AuthProvider)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(res.User.PasswordHash), []byte("secret1")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)

	cases := []struct {
		name  string
		input ports.RegisterInput
		field string
	}{
		{"missing name", ports.RegisterInput{Email: "a@test.com", Password: "secret1"}, "name"},
		{"missing email", ports.RegisterInput{Name: "Ann", Password: "secret1"}, "email"},
		{"short password", ports.RegisterInput{Name: "Ann", Email: "a@test.com", Password: "123"}, "password"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(context.Background(), tc.input)
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if ve.Fields[0].Field != tc.field {
				t.Fatalf("expected field %s, got %s", tc.field, ve.Fields[0].Field)
			}
		})
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)
	in := ports.RegisterInput{Name: "Ann", Email: "a@test.com", Password: "secret1"}

	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)
	reg, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Ann", Email: "a@test.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	res, err := svc.Login(context.Background(), "a@test.com", "secret1")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(res.Token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["sub"] != reg.User.ID.Hex() {
		t.Fatalf("unexpected subject: %v", claims["sub"])
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		t.Fatalf("missing exp: %v", err)
	}
	if d := time.Until(exp.Time); d <= 0 || d > time.Hour+time.Minute {
		t.Fatalf("unexpected expiry window: %v", d)
	}
	if repo.users[reg.User.ID].LastLogin == nil {
		t.Fatalf("expected last login to be stamped")
	}
}

func TestAuthService_Login_InvalidPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)
	if _, err := svc.Register(context.Background(), ports.RegisterInput{Name: "Ann", Email: "a@test.com", Password: "secret1"}); err != nil {
		t.Fatalf("register: %v", err)
	}

	if _, err := svc.Login(context.Background(), "a@test.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UserNotFound(t *testing.T) {
	svc := newTestAuthService(newStubUserRepo(), nil)

	if _, err := svc.Login(context.Background(), "ghost@test.com", "secret1"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)
	reg, _ := svc.Register(context.Background(), ports.RegisterInput{Name: "Ann", Email: "a@test.com", Password: "secret1"})
	id := reg.User.ID.Hex()

	if _, err := svc.ChangePassword(context.Background(), id, "wrong", "secret2"); err == nil {
		t.Fatalf("expected error for wrong current password")
	}
	if _, err := svc.ChangePassword(context.Background(), id, "secret1", "123"); err == nil {
		t.Fatalf("expected error for short new password")
	}

	token, err := svc.ChangePassword(context.Background(), id, "secret1", "secret2")
	if err != nil {
		t.Fatalf("ChangePassword returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected fresh token")
	}
	if _, err := svc.Login(context.Background(), "a@test.com", "secret2"); err != nil {
		t.Fatalf("login with new password failed: %v", err)
	}
}

func TestAuthService_UpdateProfile(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, nil)
	reg, _ := svc.Register(context.Background(), ports.RegisterInput{Name: "Ann", Email: "a@test.com", Password: "secret1"})

	name, bio := "  Ann Lee ", "Gopher"
	u, err := svc.UpdateProfile(context.Background(), reg.User.ID.Hex(), &domain.ProfileUpdate{Name: &name, Bio: &bio})
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if u.Name != "Ann Lee" || u.Bio != "Gopher" {
		t.Fatalf("unexpected profile: %+v", u)
	}

	empty := "  "
	if _, err := svc.UpdateProfile(context.Background(), reg.User.ID.Hex(), &domain.ProfileUpdate{Name: &empty}); err == nil {
		t.Fatalf("expected validation error for blank name")
	}
}

func TestAuthService_GoogleLogin_CreatesAccount(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, &stubGoogleVerifier{identity: &ports.GoogleIdentity{
		Subject: "g-123", Email: "g@test.com", EmailVerified: true, Name: "Gee",
	}})

	res, err := svc.GoogleLogin(context.Background(), "id-token")
	if err != nil {
		t.Fatalf("GoogleLogin returned error: %v", err)
	}
	if res.User.AuthProvider != domain.AuthProviderGoogle || res.User.GoogleID != "g-123" {
		t.Fatalf("unexpected user: %+v", res.User)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected one user, got %d", len(repo.users))
	}
	if VerifyPassword(res.User.PasswordHash, "") {
		t.Fatalf("google account must not accept an empty password")
	}
}

func TestAuthService_GoogleLogin_LinksExistingEmail(t *testing.T) {
	repo := newStubUserRepo()
	svc := newTestAuthService(repo, &stubGoogleVerifier{identity: &ports.GoogleIdentity{
		Subject: "g-123", Email: "a@test.com", EmailVerified: true, Picture: "https://img/a.png",
	}})
	reg, _ := svc.Register(context.Background(), ports.RegisterInput{Name: "Ann", Email: "a@test.com", Password: "secret1"})

	res, err := svc.GoogleLogin(context.Background(), "id-token")
	if err != nil {
		t.Fatalf("GoogleLogin returned error: %v", err)
	}
	if res.User.ID != reg.User.ID {
		t.Fatalf("expected existing account to be reused")
	}
	if repo.users[reg.User.ID].GoogleID != "g-123" {
		t.Fatalf("expected google id to be linked")
	}
}

func TestAuthService_GoogleLogin_Rejected(t *testing.T) {
	cases := map[string]ports.GoogleVerifier{
		"no verifier":     nil,
		"verifier error":  &stubGoogleVerifier{err: errors.New("bad audience")},
		"unverified mail": &stubGoogleVerifier{identity: &ports.GoogleIdentity{Subject: "x", Email: "x@test.com"}},
	}
	for name, verifier := range cases {
		t.Run(name, func(t *testing.T) {
			svc := newTestAuthService(newStubUserRepo(), verifier)
			if _, err := svc.GoogleLogin(context.Background(), "id-token"); !errors.Is(err, domain.ErrInvalidToken) {
				t.Fatalf("expected ErrInvalidToken, got %v", err)
			}
		})
	}
}
