package service

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"github.com/iliyamo/hotel-booking/internal/apperror"
	"github.com/iliyamo/hotel-booking/internal/model"
	"github.com/iliyamo/hotel-booking/internal/policy"
	"github.com/iliyamo/hotel-booking/internal/repository"
	"github.com/iliyamo/hotel-booking/internal/utils"
)

// SignupInput is the payload of the signup operation.  Role defaults to
// "user" when empty.
type SignupInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Name     string `json:"name" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=user admin"`
}

type LoginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthPayload is returned by signup and login.
type AuthPayload struct {
	Token     string      `json:"token"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      *model.User `json:"user"`
}

// AuthService issues and verifies session tokens and exposes the user
// read operations.
type AuthService struct {
	users  UserStore
	secret string
	ttlMin int
	cost   int
}

func NewAuthService(users UserStore, secret string, ttlMin, cost int) *AuthService {
	return &AuthService{users: users, secret: secret, ttlMin: ttlMin, cost: cost}
}

// Signup creates a user and returns a session token for it.
func (s *AuthService) Signup(ctx context.Context, ident *policy.Identity, in SignupInput) (*AuthPayload, error) {
	if err := policy.Authorize(policy.OpSignup, ident); err != nil {
		return nil, err
	}
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Name = strings.TrimSpace(in.Name)
	if err := check(in); err != nil {
		return nil, err
	}
	if in.Role == "" {
		in.Role = model.RoleUser
	}

	existing, err := optional(ctx, func(ctx context.Context) (*model.User, error) {
		return s.users.GetByEmail(ctx, in.Email)
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if existing != nil {
		return nil, apperror.Conflict("User already exists")
	}

	hash, err := utils.HashPassword(in.Password, s.cost)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	u := &model.User{Name: in.Name, Email: in.Email, PasswordHash: hash, Role: in.Role}
	if err := exec(ctx, func(ctx context.Context) error { return s.users.Create(ctx, u) }); err != nil {
		// Lost a race against a concurrent signup with the same email.
		if errors.Is(err, repository.ErrEmailExists) {
			return nil, apperror.Conflict("User already exists")
		}
		return nil, apperror.Internal(err)
	}
	return s.issue(u)
}

// Login verifies credentials.  Unknown email and wrong password produce
// the same error.
func (s *AuthService) Login(ctx context.Context, ident *policy.Identity, in LoginInput) (*AuthPayload, error) {
	if err := policy.Authorize(policy.OpLogin, ident); err != nil {
		return nil, err
	}
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	if err := check(in); err != nil {
		return nil, err
	}
	u, err := optional(ctx, func(ctx context.Context) (*model.User, error) {
		return s.users.GetByEmail(ctx, in.Email)
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if u == nil || !utils.VerifyPassword(u.PasswordHash, in.Password) {
		return nil, apperror.InvalidCredentials()
	}
	return s.issue(u)
}

func (s *AuthService) issue(u *model.User) (*AuthPayload, error) {
	tok, err := utils.NewAccessToken(s.secret, u.ID, u.Email, s.ttlMin)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &AuthPayload{Token: tok.Token, ExpiresAt: tok.Exp, User: u}, nil
}

// Me returns the stored record of the caller.
func (s *AuthService) Me(ctx context.Context, ident *policy.Identity) (*model.User, error) {
	if err := policy.Authorize(policy.OpMe, ident); err != nil {
		return nil, err
	}
	u, err := optional(ctx, func(ctx context.Context) (*model.User, error) {
		return s.users.GetByID(ctx, ident.ID)
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	if u == nil {
		return nil, apperror.Unauthenticated()
	}
	return u, nil
}

// User returns nil when no user has the id.
func (s *AuthService) User(ctx context.Context, ident *policy.Identity, id string) (*model.User, error) {
	if err := policy.Authorize(policy.OpUser, ident); err != nil {
		return nil, err
	}
	u, err := optional(ctx, func(ctx context.Context) (*model.User, error) {
		return s.users.GetByID(ctx, id)
	})
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return u, nil
}

func (s *AuthService) Users(ctx context.Context, ident *policy.Identity) ([]*model.User, error) {
	if err := policy.Authorize(policy.OpUsers, ident); err != nil {
		return nil, err
	}
	out, err := list(ctx, s.users.List)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return out, nil
}

// Authenticate resolves a raw bearer token into an identity.  The role is
// read from the store, not the token.  Any failure yields nil, meaning
// the request proceeds anonymously.
func (s *AuthService) Authenticate(ctx context.Context, raw string) *policy.Identity {
	if raw == "" {
		return nil
	}
	userID, _, err := utils.ParseAccessToken(s.secret, raw)
	if err != nil {
		return nil
	}
	u, err := optional(ctx, func(ctx context.Context) (*model.User, error) {
		return s.users.GetByID(ctx, userID)
	})
	if err != nil {
		log.Printf("auth: load user %s: %v", userID, err)
		return nil
	}
	if u == nil {
		return nil
	}
	return &policy.Identity{ID: u.ID, Email: u.Email, Role: u.Role}
}
