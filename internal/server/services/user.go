// Package services contains server-side business logic. UserService handles
// registration, login and the session lifecycle behind the navigation
// boundary.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/tuktask/internal/common"
	"github.com/dmitrijs2005/tuktask/internal/server/auth"
	"github.com/dmitrijs2005/tuktask/internal/server/config"
	"github.com/dmitrijs2005/tuktask/internal/server/models"
	"github.com/dmitrijs2005/tuktask/internal/server/repositories/users"
	"golang.org/x/crypto/bcrypt"
)

// ErrPasswordTooLong is returned for passwords bcrypt cannot hash.
var ErrPasswordTooLong = fmt.Errorf("%w: password longer than 72 bytes", common.ErrorValidation)

// Sessions is the server-side session record store.
type Sessions interface {
	Create(ctx context.Context, sessionID, userID string, ttl time.Duration) error
	Lookup(ctx context.Context, sessionID string) (string, error)
	Revoke(ctx context.Context, sessionID string) error
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Session is a freshly issued token.
type Session struct {
	Token     string
	ExpiresAt time.Time
}

// Identity is the resolved owner of a live session.
type Identity struct {
	User      *models.User
	SessionID string
	ExpiresAt time.Time
}

type UserService struct {
	users           users.Repository
	sessions        Sessions
	jwtSecret       []byte
	sessionValidity time.Duration
	bcryptCost      int
}

func NewUserService(repo users.Repository, sessions Sessions, cfg *config.Config) *UserService {
	return &UserService{
		users:           repo,
		sessions:        sessions,
		jwtSecret:       []byte(cfg.SecretKey),
		sessionValidity: cfg.SessionValidityDuration,
		bcryptCost:      cfg.BcryptCost,
	}
}

// Register validates the input, rejects taken emails and stores the user
// with a bcrypt hash of the password. Required fields are checked before
// the store is consulted.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	email := strings.TrimSpace(in.Email)
	if email == "" || in.Password == "" {
		return nil, common.ErrorValidation
	}

	_, err := s.users.GetUserByEmail(ctx, email)
	switch {
	case err == nil:
		return nil, common.ErrorAlreadyExists
	case !errors.Is(err, common.ErrorNotFound):
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.bcryptCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, ErrPasswordTooLong
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(in.Name),
		Email:        email,
		PasswordHash: string(hash),
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	return created, nil
}

// Login checks credentials and opens a session. Unknown email and wrong
// password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, common.ErrorValidation
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, common.ErrorUnauthorized
	}

	token, claims, err := auth.GenerateToken(user.ID, s.jwtSecret, s.sessionValidity)
	if err != nil {
		return nil, fmt.Errorf("sign token: %w", err)
	}

	if err := s.sessions.Create(ctx, claims.SessionID(), user.ID, s.sessionValidity); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}

	return &Session{Token: token, ExpiresAt: claims.ExpiresAt.Time}, nil
}

// Authenticate resolves a bearer token to its user. Bad, expired or revoked
// tokens yield common.ErrorUnauthorized.
func (s *UserService) Authenticate(ctx context.Context, token string) (*Identity, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, common.ErrorUnauthorized
	}

	owner, err := s.sessions.Lookup(ctx, claims.SessionID())
	if err != nil {
		if errors.Is(err, common.ErrInvalidToken) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("lookup session: %w", err)
	}
	if owner != claims.UserID {
		return nil, common.ErrorUnauthorized
	}

	user, err := s.users.GetUserByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	return &Identity{User: user, SessionID: claims.SessionID(), ExpiresAt: claims.ExpiresAt.Time}, nil
}

// SignOut revokes the session behind token. Tokens that no longer verify
// have nothing to revoke and are ignored.
func (s *UserService) SignOut(ctx context.Context, token string) error {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil
	}
	return s.sessions.Revoke(ctx, claims.SessionID())
}
