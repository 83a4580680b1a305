// Package service holds the authentication boundary and the owner-scoped
// task operations. Every operation runs in one store transaction.
package service

import (
	"context"
	"donow/models"
	"donow/store"
	"donow/utils"
	"errors"
	"fmt"
	"time"
)

var (
	ErrDuplicateUsername  = errors.New("username already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("could not validate credentials")
	ErrNotFound           = errors.New("task not found")
	ErrInvalidInput       = errors.New("invalid input")
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hashed string) bool
}

type TokenIssuer interface {
	Issue(subject string) (string, error)
	Validate(token string) (string, error)
	TTL() time.Duration
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int64  `json:"expires_in"`
}

type AuthService struct {
	db     store.Transactor
	hasher PasswordHasher
	tokens TokenIssuer

	// compared against when the username is unknown so both login
	// failures cost one bcrypt verification
	dummyHash string
}

func NewAuthService(db store.Transactor, hasher PasswordHasher, tokens TokenIssuer) (*AuthService, error) {
	dummyHash, err := hasher.Hash("donow-dummy-password")
	if err != nil {
		return nil, err
	}
	return &AuthService{
		db:        db,
		hasher:    hasher,
		tokens:    tokens,
		dummyHash: dummyHash,
	}, nil
}

// Register stores a new user with a hashed password.
func (s *AuthService) Register(ctx context.Context, username, password string) (models.User, error) {
	if err := utils.ValidateUsername(username); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := utils.ValidatePassword(password); err != nil {
		return models.User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return models.User{}, err
	}

	var user models.User
	err = s.db.InTx(ctx, func(r store.Repository) error {
		var err error
		user, err = r.InsertUser(ctx, username, hashed)
		return err
	})
	if err != nil {
		if errors.Is(err, store.ErrDuplicateUsername) {
			return models.User{}, ErrDuplicateUsername
		}
		return models.User{}, fmt.Errorf("error registering user: %w", err)
	}
	return user, nil
}

// Authenticate returns the user only when the password matches. Unknown
// users and wrong passwords both yield ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	user, found, err := s.findUser(ctx, username)
	if err != nil {
		return models.User{}, err
	}
	if !found {
		s.hasher.Verify(password, s.dummyHash)
		return models.User{}, ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, user.HashedPassword) {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

// Login authenticates the user and issues a bearer token for them.
func (s *AuthService) Login(ctx context.Context, username, password string) (TokenResponse, error) {
	user, err := s.Authenticate(ctx, username, password)
	if err != nil {
		return TokenResponse{}, err
	}
	token, err := s.tokens.Issue(user.Username)
	if err != nil {
		return TokenResponse{}, err
	}
	return TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int64(s.tokens.TTL().Seconds()),
	}, nil
}

// Resolve maps a bearer token to its user. A bad token and a token for a
// user that no longer exists are both ErrUnauthenticated; store failures
// are returned as they are.
func (s *AuthService) Resolve(ctx context.Context, token string) (models.User, error) {
	username, err := s.tokens.Validate(token)
	switch {
	case err == nil:
	case errors.Is(err, utils.ErrInvalidToken):
		return models.User{}, ErrUnauthenticated
	default:
		return models.User{}, err
	}

	user, found, err := s.findUser(ctx, username)
	if err != nil {
		return models.User{}, err
	}
	if !found {
		return models.User{}, ErrUnauthenticated
	}
	return user, nil
}

func (s *AuthService) findUser(ctx context.Context, username string) (models.User, bool, error) {
	var (
		user  models.User
		found bool
	)
	err := s.db.InTx(ctx, func(r store.Repository) error {
		var err error
		user, found, err = r.FindUserByUsername(ctx, username)
		return err
	})
	if err != nil {
		return models.User{}, false, fmt.Errorf("error looking up user: %w", err)
	}
	return user, found, nil
}
