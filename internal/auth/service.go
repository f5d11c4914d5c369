package auth

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// UserStore is the identity-storage collaborator the auth core depends on.
// Lookups report a missing row as sql.ErrNoRows.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	Insert(ctx context.Context, user User) (User, error)
	Delete(ctx context.Context, userUUID string) (string, error)
}

// Service owns registration, password authentication and token-based identity
// resolution. It holds no per-request state: one instance is constructed at
// startup and shared across all handlers.
type Service struct {
	store     UserStore
	hasher    CredentialHasher
	codec     *TokenCodec
	tokenType string
}

func NewService(store UserStore, hasher CredentialHasher, codec *TokenCodec, tokenType string) *Service {
	return &Service{
		store:     store,
		hasher:    hasher,
		codec:     codec,
		tokenType: tokenType,
	}
}

// Register creates a new identity. Email and username are lowercased and
// checked for duplicates (email first) before any password hashing happens.
func (s *Service) Register(ctx context.Context, input RegisterInput) (User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	username := strings.ToLower(strings.TrimSpace(input.Username))

	if _, err := s.store.GetByEmail(ctx, email); err == nil {
		return User{}, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return User{}, err
	}
	if _, err := s.store.GetByUsername(ctx, username); err == nil {
		return User{}, ErrUsernameTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return User{}, err
	}

	pair, err := s.hasher.NewCredentialPair(input.Password)
	if err != nil {
		return User{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return User{}, fmt.Errorf("generate user uuid: %w", err)
	}

	return s.store.Insert(ctx, User{
		UUID:         id.String(),
		Email:        email,
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Username:     username,
		Salt:         pair.Salt,
		PasswordHash: pair.Hash,
	})
}

// Authenticate verifies a username/password pair. Unknown usernames and wrong
// passwords both come back as ErrInvalidCredentials so the caller presents a
// single uniform failure message.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*User, error) {
	username = strings.ToLower(strings.TrimSpace(username))

	user, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.VerifyPassword(password, user.Salt, user.PasswordHash) {
		return nil, ErrInvalidCredentials
	}

	return &user, nil
}

// AccessTokenFor issues a signed access token for the user. A nil user yields
// no token, mirroring the codec's no-op issuance.
func (s *Service) AccessTokenFor(user *User) (*AccessToken, error) {
	token, err := s.codec.Issue(user)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, nil
	}

	return &AccessToken{Token: token, TokenType: s.tokenType}, nil
}

// ResolveIdentity validates a token and resolves its username to a stored
// identity. Token failures propagate as ErrInvalidToken; a valid token whose
// user no longer exists resolves to nil (deleting an account does not
// invalidate tokens already issued — they simply stop resolving).
func (s *Service) ResolveIdentity(ctx context.Context, tokenString string) (*User, error) {
	username, err := s.codec.DecodeUsername(tokenString)
	if err != nil {
		return nil, err
	}

	user, err := s.store.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}

	return &user, nil
}

// RequireUser is the access gate every protected operation passes through: a
// missing identity is rejected with ErrNoAuthenticatedUser, anything else is
// returned unchanged.
func RequireUser(user *User) (*User, error) {
	if user == nil {
		return nil, ErrNoAuthenticatedUser
	}
	return user, nil
}

// DeleteAccount removes the identity and returns its id. Outstanding tokens
// for the account keep verifying until expiry but no longer resolve.
func (s *Service) DeleteAccount(ctx context.Context, userUUID string) (string, error) {
	return s.store.Delete(ctx, userUUID)
}
