package auth_test

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"blogpost-api/internal/auth"
)

// fakeUserStore is an in-memory UserStore for tests.
type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]auth.User // keyed by uuid
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]auth.User)}
}

func (s *fakeUserStore) GetByUsername(ctx context.Context, username string) (auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Username == username {
			return user, nil
		}
	}
	return auth.User{}, sql.ErrNoRows
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return auth.User{}, sql.ErrNoRows
}

func (s *fakeUserStore) Insert(ctx context.Context, user auth.User) (auth.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	s.users[user.UUID] = user
	return user, nil
}

func (s *fakeUserStore) Delete(ctx context.Context, userUUID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userUUID]; !ok {
		return "", sql.ErrNoRows
	}
	delete(s.users, userUUID)
	return userUUID, nil
}

func (s *fakeUserStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// countingHasher wraps a real hasher and records how many times credential
// pairs were derived.
type countingHasher struct {
	inner     *auth.Hasher
	pairCalls int
}

func (h *countingHasher) NewCredentialPair(password string) (auth.CredentialPair, error) {
	h.pairCalls++
	return h.inner.NewCredentialPair(password)
}

func (h *countingHasher) VerifyPassword(password, salt, hash string) bool {
	return h.inner.VerifyPassword(password, salt, hash)
}
