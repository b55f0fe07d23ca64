package repository

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/vasapolrittideah/account-api/services/account-service/internal/model"
)

// MemoryStore is an in-process implementation of UserRepository and ActivityRepository.
// It is used by tests and by the memory store driver for local development.
type MemoryStore struct {
	mu         sync.RWMutex
	users      map[string]model.User
	activities map[string]model.LoginActivity
}

// NewMemoryStore returns an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      make(map[string]model.User),
		activities: make(map[string]model.LoginActivity),
	}
}

func (s *MemoryStore) CreateUser(_ context.Context, user *model.User) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[user.Email]; ok {
		return nil, ErrDuplicateEmail
	}

	user.ID = bson.NewObjectID()
	user.CreatedAt = time.Now().UTC()
	s.users[user.Email] = *user

	return user, nil
}

func (s *MemoryStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[email]
	if !ok {
		return nil, ErrUserNotFound
	}

	return &user, nil
}

// DeleteUser removes the user with the given email. It exists for tests that
// exercise tokens outliving their account.
func (s *MemoryStore) DeleteUser(_ context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[email]; !ok {
		return ErrUserNotFound
	}
	delete(s.users, email)

	return nil
}

func (s *MemoryStore) RecordLogin(_ context.Context, email string, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	activity, ok := s.activities[email]
	if !ok {
		activity = model.LoginActivity{
			ID:        bson.NewObjectID(),
			Email:     email,
			CreatedAt: now,
		}
	}
	activity.TotalLogins++
	activity.LastLoginAt = at.UTC()
	activity.UpdatedAt = now
	s.activities[email] = activity

	return nil
}

func (s *MemoryStore) GetActivity(_ context.Context, email string) (*model.LoginActivity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	activity, ok := s.activities[email]
	if !ok {
		return nil, ErrActivityNotFound
	}

	return &activity, nil
}
