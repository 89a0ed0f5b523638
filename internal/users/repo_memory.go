package users

import (
	"context"
	"strings"
	"sync"
)

// MemoryRepo is an in-memory implementation of Repo for dev and tests.
type MemoryRepo struct {
	mu      sync.RWMutex
	byID    map[int64]User
	byEmail map[string]int64
	nextID  int64
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:    make(map[int64]User),
		byEmail: make(map[string]int64),
	}
}

// Create stores a new user, enforcing email uniqueness like the database does.
func (r *MemoryRepo) Create(ctx context.Context, user User) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	key := strings.ToLower(user.Email)
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, taken := r.byEmail[key]; taken {
		return 0, ErrEmailTaken
	}
	r.nextID++
	user.ID = r.nextID
	r.byID[user.ID] = user
	r.byEmail[key] = user.ID
	return user.ID, nil
}

// GetByEmail returns the user registered under the given email.
func (r *MemoryRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return User{}, ErrNotFound
	}
	return r.byID[id], nil
}

// GetByID returns the user with the given id.
func (r *MemoryRepo) GetByID(ctx context.Context, userID int64) (User, error) {
	if err := ctx.Err(); err != nil {
		return User{}, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	user, ok := r.byID[userID]
	if !ok {
		return User{}, ErrNotFound
	}
	return user, nil
}

// DisplayName resolves an owner id for catalog listings.
func (r *MemoryRepo) DisplayName(ctx context.Context, ownerID int64) (string, bool) {
	user, err := r.GetByID(ctx, ownerID)
	if err != nil {
		return "", false
	}
	return user.Name, true
}

var _ Repo = (*MemoryRepo)(nil)
