package repository

import (
	"context"
	"sync"
	"time"

	"MusicHub/model"

	"github.com/google/uuid"
)

// memoryUserRepository keeps users in process memory. Used for local runs
// and tests.
type memoryUserRepository struct {
	mu      sync.RWMutex
	byID    map[string]*model.User
	byEmail map[string]string
}

func NewMemoryUserRepository() UserRepository {
	return &memoryUserRepository{
		byID:    make(map[string]*model.User),
		byEmail: make(map[string]string),
	}
}

func (r *memoryUserRepository) CreateUser(ctx context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[user.Email]; exists {
		return ErrDuplicateUser
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now().UTC()

	stored := *user
	r.byID[stored.ID] = &stored
	r.byEmail[stored.Email] = stored.ID
	return nil
}

func (r *memoryUserRepository) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (r *memoryUserRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	r.mu.RLock()
	id, ok := r.byEmail[email]
	r.mu.RUnlock()
	if !ok {
		return nil, ErrUserNotFound
	}
	return r.GetUserByID(ctx, id)
}

type memoryStreamRepository struct {
	mu     sync.Mutex
	order  []string
	counts map[string]int64
}

func NewMemoryStreamRepository() StreamRepository {
	return &memoryStreamRepository{counts: make(map[string]int64)}
}

func (r *memoryStreamRepository) Increment(ctx context.Context, songID string) (*model.StreamCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.counts[songID]; !ok {
		r.order = append(r.order, songID)
	}
	r.counts[songID]++
	return &model.StreamCount{SongID: songID, Streams: r.counts[songID]}, nil
}

func (r *memoryStreamRepository) ListAll(ctx context.Context) ([]model.StreamCount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]model.StreamCount, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, model.StreamCount{SongID: id, Streams: r.counts[id]})
	}
	return out, nil
}
