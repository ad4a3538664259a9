package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/spec-kit/salon-booking/internal/domain"
	"github.com/spec-kit/salon-booking/internal/repository"
)

type userRepository struct {
	mu      sync.RWMutex
	seq     int64
	records map[int64]domain.User
	byEmail map[string]int64
}

// NewUserRepository returns an in-memory implementation.
func NewUserRepository() repository.UserRepository {
	return &userRepository{
		records: make(map[int64]domain.User),
		byEmail: make(map[string]int64),
	}
}

func (r *userRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, taken := r.byEmail[key]; taken {
		return repository.ErrDuplicate
	}
	r.seq++
	user.ID = r.seq
	r.records[user.ID] = *user
	r.byEmail[key] = user.ID
	return nil
}

func (r *userRepository) GetByID(_ context.Context, id int64) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.records[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[strings.ToLower(email)]
	if !ok {
		return nil, repository.ErrNotFound
	}
	user := r.records[id]
	return &user, nil
}

func (r *userRepository) Count(_ context.Context) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return int64(len(r.records)), nil
}

type loginEventRepository struct {
	mu     sync.Mutex
	seq    int64
	events []domain.LoginEvent
}

// NewLoginEventRepository returns an append-only in-memory log.
func NewLoginEventRepository() repository.LoginEventRepository {
	return &loginEventRepository{}
}

func (r *loginEventRepository) Create(_ context.Context, event *domain.LoginEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.seq++
	event.ID = r.seq
	r.events = append(r.events, *event)
	return nil
}

func (r *loginEventRepository) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.events)), nil
}
