package users

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/storefront/internal/common"
	"github.com/dmitrijs2005/storefront/internal/server/models"
)

type MemoryRepository struct {
	mu      sync.RWMutex
	nextID  int64
	byID    map[int64]*models.User
	byEmail map[string]int64
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[int64]*models.User),
		byEmail: make(map[string]int64),
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *MemoryRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	key := normalizeEmail(user.Email)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[key]; ok {
		return nil, common.ErrorAlreadyExists
	}

	r.nextID++
	u := *user
	u.ID = r.nextID
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}

	r.byID[u.ID] = &u
	r.byEmail[key] = u.ID

	out := u
	return &out, nil
}

func (r *MemoryRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[normalizeEmail(email)]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u := *r.byID[id]
	return &u, nil
}

func (r *MemoryRepository) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	out := *u
	return &out, nil
}
