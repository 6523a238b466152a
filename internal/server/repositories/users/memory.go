package users

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps accounts in process memory.
type MemoryRepository struct {
	mu         sync.RWMutex
	byUsername map[string]models.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{byUsername: make(map[string]models.User)}
}

func (r *MemoryRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byUsername[user.UserName]; taken {
		return nil, common.ErrorAlreadyExists
	}

	user.ID = uuid.NewString()
	r.byUsername[user.UserName] = *user
	return user, nil
}

func (r *MemoryRepository) GetUserByLogin(_ context.Context, userName string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byUsername[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return &u, nil
}
