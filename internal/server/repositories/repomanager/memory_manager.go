package repomanager

import (
	"context"

	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/notes"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/users"
)

// MemoryRepositoryManager keeps everything in process memory.
// Data is lost on restart.
type MemoryRepositoryManager struct {
	users *users.MemoryRepository
	notes *notes.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{
		users: users.NewMemoryRepository(),
		notes: notes.NewMemoryRepository(),
	}
}

func (m *MemoryRepositoryManager) Users() users.Repository { return m.users }
func (m *MemoryRepositoryManager) Notes() notes.Repository { return m.notes }

func (m *MemoryRepositoryManager) Migrate(context.Context) error { return nil }
func (m *MemoryRepositoryManager) Ping(context.Context) error    { return nil }
func (m *MemoryRepositoryManager) Close(context.Context) error   { return nil }
