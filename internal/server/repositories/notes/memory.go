package notes

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps notes in process memory. A single mutex makes
// every operation atomic, including the owner check.
type MemoryRepository struct {
	mu    sync.RWMutex
	notes map[string]models.Note
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{notes: make(map[string]models.Note)}
}

func (r *MemoryRepository) List(_ context.Context, ownerID string) ([]*models.Note, error) {
	return r.filter(ownerID, func(models.Note) bool { return true }), nil
}

func (r *MemoryRepository) Create(_ context.Context, ownerID string, note *models.Note) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	note.ID = uuid.NewString()
	note.UserID = ownerID
	r.notes[note.ID] = *note
	return note, nil
}

func (r *MemoryRepository) Update(_ context.Context, ownerID, noteID string, upd Update) (*models.Note, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notes[noteID]
	if !ok || n.UserID != ownerID {
		return nil, common.ErrorNotFound
	}

	n.Title = upd.Title
	n.Content = upd.Content
	n.ModifiedAt = upd.ModifiedAt
	r.notes[noteID] = n
	return &n, nil
}

func (r *MemoryRepository) Delete(_ context.Context, ownerID, noteID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notes[noteID]
	if !ok || n.UserID != ownerID {
		return common.ErrorNotFound
	}
	delete(r.notes, noteID)
	return nil
}

func (r *MemoryRepository) Search(_ context.Context, ownerID, query string) ([]*models.Note, error) {
	q := strings.ToLower(query)
	return r.filter(ownerID, func(n models.Note) bool {
		return strings.Contains(strings.ToLower(n.Title), q) ||
			strings.Contains(strings.ToLower(n.Content), q)
	}), nil
}

func (r *MemoryRepository) filter(ownerID string, keep func(models.Note) bool) []*models.Note {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := []*models.Note{}
	for _, n := range r.notes {
		if n.UserID == ownerID && keep(n) {
			n := n
			result = append(result, &n)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].CreatedAt.Equal(result[j].CreatedAt) {
			return result[i].ID < result[j].ID
		}
		return result[i].CreatedAt.Before(result[j].CreatedAt)
	})
	return result
}
