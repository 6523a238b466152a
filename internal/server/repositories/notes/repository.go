// Package notes stores notes. Every method takes the owner's id and only
// ever sees that owner's notes; a note owned by someone else behaves
// exactly like a note that does not exist.
package notes

import (
	"context"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/server/models"
)

type Repository interface {
	// List returns all notes of ownerID.
	List(ctx context.Context, ownerID string) ([]*models.Note, error)
	// Create stores note under ownerID and fills in its ID.
	Create(ctx context.Context, ownerID string, note *models.Note) (*models.Note, error)
	// Update overwrites title and content of (noteID, ownerID) in one step
	// and returns the stored note, or common.ErrorNotFound.
	Update(ctx context.Context, ownerID, noteID string, upd Update) (*models.Note, error)
	// Delete removes (noteID, ownerID) in one step, or returns
	// common.ErrorNotFound. Of two concurrent deletes only one succeeds.
	Delete(ctx context.Context, ownerID, noteID string) error
	// Search returns notes of ownerID whose title or content contains query,
	// ignoring case. query is matched literally.
	Search(ctx context.Context, ownerID, query string) ([]*models.Note, error)
}

// Update carries the new values for a note.
type Update struct {
	Title      string
	Content    string
	ModifiedAt time.Time
}
