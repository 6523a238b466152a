package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/dmitrijs2005/gophnotes/internal/server/repositories/notes"
	"github.com/dmitrijs2005/gophnotes/internal/server/validation"
)

var ErrQueryRequired = errors.New("query parameter is required")

// NoteService applies every operation to the notes of one owner. Notes of
// other owners behave exactly like missing ones.
type NoteService struct {
	repo   notes.Repository
	logger logging.Logger
	now    func() time.Time
}

// timestamp is truncated to milliseconds, the coarsest precision of the
// supported stores, so a created note reads back unchanged.
func (s *NoteService) timestamp() time.Time {
	return s.now().UTC().Truncate(time.Millisecond)
}

func NewNoteService(repo notes.Repository, logger logging.Logger) *NoteService {
	return &NoteService{
		repo:   repo,
		logger: logger.With("module", "notes"),
		now:    time.Now,
	}
}

func (s *NoteService) List(ctx context.Context, ownerID string) ([]*models.Note, error) {
	list, err := s.repo.List(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}
	return list, nil
}

func (s *NoteService) Create(ctx context.Context, ownerID string, in validation.NoteInput) (*models.Note, error) {
	if err := validation.ValidateNote(in); err != nil {
		return nil, err
	}

	now := s.timestamp()
	note, err := s.repo.Create(ctx, ownerID, &models.Note{
		Title:      in.Title,
		Content:    in.Content,
		UserID:     ownerID,
		CreatedAt:  now,
		ModifiedAt: now,
	})
	if err != nil {
		return nil, fmt.Errorf("error creating note: %w", err)
	}

	s.logger.Debug(ctx, "note created", "user_id", ownerID, "note_id", note.ID)
	return note, nil
}

// Update overwrites title and content. The input goes through the same
// rules as Create.
func (s *NoteService) Update(ctx context.Context, ownerID, noteID string, in validation.NoteInput) (*models.Note, error) {
	if err := validation.ValidateNote(in); err != nil {
		return nil, err
	}

	note, err := s.repo.Update(ctx, ownerID, noteID, notes.Update{
		Title:      in.Title,
		Content:    in.Content,
		ModifiedAt: s.timestamp(),
	})
	if err != nil {
		return nil, fmt.Errorf("error updating note: %w", err)
	}
	return note, nil
}

func (s *NoteService) Delete(ctx context.Context, ownerID, noteID string) error {
	if err := s.repo.Delete(ctx, ownerID, noteID); err != nil {
		return fmt.Errorf("error deleting note: %w", err)
	}
	s.logger.Debug(ctx, "note deleted", "user_id", ownerID, "note_id", noteID)
	return nil
}

// Search matches query case-insensitively against title and content.
// A blank query is ErrQueryRequired.
func (s *NoteService) Search(ctx context.Context, ownerID, query string) ([]*models.Note, error) {
	if strings.TrimSpace(query) == "" {
		return nil, ErrQueryRequired
	}

	list, err := s.repo.Search(ctx, ownerID, query)
	if err != nil {
		return nil, fmt.Errorf("error searching notes: %w", err)
	}
	return list, nil
}
