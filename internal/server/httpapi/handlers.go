package httpapi

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/dmitrijs2005/gophnotes/internal/logging"
	"github.com/dmitrijs2005/gophnotes/internal/server/models"
	"github.com/dmitrijs2005/gophnotes/internal/server/validation"
	"github.com/go-chi/chi/v5"
)

const (
	maxBodyBytes  = 64 << 10
	healthTimeout = 2 * time.Second
)

type UserService interface {
	Signup(ctx context.Context, in validation.UserInput) (string, error)
	Login(ctx context.Context, in validation.UserInput) (string, error)
}

type NoteService interface {
	List(ctx context.Context, ownerID string) ([]*models.Note, error)
	Create(ctx context.Context, ownerID string, in validation.NoteInput) (*models.Note, error)
	Update(ctx context.Context, ownerID, noteID string, in validation.NoteInput) (*models.Note, error)
	Delete(ctx context.Context, ownerID, noteID string) error
	Search(ctx context.Context, ownerID, query string) ([]*models.Note, error)
}

type TokenVerifier interface {
	Verify(token string) (string, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type handler struct {
	users   UserService
	notes   NoteService
	tokens  TokenVerifier
	store   Pinger
	metrics *Metrics
	logger  logging.Logger
}

// readBody reads at most maxBodyBytes. It writes the error response itself
// and reports false when the body could not be read.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
			return nil, false
		}
		writeError(w, http.StatusBadRequest, `"value" must be of type object`)
		return nil, false
	}
	return raw, true
}

func (h *handler) signup(w http.ResponseWriter, r *http.Request) {
	raw, ok := readBody(w, r)
	if !ok {
		return
	}
	in, err := validation.DecodeUser(raw)
	if err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}

	token, err := h.users.Signup(r.Context(), in)
	if err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, tokenResponse{Token: token})
}

func (h *handler) login(w http.ResponseWriter, r *http.Request) {
	raw, ok := readBody(w, r)
	if !ok {
		return
	}
	in, err := validation.DecodeCredentials(raw)
	if err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}

	token, err := h.users.Login(r.Context(), in)
	if err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse{Token: token})
}

func (h *handler) listNotes(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := UserIDFromContext(r.Context())

	list, err := h.notes.List(r.Context(), ownerID)
	if err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *handler) createNote(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := UserIDFromContext(r.Context())

	raw, ok := readBody(w, r)
	if !ok {
		return
	}
	in, err := validation.DecodeNote(raw)
	if err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}

	note, err := h.notes.Create(r.Context(), ownerID, in)
	if err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (h *handler) updateNote(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := UserIDFromContext(r.Context())

	raw, ok := readBody(w, r)
	if !ok {
		return
	}
	in, err := validation.DecodeNote(raw)
	if err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}

	note, err := h.notes.Update(r.Context(), ownerID, chi.URLParam(r, "id"), in)
	if err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, note)
}

func (h *handler) deleteNote(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := UserIDFromContext(r.Context())

	if err := h.notes.Delete(r.Context(), ownerID, chi.URLParam(r, "id")); err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Msg: msgNoteDeleted})
}

func (h *handler) searchNotes(w http.ResponseWriter, r *http.Request) {
	ownerID, _ := UserIDFromContext(r.Context())

	list, err := h.notes.Search(r.Context(), ownerID, r.URL.Query().Get("query"))
	if err != nil {
		h.writeServiceError(r.Context(), w, err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *handler) health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		h.logger.Warn(ctx, "store ping failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
