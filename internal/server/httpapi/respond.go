package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/gophnotes/internal/common"
	"github.com/dmitrijs2005/gophnotes/internal/server/services"
	"github.com/dmitrijs2005/gophnotes/internal/server/validation"
	"github.com/go-chi/chi/v5/middleware"
)

const (
	msgNoToken          = "No token, authorization denied"
	msgTokenInvalid     = "Token is not valid"
	msgTokenExpired     = "Token has expired"
	msgUserExists       = "Username already exists"
	msgBadCredentials   = "Invalid credentials"
	msgNoteNotFound     = "Note not found"
	msgNoteDeleted      = "Note deleted successfully"
	msgQueryRequired    = "Query parameter is required"
	msgBodyTooLarge     = "Request body too large"
	msgServerError      = "Server error"
	msgRouteNotFound    = "Not found"
	msgMethodNotAllowed = "Method not allowed"
)

type messageResponse struct {
	Msg string `json:"msg"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, messageResponse{Msg: msg})
}

// statusFor maps a service error to the response status and message.
// ok is false for errors the client must not see the details of.
func statusFor(err error) (status int, msg string, ok bool) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Error(), true
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusBadRequest, msgUserExists, true
	case errors.Is(err, common.ErrorInvalidCredentials):
		return http.StatusBadRequest, msgBadCredentials, true
	case errors.Is(err, services.ErrQueryRequired):
		return http.StatusBadRequest, msgQueryRequired, true
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, msgNoteNotFound, true
	default:
		return http.StatusInternalServerError, msgServerError, false
	}
}

func (h *handler) writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	status, msg, ok := statusFor(err)
	if !ok {
		h.logger.Error(ctx, "request failed", "error", err, "request_id", middleware.GetReqID(ctx))
	}
	writeError(w, status, msg)
}
