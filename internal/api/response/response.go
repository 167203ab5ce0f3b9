package response

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/edvin/insightcrm/internal/core"
)

type contextKey struct{}

// ExposeDetail marks requests so that 500 responses carry the internal error
// text. The server installs it only in dev mode.
func ExposeDetail(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), contextKey{}, true)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func exposeDetail(ctx context.Context) bool {
	v, _ := ctx.Value(contextKey{}).(bool)
	return v
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// MessageResponse is a bare acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Error: message})
}

// WriteServiceError maps a core error to its HTTP status. Not-found and
// conflict bodies carry only the typed error's own message, never the
// wrapping context. Unrecognised errors are logged with the request logger
// and reported generically.
func WriteServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		nf *core.NotFoundError
		ce *core.ConflictError
	)
	switch {
	case errors.As(err, &nf):
		WriteError(w, http.StatusNotFound, nf.Error())
	case errors.As(err, &ce):
		WriteError(w, http.StatusConflict, ce.Error())
	case errors.Is(err, core.ErrNotFound):
		WriteError(w, http.StatusNotFound, core.ErrNotFound.Error())
	case errors.Is(err, core.ErrConflict):
		WriteError(w, http.StatusConflict, core.ErrConflict.Error())
	case errors.Is(err, core.ErrInvalidCredentials):
		WriteError(w, http.StatusUnauthorized, core.ErrInvalidCredentials.Error())
	case errors.Is(err, core.ErrInvalidToken):
		WriteError(w, http.StatusUnauthorized, "invalid or expired token")
	default:
		zerolog.Ctx(r.Context()).Error().Err(err).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("internal server error")
		body := ErrorResponse{Error: "internal server error"}
		if exposeDetail(r.Context()) {
			body.Message = err.Error()
		}
		WriteJSON(w, http.StatusInternalServerError, body)
	}
}
