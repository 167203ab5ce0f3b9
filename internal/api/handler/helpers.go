package handler

import (
	"net/http"

	mw "github.com/edvin/insightcrm/internal/api/middleware"
	"github.com/edvin/insightcrm/internal/api/request"
	"github.com/edvin/insightcrm/internal/api/response"
	"github.com/go-chi/chi/v5"
)

// callerID returns the authenticated user's id. Returns false and writes
// an error response if the request carries no claims.
func callerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims := mw.GetClaims(r.Context())
	if claims == nil || claims.Subject == "" {
		response.WriteError(w, http.StatusUnauthorized, "access token required")
		return "", false
	}
	return claims.Subject, true
}

// pathID reads and validates the {id} URL parameter. Returns false and
// writes a 400 if it is not a record id.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := request.RequireUUID(chi.URLParam(r, "id"))
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return "", false
	}
	return id, true
}
