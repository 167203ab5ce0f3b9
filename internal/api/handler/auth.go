package handler

import (
	"net/http"

	"github.com/edvin/insightcrm/internal/api/request"
	"github.com/edvin/insightcrm/internal/api/response"
	"github.com/edvin/insightcrm/internal/core"
)

type Auth struct {
	svc *core.AuthService
}

func NewAuth(svc *core.AuthService) *Auth {
	return &Auth{svc: svc}
}

// Register godoc
//
//	@Summary		Register a user
//	@Description	Creates a user account and returns an access token for it.
//	@Tags			Auth
//	@Param			body	body		request.Register	true	"Account details"
//	@Success		201		{object}	response.AuthResult
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		409		{object}	response.ErrorResponse
//	@Router			/auth/register [post]
func (h *Auth) Register(w http.ResponseWriter, r *http.Request) {
	var req request.Register
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := h.svc.Register(r.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, response.AuthResult{Token: token, User: user})
}

// Login godoc
//
//	@Summary		Log in
//	@Description	Exchanges email and password for an access token.
//	@Tags			Auth
//	@Param			body	body		request.Login	true	"Credentials"
//	@Success		200		{object}	response.AuthResult
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		401		{object}	response.ErrorResponse
//	@Router			/auth/login [post]
func (h *Auth) Login(w http.ResponseWriter, r *http.Request) {
	var req request.Login
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, token, err := h.svc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, response.AuthResult{Token: token, User: user})
}

// Me godoc
//
//	@Summary	Current user
//	@Tags		Auth
//	@Security	BearerAuth
//	@Success	200	{object}	response.UserResult
//	@Failure	401	{object}	response.ErrorResponse
//	@Router		/auth/me [get]
func (h *Auth) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := callerID(w, r)
	if !ok {
		return
	}

	user, err := h.svc.GetUser(r.Context(), userID)
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, response.UserResult{User: user})
}
