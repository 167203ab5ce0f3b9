package handler

import (
	"net/http"

	"github.com/edvin/insightcrm/internal/api/request"
	"github.com/edvin/insightcrm/internal/api/response"
	"github.com/edvin/insightcrm/internal/core"
	"github.com/edvin/insightcrm/internal/metrics"
)

type Relationship struct {
	svc *core.RelationshipService
}

func NewRelationship(svc *core.RelationshipService) *Relationship {
	return &Relationship{svc: svc}
}

// Create godoc
//
//	@Summary		Link two customers
//	@Description	Creates a directed relationship from customer_id to related_customer_id. The same ordered pair may exist only once; the reverse direction is a separate relationship.
//	@Tags			Relationships
//	@Security		BearerAuth
//	@Param			body	body		request.CreateRelationship	true	"Relationship details"
//	@Success		201		{object}	response.RelationshipResult
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		409		{object}	response.ErrorResponse
//	@Router			/customers/relationships [post]
func (h *Relationship) Create(w http.ResponseWriter, r *http.Request) {
	var req request.CreateRelationship
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	rel, err := h.svc.Create(r.Context(), req.Relationship())
	metrics.ObserveWrite(metrics.OpRelationshipCreate, err)
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, response.RelationshipResult{
		Message:      "relationship created",
		Relationship: rel,
	})
}

// Delete godoc
//
//	@Summary		Delete a relationship
//	@Tags			Relationships
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Relationship ID"
//	@Success		200	{object}	response.MessageResponse
//	@Failure		400	{object}	response.ErrorResponse
//	@Failure		404	{object}	response.ErrorResponse
//	@Router			/customers/relationships/{id} [delete]
func (h *Relationship) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := h.svc.Delete(r.Context(), id)
	metrics.ObserveWrite(metrics.OpRelationshipDelete, err)
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, response.MessageResponse{Message: "relationship deleted"})
}
