package handler

import (
	"net/http"

	"github.com/edvin/insightcrm/internal/api/request"
	"github.com/edvin/insightcrm/internal/api/response"
	"github.com/edvin/insightcrm/internal/core"
	"github.com/edvin/insightcrm/internal/metrics"
)

type Customer struct {
	svc *core.CustomerService
}

func NewCustomer(svc *core.CustomerService) *Customer {
	return &Customer{svc: svc}
}

// List godoc
//
//	@Summary		List customers
//	@Description	Returns a page of active customers, newest first. The search term is matched as a case-sensitive substring against name, email, phone and company. Status and customer_level filter by equality.
//	@Tags			Customers
//	@Security		BearerAuth
//	@Param			page			query		int		false	"Page number (1-1000, default 1)"
//	@Param			limit			query		int		false	"Page size (1-100, default 10)"
//	@Param			search			query		string	false	"Substring search"
//	@Param			status			query		string	false	"Filter by status"	Enums(active, inactive, potential, lost)
//	@Param			customer_level	query		string	false	"Filter by level"	Enums(A, B, C, D, E)
//	@Success		200				{object}	model.CustomerPage
//	@Failure		400				{object}	response.ErrorResponse
//	@Failure		401				{object}	response.ErrorResponse
//	@Failure		500				{object}	response.ErrorResponse
//	@Router			/customers [get]
func (h *Customer) List(w http.ResponseWriter, r *http.Request) {
	filter, err := request.ParseCustomerListParams(r)
	if err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	page, err := h.svc.List(r.Context(), filter)
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, page)
}

// Get godoc
//
//	@Summary		Get a customer
//	@Description	Returns an active customer with its outgoing relationships. Each relationship carries the related customer's current name when that customer is still active.
//	@Tags			Customers
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Customer ID"
//	@Success		200	{object}	model.CustomerDetail
//	@Failure		400	{object}	response.ErrorResponse
//	@Failure		404	{object}	response.ErrorResponse
//	@Router			/customers/{id} [get]
func (h *Customer) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	detail, err := h.svc.GetByID(r.Context(), id)
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, detail)
}

// Create godoc
//
//	@Summary		Create a customer
//	@Description	Creates an active customer assigned to the caller. Email and id_number must not belong to another active customer. Empty email, id_number and website are stored as null.
//	@Tags			Customers
//	@Security		BearerAuth
//	@Param			body	body		request.CreateCustomer	true	"Customer details"
//	@Success		201		{object}	response.CustomerResult
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		409		{object}	response.ErrorResponse
//	@Router			/customers [post]
func (h *Customer) Create(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := callerID(w, r)
	if !ok {
		return
	}

	var req request.CreateCustomer
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	customer, err := h.svc.Create(r.Context(), ownerID, req.Customer())
	metrics.ObserveWrite(metrics.OpCreate, err)
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusCreated, response.CustomerResult{
		Message:  "customer created",
		Customer: customer,
	})
}

// Update godoc
//
//	@Summary		Update a customer
//	@Description	Applies the supplied fields to an active customer. Ownership, creation time and the active flag cannot be changed. A changed email or id_number is checked for uniqueness again.
//	@Tags			Customers
//	@Security		BearerAuth
//	@Param			id		path		string					true	"Customer ID"
//	@Param			body	body		request.UpdateCustomer	true	"Fields to change"
//	@Success		200		{object}	response.CustomerResult
//	@Failure		400		{object}	response.ErrorResponse
//	@Failure		404		{object}	response.ErrorResponse
//	@Failure		409		{object}	response.ErrorResponse
//	@Router			/customers/{id} [put]
func (h *Customer) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req request.UpdateCustomer
	if err := request.Decode(r, &req); err != nil {
		response.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	customer, err := h.svc.Update(r.Context(), id, req.Patch())
	metrics.ObserveWrite(metrics.OpUpdate, err)
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, response.CustomerResult{
		Message:  "customer updated",
		Customer: customer,
	})
}

// Delete godoc
//
//	@Summary		Delete a customer
//	@Description	Soft-deletes an active customer and removes every relationship that references it, in one transaction.
//	@Tags			Customers
//	@Security		BearerAuth
//	@Param			id	path		string	true	"Customer ID"
//	@Success		200	{object}	response.MessageResponse
//	@Failure		400	{object}	response.ErrorResponse
//	@Failure		404	{object}	response.ErrorResponse
//	@Router			/customers/{id} [delete]
func (h *Customer) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	err := h.svc.Delete(r.Context(), id)
	metrics.ObserveWrite(metrics.OpDelete, err)
	if err != nil {
		response.WriteServiceError(w, r, err)
		return
	}

	response.WriteJSON(w, http.StatusOK, response.MessageResponse{Message: "customer deleted"})
}
