package response

import "github.com/edvin/insightcrm/internal/model"

// CustomerResult is returned by customer create and update.
type CustomerResult struct {
	Message  string          `json:"message"`
	Customer *model.Customer `json:"customer"`
}

// RelationshipResult is returned by relationship create.
type RelationshipResult struct {
	Message      string              `json:"message"`
	Relationship *model.Relationship `json:"relationship"`
}

// AuthResult is returned by register and login.
type AuthResult struct {
	Token string      `json:"token"`
	User  *model.User `json:"user"`
}

// UserResult wraps the authenticated user.
type UserResult struct {
	User *model.User `json:"user"`
}
