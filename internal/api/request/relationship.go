package request

import "github.com/edvin/insightcrm/internal/model"

// CreateRelationship holds the request body for linking two customers.
type CreateRelationship struct {
	CustomerID        string  `json:"customer_id" validate:"required,uuid"`
	RelatedCustomerID string  `json:"related_customer_id" validate:"required,uuid,nefield=CustomerID"`
	RelationshipType  string  `json:"relationship_type" validate:"required,min=1,max=50"`
	Notes             *string `json:"notes" validate:"omitempty,max=500"`
}

func (c CreateRelationship) Relationship() *model.Relationship {
	return &model.Relationship{
		CustomerID:        c.CustomerID,
		RelatedCustomerID: c.RelatedCustomerID,
		RelationshipType:  c.RelationshipType,
		Notes:             c.Notes,
	}
}
