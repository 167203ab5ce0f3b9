package model

import "time"

// Relationship is a directed edge from CustomerID to RelatedCustomerID.
type Relationship struct {
	ID                string    `json:"id"`
	CustomerID        string    `json:"customer_id"`
	RelatedCustomerID string    `json:"related_customer_id"`
	RelationshipType  string    `json:"relationship_type"`
	Notes             *string   `json:"notes"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// RelationshipView is an edge seen from its CustomerID side. RelatedCustomerName
// is nil when the related customer is missing or inactive.
type RelationshipView struct {
	ID                  string    `json:"id"`
	RelatedCustomerID   string    `json:"related_customer_id"`
	RelationshipType    string    `json:"relationship_type"`
	Notes               *string   `json:"notes"`
	RelatedCustomerName *string   `json:"related_customer_name"`
	CreatedAt           time.Time `json:"created_at"`
}
