package model

import "time"

// Customer is a CRM record. Optional fields are nil when unset.
type Customer struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Email           *string    `json:"email"`
	Phone           *string    `json:"phone"`
	IDNumber        *string    `json:"id_number"`
	Gender          *string    `json:"gender"`
	Birthday        *string    `json:"birthday"`
	ZodiacSign      *string    `json:"zodiac_sign"`
	Interests       *string    `json:"interests"`
	IsMarried       *bool      `json:"is_married"`
	HasChildren     *bool      `json:"has_children"`
	CustomerLevel   string     `json:"customer_level"`
	CustomerSource  *string    `json:"customer_source"`
	Company         *string    `json:"company"`
	Position        *string    `json:"position"`
	Address         *string    `json:"address"`
	City            *string    `json:"city"`
	Country         *string    `json:"country"`
	Website         *string    `json:"website"`
	Notes           *string    `json:"notes"`
	Status          string     `json:"status"`
	Priority        string     `json:"priority"`
	AssignedTo      *string    `json:"assigned_to"`
	LastContactDate *time.Time `json:"last_contact_date"`
	IsActive        bool       `json:"is_active"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// CustomerPatch is a partial update. A nil field is left unchanged; an empty
// string clears a nullable text column.
type CustomerPatch struct {
	Name            *string
	Email           *string
	Phone           *string
	IDNumber        *string
	Gender          *string
	Birthday        *string
	ZodiacSign      *string
	Interests       *string
	IsMarried       *bool
	HasChildren     *bool
	CustomerLevel   *string
	CustomerSource  *string
	Company         *string
	Position        *string
	Address         *string
	City            *string
	Country         *string
	Website         *string
	Notes           *string
	Status          *string
	Priority        *string
	LastContactDate *time.Time
}

// CustomerDetail is a customer together with its outgoing relationships.
type CustomerDetail struct {
	Customer      Customer           `json:"customer"`
	Relationships []RelationshipView `json:"relationships"`
}

// CustomerFilter selects a page of active customers.
type CustomerFilter struct {
	Page   int
	Limit  int
	Search string
	Status string
	Level  string
}

// Offset returns the number of rows skipped before the requested page.
func (f CustomerFilter) Offset() int {
	if f.Page < 1 {
		return 0
	}
	return (f.Page - 1) * f.Limit
}

// CustomerPage is one page of a customer search.
type CustomerPage struct {
	Customers  []Customer `json:"customers"`
	Pagination Pagination `json:"pagination"`
}
