package core

import "time"

// AuthConfig carries the token settings for AuthService.
type AuthConfig struct {
	JWTSecret string
	JWTIssuer string
	TokenTTL  time.Duration
}

type Services struct {
	Customer     *CustomerService
	Relationship *RelationshipService
	Deactivation *DeactivationService
	Auth         *AuthService
}

func NewServices(db DB, auth AuthConfig) *Services {
	relationships := NewRelationshipService(db)
	customers := NewCustomerService(db, relationships)
	return &Services{
		Customer:     customers,
		Relationship: relationships,
		Deactivation: customers.deactivation,
		Auth:         NewAuthService(db, auth.JWTSecret, auth.JWTIssuer, auth.TokenTTL),
	}
}
