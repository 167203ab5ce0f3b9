package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// DeactivationService soft-deletes a customer and drops its relationships in
// a single transaction.
type DeactivationService struct {
	db            DB
	customers     *CustomerService
	relationships *RelationshipService
}

func NewDeactivationService(db DB, customers *CustomerService, relationships *RelationshipService) *DeactivationService {
	return &DeactivationService{db: db, customers: customers, relationships: relationships}
}

// Deactivate removes every edge touching customerID, then marks the customer
// inactive. Either both happen or neither does. It returns the number of
// edges removed.
func (s *DeactivationService) Deactivate(ctx context.Context, customerID string) (int64, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin deactivate customer %s: %w", customerID, err)
	}
	// No-op once committed.
	defer func() { _ = tx.Rollback(ctx) }()

	removed, err := s.relationships.deleteByCustomerTx(ctx, tx, customerID)
	if err != nil {
		return 0, err
	}
	if err := s.customers.deactivateTx(ctx, tx, customerID); err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit deactivate customer %s: %w", customerID, err)
	}

	zerolog.Ctx(ctx).Debug().
		Str("customer_id", customerID).
		Int64("removed_relationships", removed).
		Msg("customer deactivated")
	return removed, nil
}
