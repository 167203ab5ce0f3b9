package core

import (
	"context"
	"errors"
	"fmt"

	"github.com/edvin/insightcrm/internal/model"
	"github.com/edvin/insightcrm/internal/platform"
	"github.com/jackc/pgx/v5"
)

const relationshipColumns = `id, customer_id, related_customer_id, relationship_type, notes, created_at, updated_at`

// RelationshipService is the relationship repository. Edges are directed and
// the ordered pair (customer_id, related_customer_id) is unique.
type RelationshipService struct {
	db DB
}

func NewRelationshipService(db DB) *RelationshipService {
	return &RelationshipService{db: db}
}

// Create inserts an edge. Endpoints are not checked for existence.
func (s *RelationshipService) Create(ctx context.Context, r *model.Relationship) (*model.Relationship, error) {
	var exists bool
	err := s.db.QueryRow(ctx,
		"SELECT EXISTS(SELECT 1 FROM customer_relationships WHERE customer_id = $1 AND related_customer_id = $2)",
		r.CustomerID, r.RelatedCustomerID,
	).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check relationship %s -> %s: %w", r.CustomerID, r.RelatedCustomerID, err)
	}
	if exists {
		return nil, &ConflictError{Resource: "relationship"}
	}

	row := s.db.QueryRow(ctx,
		`INSERT INTO customer_relationships (id, customer_id, related_customer_id, relationship_type, notes)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+relationshipColumns,
		platform.NewID(), r.CustomerID, r.RelatedCustomerID, r.RelationshipType, nullIfEmpty(r.Notes),
	)
	created, err := scanRelationship(row)
	if err != nil {
		return nil, translateWriteError(err, "relationship", "create relationship")
	}
	return created, nil
}

func (s *RelationshipService) GetByID(ctx context.Context, id string) (*model.Relationship, error) {
	r, err := scanRelationship(s.db.QueryRow(ctx,
		"SELECT "+relationshipColumns+" FROM customer_relationships WHERE id = $1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, notFound("relationship", id)
	}
	if err != nil {
		return nil, fmt.Errorf("get relationship %s: %w", id, err)
	}
	return r, nil
}

// Delete removes an edge by id.
func (s *RelationshipService) Delete(ctx context.Context, id string) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}
	tag, err := s.db.Exec(ctx, "DELETE FROM customer_relationships WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete relationship %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return notFound("relationship", id)
	}
	return nil
}

// ListByCustomer returns the edges leaving customerID. The related name is
// only resolved for active customers.
func (s *RelationshipService) ListByCustomer(ctx context.Context, customerID string) ([]model.RelationshipView, error) {
	rows, err := s.db.Query(ctx,
		`SELECT r.id, r.related_customer_id, r.relationship_type, r.notes, rc.name, r.created_at
		 FROM customer_relationships r
		 LEFT JOIN customers rc ON rc.id = r.related_customer_id AND rc.is_active = true
		 WHERE r.customer_id = $1
		 ORDER BY r.created_at`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list relationships for customer %s: %w", customerID, err)
	}
	defer rows.Close()

	views := []model.RelationshipView{}
	for rows.Next() {
		var v model.RelationshipView
		if err := rows.Scan(&v.ID, &v.RelatedCustomerID, &v.RelationshipType, &v.Notes,
			&v.RelatedCustomerName, &v.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan relationship: %w", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate relationships: %w", err)
	}
	return views, nil
}

// deleteByCustomerTx removes every edge where id is either endpoint, inside
// an open transaction.
func (s *RelationshipService) deleteByCustomerTx(ctx context.Context, q Querier, id string) (int64, error) {
	tag, err := q.Exec(ctx,
		"DELETE FROM customer_relationships WHERE customer_id = $1 OR related_customer_id = $1", id)
	if err != nil {
		return 0, fmt.Errorf("delete relationships for customer %s: %w", id, err)
	}
	return tag.RowsAffected(), nil
}

func scanRelationship(row pgx.Row) (*model.Relationship, error) {
	var r model.Relationship
	if err := row.Scan(&r.ID, &r.CustomerID, &r.RelatedCustomerID, &r.RelationshipType, &r.Notes,
		&r.CreatedAt, &r.UpdatedAt); err != nil {
		return nil, err
	}
	return &r, nil
}
