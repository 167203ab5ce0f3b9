package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundError(t *testing.T) {
	err := notFound("customer", "abc")
	assert.Equal(t, "customer not found", err.Error())
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrConflict))

	wrapped := fmt.Errorf("delete customer abc: %w", err)
	assert.True(t, errors.Is(wrapped, ErrNotFound))

	var nf *NotFoundError
	require.True(t, errors.As(wrapped, &nf))
	assert.Equal(t, "abc", nf.ID)
}

func TestConflictError_Messages(t *testing.T) {
	tests := []struct {
		name string
		err  *ConflictError
		want string
	}{
		{"email", &ConflictError{Resource: "customer", Fields: []string{"email"}}, "customer with this email already exists"},
		{"id number", &ConflictError{Resource: "customer", Fields: []string{"id_number"}}, "customer with this id number already exists"},
		{"both", &ConflictError{Resource: "customer", Fields: []string{"email", "id_number"}}, "customer with this email and id number already exists"},
		{"no fields", &ConflictError{Resource: "relationship"}, "relationship already exists"},
		{"explicit message", &ConflictError{Resource: "user", Message: "email already registered"}, "email already registered"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.True(t, errors.Is(tt.err, ErrConflict))
		})
	}
}

func TestTranslateWriteError_UniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "customers_id_number_active_key"}
	err := translateWriteError(fmt.Errorf("exec: %w", pgErr), "customer", "create customer")

	var ce *ConflictError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, []string{"id_number"}, ce.Fields)
	assert.Equal(t, "customer", ce.Resource)
}

func TestTranslateWriteError_PairIndex(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "customer_relationships_pair_key"}
	err := translateWriteError(pgErr, "relationship", "create relationship")

	assert.True(t, errors.Is(err, ErrConflict))
	assert.Equal(t, "relationship already exists", err.Error())
}

func TestTranslateWriteError_OtherError(t *testing.T) {
	err := translateWriteError(&pgconn.PgError{Code: "23502"}, "customer", "create customer")
	assert.False(t, errors.Is(err, ErrConflict))
	assert.Contains(t, err.Error(), "create customer")

	err = translateWriteError(errors.New("connection reset"), "customer", "update customer x")
	assert.Equal(t, "update customer x: connection reset", err.Error())
}
