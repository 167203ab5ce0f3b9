package core

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound           = errors.New("not found")
	ErrConflict           = errors.New("conflict")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
)

// pgUniqueViolation is the SQLSTATE for unique_violation.
const pgUniqueViolation = "23505"

// NotFoundError reports that no live record with the given ID exists.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ConflictError reports a uniqueness collision. Fields lists every colliding
// field in detection order.
type ConflictError struct {
	Resource string
	Fields   []string
	Message  string
}

func (e *ConflictError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.Fields) == 0 {
		return e.Resource + " already exists"
	}
	names := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		names[i] = strings.ReplaceAll(f, "_", " ")
	}
	return fmt.Sprintf("%s with this %s already exists", e.Resource, strings.Join(names, " and "))
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrConflict
}

func notFound(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// uniqueConstraintFields maps unique index names to the field they guard.
var uniqueConstraintFields = map[string]string{
	"customers_email_active_key":      "email",
	"customers_id_number_active_key":  "id_number",
	"customer_relationships_pair_key": "",
	"users_email_key":                 "email",
}

// translateWriteError turns a storage-level unique violation into a
// ConflictError. Any other error is wrapped with the given context.
func translateWriteError(err error, resource, op string) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		ce := &ConflictError{Resource: resource}
		if field := uniqueConstraintFields[pgErr.ConstraintName]; field != "" {
			ce.Fields = []string{field}
		}
		return ce
	}
	return fmt.Errorf("%s: %w", op, err)
}
