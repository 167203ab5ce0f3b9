package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/edvin/insightcrm/internal/core"
	"github.com/edvin/insightcrm/internal/model"
)

func newRelationshipHandlerWithDB() (*Relationship, *handlerMockDB) {
	db := &handlerMockDB{}
	return NewRelationship(core.NewRelationshipService(db)), db
}

func relationshipScan(r model.Relationship) func(dest ...any) error {
	return func(dest ...any) error {
		*(dest[0].(*string)) = r.ID
		*(dest[1].(*string)) = r.CustomerID
		*(dest[2].(*string)) = r.RelatedCustomerID
		*(dest[3].(*string)) = r.RelationshipType
		*(dest[4].(**string)) = r.Notes
		*(dest[5].(*time.Time)) = r.CreatedAt
		*(dest[6].(*time.Time)) = r.UpdatedAt
		return nil
	}
}

// --- Create ---

func TestRelationshipCreate_InvalidJSON(t *testing.T) {
	h := NewRelationship(nil)
	rec := httptest.NewRecorder()

	h.Create(rec, newRequestRaw(http.MethodPost, "/customers/relationships", "{"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeErrorResponse(rec)["error"], "invalid JSON")
}

func TestRelationshipCreate_ValidationFailures(t *testing.T) {
	tests := []struct {
		name string
		body map[string]any
		want string
	}{
		{"missing fields", map[string]any{}, "customer_id is required"},
		{"non-uuid customer", map[string]any{
			"customer_id": "1", "related_customer_id": validID2, "relationship_type": "friend",
		}, "customer_id must be a valid UUID"},
		{"self reference", map[string]any{
			"customer_id": validID, "related_customer_id": validID, "relationship_type": "friend",
		}, "related_customer_id must differ from customer_id"},
		{"type too long", map[string]any{
			"customer_id": validID, "related_customer_id": validID2,
			"relationship_type": "abcdefghijabcdefghijabcdefghijabcdefghijabcdefghijk",
		}, "relationship_type must be at most 50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewRelationship(nil)
			rec := httptest.NewRecorder()

			h.Create(rec, newRequest(http.MethodPost, "/customers/relationships", tt.body))

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, decodeErrorResponse(rec)["error"], tt.want)
		})
	}
}

func TestRelationshipCreate_Duplicate(t *testing.T) {
	h, db := newRelationshipHandlerWithDB()

	db.On("QueryRow", mock.Anything, sqlHas("SELECT EXISTS"), []any{validID, validID2}).Return(boolRow(true))

	rec := httptest.NewRecorder()
	h.Create(rec, newRequest(http.MethodPost, "/customers/relationships", map[string]any{
		"customer_id":         validID,
		"related_customer_id": validID2,
		"relationship_type":   "spouse",
	}))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "relationship already exists", decodeErrorResponse(rec)["error"])
}

func TestRelationshipCreate_Success(t *testing.T) {
	h, db := newRelationshipHandlerWithDB()

	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	created := model.Relationship{
		ID:                testRelationID,
		CustomerID:        validID2,
		RelatedCustomerID: validID,
		RelationshipType:  "spouse",
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	db.On("QueryRow", mock.Anything, sqlHas("SELECT EXISTS"), []any{validID2, validID}).Return(boolRow(false))
	db.On("QueryRow", mock.Anything, sqlHas("INSERT INTO customer_relationships"), mock.Anything).
		Return(&handlerMockRow{scanFunc: relationshipScan(created)})

	rec := httptest.NewRecorder()
	h.Create(rec, newRequest(http.MethodPost, "/customers/relationships", map[string]any{
		"customer_id":         validID2,
		"related_customer_id": validID,
		"relationship_type":   "spouse",
	}))

	require.Equal(t, http.StatusCreated, rec.Code)
	var body struct {
		Message      string             `json:"message"`
		Relationship model.Relationship `json:"relationship"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "relationship created", body.Message)
	assert.Equal(t, testRelationID, body.Relationship.ID)
	assert.Equal(t, validID2, body.Relationship.CustomerID)
}

func TestRelationshipCreate_UniqueIndexViolation(t *testing.T) {
	h, db := newRelationshipHandlerWithDB()

	db.On("QueryRow", mock.Anything, sqlHas("SELECT EXISTS"), mock.Anything).Return(boolRow(false))
	db.On("QueryRow", mock.Anything, sqlHas("INSERT INTO customer_relationships"), mock.Anything).
		Return(errRow(&pgconn.PgError{Code: "23505", ConstraintName: "customer_relationships_pair_key"}))

	rec := httptest.NewRecorder()
	h.Create(rec, newRequest(http.MethodPost, "/customers/relationships", map[string]any{
		"customer_id":         validID,
		"related_customer_id": validID2,
		"relationship_type":   "spouse",
	}))

	assert.Equal(t, http.StatusConflict, rec.Code)
}

// --- Delete ---

func TestRelationshipDelete_InvalidID(t *testing.T) {
	h := NewRelationship(nil)
	rec := httptest.NewRecorder()
	r := withChiURLParam(newRequest(http.MethodDelete, "/customers/relationships/7", nil), "id", "7")

	h.Delete(rec, r)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRelationshipDelete_NotFound(t *testing.T) {
	h, db := newRelationshipHandlerWithDB()

	db.On("QueryRow", mock.Anything, sqlHas("FROM customer_relationships WHERE id = $1"), []any{testRelationID}).
		Return(noRows)

	rec := httptest.NewRecorder()
	r := withChiURLParam(newRequest(http.MethodDelete, "/customers/relationships/"+testRelationID, nil), "id", testRelationID)
	h.Delete(rec, r)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "relationship not found", decodeErrorResponse(rec)["error"])
}

func TestRelationshipDelete_Success(t *testing.T) {
	h, db := newRelationshipHandlerWithDB()

	db.On("QueryRow", mock.Anything, sqlHas("FROM customer_relationships WHERE id = $1"), []any{testRelationID}).
		Return(&handlerMockRow{scanFunc: relationshipScan(model.Relationship{ID: testRelationID})})
	db.On("Exec", mock.Anything, sqlHas("DELETE FROM customer_relationships WHERE id = $1"), []any{testRelationID}).
		Return(pgconn.NewCommandTag("DELETE 1"), nil)

	rec := httptest.NewRecorder()
	r := withChiURLParam(newRequest(http.MethodDelete, "/customers/relationships/"+testRelationID, nil), "id", testRelationID)
	h.Delete(rec, r)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"relationship deleted"}`, rec.Body.String())
}
