package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/mock"

	mw "github.com/edvin/insightcrm/internal/api/middleware"
	"github.com/edvin/insightcrm/internal/model"
)

// newRequest creates a new HTTP request with an optional JSON body.
func newRequest(method, target string, body any) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	r := httptest.NewRequest(method, target, &buf)
	r.Header.Set("Content-Type", "application/json")
	return r
}

// newRequestRaw creates a new HTTP request with a raw string body.
func newRequestRaw(method, target, body string) *http.Request {
	r := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	r.Header.Set("Content-Type", "application/json")
	return r
}

// withChiURLParam adds a chi URL parameter to the request context.
func withChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// decodeErrorResponse parses the JSON error response body into a map.
func decodeErrorResponse(rec *httptest.ResponseRecorder) map[string]string {
	var body map[string]string
	json.Unmarshal(rec.Body.Bytes(), &body)
	return body
}

// withUser injects the claims of an authenticated user into the request context.
func withUser(r *http.Request, userID string) *http.Request {
	claims := &model.JWTClaims{
		Email:            "owner@example.com",
		RegisteredClaims: jwt.RegisteredClaims{Subject: userID},
	}
	return r.WithContext(mw.WithClaims(r.Context(), claims))
}

// sqlHas matches a SQL string containing sub.
func sqlHas(sub string) any {
	return mock.MatchedBy(func(sql string) bool { return strings.Contains(sql, sub) })
}

func errRow(err error) *handlerMockRow {
	return &handlerMockRow{scanFunc: func(...any) error { return err }}
}

var noRows = errRow(pgx.ErrNoRows)

func boolRow(v bool) *handlerMockRow {
	return &handlerMockRow{scanFunc: func(dest ...any) error {
		*(dest[0].(*bool)) = v
		return nil
	}}
}

func strPtr(s string) *string { return &s }

func testCustomer(id, name string, email *string) model.Customer {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return model.Customer{
		ID:            id,
		Name:          name,
		Email:         email,
		CustomerLevel: model.LevelC,
		Status:        model.StatusActive,
		Priority:      model.PriorityNormal,
		AssignedTo:    strPtr(testUserID),
		IsActive:      true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}

// customerScan fills the customer column list in order.
func customerScan(c model.Customer) func(dest ...any) error {
	return func(dest ...any) error {
		*(dest[0].(*string)) = c.ID
		*(dest[1].(*string)) = c.Name
		*(dest[2].(**string)) = c.Email
		*(dest[3].(**string)) = c.Phone
		*(dest[4].(**string)) = c.IDNumber
		*(dest[5].(**string)) = c.Gender
		*(dest[6].(**string)) = c.Birthday
		*(dest[7].(**string)) = c.ZodiacSign
		*(dest[8].(**string)) = c.Interests
		*(dest[9].(**bool)) = c.IsMarried
		*(dest[10].(**bool)) = c.HasChildren
		*(dest[11].(*string)) = c.CustomerLevel
		*(dest[12].(**string)) = c.CustomerSource
		*(dest[13].(**string)) = c.Company
		*(dest[14].(**string)) = c.Position
		*(dest[15].(**string)) = c.Address
		*(dest[16].(**string)) = c.City
		*(dest[17].(**string)) = c.Country
		*(dest[18].(**string)) = c.Website
		*(dest[19].(**string)) = c.Notes
		*(dest[20].(*string)) = c.Status
		*(dest[21].(*string)) = c.Priority
		*(dest[22].(**string)) = c.AssignedTo
		*(dest[23].(**time.Time)) = c.LastContactDate
		*(dest[24].(*bool)) = c.IsActive
		*(dest[25].(*time.Time)) = c.CreatedAt
		*(dest[26].(*time.Time)) = c.UpdatedAt
		return nil
	}
}

const (
	testUserID     = "5d2c9c4e-8f1a-4b7e-9c3d-1a2b3c4d5e6f"
	validID        = "0b7e6f1a-2c3d-4e5f-9a8b-7c6d5e4f3a2b"
	validID2       = "7a1b2c3d-4e5f-4a6b-8c7d-9e0f1a2b3c4d"
	testRelationID = "c3d4e5f6-a7b8-4c9d-8e0f-1a2b3c4d5e6f"
)
