package request

import (
	"bytes"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, body string, v any) error {
	t.Helper()
	r, err := http.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	require.NoError(t, err)
	return Decode(r, v)
}

func TestCreateCustomer_Minimal(t *testing.T) {
	var req CreateCustomer
	require.NoError(t, decodeBody(t, `{"name":"Alice"}`, &req))

	c := req.Customer()
	assert.Equal(t, "Alice", c.Name)
	assert.Nil(t, c.Email)
	assert.Nil(t, c.AssignedTo)
	assert.Empty(t, c.CustomerLevel)
}

func TestCreateCustomer_IgnoresAssignedTo(t *testing.T) {
	var req CreateCustomer
	require.NoError(t, decodeBody(t, `{"name":"Alice","assigned_to":"someone"}`, &req))
	assert.Nil(t, req.Customer().AssignedTo)
}

func TestCreateCustomer_EmptyOptionalStringsAccepted(t *testing.T) {
	var req CreateCustomer
	require.NoError(t, decodeBody(t, `{"name":"Alice","email":"","website":"","birthday":"","id_number":""}`, &req))
	require.NotNil(t, req.Email)
	assert.Equal(t, "", *req.Email)
	require.NotNil(t, req.Website)
	assert.Equal(t, "", *req.Website)
}

func TestCreateCustomer_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing name", `{}`, "name is required"},
		{"empty name", `{"name":""}`, "name is required"},
		{"long name", `{"name":"` + strings.Repeat("x", 101) + `"}`, "name must be at most 100"},
		{"bad email", `{"name":"A","email":"nope"}`, "email must be a valid email address"},
		{"bad website", `{"name":"A","website":"not a url"}`, "website must be a valid URL"},
		{"bad birthday", `{"name":"A","birthday":"01/02/1990"}`, "birthday must be a date"},
		{"bad level", `{"name":"A","customer_level":"F"}`, "customer_level must be one of: A, B, C, D, E"},
		{"bad status", `{"name":"A","status":"archived"}`, "status must be one of"},
		{"bad priority", `{"name":"A","priority":"urgent"}`, "priority must be one of"},
		{"bad gender", `{"name":"A","gender":"x"}`, "gender must be one of"},
		{"long phone", `{"name":"A","phone":"` + strings.Repeat("1", 21) + `"}`, "phone must be at most 20"},
		{"long notes", `{"name":"A","notes":"` + strings.Repeat("n", 1001) + `"}`, "notes must be at most 1000"},
		{"bad contact date", `{"name":"A","last_contact_date":"yesterday"}`, "invalid JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var req CreateCustomer
			err := decodeBody(t, tt.body, &req)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestUpdateCustomer_Patch(t *testing.T) {
	var req UpdateCustomer
	require.NoError(t, decodeBody(t,
		`{"email":"new@example.com","customer_level":"A","last_contact_date":"2024-03-01T10:00:00Z"}`, &req))

	p := req.Patch()
	assert.Nil(t, p.Name)
	require.NotNil(t, p.Email)
	assert.Equal(t, "new@example.com", *p.Email)
	require.NotNil(t, p.CustomerLevel)
	assert.Equal(t, "A", *p.CustomerLevel)
	require.NotNil(t, p.LastContactDate)
	assert.Equal(t, 2024, p.LastContactDate.Year())
}

func TestUpdateCustomer_EmptyStringsClearFields(t *testing.T) {
	var req UpdateCustomer
	require.NoError(t, decodeBody(t, `{"email":"","website":"","birthday":""}`, &req))

	p := req.Patch()
	require.NotNil(t, p.Email)
	assert.Equal(t, "", *p.Email)
	require.NotNil(t, p.Website)
	assert.Equal(t, "", *p.Website)
	require.NotNil(t, p.Birthday)
	assert.Equal(t, "", *p.Birthday)
}

func TestUpdateCustomer_RejectsEmptyGender(t *testing.T) {
	var req UpdateCustomer
	err := decodeBody(t, `{"gender":""}`, &req)
	assert.ErrorContains(t, err, "gender must be one of")
}

func TestUpdateCustomer_RejectsEmptyRequiredValues(t *testing.T) {
	var req UpdateCustomer
	err := decodeBody(t, `{"name":""}`, &req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name must be at least 1")

	req = UpdateCustomer{}
	err = decodeBody(t, `{"status":""}`, &req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status must be one of")
}

func TestCreateRelationship(t *testing.T) {
	a := "550e8400-e29b-41d4-a716-446655440000"
	b := "6ba7b810-9dad-11d1-80b4-00c04fd430c8"

	var req CreateRelationship
	require.NoError(t, decodeBody(t,
		`{"customer_id":"`+a+`","related_customer_id":"`+b+`","relationship_type":"spouse"}`, &req))
	rel := req.Relationship()
	assert.Equal(t, a, rel.CustomerID)
	assert.Equal(t, b, rel.RelatedCustomerID)

	req = CreateRelationship{}
	err := decodeBody(t, `{"customer_id":"`+a+`","related_customer_id":"`+a+`","relationship_type":"self"}`, &req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "related_customer_id must differ from customer_id")

	req = CreateRelationship{}
	err = decodeBody(t, `{"customer_id":"abc","related_customer_id":"`+b+`","relationship_type":"x"}`, &req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "customer_id must be a valid UUID")

	req = CreateRelationship{}
	err = decodeBody(t, `{"customer_id":"`+a+`","related_customer_id":"`+b+`","relationship_type":"`+strings.Repeat("t", 51)+`"}`, &req)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "relationship_type must be at most 50")
}

func TestRegisterAndLogin(t *testing.T) {
	var reg Register
	require.NoError(t, decodeBody(t, `{"email":"ops@example.com","password":"hunter22"}`, &reg))

	reg = Register{}
	err := decodeBody(t, `{"email":"ops@example.com","password":"short"}`, &reg)
	assert.ErrorContains(t, err, "password must be at least 8")

	var login Login
	err = decodeBody(t, `{"email":"ops@example.com"}`, &login)
	assert.ErrorContains(t, err, "password is required")
}
