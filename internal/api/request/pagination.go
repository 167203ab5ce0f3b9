package request

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/edvin/insightcrm/internal/model"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxPage      = 1000
	MaxLimit     = 100
)

// CustomerListQuery holds the query-string parameters of the customer search.
type CustomerListQuery struct {
	Page   int    `json:"page" validate:"min=1,max=1000"`
	Limit  int    `json:"limit" validate:"min=1,max=100"`
	Search string `json:"search" validate:"max=100"`
	Status string `json:"status" validate:"omitempty,oneof=active inactive potential lost"`
	Level  string `json:"customer_level" validate:"omitempty,oneof=A B C D E"`
}

// ParseCustomerListParams extracts and validates the customer search
// parameters. Out-of-range or malformed values are rejected, not clamped.
func ParseCustomerListParams(r *http.Request) (model.CustomerFilter, error) {
	q := r.URL.Query()
	p := CustomerListQuery{
		Page:   DefaultPage,
		Limit:  DefaultLimit,
		Search: strings.TrimSpace(q.Get("search")),
		Status: q.Get("status"),
		Level:  q.Get("customer_level"),
	}

	var err error
	if p.Page, err = intParam(q.Get("page"), DefaultPage); err != nil {
		return model.CustomerFilter{}, fmt.Errorf("validation error: page must be an integer")
	}
	if p.Limit, err = intParam(q.Get("limit"), DefaultLimit); err != nil {
		return model.CustomerFilter{}, fmt.Errorf("validation error: limit must be an integer")
	}
	if err := validateStruct(&p); err != nil {
		return model.CustomerFilter{}, err
	}

	return model.CustomerFilter{
		Page:   p.Page,
		Limit:  p.Limit,
		Search: p.Search,
		Status: p.Status,
		Level:  p.Level,
	}, nil
}

func intParam(s string, fallback int) (int, error) {
	if s == "" {
		return fallback, nil
	}
	return strconv.Atoi(s)
}
