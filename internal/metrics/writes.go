package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/edvin/insightcrm/internal/core"
)

// Write operations counted by CustomerWrites.
const (
	OpCreate             = "create"
	OpUpdate             = "update"
	OpDelete             = "delete"
	OpRelationshipCreate = "relationship_create"
	OpRelationshipDelete = "relationship_delete"
)

var CustomerWrites = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "crm_customer_writes_total",
		Help: "Customer and relationship write operations by outcome",
	},
	[]string{"op", "outcome"},
)

// ObserveWrite counts one write operation, classifying err into an outcome label.
func ObserveWrite(op string, err error) {
	CustomerWrites.WithLabelValues(op, Outcome(err)).Inc()
}

// Outcome maps a service error to a low-cardinality label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, core.ErrNotFound):
		return "not_found"
	case errors.Is(err, core.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}
