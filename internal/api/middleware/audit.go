package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"

	"github.com/edvin/insightcrm/internal/platform"
)

// AuditStore is the subset of the pool the audit writer needs.
type AuditStore interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// AuditLogger is an async audit log writer.
type AuditLogger struct {
	store  AuditStore
	logger zerolog.Logger
	ch     chan auditEntry
	done   sync.WaitGroup
}

type auditEntry struct {
	UserID       *string
	Method       string
	Path         string
	ResourceType *string
	ResourceID   *string
	StatusCode   int
	RequestBody  json.RawMessage
}

func NewAuditLogger(store AuditStore, logger zerolog.Logger) *AuditLogger {
	al := &AuditLogger{
		store:  store,
		logger: logger,
		ch:     make(chan auditEntry, 1024),
	}
	al.done.Add(1)
	go al.drain()
	return al
}

func (al *AuditLogger) drain() {
	defer al.done.Done()
	for entry := range al.ch {
		_, err := al.store.Exec(
			// the request context is gone by the time the entry is written
			context.Background(),
			`INSERT INTO audit_logs (id, user_id, method, path, resource_type, resource_id, status_code, request_body, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, now())`,
			platform.NewID(), entry.UserID, entry.Method, entry.Path, entry.ResourceType, entry.ResourceID, entry.StatusCode, entry.RequestBody,
		)
		if err != nil {
			al.logger.Error().Err(err).Str("path", entry.Path).Msg("failed to write audit log")
		}
	}
}

// Close stops accepting entries and waits until the buffered ones are written.
func (al *AuditLogger) Close() {
	close(al.ch)
	al.done.Wait()
}

// Middleware returns a chi middleware that logs mutating API requests.
// It must run after Auth so the caller's claims are in the context.
func (al *AuditLogger) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost && r.Method != http.MethodPut && r.Method != http.MethodDelete {
			next.ServeHTTP(w, r)
			return
		}

		var bodyBytes []byte
		if r.Body != nil {
			bodyBytes, _ = io.ReadAll(r.Body)
			r.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)

		resourceType, resourceID := extractResource(r.URL.Path)

		var userID *string
		if claims := GetClaims(r.Context()); claims != nil && claims.Subject != "" {
			id := claims.Subject
			userID = &id
		}

		var sanitizedBody json.RawMessage
		if len(bodyBytes) > 0 && json.Valid(bodyBytes) {
			sanitizedBody = sanitizeBody(bodyBytes)
		}

		select {
		case al.ch <- auditEntry{
			UserID:       userID,
			Method:       r.Method,
			Path:         r.URL.Path,
			ResourceType: resourceType,
			ResourceID:   resourceID,
			StatusCode:   sw.status,
			RequestBody:  sanitizedBody,
		}:
		default:
			al.logger.Warn().Msg("audit log buffer full, dropping entry")
		}
	})
}

// extractResource returns the last non-id path segment as the resource type
// and a record id that follows it, if any.
//
//	/api/v1/customers                    -> customers
//	/api/v1/customers/{id}               -> customers, {id}
//	/api/v1/customers/relationships      -> relationships
//	/api/v1/customers/relationships/{id} -> relationships, {id}
func extractResource(path string) (*string, *string) {
	parts := strings.Split(strings.TrimPrefix(path, "/api/v1/"), "/")

	var resourceType, resourceID *string
	for _, part := range parts {
		if part == "" {
			continue
		}
		p := part
		if platform.IsID(part) {
			resourceID = &p
			continue
		}
		resourceType = &p
		resourceID = nil
	}

	return resourceType, resourceID
}

// sensitiveFields are redacted from audit logs.
var sensitiveFields = map[string]bool{
	"password": true, "token": true, "secret": true, "id_number": true,
}

func sanitizeBody(body []byte) json.RawMessage {
	var data map[string]any
	if err := json.Unmarshal(body, &data); err != nil {
		return body
	}
	for k := range data {
		if sensitiveFields[k] {
			data[k] = "[REDACTED]"
		}
	}
	sanitized, _ := json.Marshal(data)
	return sanitized
}
