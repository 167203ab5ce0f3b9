package platform

import "github.com/google/uuid"

// NewID returns a new random record identifier.
func NewID() string {
	return uuid.New().String()
}

// IsID reports whether s is a well-formed record identifier.
func IsID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil && len(s) == 36
}
