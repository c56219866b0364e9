package id

import "github.com/google/uuid"

// NewLocal returns a client-generated identifier for a local record.
// Local identifiers are stable and never reused.
func NewLocal() string {
	return uuid.NewString()
}
