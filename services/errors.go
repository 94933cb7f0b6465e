// services/errors.go
package services

import (
	"fmt"
	"strings"
)

// Error taxonomy surfaced by the booking service. Controllers map these to
// HTTP statuses; anything else is treated as a transient store failure.

// ValidationError reports missing or malformed input.
type ValidationError struct {
	Message string
	Fields  []string
}

func (e ValidationError) Error() string {
	if len(e.Fields) > 0 {
		return "Faltan campos requeridos: " + strings.Join(e.Fields, ", ")
	}
	return e.Message
}

// ConflictError means the requested slot already holds a live reservation.
type ConflictError struct {
	CourtID uint
	Date    string
	Time    string
}

func (e ConflictError) Error() string {
	return fmt.Sprintf("slot ocupado: cancha %d, %s %s", e.CourtID, e.Date, e.Time)
}

// NotFoundError carries the user-facing message for a missing resource.
type NotFoundError struct {
	Message string
}

func (e NotFoundError) Error() string {
	return e.Message
}

// StoreError wraps an underlying database failure. The cause is logged at
// the boundary and never shown to callers.
type StoreError struct {
	Err error
}

func (e StoreError) Error() string {
	return "store error: " + e.Err.Error()
}

func (e StoreError) Unwrap() error {
	return e.Err
}

func storeErr(err error) error {
	return StoreError{Err: err}
}
