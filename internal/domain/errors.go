package domain

import (
	"errors"
	"fmt"
)

// ErrStoreUnavailable indicates the underlying persistence medium could not
// be reached. The operation was aborted with no partial writes.
var ErrStoreUnavailable = errors.New("record store unavailable")

// ValidationError reports a missing or invalid input field. The store is
// never touched when validation fails.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s is required", e.Field)
}
