// Package validation checks API requests before they reach the services.
// Failures are reported per field in an *Error.
package validation

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/ndewijer/Investment-Tracker-Backend/internal/apperrors"
)

// ValidateUUID reports apperrors.ErrInvalidUUID unless id parses as a UUID.
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidUUID, id)
	}
	return nil
}
