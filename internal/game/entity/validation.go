package entity

import (
	"errors"
	"fmt"
)

// ErrValidation is matched by every ValidationError via errors.Is.
var ErrValidation = errors.New("validation failed")

// ValidationError reports the first invariant a builder found violated.
type ValidationError struct {
	// Entity names the kind of record being built, e.g. "character".
	Entity string
	// Reason is the human-readable failure, e.g. "Missing name".
	Reason string
}

// Error implements error.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Entity, e.Reason)
}

// Is reports whether target is ErrValidation.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// Invalid returns a ValidationError for entity with reason.
func Invalid(entity, reason string) *ValidationError {
	return &ValidationError{Entity: entity, Reason: reason}
}

// ReasonOf extracts the Reason of a ValidationError anywhere in err's chain.
// Returns "" when err carries none.
func ReasonOf(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Reason
	}
	return ""
}

// RequireString fails with "Missing <field>" when value is empty.
func RequireString(entity, field, value string) error {
	if value == "" {
		return Invalid(entity, "Missing "+field)
	}
	return nil
}

// CheckTranslated validates the key and names of a translated entity.
func CheckTranslated(entity string, t Translated) error {
	if t.Key == "" {
		return Invalid(entity, "Missing key")
	}
	for _, name := range t.Names {
		if name != "" {
			return nil
		}
	}
	return Invalid(entity, "Missing names")
}

// CheckTyped validates the category of a typed entity, then its translated
// fields.
func CheckTyped[C Category](entity string, t Typed[C]) error {
	if t.Type == "" {
		return Invalid(entity, "Missing type")
	}
	if !t.Type.Valid() {
		return Invalid(entity, fmt.Sprintf("Unknown type %q", string(t.Type)))
	}
	return CheckTranslated(entity, t.Translated)
}
