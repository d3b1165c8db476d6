package units

import (
	"errors"
	"fmt"
)

// ConfigurationError reports an invalid catalog definition or a locale
// request that has no usable fallback. Catalog validation errors are fatal
// at startup; the registry never constructs partially.
type ConfigurationError struct {
	Detail string
}

func (e *ConfigurationError) Error() string {
	return "unit catalog: " + e.Detail
}

// NotFoundError reports an unknown unit-system or category identifier
// passed to a registry accessor. Surfaced directly to the caller; never
// retried.
type NotFoundError struct {
	Kind string // "unit system" or "category"
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// IsNotFound reports whether err is a NotFoundError. Uses errors.As to
// handle wrapped errors.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsConfiguration reports whether err is a ConfigurationError. Uses
// errors.As to handle wrapped errors.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

func configErrorf(format string, args ...any) *ConfigurationError {
	return &ConfigurationError{Detail: fmt.Sprintf(format, args...)}
}
