// Package validation provides common validation utilities for the shellkit library.
package validation

import (
	"net/url"
	"time"

	skerrors "github.com/vnykmshr/shellkit/pkg/common/errors"
)

// ValidatePositive validates that an integer value is positive (> 0).
// Returns a ValidationError if the value is not positive.
func ValidatePositive(module, field string, value int64) error {
	if value <= 0 {
		return skerrors.NewValidationError(module, field, value, "must be positive").
			WithHint("value must be greater than 0")
	}
	return nil
}

// ValidateNonNegativeDuration validates that a duration is zero or positive.
func ValidateNonNegativeDuration(module, field string, value time.Duration) error {
	if value < 0 {
		return skerrors.NewValidationError(module, field, value, "cannot be negative").
			WithHint("use 0 or a positive duration")
	}
	return nil
}

// ValidateNotNil validates that an interface value is not nil.
// Returns a ValidationError if the value is nil.
func ValidateNotNil(module, field string, value interface{}) error {
	if value == nil {
		return skerrors.NewValidationError(module, field, nil, "cannot be nil").
			WithHint("provide a valid " + field)
	}
	return nil
}

// ValidateNotEmpty validates that a string value is not empty.
// Returns a ValidationError if the string is empty.
func ValidateNotEmpty(module, field string, value string) error {
	if value == "" {
		return skerrors.NewValidationError(module, field, value, "cannot be empty").
			WithHint("provide a non-empty " + field)
	}
	return nil
}

// ValidateURL validates that value is an absolute http or https URL.
func ValidateURL(module, field string, value string) error {
	if err := ValidateNotEmpty(module, field, value); err != nil {
		return err
	}
	u, err := url.Parse(value)
	if err != nil || u.Host == "" {
		return skerrors.NewValidationError(module, field, value, "must be an absolute URL").
			WithHint("include the scheme and host, e.g. https://example.com/path")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return skerrors.NewValidationError(module, field, value, "unsupported scheme").
			WithHint("use http or https")
	}
	return nil
}
