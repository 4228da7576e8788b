// Package validate holds the input checks applied before a record store is
// invoked. Validation failures are distinguishable from storage failures via
// ErrValidation.
package validate

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

var ErrValidation = errors.New("validation failed")

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// International-dialing tolerant: optional +, digit groups with
	// separators. Length is checked separately.
	phoneRe = regexp.MustCompile(`^[+]?[\s./0-9]*[(]?[0-9]{1,4}[)]?[-\s./0-9]*$`)
)

// IsValidEmail reports whether s has a local part, an @, and a dotted domain.
func IsValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// IsValidPhone reports whether s looks like a dialable phone number of at
// least 10 characters.
func IsValidPhone(s string) bool {
	return phoneRe.MatchString(s) && len(s) >= 10
}

// Email returns an ErrValidation-wrapped error when s is not a valid email.
func Email(s string) error {
	if !IsValidEmail(s) {
		return fmt.Errorf("%w: invalid email %q", ErrValidation, s)
	}
	return nil
}

// Phone returns an ErrValidation-wrapped error when s is not a valid phone.
func Phone(s string) error {
	if !IsValidPhone(s) {
		return fmt.Errorf("%w: invalid phone %q", ErrValidation, s)
	}
	return nil
}

// Required returns an ErrValidation-wrapped error when the field is blank.
func Required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", ErrValidation, field)
	}
	return nil
}
