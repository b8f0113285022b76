// Package phone validates and canonicalizes Indian mobile identifiers.
//
// The record graph is keyed on 10-digit mobile numbers. Callers pass in
// whatever the client sent (spaces, dashes, +91, trunk zero); Normalize
// reduces that to the canonical key or rejects it.
package phone

import (
	"errors"
	"strings"
)

// ErrInvalid is returned when the input cannot be reduced to a valid
// 10-digit mobile number. Services translate it into a domain error at the
// boundary; it never reaches the traversal engine.
var ErrInvalid = errors.New("invalid mobile identifier")

// Normalize strips formatting and national prefixes from raw input and
// returns the canonical 10-digit identifier.
//
// Accepted prefixes: "91" on 12 digits, a trunk "0" on 11 digits, and
// "091" on 13 digits. The result must be 10 digits starting with 6-9.
// Normalize is pure and idempotent on already-canonical input.
func Normalize(raw string) (string, error) {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	switch {
	case len(digits) == 12 && strings.HasPrefix(digits, "91"):
		digits = digits[2:]
	case len(digits) == 11 && strings.HasPrefix(digits, "0"):
		digits = digits[1:]
	case len(digits) == 13 && strings.HasPrefix(digits, "091"):
		digits = digits[3:]
	}

	if len(digits) != 10 || digits[0] < '6' || digits[0] > '9' {
		return "", ErrInvalid
	}
	return digits, nil
}

// Tail10 returns the last 10 digits of an identifier that may still carry a
// prefix. Used when following alternate-identifier edges, where stored
// values are not guaranteed to be canonical. Inputs shorter than 10 digits
// are returned unchanged.
func Tail10(s string) string {
	if len(s) > 10 {
		return s[len(s)-10:]
	}
	return s
}
