// Package phone normalizes phone numbers to E.164 form so a number is
// stored and matched in exactly one representation regardless of how a
// customer or a CSV import formatted it.
package phone

import (
	"errors"
	"strings"
)

// ErrInvalid is returned for input that cannot be a phone number.
var ErrInvalid = errors.New("phone: invalid phone number")

// Normalize converts a free-form phone string to E.164.
//
// Rules:
//   - formatting characters (spaces, dashes, dots, parens) are stripped
//   - a 10-digit NANP number becomes +1XXXXXXXXXX
//   - an 11-digit number with leading 1 is treated the same
//   - input already starting with '+' keeps its country code and must
//     carry 8-15 digits (E.164 bounds)
//   - anything else is rejected
func Normalize(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", ErrInvalid
	}

	international := strings.HasPrefix(trimmed, "+")

	var digits strings.Builder
	for _, r := range trimmed {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')' || r == '+':
			// formatting only
		default:
			return "", ErrInvalid
		}
	}
	num := digits.String()

	if international {
		if len(num) < 8 || len(num) > 15 {
			return "", ErrInvalid
		}
		return "+" + num, nil
	}

	switch len(num) {
	case 10:
		return "+1" + num, nil
	case 11:
		if num[0] != '1' {
			return "", ErrInvalid
		}
		return "+" + num, nil
	default:
		return "", ErrInvalid
	}
}

// NormalizeOrEmpty normalizes raw, returning "" for empty input. Used
// on optional contact fields where absence is fine but garbage is not.
func NormalizeOrEmpty(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	return Normalize(raw)
}
