package validation

import (
	"errors"
	"regexp"
	"strings"
)

var ErrPhoneFormat = errors.New("invalid phone format. Use: 912345678 or +56 9 1234 5678")

// optional +56 / 56 prefix, then a mobile 9 and eight digits
var mobilePattern = regexp.MustCompile(`^(\+?56)?9\d{8}$`)

// ValidatePhone checks a Chilean mobile number. Spaces and hyphens are
// ignored for matching only; the caller keeps the original string.
func ValidatePhone(raw string) error {
	if strings.TrimSpace(raw) == "" {
		return nil
	}

	if !mobilePattern.MatchString(NormalizePhone(raw)) {
		return ErrPhoneFormat
	}
	return nil
}

// NormalizePhone strips whitespace and hyphens.
func NormalizePhone(raw string) string {
	return strings.Map(func(r rune) rune {
		if r == '-' || isSpace(r) {
			return -1
		}
		return r
	}, raw)
}

// SamePhone reports whether two valid numbers reach the same subscriber,
// e.g. "912345678" and "+56 9 1234 5678".
func SamePhone(a, b string) bool {
	if ValidatePhone(a) != nil || ValidatePhone(b) != nil {
		return false
	}
	return subscriber(a) == subscriber(b)
}

func subscriber(raw string) string {
	n := NormalizePhone(raw)
	return n[len(n)-9:]
}

func isSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\v', '\f', 0x85, 0xA0:
		return true
	}
	return false
}
