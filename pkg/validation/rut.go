package validation

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrRUTFormat      = errors.New("RUN must contain a hyphen (e.g. 12345678-9)")
	ErrRUTBody        = errors.New("invalid RUN: 1 to 8 digits are allowed before the hyphen")
	ErrRUTCheckFormat = errors.New("invalid RUN: the check digit must be 0-9 or K")
	ErrRUTCheckDigit  = errors.New("invalid RUN check digit")
)

// CheckDigitError reports a well formed RUN whose check character does not
// match the modulo 11 computation.
type CheckDigitError struct {
	Expected byte
	Got      byte
}

func (e *CheckDigitError) Error() string {
	return fmt.Sprintf("RUN is not valid. Expected check digit: %c", e.Expected)
}

func (e *CheckDigitError) Unwrap() error {
	return ErrRUTCheckDigit
}

// ValidateRUT validates a Chilean RUN/RUT such as "12.345.678-5" or
// "12345678-5". Blank input passes; the required rule owns emptiness.
func ValidateRUT(raw string) error {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}

	// dots are grouping only, the hyphen stays
	compact := strings.ReplaceAll(raw, ".", "")

	parts := splitNonEmpty(compact, '-')
	if len(parts) != 2 {
		return ErrRUTFormat
	}

	body, dv := parts[0], parts[1]

	expected, err := RUTCheckDigit(body)
	if err != nil {
		return err
	}

	if len(dv) != 1 || !isCheckChar(dv[0]) {
		return ErrRUTCheckFormat
	}

	got := upper(dv[0])
	if got != expected {
		return &CheckDigitError{Expected: expected, Got: got}
	}

	return nil
}

// RUTCheckDigit computes the modulo 11 check character for a RUN body of
// 1 to 8 ASCII digits. The result is '0'-'9' or 'K'.
func RUTCheckDigit(body string) (byte, error) {
	if len(body) < 1 || len(body) > 8 || !allDigits(body) {
		return 0, ErrRUTBody
	}

	sum, weight := 0, 2
	for i := len(body) - 1; i >= 0; i-- {
		sum += int(body[i]-'0') * weight
		if weight == 7 {
			weight = 2
		} else {
			weight++
		}
	}

	switch check := 11 - sum%11; check {
	case 11:
		return '0', nil
	case 10:
		return 'K', nil
	default:
		return byte('0' + check), nil
	}
}

// FormatRUT renders a valid RUN in the grouped form 12.345.678-5. Blank
// input yields an empty string.
func FormatRUT(raw string) (string, error) {
	if err := ValidateRUT(raw); err != nil {
		return "", err
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	parts := splitNonEmpty(strings.ReplaceAll(raw, ".", ""), '-')
	body := parts[0]

	var b strings.Builder
	for i := range body {
		if i > 0 && (len(body)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteByte(body[i])
	}
	b.WriteByte('-')
	b.WriteByte(upper(parts[1][0]))
	return b.String(), nil
}

func splitNonEmpty(s string, sep rune) []string {
	return strings.FieldsFunc(s, func(r rune) bool { return r == sep })
}

func allDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isCheckChar(c byte) bool {
	return (c >= '0' && c <= '9') || c == 'k' || c == 'K'
}

func upper(c byte) byte {
	if c == 'k' {
		return 'K'
	}
	return c
}
