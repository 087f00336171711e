// Package validation holds the field rules used before any account or
// clinic record is written: RUN check digit, Chilean mobile numbers and
// dates that may not lie in the future. Every rule is a pure function.
package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

var ErrRequired = errors.New("this field is required")

// Rule validates a single field value.
type Rule func() error

// Check binds a field name to the rule that validates it.
type Check struct {
	Field string
	Rule  Rule
}

// Errors maps a field name to its first failure message.
type Errors map[string]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	msgs := make([]string, 0, len(fields))
	for _, f := range fields {
		msgs = append(msgs, f+": "+e[f])
	}
	return strings.Join(msgs, "; ")
}

// Run executes every check and collects failures. Only the first failure
// per field is kept. It returns nil when all checks pass.
func Run(checks ...Check) Errors {
	var errs Errors
	for _, c := range checks {
		if c.Rule == nil {
			continue
		}
		if err := c.Rule(); err != nil {
			if errs == nil {
				errs = make(Errors)
			}
			if _, seen := errs[c.Field]; !seen {
				errs[c.Field] = err.Error()
			}
		}
	}
	return errs
}

// RUT returns a Check for an identity number field.
func RUT(field, value string) Check {
	return Check{Field: field, Rule: func() error { return ValidateRUT(value) }}
}

// Phone returns a Check for a mobile phone field.
func Phone(field, value string) Check {
	return Check{Field: field, Rule: func() error { return ValidatePhone(value) }}
}

// Required fails for blank values.
func Required(field, value string) Check {
	return Check{Field: field, Rule: func() error {
		if strings.TrimSpace(value) == "" {
			return ErrRequired
		}
		return nil
	}}
}

// MinLength fails when value has fewer than n characters. Blank values
// pass; pair it with Required.
func MinLength(field, value string, n int) Check {
	return Check{Field: field, Rule: func() error {
		if value != "" && utf8.RuneCountInString(value) < n {
			return fmt.Errorf("minimum length is %d", n)
		}
		return nil
	}}
}

// MaxBytes fails when value is longer than n bytes once encoded.
func MaxBytes(field, value string, n int) Check {
	return Check{Field: field, Rule: func() error {
		if len(value) > n {
			return fmt.Errorf("maximum length is %d bytes", n)
		}
		return nil
	}}
}
