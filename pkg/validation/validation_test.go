package validation_test

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vet-clinic/pkg/validation"
)

func TestRun(t *testing.T) {
	now := time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)

	errs := validation.Run(
		validation.RUT("rut", "12345678-6"),
		validation.Phone("phone", "912345"),
		validation.NotFuture("visited_at", now.Add(time.Hour), now),
		validation.DateNotFuture("birth_date", now.AddDate(-1, 0, 0), now),
	)

	require.Len(t, errs, 3)
	assert.Contains(t, errs["rut"], "Expected check digit: 5")
	assert.Equal(t, validation.ErrPhoneFormat.Error(), errs["phone"])
	assert.Equal(t, validation.ErrFutureDate.Error(), errs["visited_at"])
	assert.NotContains(t, errs, "birth_date")
}

func TestRun_AllPass(t *testing.T) {
	errs := validation.Run(
		validation.RUT("rut", "12.345.678-5"),
		validation.Phone("phone", "+56 9 1234 5678"),
	)
	assert.Nil(t, errs)
}

func TestRun_FirstFailurePerField(t *testing.T) {
	errs := validation.Run(
		validation.Check{Field: "name", Rule: func() error { return errors.New("first") }},
		validation.Check{Field: "name", Rule: func() error { return errors.New("second") }},
		validation.Check{Field: "skipped"},
	)
	assert.Equal(t, validation.Errors{"name": "first"}, errs)
}

func TestErrors_Error(t *testing.T) {
	errs := validation.Errors{"phone": "bad phone", "email": "bad email"}
	assert.Equal(t, "email: bad email; phone: bad phone", errs.Error())
}

func TestRequiredAndMinLength(t *testing.T) {
	errs := validation.Run(
		validation.Required("full_name", "   "),
		validation.Required("password", "abc"),
		validation.MinLength("password", "abc", 6),
		validation.MinLength("nickname", "", 6),
		validation.MinLength("pin", "ñandú1", 6),
	)

	assert.Equal(t, validation.Errors{
		"full_name": validation.ErrRequired.Error(),
		"password":  "minimum length is 6",
	}, errs)
}

func TestMaxBytes(t *testing.T) {
	errs := validation.Run(
		validation.MaxBytes("ascii", strings.Repeat("a", 72), 72),
		validation.MaxBytes("long", strings.Repeat("a", 73), 72),
		// 37 runes, 74 bytes
		validation.MaxBytes("wide", strings.Repeat("ñ", 37), 72),
	)

	assert.Equal(t, validation.Errors{
		"long": "maximum length is 72 bytes",
		"wide": "maximum length is 72 bytes",
	}, errs)
}
