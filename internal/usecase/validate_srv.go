package usecase

import (
	"errors"
	"strings"
	"time"

	"vet-clinic/internal/dto/response"
	"vet-clinic/internal/metrics"
	"vet-clinic/pkg/utils"
	"vet-clinic/pkg/validation"

	"go.uber.org/zap"
)

// ValidationService exposes the field rules to callers that want to check
// a value before submitting a form. Blank input is never valid here.
type ValidationService interface {
	CheckRUT(raw string) response.ValidationResult
	CheckPhone(raw string) response.ValidationResult
	CheckDate(raw string) response.ValidationResult
}

type validationService struct {
	clock utils.Clock
	log   *zap.Logger
}

func NewValidationService(clock utils.Clock, log *zap.Logger) ValidationService {
	return &validationService{
		clock: clock,
		log:   log.With(zap.String("service", "validation")),
	}
}

func (vs *validationService) CheckRUT(raw string) response.ValidationResult {
	if strings.TrimSpace(raw) == "" {
		return rejected("rut", validation.ErrRequired)
	}

	formatted, err := validation.FormatRUT(raw)
	if err != nil {
		var cdErr *validation.CheckDigitError
		if errors.As(err, &cdErr) {
			vs.log.Debug("RUN check digit mismatch", zap.String("expected", string(cdErr.Expected)))
		}
		return rejected("rut", err)
	}
	return response.ValidationResult{Valid: true, Formatted: formatted}
}

func (vs *validationService) CheckPhone(raw string) response.ValidationResult {
	if strings.TrimSpace(raw) == "" {
		return rejected("phone", validation.ErrRequired)
	}

	if err := validation.ValidatePhone(raw); err != nil {
		return rejected("phone", err)
	}
	return response.ValidationResult{Valid: true, Formatted: validation.NormalizePhone(raw)}
}

// CheckDate accepts a calendar date or an RFC 3339 timestamp and rejects
// anything after the clock's now. A calendar date counts until the end of
// that day.
func (vs *validationService) CheckDate(raw string) response.ValidationResult {
	if strings.TrimSpace(raw) == "" {
		return rejected("date", validation.ErrRequired)
	}

	now := vs.clock.Now()
	if err := validation.ValidateDateString(raw, now); err != nil {
		return rejected("date", err)
	}

	t, dateOnly, _ := validation.ParseDate(raw, now.Location())
	if dateOnly {
		return response.ValidationResult{Valid: true, Formatted: t.Format(time.DateOnly)}
	}
	return response.ValidationResult{Valid: true, Formatted: t.Format(time.RFC3339)}
}

func rejected(rule string, err error) response.ValidationResult {
	metrics.RecordValidationFailure(rule)
	return response.ValidationResult{Valid: false, Message: err.Error()}
}
