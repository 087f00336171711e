package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAuthOutcome(t *testing.T) {
	before := testutil.ToFloat64(AuthOutcomesTotal.WithLabelValues(OpLogin, OutcomeNoMatch))

	RecordAuthOutcome(OpLogin, OutcomeNoMatch)
	RecordAuthOutcome(OpLogin, OutcomeNoMatch)

	after := testutil.ToFloat64(AuthOutcomesTotal.WithLabelValues(OpLogin, OutcomeNoMatch))
	assert.Equal(t, before+2, after)
}

func TestRecordValidationFailure(t *testing.T) {
	before := testutil.ToFloat64(ValidationFailuresTotal.WithLabelValues("rut"))
	RecordValidationFailure("rut")
	assert.Equal(t, before+1, testutil.ToFloat64(ValidationFailuresTotal.WithLabelValues("rut")))
}

func TestObservePasswordHash(t *testing.T) {
	before := testutil.CollectAndCount(PasswordHashDuration)
	ObservePasswordHash(30 * time.Millisecond)
	assert.Equal(t, before, testutil.CollectAndCount(PasswordHashDuration), "histogram is a single series")
}
