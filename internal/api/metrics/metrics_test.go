package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r, err := NewRecorder(reg)
	require.NoError(t, err)

	r.ObserveRun("blended", OutcomeOK, 10*time.Millisecond)
	r.ObserveRun("blended", OutcomeOK, 20*time.Millisecond)
	r.ObserveRun("blended", OutcomeError, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.runs.WithLabelValues("blended", OutcomeOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.runs.WithLabelValues("blended", OutcomeError)))

	again, err := NewRecorder(reg)
	require.NoError(t, err)
	again.ObserveRun("blended", OutcomeOK, time.Millisecond)
	assert.Equal(t, 3.0, testutil.ToFloat64(r.runs.WithLabelValues("blended", OutcomeOK)))

	var nilRecorder *Recorder
	nilRecorder.ObserveRun("blended", OutcomeOK, time.Millisecond)
}
