package observability_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/spec-kit/hospital-console/internal/observability"
)

func TestMetricsSnapshot(t *testing.T) {
	m := observability.NewMetrics()
	m.RecordRequest("/patients", "GET", 200, time.Millisecond)
	m.RecordRequest("/patients", "GET", 200, time.Millisecond)
	m.RecordError("/login", "POST", "AUTHENTICATION_FAILED")
	m.RecordUpstream("/api/v1/patients", "GET", 401, time.Millisecond)
	m.RecordSessionEvent("session_invalidated")

	snap := m.Snapshot()

	assert.Equal(t, int64(2), snap.Requests["/patients|GET|200"])
	assert.Equal(t, int64(1), snap.Errors["/login|POST|AUTHENTICATION_FAILED"])
	assert.Equal(t, int64(1), snap.Upstream["/api/v1/patients|GET|401"])
	assert.Equal(t, int64(1), snap.SessionEvents["session_invalidated"])

	snap.Requests["/patients|GET|200"] = 99
	assert.Equal(t, int64(2), m.Snapshot().Requests["/patients|GET|200"], "snapshot must not alias counters")
}

func TestNilMetricsIsSafe(t *testing.T) {
	var m *observability.Metrics

	assert.NotPanics(t, func() {
		m.RecordRequest("/", "GET", 200, 0)
		m.RecordUpstream("/", "GET", 0, 0)
		m.RecordSessionEvent("x")
		_ = m.Snapshot()
	})
}
