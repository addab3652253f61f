package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alexanderramin/steelbuild/internal/push"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	return string(body)
}

func TestMetrics_MonitorCounters(t *testing.T) {
	m := New()
	m.ObserveMonitorRun(true, 20*time.Millisecond)
	m.ObserveMonitorRun(false, time.Millisecond)
	m.AlertRaised("safety_incident")
	m.AlertRaised("safety_incident")
	m.NotificationsSent(3)

	out := scrape(t, m)
	assert.Contains(t, out, `steelbuild_monitor_runs_total{success="true"} 1`)
	assert.Contains(t, out, `steelbuild_monitor_runs_total{success="false"} 1`)
	assert.Contains(t, out, `steelbuild_monitor_alerts_total{type="safety_incident"} 2`)
	assert.Contains(t, out, `steelbuild_notifications_sent_total 3`)
	assert.Contains(t, out, `steelbuild_monitor_duration_seconds_count 2`)
}

func TestMetrics_PushFailuresOnly(t *testing.T) {
	m := New()
	m.OnPushComplete(push.PushEvent{Success: true})
	m.OnPushComplete(push.PushEvent{Success: false, ErrorCode: "TIMEOUT"})

	out := scrape(t, m)
	assert.Contains(t, out, `steelbuild_push_failures_total{code="TIMEOUT"} 1`)
	assert.NotContains(t, out, `steelbuild_push_failures_total{code=""}`)
}

func TestMetrics_HTTP(t *testing.T) {
	m := New()
	m.ObserveHTTP("GET", "/api/projects", 200, time.Millisecond)

	assert.Contains(t, scrape(t, m),
		`steelbuild_http_requests_total{method="GET",route="/api/projects",status="200"} 1`)
}
