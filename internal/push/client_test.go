package push

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alexanderramin/steelbuild/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingObserver struct {
	mu     sync.Mutex
	events []PushEvent
}

func (r *recordingObserver) OnPushComplete(e PushEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func testConfig(endpoint string) config.PushConfig {
	cfg := config.DefaultConfig().Push
	cfg.Enabled = true
	cfg.Endpoint = endpoint
	cfg.TimeoutMs = 1000
	cfg.RatePerSec = 1000
	return cfg
}

func newTestClient(cfg config.PushConfig, obs Observer) *WebhookClient {
	c := NewWebhookClient(cfg, nil, obs)
	c.initialInterval = time.Millisecond
	return c
}

var testMsg = Message{UserEmail: "pm@steelbuild.test", Title: "Crane down", Type: "equipment_unavailable", ReferenceID: "p1:r1"}

func TestWebhookClient_Push_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var got Message
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		assert.Equal(t, testMsg, got)
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	err := newTestClient(testConfig(srv.URL), obs).Push(context.Background(), testMsg)

	require.NoError(t, err)
	require.Len(t, obs.events, 1)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, "pm@steelbuild.test", obs.events[0].UserEmail)
}

func TestWebhookClient_Push_RetriesServerErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 2
	require.NoError(t, newTestClient(cfg, nil).Push(context.Background(), testMsg))
	assert.Equal(t, int32(3), calls.Load())
}

func TestWebhookClient_Push_RetryExhausted(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 1
	obs := &recordingObserver{}
	err := newTestClient(cfg, obs).Push(context.Background(), testMsg)

	assert.ErrorIs(t, err, ErrRetryExhausted)
	assert.Equal(t, int32(2), calls.Load())
	require.Len(t, obs.events, 1)
	assert.Equal(t, "UNKNOWN", obs.events[0].ErrorCode)
}

func TestWebhookClient_Push_RejectedNotRetried(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, "unknown device", http.StatusNotFound)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 3
	err := newTestClient(cfg, nil).Push(context.Background(), testMsg)

	assert.ErrorIs(t, err, ErrRejected)
	assert.Equal(t, int32(1), calls.Load())
}

func TestWebhookClient_Push_Unavailable(t *testing.T) {
	cfg := testConfig("http://127.0.0.1:1") // nothing listening
	cfg.MaxRetries = 0

	err := newTestClient(cfg, nil).Push(context.Background(), testMsg)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestWebhookClient_Push_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.TimeoutMs = 50
	cfg.MaxRetries = 0

	err := newTestClient(cfg, nil).Push(context.Background(), testMsg)
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestWebhookClient_Push_CircuitOpens(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	cfg := testConfig(srv.URL)
	cfg.MaxRetries = 0
	client := newTestClient(cfg, nil)

	for i := 0; i < 4; i++ {
		assert.ErrorIs(t, client.Push(context.Background(), testMsg), ErrRetryExhausted)
	}
	err := client.Push(context.Background(), testMsg)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, int32(4), calls.Load())
}

func TestNew_DisabledReturnsNoop(t *testing.T) {
	p := New(config.DefaultConfig().Push, nil, nil)
	_, ok := p.(NoopPusher)
	assert.True(t, ok)
	assert.NoError(t, p.Push(context.Background(), testMsg))
}
