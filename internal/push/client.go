// Package push delivers notification messages to an HTTP push gateway.
package push

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/alexanderramin/steelbuild/internal/config"
	"github.com/cenkalti/backoff"
	"github.com/sony/gobreaker"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Message is one notification addressed to one user.
type Message struct {
	UserEmail   string `json:"user_email"`
	Title       string `json:"title"`
	Body        string `json:"body"`
	Type        string `json:"type"`
	ReferenceID string `json:"reference_id"`
	ProjectID   string `json:"project_id,omitempty"`
	Priority    string `json:"priority"`
}

// Pusher sends a message to a user's devices.
type Pusher interface {
	Push(ctx context.Context, msg Message) error
}

// NoopPusher accepts every message without sending it. Used when push
// delivery is disabled.
type NoopPusher struct{}

func (NoopPusher) Push(context.Context, Message) error { return nil }

// New returns a gateway client when push is enabled, otherwise a NoopPusher.
func New(cfg config.PushConfig, log *zap.Logger, observer Observer) Pusher {
	if !cfg.Enabled {
		return NoopPusher{}
	}
	return NewWebhookClient(cfg, log, observer)
}

// WebhookClient posts JSON messages to the gateway. Each Push waits on a
// rate limiter, then runs inside a circuit breaker with exponential
// backoff between attempts.
type WebhookClient struct {
	cfg      config.PushConfig
	http     *http.Client
	breaker  *gobreaker.CircuitBreaker
	limiter  *rate.Limiter
	observer Observer

	initialInterval time.Duration
}

func NewWebhookClient(cfg config.PushConfig, log *zap.Logger, observer Observer) *WebhookClient {
	if observer == nil {
		observer = NoopObserver{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	burst := int(cfg.RatePerSec)
	if burst < 1 {
		burst = 1
	}
	return &WebhookClient{
		cfg: cfg,
		http: &http.Client{
			Timeout: cfg.Timeout(),
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:        "push-gateway",
			MaxRequests: 1,
			Timeout:     30 * time.Second,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 3
			},
			IsSuccessful: func(err error) bool {
				return err == nil || errors.Is(err, ErrRejected)
			},
			OnStateChange: func(name string, from, to gobreaker.State) {
				log.Info("circuit breaker state change",
					zap.String("breaker", name),
					zap.String("from", from.String()),
					zap.String("to", to.String()))
			},
		}),
		limiter:         rate.NewLimiter(rate.Limit(cfg.RatePerSec), burst),
		observer:        observer,
		initialInterval: 200 * time.Millisecond,
	}
}

func (c *WebhookClient) Push(ctx context.Context, msg Message) error {
	start := time.Now()
	err := c.push(ctx, msg)

	event := PushEvent{
		UserEmail: msg.UserEmail,
		Type:      msg.Type,
		Latency:   time.Since(start),
		Success:   err == nil,
		ErrorCode: errorCode(err),
	}
	c.observer.OnPushComplete(event)
	return err
}

func (c *WebhookClient) push(ctx context.Context, msg Message) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("marshaling push message: %w", err)
	}

	_, err = c.breaker.Execute(func() (interface{}, error) {
		bo := backoff.NewExponentialBackOff()
		bo.InitialInterval = c.initialInterval
		bo.MaxInterval = 5 * time.Second
		policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(c.cfg.MaxRetries)), ctx)

		return nil, backoff.Retry(func() error {
			err := c.doRequest(ctx, body)
			if errors.Is(err, ErrRejected) {
				return backoff.Permanent(err)
			}
			return err
		}, policy)
	})
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return ErrCircuitOpen
	case errors.Is(err, ErrRejected):
		return err
	case ctx.Err() != nil || isTimeout(err):
		return ErrTimeout
	case isConnectionError(err):
		return ErrUnavailable
	}
	return fmt.Errorf("%w: %v", ErrRetryExhausted, err)
}

func (c *WebhookClient) doRequest(ctx context.Context, body []byte) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500 && resp.StatusCode != http.StatusTooManyRequests:
		return fmt.Errorf("%w: status %d: %s", ErrRejected, resp.StatusCode, string(respBody))
	}
	return fmt.Errorf("push gateway returned status %d: %s", resp.StatusCode, string(respBody))
}

func isConnectionError(err error) bool {
	var netErr *net.OpError
	return errors.As(err, &netErr)
}

func isTimeout(err error) bool {
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}

func errorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout):
		return "TIMEOUT"
	case errors.Is(err, ErrUnavailable):
		return "UNAVAILABLE"
	case errors.Is(err, ErrRejected):
		return "REJECTED"
	case errors.Is(err, ErrCircuitOpen):
		return "CIRCUIT_OPEN"
	default:
		return "UNKNOWN"
	}
}
