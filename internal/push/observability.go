package push

import (
	"time"

	"go.uber.org/zap"
)

// PushEvent records the outcome of one Push call.
type PushEvent struct {
	UserEmail string
	Type      string
	Latency   time.Duration
	Success   bool
	ErrorCode string
}

// Observer receives push outcomes for logging and metrics.
type Observer interface {
	OnPushComplete(event PushEvent)
}

// LogObserver writes push events to a zap logger.
type LogObserver struct {
	log *zap.Logger
}

func NewLogObserver(log *zap.Logger) *LogObserver {
	return &LogObserver{log: log}
}

func (o *LogObserver) OnPushComplete(e PushEvent) {
	fields := []zap.Field{
		zap.String("user", e.UserEmail),
		zap.String("type", e.Type),
		zap.Duration("latency", e.Latency),
	}
	if e.Success {
		o.log.Debug("push delivered", fields...)
		return
	}
	o.log.Warn("push failed", append(fields, zap.String("error_code", e.ErrorCode))...)
}

// NoopObserver discards all events.
type NoopObserver struct{}

func (NoopObserver) OnPushComplete(PushEvent) {}

// Observers fans one event out to several observers.
type Observers []Observer

func (obs Observers) OnPushComplete(e PushEvent) {
	for _, o := range obs {
		o.OnPushComplete(e)
	}
}
