package store

import (
	"time"

	"github.com/corekv/corekv/internal/clock"
	"github.com/corekv/corekv/internal/metrics"
)

// logLike matches the subset of log.Logger the facade depends on, letting
// tests supply a stub without importing log/slog.
type logLike interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Error(msg string, args ...any)
}

// Config holds the store facade's construction-time settings.
type Config struct {
	InitialBuckets int     // rounded to a power of two; index.DefaultInitialBuckets if <= 0
	LoadFactor     float64 // index.LoadFactor if <= 0
	Logger         logLike
	Metrics        metrics.Interface
	Clock          clock.Clock
	TimerTick      time.Duration // timing-wheel tick resolution
	TimerWheelSize int64         // timing-wheel slot count

	OpsRateWindow int           // moving-average sample count for the ops/sec gauge
	OpsRateTick   time.Duration // sampling interval for the ops/sec gauge
}

func defaultConfig() Config {
	return Config{
		Metrics:        metrics.Noop{},
		Clock:          clock.Real{},
		TimerTick:      10 * time.Millisecond,
		TimerWheelSize: 6000, // 1 minute of 10ms slots
		OpsRateWindow:  30,
		OpsRateTick:    time.Second,
	}
}

// Option configures a Store at construction.
type Option func(*Config)

// WithLogger sets the facade's logger.
func WithLogger(l logLike) Option {
	return func(c *Config) { c.Logger = l }
}

// WithMetrics sets the facade's metrics sink.
func WithMetrics(m metrics.Interface) Option {
	return func(c *Config) { c.Metrics = m }
}

// WithClock overrides the monotonic clock collaborator, for deterministic
// tests.
func WithClock(c clock.Clock) Option {
	return func(cfg *Config) { cfg.Clock = c }
}

// WithInitialBuckets overrides the primary index's initial bucket count.
func WithInitialBuckets(n int) Option {
	return func(c *Config) { c.InitialBuckets = n }
}

// WithLoadFactor overrides the primary index's rehash threshold.
func WithLoadFactor(f float64) Option {
	return func(c *Config) { c.LoadFactor = f }
}

// WithTimerResolution overrides the underlying timing wheel's tick and
// slot count.
func WithTimerResolution(tick time.Duration, wheelSize int64) Option {
	return func(c *Config) {
		c.TimerTick = tick
		c.TimerWheelSize = wheelSize
	}
}

// WithOpsRateResolution overrides the ops/sec gauge's moving-average
// window and sampling interval.
func WithOpsRateResolution(window int, tick time.Duration) Option {
	return func(c *Config) {
		c.OpsRateWindow = window
		c.OpsRateTick = tick
	}
}
