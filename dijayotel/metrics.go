// Package dijayotel records container activity as OpenTelemetry metrics.
package dijayotel

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/danpasecinic/dijay"
)

const instrumentationName = "github.com/danpasecinic/dijay"

// Metrics holds the instruments fed by the container observers.
type Metrics struct {
	resolutions   metric.Int64Counter
	registrations metric.Int64Counter
	resolveTime   metric.Float64Histogram
	hookTime      metric.Float64Histogram
}

type config struct {
	provider metric.MeterProvider
}

type MetricsOption func(*config)

// WithMeterProvider overrides the global meter provider.
func WithMeterProvider(mp metric.MeterProvider) MetricsOption {
	return func(c *config) {
		if mp != nil {
			c.provider = mp
		}
	}
}

func NewMetrics(opts ...MetricsOption) (*Metrics, error) {
	cfg := &config{provider: otel.GetMeterProvider()}
	for _, opt := range opts {
		opt(cfg)
	}

	meter := cfg.provider.Meter(instrumentationName)

	resolutions, err := meter.Int64Counter(
		"dijay.resolutions",
		metric.WithDescription("Number of token resolutions"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resolutions counter: %w", err)
	}

	registrations, err := meter.Int64Counter(
		"dijay.registrations",
		metric.WithDescription("Number of provider registrations"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create registrations counter: %w", err)
	}

	resolveTime, err := meter.Float64Histogram(
		"dijay.resolution.duration",
		metric.WithDescription("Duration of token resolutions"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resolution histogram: %w", err)
	}

	hookTime, err := meter.Float64Histogram(
		"dijay.hook.duration",
		metric.WithDescription("Duration of lifecycle hooks"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create hook histogram: %w", err)
	}

	return &Metrics{
		resolutions:   resolutions,
		registrations: registrations,
		resolveTime:   resolveTime,
		hookTime:      hookTime,
	}, nil
}

// Options returns the container options that feed m.
func (m *Metrics) Options() []dijay.Option {
	return []dijay.Option{
		dijay.WithResolveObserver(m.observeResolve),
		dijay.WithRegisterObserver(m.observeRegister),
		dijay.WithHookObserver(m.observeHook),
	}
}

// Observers track no request context, so instruments record against
// context.Background.
func (m *Metrics) observeResolve(token string, d time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("token", token),
		attribute.String("status", status(err)),
	)
	m.resolutions.Add(context.Background(), 1, attrs)
	m.resolveTime.Record(context.Background(), d.Seconds(), attrs)
}

func (m *Metrics) observeRegister(token string, s dijay.Scope) {
	m.registrations.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("token", token),
		attribute.String("scope", s.String()),
	))
}

func (m *Metrics) observeHook(phase dijay.HookPhase, name string, d time.Duration, err error) {
	m.hookTime.Record(context.Background(), d.Seconds(), metric.WithAttributes(
		attribute.String("phase", phase.String()),
		attribute.String("hook", name),
		attribute.String("status", status(err)),
	))
}

func status(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
