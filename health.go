package dijay

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

type HealthStatus string

const (
	HealthStatusUp      HealthStatus = "up"
	HealthStatusDown    HealthStatus = "down"
	HealthStatusUnknown HealthStatus = "unknown"
)

type HealthReport struct {
	Name    string
	Status  HealthStatus
	Error   error
	Latency time.Duration
}

type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}

type ReadinessChecker interface {
	ReadinessCheck(ctx context.Context) error
}

type probe struct {
	name  string
	check func(ctx context.Context) error
}

func liveness(instance any) (func(context.Context) error, bool) {
	hc, ok := instance.(HealthChecker)
	if !ok {
		return nil, false
	}
	return hc.HealthCheck, true
}

func readiness(instance any) (func(context.Context) error, bool) {
	rc, ok := instance.(ReadinessChecker)
	if !ok {
		return nil, false
	}
	return rc.ReadinessCheck, true
}

// probes collects the checks of instantiated singletons. Health checks never
// construct a provider.
func (c *Container) probes(kind func(any) (func(context.Context) error, bool)) []probe {
	singletons := c.cache.Singletons()

	var probes []probe
	for _, token := range c.Tokens() {
		instance, ok := singletons[token]
		if !ok {
			continue
		}
		if check, ok := kind(instance); ok {
			probes = append(probes, probe{name: TokenName(token), check: check})
		}
	}
	return probes
}

// Live runs every HealthChecker concurrently and returns the first failure.
func (c *Container) Live(ctx context.Context) error {
	return c.firstFailure(ctx, c.probes(liveness))
}

// Ready runs every ReadinessChecker concurrently and returns the first failure.
func (c *Container) Ready(ctx context.Context) error {
	return c.firstFailure(ctx, c.probes(readiness))
}

func (c *Container) Health(ctx context.Context) []HealthReport {
	return c.report(ctx, c.probes(liveness))
}

func (c *Container) Readiness(ctx context.Context) []HealthReport {
	return c.report(ctx, c.probes(readiness))
}

func (c *Container) firstFailure(ctx context.Context, probes []probe) error {
	g, ctx := errgroup.WithContext(ctx)
	for _, p := range probes {
		g.Go(
			func() error {
				if err := p.check(ctx); err != nil {
					return errHealthCheckFailed(p.name, err)
				}
				return nil
			},
		)
	}
	return g.Wait()
}

func (c *Container) report(ctx context.Context, probes []probe) []HealthReport {
	reports := make([]HealthReport, len(probes))

	var g errgroup.Group
	for i, p := range probes {
		g.Go(
			func() error {
				start := time.Now()
				err := p.check(ctx)

				reports[i] = HealthReport{
					Name:    p.name,
					Status:  HealthStatusUp,
					Latency: time.Since(start),
				}
				if err != nil {
					reports[i].Status = HealthStatusDown
					reports[i].Error = err
				}
				return nil
			},
		)
	}
	_ = g.Wait()

	return reports
}
