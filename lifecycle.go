package dijay

import (
	"context"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

type State int32

const (
	StateNew State = iota
	StateStarting
	StateRunning
	StateStopping
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateNew:
		return "new"
	case StateStarting:
		return "starting"
	case StateRunning:
		return "running"
	case StateStopping:
		return "stopping"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

func (c *Container) State() State {
	return State(c.state.Load())
}

func (c *Container) setState(s State) {
	c.state.Store(int32(s))
	c.logger.Debug("container state changed", zap.Stringer("state", s))
}

// OnBootstrap adds a hook run by Start, in registration order, before any
// provider hook. hook is invoked through Call, so its parameters are injected.
func (c *Container) OnBootstrap(hook any) {
	p := toProvider(hook)
	c.mu.Lock()
	c.bootstrap = append(c.bootstrap, p)
	c.mu.Unlock()
}

// OnShutdown adds a hook run by Stop, in registration order, before any
// provider hook.
func (c *Container) OnShutdown(hook any) {
	p := toProvider(hook)
	c.mu.Lock()
	c.shutdown = append(c.shutdown, p)
	c.mu.Unlock()
}

func (c *Container) freeHooks(phase HookPhase) []*Provider {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if phase == PhaseShutdown {
		return append([]*Provider(nil), c.shutdown...)
	}
	return append([]*Provider(nil), c.bootstrap...)
}

// Start runs the free bootstrap hooks, then resolves every provider that has
// bootstrap hooks and runs them against the instance, in registration order.
// The first failure aborts the start.
func (c *Container) Start(ctx context.Context) error {
	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()

	if s := c.State(); s == StateStarting || s == StateRunning {
		return errAlreadyStarted()
	}

	c.setState(StateStarting)
	if err := c.runBootstrap(ctx); err != nil {
		c.setState(StateStopped)
		return err
	}
	c.setState(StateRunning)
	return nil
}

func (c *Container) runBootstrap(ctx context.Context) error {
	for _, hook := range c.freeHooks(PhaseBootstrap) {
		if err := c.runHook(ctx, PhaseBootstrap, hook, nil); err != nil {
			return errStartupFailed(hookName(hook), err)
		}
	}

	for _, e := range c.snapshot() {
		if len(e.provider.bootstrap) == 0 {
			continue
		}

		instance, err := c.Resolve(ctx, e.token)
		if err != nil {
			return errStartupFailed(TokenName(e.token), err)
		}

		for _, hook := range e.provider.bootstrap {
			if err := c.runHook(ctx, PhaseBootstrap, hook, Args{selfParam: instance}); err != nil {
				return errStartupFailed(hookName(hook), err).WithToken(TokenName(e.token))
			}
		}
	}

	return nil
}

// Stop runs the free shutdown hooks, then the shutdown hooks of every
// singleton that was created, and clears all cached instances. A failing
// hook does not stop the others; the failures are returned together.
func (c *Container) Stop(ctx context.Context) error {
	c.lifecycleMu.Lock()
	defer c.lifecycleMu.Unlock()

	c.setState(StateStopping)

	var errs error
	for _, hook := range c.freeHooks(PhaseShutdown) {
		errs = multierr.Append(errs, c.runHook(ctx, PhaseShutdown, hook, nil))
	}

	singletons := c.cache.Singletons()
	for _, e := range c.snapshot() {
		if len(e.provider.shutdown) == 0 {
			continue
		}

		instance, ok := singletons[e.token]
		if !ok {
			c.logger.Debug("skipping shutdown hooks of unused provider", zapToken(e.token))
			continue
		}

		for _, hook := range e.provider.shutdown {
			errs = multierr.Append(errs, c.runHook(ctx, PhaseShutdown, hook, Args{selfParam: instance}))
		}
	}

	c.cache.Clear()
	c.setState(StateStopped)

	if errs != nil {
		return errShutdownFailed(errs)
	}
	return nil
}

func (c *Container) runHook(ctx context.Context, phase HookPhase, hook *Provider, supplied Args) error {
	name := hookName(hook)
	c.logger.Debug("running hook", zap.Stringer("phase", phase), zap.String("hook", name))

	start := time.Now()
	_, err := c.invoke(ctx, name, hook, supplied)
	c.callHookObservers(phase, name, time.Since(start), err)

	if err != nil && phase == PhaseShutdown {
		c.logger.Warn("shutdown hook failed", zap.String("hook", name), zap.Error(err))
	}
	return err
}

func hookName(p *Provider) string {
	if p.fn.IsValid() {
		if fn := runtime.FuncForPC(p.fn.Pointer()); fn != nil {
			return fn.Name()
		}
	}
	return p.name()
}

// Run starts the container, runs body and stops the container, even when
// body fails or panics. A failed start still stops whatever was created.
func (c *Container) Run(ctx context.Context, body func(ctx context.Context) error) (err error) {
	if err := c.Start(ctx); err != nil {
		if IsStartupFailed(err) {
			return multierr.Append(err, c.Stop(context.WithoutCancel(ctx)))
		}
		return err
	}

	defer func() {
		err = multierr.Append(err, c.Stop(context.WithoutCancel(ctx)))
	}()

	return body(ctx)
}

// RunUntilSignal starts the container and blocks until ctx is done or the
// process receives SIGINT or SIGTERM, then stops it.
func (c *Container) RunUntilSignal(ctx context.Context) error {
	return c.Run(
		ctx, func(ctx context.Context) error {
			ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			<-ctx.Done()
			return nil
		},
	)
}
