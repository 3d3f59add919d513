package dijay

import (
	"time"

	"go.uber.org/zap"
)

// ResolveHook observes every resolution, nested ones included.
type ResolveHook func(token string, duration time.Duration, err error)

type RegisterHook func(token string, scope Scope)

type HookPhase int

const (
	PhaseBootstrap HookPhase = iota
	PhaseShutdown
)

func (p HookPhase) String() string {
	if p == PhaseShutdown {
		return "shutdown"
	}
	return "bootstrap"
}

// HookObserver observes each lifecycle hook invocation.
type HookObserver func(phase HookPhase, name string, duration time.Duration, err error)

func (c *Container) callResolveHooks(token Token, duration time.Duration, err error) {
	if len(c.config.onResolve) == 0 {
		return
	}
	name := TokenName(token)
	for _, hook := range c.config.onResolve {
		hook(name, duration, err)
	}
}

func (c *Container) callRegisterHooks(token Token, s Scope) {
	if len(c.config.onRegister) == 0 {
		return
	}
	name := TokenName(token)
	for _, hook := range c.config.onRegister {
		hook(name, s)
	}
}

func (c *Container) callHookObservers(phase HookPhase, name string, duration time.Duration, err error) {
	for _, hook := range c.config.onHook {
		hook(phase, name, duration, err)
	}
}

func zapToken(token Token) zap.Field {
	return zap.String("token", TokenName(token))
}

func zapRequest(id string) zap.Field {
	return zap.String("request_id", id)
}
