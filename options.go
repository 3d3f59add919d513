package dijay

import "go.uber.org/zap"

type Option func(*containerConfig)

type containerConfig struct {
	logger     *zap.Logger
	onResolve  []ResolveHook
	onRegister []RegisterHook
	onHook     []HookObserver
}

func WithLogger(logger *zap.Logger) Option {
	return func(cfg *containerConfig) {
		if logger != nil {
			cfg.logger = logger
		}
	}
}

func WithResolveObserver(hook ResolveHook) Option {
	return func(cfg *containerConfig) {
		cfg.onResolve = append(cfg.onResolve, hook)
	}
}

func WithRegisterObserver(hook RegisterHook) Option {
	return func(cfg *containerConfig) {
		cfg.onRegister = append(cfg.onRegister, hook)
	}
}

func WithHookObserver(hook HookObserver) Option {
	return func(cfg *containerConfig) {
		cfg.onHook = append(cfg.onHook, hook)
	}
}

type RegisterOption func(*registerConfig)

type registerConfig struct {
	scope Scope
}

// WithScope sets the lifetime of a registration. The default is Singleton.
func WithScope(s Scope) RegisterOption {
	return func(cfg *registerConfig) {
		cfg.scope = s
	}
}
