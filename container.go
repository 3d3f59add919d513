package dijay

import (
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/danpasecinic/dijay/internal/cache"
	ireflect "github.com/danpasecinic/dijay/internal/reflect"
)

// Container maps tokens to providers and owns the instances they produce.
type Container struct {
	mu      sync.RWMutex
	entries map[Token]*entry
	order   []Token

	lifecycleMu sync.Mutex
	bootstrap   []*Provider
	shutdown    []*Provider
	state       atomic.Int32

	cache  *cache.Store
	config *containerConfig
	logger *zap.Logger
}

type entry struct {
	token    Token
	provider *Provider
	scope    Scope
	isClass  bool
}

func New(opts ...Option) *Container {
	cfg := &containerConfig{
		logger: zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cfg)
	}

	return &Container{
		entries: make(map[Token]*entry),
		cache:   cache.New(),
		config:  cfg,
		logger:  cfg.logger,
	}
}

// Register binds token to provider, replacing any earlier binding. provider
// may be a *Provider, a func or a struct type. Its shape is not checked
// here: a malformed provider fails when the token is resolved.
func (c *Container) Register(token Token, provider any, opts ...RegisterOption) error {
	if !ireflect.Comparable(token) {
		return errInvalidToken(TokenName(token))
	}

	cfg := &registerConfig{scope: Singleton}
	for _, opt := range opts {
		opt(cfg)
	}

	p := toProvider(provider).clone()
	c.register(token, p, cfg.scope)
	return nil
}

// Provide registers p under its own token and scope.
func (c *Container) Provide(p *Provider) error {
	if p == nil {
		return errInvalidProvider(TokenName(nil), errNilProvider)
	}
	if p.token == nil {
		return errInvalidProvider(p.String(), errNoToken)
	}
	return c.Register(p.token, p, WithScope(p.scope))
}

func (c *Container) register(token Token, p *Provider, s Scope) {
	c.mu.Lock()
	if _, exists := c.entries[token]; !exists {
		c.order = append(c.order, token)
	}
	c.entries[token] = &entry{
		token:    token,
		provider: p,
		scope:    s,
		isClass:  p.kind == kindClass,
	}
	c.mu.Unlock()

	c.logger.Debug(
		"registered provider",
		zapToken(token),
		zap.Stringer("scope", s),
		zap.Stringer("kind", p.kind),
	)
	c.callRegisterHooks(token, s)
}

func (c *Container) lookup(token Token) (*entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[token]
	return e, ok
}

// snapshot returns the entries in registration order.
func (c *Container) snapshot() []*entry {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entries := make([]*entry, len(c.order))
	for i, token := range c.order {
		entries[i] = c.entries[token]
	}
	return entries
}

func (c *Container) Has(token Token) bool {
	if !ireflect.Comparable(token) {
		return false
	}
	_, ok := c.lookup(token)
	return ok
}

// Tokens returns the registered tokens in registration order.
func (c *Container) Tokens() []Token {
	c.mu.RLock()
	defer c.mu.RUnlock()

	tokens := make([]Token, len(c.order))
	copy(tokens, c.order)
	return tokens
}

func (c *Container) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}

func (c *Container) Logger() *zap.Logger {
	return c.logger
}
