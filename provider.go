package dijay

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"slices"

	ireflect "github.com/danpasecinic/dijay/internal/reflect"
)

type providerKind int

const (
	kindInvalid providerKind = iota
	kindClass
	kindFunc
	kindValue
	kindFactory
)

func (k providerKind) String() string {
	switch k {
	case kindClass:
		return "class"
	case kindFunc:
		return "func"
	case kindValue:
		return "value"
	case kindFactory:
		return "factory"
	default:
		return "invalid"
	}
}

// Args holds caller-supplied arguments keyed by parameter name. Supplied
// parameters are bound as given and never resolved.
type Args map[string]any

// FactoryFunc is a provider with an explicit parameter list. Resolved
// parameters arrive in args under their names.
type FactoryFunc func(ctx context.Context, args Args) (any, error)

// Provider describes how to produce an instance. Build one with Class, Func,
// Value or Factory and refine it with the chain methods before registering
// it; a registered provider is copied and later changes do not affect the
// container.
type Provider struct {
	kind      providerKind
	token     Token
	scope     Scope
	class     reflect.Type
	fn        reflect.Value
	result    ireflect.Result
	factory   FactoryFunc
	value     any
	params    []Param
	bootstrap []*Provider
	shutdown  []*Provider
	err       error
}

// Class provides T by allocating it and filling every field tagged with
// `dijay:"..."`. T must be a struct or a pointer to a struct.
func Class[T any]() *Provider {
	return classOf(TypeOf[T]())
}

func classOf(t reflect.Type) *Provider {
	p := &Provider{kind: kindClass, token: t, scope: Singleton, class: t}
	if t == nil || !ireflect.Constructible(t) {
		p.fail(fmt.Errorf("%s is not a struct type", TokenName(t)))
		return p
	}

	params, err := classParams(t)
	if err != nil {
		p.fail(err)
		return p
	}
	p.params = params
	return p
}

// Func provides the first result of fn. Its parameters are resolved by type,
// a context.Context parameter receives the resolution context, and a
// trailing error result is returned as the provider failure.
func Func(fn any) *Provider {
	p := &Provider{kind: kindFunc, scope: Singleton}

	params, result, err := funcParams(fn)
	if err != nil {
		p.fail(err)
		return p
	}

	p.fn = reflect.ValueOf(fn)
	p.result = result
	p.params = params
	if result.HasValue() {
		p.token = result.Type
	}
	return p
}

// Value provides v itself on every resolution.
func Value(v any) *Provider {
	p := &Provider{kind: kindValue, scope: Singleton, value: v}
	if v != nil {
		p.token = reflect.TypeOf(v)
	}
	return p
}

// Factory provides whatever fn returns. A factory has no default token, so
// it must be registered under an explicit one or given one with As.
func Factory(fn FactoryFunc, params ...Param) *Provider {
	p := &Provider{kind: kindFactory, scope: Singleton, factory: fn}
	if fn == nil {
		p.fail(errors.New("factory is nil"))
		return p
	}

	for _, param := range params {
		if param.Name == "" {
			p.fail(errors.New("factory parameter without a name"))
			return p
		}
		if !ireflect.Comparable(param.Token) {
			p.fail(fmt.Errorf("parameter %s: token must be comparable", param.Name))
			return p
		}
	}
	p.params = slices.Clone(params)
	return p
}

// As sets the token the provider registers under by default.
func (p *Provider) As(token Token) *Provider {
	p.token = token
	return p
}

// In sets the scope the provider registers with by default.
func (p *Provider) In(s Scope) *Provider {
	p.scope = s
	return p
}

// Named renames the parameters of a Func provider in order, skipping
// context.Context parameters.
func (p *Provider) Named(names ...string) *Provider {
	if p.err != nil {
		return p
	}
	if p.kind != kindFunc {
		p.fail(fmt.Errorf("named parameters require a func provider, got %s", p.kind))
		return p
	}

	i := 0
	for _, name := range names {
		for i < len(p.params) && p.params[i].context {
			i++
		}
		if i == len(p.params) {
			p.fail(fmt.Errorf("%d names given for %d parameters", len(names), p.injectable()))
			return p
		}
		p.params[i].Name = name
		i++
	}
	return p
}

// Inject makes parameter name resolve token instead of its declared type.
func (p *Provider) Inject(name string, token Token) *Provider {
	if !ireflect.Comparable(token) {
		p.fail(fmt.Errorf("parameter %s: token must be comparable", name))
		return p
	}
	return p.withParam(name, func(param *Param) {
		param.Token = token
		param.Skip = false
	})
}

// Optional binds nil to parameter name when its token is unregistered or
// part of a cycle.
func (p *Provider) Optional(name string) *Provider {
	return p.withParam(name, func(param *Param) {
		param.Optional = true
	})
}

// Skip leaves parameter name at its zero value unless supplied by the caller.
func (p *Provider) Skip(name string) *Provider {
	return p.withParam(name, func(param *Param) {
		param.Skip = true
	})
}

// OnBootstrap attaches a hook that runs on Start against the instance. The
// hook's first parameter that is not a context.Context receives the
// instance, so method expressions such as (*Server).Listen fit directly.
// Other parameters are injected.
func (p *Provider) OnBootstrap(hook any) *Provider {
	h, err := methodHook(hook)
	if err != nil {
		p.fail(fmt.Errorf("bootstrap hook: %w", err))
		return p
	}
	p.bootstrap = append(p.bootstrap, h)
	return p
}

// OnShutdown attaches a hook that runs on Stop, and only when the singleton
// was created.
func (p *Provider) OnShutdown(hook any) *Provider {
	h, err := methodHook(hook)
	if err != nil {
		p.fail(fmt.Errorf("shutdown hook: %w", err))
		return p
	}
	p.shutdown = append(p.shutdown, h)
	return p
}

func (p *Provider) Token() Token {
	return p.token
}

func (p *Provider) Scope() Scope {
	return p.scope
}

// Params returns the parameter schema, or the error that makes the provider
// unusable.
func (p *Provider) Params() ([]Param, error) {
	if p.err != nil {
		return nil, p.err
	}
	return slices.Clone(p.params), nil
}

func (p *Provider) Err() error {
	return p.err
}

func (p *Provider) String() string {
	return fmt.Sprintf("%s provider for %s", p.kind, TokenName(p.token))
}

func (p *Provider) fail(err error) {
	if p.err == nil {
		p.err = err
	}
}

func (p *Provider) withParam(name string, apply func(*Param)) *Provider {
	if p.err != nil {
		return p
	}
	for i := range p.params {
		if p.params[i].Name == name && !p.params[i].context {
			apply(&p.params[i])
			return p
		}
	}
	p.fail(fmt.Errorf("unknown parameter %q", name))
	return p
}

func (p *Provider) injectable() int {
	n := 0
	for _, param := range p.params {
		if !param.context {
			n++
		}
	}
	return n
}

func (p *Provider) clone() *Provider {
	cp := *p
	cp.params = slices.Clone(p.params)
	cp.bootstrap = slices.Clone(p.bootstrap)
	cp.shutdown = slices.Clone(p.shutdown)
	return &cp
}

func (p *Provider) hasHooks() bool {
	return len(p.bootstrap) > 0 || len(p.shutdown) > 0
}

// toProvider accepts the provider forms Register and Call take: a *Provider,
// a func, or a struct type.
func toProvider(target any) *Provider {
	switch t := target.(type) {
	case *Provider:
		if t == nil {
			return invalidProvider(errNilProvider)
		}
		return t
	case reflect.Type:
		return classOf(t)
	case nil:
		return invalidProvider(errNilProvider)
	}

	if reflect.TypeOf(target).Kind() == reflect.Func {
		return Func(target)
	}
	return invalidProvider(fmt.Errorf("cannot use %T as a provider", target))
}

func invalidProvider(err error) *Provider {
	p := &Provider{scope: Singleton}
	p.fail(err)
	return p
}
