package dijay

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"go.uber.org/zap"

	ireflect "github.com/danpasecinic/dijay/internal/reflect"
	"github.com/danpasecinic/dijay/internal/resolution"
)

// Resolve returns the instance bound to token, honoring its scope.
// Request-scoped tokens are cached per request id found in ctx; without one
// they behave as transient.
//
// Failures the container detects are *Error values. An error returned by a
// provider is passed through unchanged.
func (c *Container) Resolve(ctx context.Context, token Token) (any, error) {
	start := time.Now()
	instance, err := c.resolve(ctx, token)
	c.callResolveHooks(token, time.Since(start), err)
	return instance, err
}

func (c *Container) resolve(ctx context.Context, token Token) (any, error) {
	if !ireflect.Comparable(token) {
		return nil, errInvalidToken(TokenName(token))
	}

	stack := resolution.FromContext(ctx)
	if stack.Contains(token) {
		chain := append(tokenNames(stack.Tokens()), TokenName(token))
		return nil, errCircularDependency(TokenName(token), chain)
	}

	e, ok := c.lookup(token)
	if !ok {
		if e, ok = c.autowire(token); !ok {
			return nil, errUnregisteredToken(TokenName(token), tokenNames(stack.Tokens()))
		}
	}

	id, hasID := RequestID(ctx)
	switch e.scope {
	case Singleton:
		if instance, ok := c.cache.Singleton(token); ok {
			return instance, nil
		}
	case Request:
		if hasID {
			if instance, ok := c.cache.Request(id, token); ok {
				return instance, nil
			}
		}
	}

	c.logger.Debug("resolving", zapToken(token), zap.Stringer("scope", e.scope), zap.Int("depth", stack.Depth()))

	instance, err := c.invoke(resolution.WithStack(ctx, stack.Push(token)), TokenName(token), e.provider, nil)
	if err != nil {
		return nil, err
	}

	switch {
	case e.scope == Singleton:
		c.cache.SetSingleton(token, instance)
	case e.scope == Request && hasID:
		c.cache.SetRequest(id, token, instance)
	}

	return instance, nil
}

// Call invokes target with its parameters injected. target may be a
// *Provider, a func or a struct type. Parameters named in supplied are bound
// as given instead of being resolved.
func (c *Container) Call(ctx context.Context, target any, supplied Args) (any, error) {
	p := toProvider(target)
	return c.invoke(ctx, p.name(), p, supplied)
}

func (c *Container) invoke(ctx context.Context, name string, p *Provider, supplied Args) (any, error) {
	if p.err != nil {
		return nil, errInvalidProvider(name, p.err)
	}

	switch p.kind {
	case kindValue:
		return p.value, nil
	case kindClass:
		return c.construct(ctx, name, p, supplied)
	case kindFunc:
		return c.callFunc(ctx, name, p, supplied)
	case kindFactory:
		return c.callFactory(ctx, p, supplied)
	default:
		return nil, errInvalidProvider(name, fmt.Errorf("unknown provider kind %d", p.kind))
	}
}

// argument produces the value for one parameter. bound is false when the
// parameter is skipped and was not supplied.
func (c *Container) argument(ctx context.Context, param Param, supplied Args) (value any, bound bool, err error) {
	if v, ok := supplied[param.Name]; ok {
		return v, true, nil
	}
	if param.Skip {
		return nil, false, nil
	}

	instance, err := c.Resolve(ctx, param.Token)
	if err != nil {
		if param.Optional && isResolutionFailure(err) {
			c.logger.Debug("optional dependency unavailable", zap.String("param", param.Name), zapToken(param.Token))
			return nil, true, nil
		}
		return nil, false, err
	}
	return instance, true, nil
}

func (c *Container) callFunc(ctx context.Context, name string, p *Provider, supplied Args) (any, error) {
	args := make([]reflect.Value, len(p.params))
	for i, param := range p.params {
		if param.context {
			args[i] = reflect.ValueOf(&ctx).Elem()
			continue
		}

		v, _, err := c.argument(ctx, param, supplied)
		if err != nil {
			return nil, err
		}

		arg, ok := assignable(v, param.typ)
		if !ok {
			return nil, errTypeMismatch(name, fmt.Sprintf("parameter %s (%s)", param.Name, param.typ), v)
		}
		args[i] = arg
	}

	return funcOutput(p.result, p.fn.Call(args))
}

func (c *Container) callFactory(ctx context.Context, p *Provider, supplied Args) (any, error) {
	args := make(Args, len(p.params)+len(supplied))
	for k, v := range supplied {
		args[k] = v
	}

	for _, param := range p.params {
		if _, ok := supplied[param.Name]; ok {
			continue
		}
		v, bound, err := c.argument(ctx, param, nil)
		if err != nil {
			return nil, err
		}
		if bound {
			args[param.Name] = v
		}
	}

	return p.factory(ctx, args)
}

func assignable(instance any, t reflect.Type) (reflect.Value, bool) {
	if instance == nil {
		return reflect.Zero(t), true
	}
	v := reflect.ValueOf(instance)
	if !v.Type().AssignableTo(t) {
		return reflect.Value{}, false
	}
	return v, true
}

func funcOutput(result ireflect.Result, out []reflect.Value) (any, error) {
	if result.HasError {
		if e := out[len(out)-1]; !e.IsNil() {
			return nil, e.Interface().(error)
		}
	}
	if result.HasValue() {
		return out[0].Interface(), nil
	}
	return nil, nil
}

func (p *Provider) name() string {
	switch {
	case p.token != nil:
		return TokenName(p.token)
	case p.fn.IsValid():
		return p.fn.Type().String()
	default:
		return p.kind.String()
	}
}

// Invoke resolves the type token of T.
func Invoke[T any](ctx context.Context, c *Container) (T, error) {
	return InvokeToken[T](ctx, c, TypeOf[T]())
}

// InvokeToken resolves token and asserts the instance to T.
func InvokeToken[T any](ctx context.Context, c *Container, token Token) (T, error) {
	var zero T

	instance, err := c.Resolve(ctx, token)
	if err != nil {
		return zero, err
	}
	if instance == nil {
		return zero, nil
	}

	typed, ok := instance.(T)
	if !ok {
		return zero, errTypeMismatch(TokenName(token), ireflect.TypeKey[T](), instance)
	}
	return typed, nil
}

func InvokeKey[T any](ctx context.Context, c *Container, key *Key[T]) (T, error) {
	return InvokeToken[T](ctx, c, key)
}

func MustInvoke[T any](ctx context.Context, c *Container) T {
	v, err := Invoke[T](ctx, c)
	if err != nil {
		panic(err)
	}
	return v
}

func MustInvokeToken[T any](ctx context.Context, c *Container, token Token) T {
	v, err := InvokeToken[T](ctx, c, token)
	if err != nil {
		panic(err)
	}
	return v
}

func TryInvoke[T any](ctx context.Context, c *Container) (T, bool) {
	v, err := Invoke[T](ctx, c)
	return v, err == nil
}
