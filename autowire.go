package dijay

import (
	"context"
	"fmt"
	"reflect"
)

// autowire builds a transient, uncached entry for an unregistered struct type.
func (c *Container) autowire(token Token) (*entry, bool) {
	t, ok := constructibleType(token)
	if !ok {
		return nil, false
	}

	c.logger.Debug("auto-wiring unregistered type", zapToken(token))
	return &entry{
		token:    token,
		provider: classOf(t),
		scope:    Transient,
		isClass:  true,
	}, true
}

func (c *Container) construct(ctx context.Context, name string, p *Provider, supplied Args) (any, error) {
	t := p.class
	isPtr := t.Kind() == reflect.Ptr
	if isPtr {
		t = t.Elem()
	}

	ptr := reflect.New(t)
	structVal := ptr.Elem()

	for _, param := range p.params {
		v, bound, err := c.argument(ctx, param, supplied)
		if err != nil {
			return nil, err
		}
		if !bound {
			continue
		}

		fieldVal, ok := assignable(v, param.typ)
		if !ok {
			return nil, errTypeMismatch(name, fmt.Sprintf("field %s (%s)", param.Name, param.typ), v)
		}
		structVal.Field(param.index).Set(fieldVal)
	}

	if isPtr {
		return ptr.Interface(), nil
	}
	return structVal.Interface(), nil
}

// InvokeStruct builds a fresh T with its tagged fields injected, whether or
// not T is registered.
func InvokeStruct[T any](ctx context.Context, c *Container) (T, error) {
	var zero T

	instance, err := c.Call(ctx, TypeOf[T](), nil)
	if err != nil {
		return zero, err
	}
	return instance.(T), nil
}
