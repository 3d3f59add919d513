package dijay

import (
	"context"
	"fmt"

	ireflect "github.com/danpasecinic/dijay/internal/reflect"
)

// Bind registers the class T under the type token of I, so resolving I
// builds a T. Options apply as for Register.
func Bind[I, T any](c *Container, opts ...RegisterOption) error {
	if err := checkBinding[I, T](); err != nil {
		return err
	}
	return c.Register(TypeOf[I](), Class[T](), opts...)
}

// Alias makes I resolve to whatever T resolves to, sharing T's instance
// when T is a singleton.
func Alias[I, T any](c *Container) error {
	if err := checkBinding[I, T](); err != nil {
		return err
	}
	return c.Register(TypeOf[I](), aliasProvider(TypeOf[T]()), WithScope(Transient))
}

// BindModule adds the class substitution of Bind to a module.
func BindModule[I, T any](m *Module) *Module {
	return m.Provide(UseClass(TypeOf[I](), Class[T]()))
}

func aliasProvider(target Token) *Provider {
	return Factory(
		func(_ context.Context, args Args) (any, error) {
			return args["target"], nil
		},
		Dep("target", target),
	)
}

func checkBinding[I, T any]() error {
	iface, impl := TypeOf[I](), TypeOf[T]()
	if !impl.AssignableTo(iface) {
		return newError(
			ErrCodeTypeMismatch,
			fmt.Sprintf("%s is not assignable to %s", ireflect.TypeKeyOf(impl), ireflect.TypeKeyOf(iface)),
			nil,
		).WithToken(TokenName(iface))
	}
	return nil
}
