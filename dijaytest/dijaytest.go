// Package dijaytest wraps a container with helpers that fail the test
// instead of returning errors.
package dijaytest

import (
	"context"

	"go.uber.org/zap/zaptest"

	"github.com/danpasecinic/dijay"
)

type TB interface {
	Helper()
	Fatal(args ...any)
	Fatalf(format string, args ...any)
	Cleanup(f func())
}

type TestContainer struct {
	*dijay.Container
	tb TB
}

// New returns a container that is stopped when the test ends.
func New(tb TB, opts ...dijay.Option) *TestContainer {
	tb.Helper()

	c := dijay.New(opts...)
	tc := &TestContainer{
		Container: c,
		tb:        tb,
	}

	tb.Cleanup(
		func() {
			if err := c.Stop(context.Background()); err != nil {
				tb.Fatalf("failed to stop container: %v", err)
			}
		},
	)

	return tc
}

type LoggedTB interface {
	TB
	zaptest.TestingT
}

// NewLogged is New with the container logging through the test log.
func NewLogged(tb LoggedTB, opts ...dijay.Option) *TestContainer {
	tb.Helper()

	opts = append([]dijay.Option{dijay.WithLogger(zaptest.NewLogger(tb))}, opts...)
	return New(tb, opts...)
}

// Compose is dijay.Compose for tests.
func Compose(tb TB, root dijay.ModuleNode, opts ...dijay.Option) *TestContainer {
	tb.Helper()

	tc := New(tb, opts...)
	if err := tc.Apply(root); err != nil {
		tb.Fatalf("failed to compose modules: %v", err)
	}
	return tc
}

func (tc *TestContainer) RequireStart(ctx context.Context) {
	tc.tb.Helper()

	if err := tc.Start(ctx); err != nil {
		tc.tb.Fatalf("failed to start container: %v", err)
	}
}

func (tc *TestContainer) RequireStop(ctx context.Context) {
	tc.tb.Helper()

	if err := tc.Stop(ctx); err != nil {
		tc.tb.Fatalf("failed to stop container: %v", err)
	}
}

func (tc *TestContainer) RequireValidate() {
	tc.tb.Helper()

	if err := tc.Validate(); err != nil {
		tc.tb.Fatalf("container validation failed: %v", err)
	}
}

func (tc *TestContainer) MustRegister(token dijay.Token, provider any, opts ...dijay.RegisterOption) {
	tc.tb.Helper()

	if err := tc.Register(token, provider, opts...); err != nil {
		tc.tb.Fatalf("failed to register %s: %v", dijay.TokenName(token), err)
	}
}

func (tc *TestContainer) MustProvide(p *dijay.Provider) {
	tc.tb.Helper()

	if err := tc.Provide(p); err != nil {
		tc.tb.Fatalf("failed to provide %s: %v", p, err)
	}
}

func (tc *TestContainer) RequireResolve(ctx context.Context, token dijay.Token) any {
	tc.tb.Helper()

	v, err := tc.Resolve(ctx, token)
	if err != nil {
		tc.tb.Fatalf("failed to resolve %s: %v", dijay.TokenName(token), err)
	}
	return v
}

// Replace swaps the binding of T's type token for value and drops any
// cached instance.
func Replace[T any](tc *TestContainer, value T) {
	tc.tb.Helper()

	if err := dijay.ReplaceValue(tc.Container, value); err != nil {
		tc.tb.Fatalf("failed to replace %s: %v", dijay.TokenName(dijay.TypeOf[T]()), err)
	}
}

func ReplaceToken(tc *TestContainer, token dijay.Token, provider any) {
	tc.tb.Helper()

	if err := tc.Container.Replace(token, provider); err != nil {
		tc.tb.Fatalf("failed to replace %s: %v", dijay.TokenName(token), err)
	}
}

func AssertHas[T any](tc *TestContainer) {
	tc.tb.Helper()

	if !tc.Has(dijay.TypeOf[T]()) {
		tc.tb.Fatalf("expected container to have %s", dijay.TokenName(dijay.TypeOf[T]()))
	}
}

func AssertNotHas[T any](tc *TestContainer) {
	tc.tb.Helper()

	if tc.Has(dijay.TypeOf[T]()) {
		tc.tb.Fatalf("expected container to not have %s", dijay.TokenName(dijay.TypeOf[T]()))
	}
}

func MustInvoke[T any](tc *TestContainer) T {
	tc.tb.Helper()

	v, err := dijay.Invoke[T](context.Background(), tc.Container)
	if err != nil {
		tc.tb.Fatalf("failed to invoke %s: %v", dijay.TokenName(dijay.TypeOf[T]()), err)
	}
	return v
}

func MustInvokeToken[T any](tc *TestContainer, token dijay.Token) T {
	tc.tb.Helper()

	v, err := dijay.InvokeToken[T](context.Background(), tc.Container, token)
	if err != nil {
		tc.tb.Fatalf("failed to invoke %s: %v", dijay.TokenName(token), err)
	}
	return v
}
