package dijay_test

import (
	"context"
	"testing"

	"github.com/danpasecinic/dijay"
)

func BenchmarkResolve_Singleton(b *testing.B) {
	ctx := context.Background()
	c := dijay.New()
	_ = c.Provide(dijay.Func(newConfig))
	_ = dijay.MustInvoke[*Config](ctx, c)

	for b.Loop() {
		_, _ = c.Resolve(ctx, dijay.TypeOf[*Config]())
	}
}

func BenchmarkResolve_Transient(b *testing.B) {
	ctx := context.Background()
	c := dijay.New()
	_ = c.Provide(dijay.Func(newConfig).In(dijay.Transient))

	for b.Loop() {
		_, _ = c.Resolve(ctx, dijay.TypeOf[*Config]())
	}
}

func BenchmarkResolve_Class(b *testing.B) {
	ctx := context.Background()
	c := dijay.New()
	_ = c.Provide(dijay.Func(newConfig))
	_ = c.Provide(dijay.Class[*Database]().In(dijay.Transient))

	for b.Loop() {
		_, _ = c.Resolve(ctx, dijay.TypeOf[*Database]())
	}
}

func BenchmarkResolve_Request(b *testing.B) {
	c := dijay.New()
	_ = c.Provide(dijay.Func(newConfig).In(dijay.Request))

	for b.Loop() {
		ctx, id := dijay.NewRequest(context.Background())
		_, _ = c.Resolve(ctx, dijay.TypeOf[*Config]())
		c.ReleaseRequest(id)
	}
}

func BenchmarkCompose(b *testing.B) {
	db := dijay.NewModule("db").Provide(dijay.Func(newConfig), dijay.Class[*Database]())
	app := dijay.NewModule("app").Import(db).Provide(dijay.UseValue("addr", ":80"))

	for b.Loop() {
		_, _ = dijay.Compose(app)
	}
}
