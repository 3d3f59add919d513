package dijay_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danpasecinic/dijay"
)

type Repository interface {
	Find(id string) string
}

type memoryRepository struct{}

func (memoryRepository) Find(id string) string { return "memory:" + id }

type sqlRepository struct {
	DSN string `dijay:"dsn"`
}

func (r *sqlRepository) Find(id string) string { return r.DSN + ":" + id }

func TestModule_ImportsAreVisible(t *testing.T) {
	t.Parallel()

	m2 := dijay.NewModule("m2").Provide(dijay.Func(newConfig))
	m1 := dijay.NewModule("m1").Import(m2).Provide(dijay.Class[*Database]())

	c, err := dijay.Compose(m1)
	require.NoError(t, err)

	db, err := dijay.Invoke[*Database](context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "v1", db.Config.Value)
	assert.Equal(t, []dijay.Token{dijay.TypeOf[*Config](), dijay.TypeOf[*Database]()}, c.Tokens())
}

func TestModule_ImporterOverrides(t *testing.T) {
	t.Parallel()

	m2 := dijay.NewModule("m2").Provide(dijay.UseValue("greeting", "from m2"))
	m1 := dijay.NewModule("m1").Import(m2).Provide(dijay.UseValue("greeting", "from m1"))

	c, err := dijay.Compose(m1)
	require.NoError(t, err)

	v, err := dijay.InvokeToken[string](context.Background(), c, "greeting")
	require.NoError(t, err)
	assert.Equal(t, "from m1", v)
}

func TestModule_Bindings(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repoToken := dijay.TypeOf[Repository]()

	t.Run(
		"use class", func(t *testing.T) {
			m := dijay.NewModule("repo").Provide(
				dijay.UseValue("dsn", "sql"),
				dijay.UseClass(repoToken, dijay.TypeOf[*sqlRepository]()),
			)
			c, err := dijay.Compose(m)
			require.NoError(t, err)

			repo, err := dijay.Invoke[Repository](ctx, c)
			require.NoError(t, err)
			assert.Equal(t, "sql:1", repo.Find("1"))
		},
	)

	t.Run(
		"use factory", func(t *testing.T) {
			m := dijay.NewModule("repo").Provide(
				dijay.UseFactory(repoToken, func() Repository { return memoryRepository{} }),
				dijay.UseFactory(
					"answer", func(context.Context, dijay.Args) (any, error) { return 42, nil },
				),
			)
			c, err := dijay.Compose(m)
			require.NoError(t, err)

			repo, err := dijay.Invoke[Repository](ctx, c)
			require.NoError(t, err)
			assert.Equal(t, "memory:1", repo.Find("1"))

			answer, err := dijay.InvokeToken[int](ctx, c, "answer")
			require.NoError(t, err)
			assert.Equal(t, 42, answer)
		},
	)

	t.Run(
		"scope", func(t *testing.T) {
			m := dijay.NewModule("config").Provide(
				dijay.UseFactory(dijay.TypeOf[*Config](), newConfig).WithScope(dijay.Transient),
			)
			c, err := dijay.Compose(m)
			require.NoError(t, err)

			assert.NotSame(t, dijay.MustInvoke[*Config](ctx, c), dijay.MustInvoke[*Config](ctx, c))
		},
	)

	t.Run(
		"empty binding registers nothing", func(t *testing.T) {
			c, err := dijay.Compose(dijay.NewModule("empty").Provide(dijay.Binding{}))
			require.NoError(t, err)
			assert.Equal(t, 0, c.Size())
		},
	)

	t.Run(
		"bind module", func(t *testing.T) {
			m := dijay.BindModule[Base, *Implementation](dijay.NewModule("base"))
			c, err := dijay.Compose(m)
			require.NoError(t, err)

			b, err := dijay.Invoke[Base](ctx, c)
			require.NoError(t, err)
			assert.Equal(t, "implementation", b.Name())
		},
	)
}

func TestModule_Dynamic(t *testing.T) {
	t.Parallel()

	forRoot := func(dsn string) dijay.DynamicModule {
		return dijay.DynamicModule{
			Module: dijay.NewModule("database").
				Provide(dijay.UseClass(dijay.TypeOf[Repository](), dijay.TypeOf[*sqlRepository]())).
				Export(dijay.TypeOf[Repository]()),
			Providers: []dijay.ProviderRef{dijay.UseValue("dsn", dsn)},
			Exports:   []dijay.Token{"dsn"},
		}
	}

	app := dijay.NewModule("app").Import(forRoot("postgres"))
	c, err := dijay.Compose(app)
	require.NoError(t, err)

	repo, err := dijay.Invoke[Repository](context.Background(), c)
	require.NoError(t, err)
	assert.Equal(t, "postgres:7", repo.Find("7"))

	dsn, err := dijay.InvokeToken[string](context.Background(), c, "dsn")
	require.NoError(t, err)
	assert.Equal(t, "postgres", dsn)
}

func TestModule_DynamicOrdering(t *testing.T) {
	t.Parallel()

	base := dijay.NewModule("base").Provide(dijay.UseValue("level", "base"))
	imported := dijay.NewModule("imported").Provide(dijay.UseValue("level", "imported"))

	dyn := dijay.DynamicModule{
		Module:    base,
		Imports:   []dijay.ModuleNode{imported},
		Providers: []dijay.ProviderRef{dijay.UseValue("level", "dynamic")},
	}
	assert.Equal(t, dijay.ModuleDynamic, dyn.Kind())
	assert.Equal(t, "base", dyn.Descriptor().Name)

	c, err := dijay.Compose(dyn)
	require.NoError(t, err)

	v, err := dijay.InvokeToken[string](context.Background(), c, "level")
	require.NoError(t, err)
	assert.Equal(t, "base", v)
}

func TestModule_ExportsDoNotRestrictVisibility(t *testing.T) {
	t.Parallel()

	inner := dijay.NewModule("inner").
		Provide(dijay.UseValue("public", 1), dijay.UseValue("private", 2)).
		Export("public")
	outer := dijay.NewModule("outer").Import(inner)

	c, err := dijay.Compose(outer)
	require.NoError(t, err)
	assert.True(t, c.Has("private"))
}

func TestModule_Diamond(t *testing.T) {
	t.Parallel()

	shared := dijay.NewModule("shared").Provide(dijay.Func(newConfig))
	left := dijay.NewModule("left").Import(shared)
	right := dijay.NewModule("right").Import(shared)
	root := dijay.NewModule("root").Import(left, right)

	c, err := dijay.Compose(root)
	require.NoError(t, err)
	assert.Equal(t, 1, c.Size())
}

func TestModule_ImportCycle(t *testing.T) {
	t.Parallel()

	a := dijay.NewModule("a")
	b := dijay.NewModule("b").Import(a)
	a.Import(b)

	_, err := dijay.Compose(a)

	var derr *dijay.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, dijay.ErrCodeModuleCycle, derr.Code)
	assert.Equal(t, []string{"a", "b", "a"}, derr.Stack)
}

func TestModule_NilNodes(t *testing.T) {
	t.Parallel()

	c, err := dijay.Compose(nil)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Size())

	var missing *dijay.Module
	c, err = dijay.Compose(dijay.NewModule("root").Import(missing).Provide(nil))
	require.NoError(t, err)
	assert.Equal(t, 0, c.Size())
}

func TestModule_ProviderWithoutToken(t *testing.T) {
	t.Parallel()

	factory := dijay.Factory(func(context.Context, dijay.Args) (any, error) { return nil, nil })
	_, err := dijay.Compose(dijay.NewModule("broken").Provide(factory))

	var derr *dijay.Error
	require.ErrorAs(t, err, &derr)
	assert.Equal(t, dijay.ErrCodeModuleApplyFailed, derr.Code)
	assert.True(t, dijay.IsInvalidProvider(err))
}

func TestContainer_Apply(t *testing.T) {
	t.Parallel()

	c := dijay.New()
	require.NoError(t, c.Register("existing", dijay.Value(true)))
	require.NoError(
		t, c.Apply(
			dijay.NewModule("one").Provide(dijay.UseValue("one", 1)),
			dijay.NewModule("two").Provide(dijay.UseValue("two", 2)),
		),
	)

	assert.Equal(t, []dijay.Token{"existing", "one", "two"}, c.Tokens())
}

func TestModuleKind_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "static", dijay.ModuleStatic.String())
	assert.Equal(t, "dynamic", dijay.ModuleDynamic.String())
	assert.Equal(t, "static", dijay.NewModule("x").Global().Kind().String())
	assert.True(t, dijay.NewModule("x").Global().Descriptor().Global)
}
