package dijay_test

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danpasecinic/dijay"
)

func newGraphContainer(t *testing.T) *dijay.Container {
	t.Helper()

	c := dijay.New()
	require.NoError(t, c.Provide(dijay.Func(newConfig)))
	require.NoError(t, c.Provide(dijay.Class[*Database]().OnShutdown(func(*Database) {})))
	return c
}

func TestSprintGraph_Empty(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "(empty container)\n", dijay.New().SprintGraph())
}

func TestSprintGraph(t *testing.T) {
	t.Parallel()

	c := newGraphContainer(t)
	cfg := dijay.TokenName(dijay.TypeOf[*Config]())
	db := dijay.TokenName(dijay.TypeOf[*Database]())

	out := c.SprintGraph()
	assert.Contains(t, out, "○ "+cfg+" [singleton]\n")
	assert.Contains(t, out, "○ "+db+" [singleton] ← "+cfg+"\n")

	_ = dijay.MustInvoke[*Config](context.Background(), c)
	assert.Contains(t, c.SprintGraph(), "● "+cfg)
}

func TestSprintGraphDOT(t *testing.T) {
	t.Parallel()

	c := newGraphContainer(t)
	_ = dijay.MustInvoke[*Database](context.Background(), c)

	out := c.SprintGraphDOT()
	assert.True(t, strings.HasPrefix(out, "digraph dependencies {\n"))
	assert.Contains(t, out, "style=filled")
	assert.Contains(t, out, `label="dijay_test.Config"`)
	assert.Contains(t, out, "->")
}

func TestGraphInfo(t *testing.T) {
	t.Parallel()

	c := newGraphContainer(t)
	info := c.Graph()
	require.Len(t, info.Services, 2)

	cfg, db := info.Services[0], info.Services[1]
	assert.Equal(t, "func", cfg.Kind)
	assert.Equal(t, []string{db.Token}, cfg.Dependents)
	assert.Equal(t, "class", db.Kind)
	assert.Equal(t, []string{cfg.Token}, db.Dependencies)
	assert.Equal(t, 1, db.Hooks)
	assert.Equal(t, dijay.Singleton, db.Scope)
}

func TestFprintTable(t *testing.T) {
	t.Parallel()

	c := newGraphContainer(t)

	var buf bytes.Buffer
	c.FprintTable(&buf)

	out := buf.String()
	assert.Contains(t, strings.ToUpper(out), "TOKEN")
	assert.Contains(t, out, dijay.TokenName(dijay.TypeOf[*Database]()))
	assert.Contains(t, out, "class")
}

func TestValidate(t *testing.T) {
	t.Parallel()

	t.Run(
		"valid", func(t *testing.T) {
			c := newGraphContainer(t)
			require.NoError(t, c.Register("addr", dijay.Value(":80")))
			require.NoError(t, c.Provide(dijay.Class[*Server]()))
			assert.NoError(t, c.Validate())
		},
	)

	t.Run(
		"missing dependency", func(t *testing.T) {
			c := dijay.New()
			require.NoError(t, c.Provide(dijay.Class[*Server]()))

			err := c.Validate()
			var derr *dijay.Error
			require.ErrorAs(t, err, &derr)
			assert.Equal(t, dijay.ErrCodeValidationFailed, derr.Code)
			assert.Contains(t, err.Error(), `"addr" is not registered`)
			assert.NotContains(t, err.Error(), dijay.TokenName(dijay.TypeOf[*Config]()), "auto-wirable")
			assert.NotContains(t, err.Error(), "Metrics")
		},
	)

	t.Run(
		"cycle", func(t *testing.T) {
			c := dijay.New()
			require.NoError(t, c.Provide(dijay.Class[*A]()))

			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), "circular dependency")
		},
	)

	t.Run(
		"invalid provider", func(t *testing.T) {
			c := dijay.New()
			require.NoError(t, c.Register("bad", 42))
			assert.Error(t, c.Validate())
		},
	)
}

func TestPlan(t *testing.T) {
	t.Parallel()

	c := newGraphContainer(t)
	require.NoError(t, c.Register("addr", dijay.Value(":80")))

	order, err := c.Plan(dijay.TypeOf[*Server]())
	require.NoError(t, err)
	assert.Equal(
		t, []string{
			dijay.TokenName(dijay.TypeOf[*Config]()),
			dijay.TokenName(dijay.TypeOf[*Database]()),
			`"addr"`,
			dijay.TokenName(dijay.TypeOf[*Server]()),
		}, order,
	)

	_, err = c.Plan("missing")
	assert.True(t, dijay.IsUnregisteredToken(err))

	cyclic := dijay.New()
	require.NoError(t, cyclic.Provide(dijay.Class[*A]()))
	_, err = cyclic.Plan(dijay.TypeOf[*A]())
	assert.True(t, dijay.IsCircularDependency(err))
}
