package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Singleton(t *testing.T) {
	t.Parallel()

	s := New()

	_, ok := s.Singleton("db")
	assert.False(t, ok)

	s.SetSingleton("db", 1)
	s.SetSingleton("db", 2)

	v, ok := s.Singleton("db")
	require.True(t, ok)
	assert.Equal(t, 2, v)
}

func TestStore_Request(t *testing.T) {
	t.Parallel()

	s := New()

	s.SetRequest("req-a", "session", "a")
	s.SetRequest("req-b", "session", "b")

	a, ok := s.Request("req-a", "session")
	require.True(t, ok)
	assert.Equal(t, "a", a)

	b, ok := s.Request("req-b", "session")
	require.True(t, ok)
	assert.Equal(t, "b", b)

	_, ok = s.Request("req-c", "session")
	assert.False(t, ok)
	_, ok = s.Request("req-a", "other")
	assert.False(t, ok)

	assert.Equal(t, 2, s.Requests())
	assert.True(t, s.ReleaseRequest("req-a"))
	assert.False(t, s.ReleaseRequest("req-a"))

	_, ok = s.Request("req-a", "session")
	assert.False(t, ok)
	assert.Equal(t, 1, s.Requests())
}

func TestStore_SingletonsSnapshot(t *testing.T) {
	t.Parallel()

	s := New()
	s.SetSingleton("a", 1)

	snapshot := s.Singletons()
	snapshot["b"] = 2

	_, ok := s.Singleton("b")
	assert.False(t, ok)
	assert.Len(t, s.Singletons(), 1)
}

func TestStore_Clear(t *testing.T) {
	t.Parallel()

	s := New()
	s.SetSingleton("a", 1)
	s.SetRequest("req", "b", 2)

	s.Clear()

	assert.Empty(t, s.Singletons())
	assert.Equal(t, 0, s.Requests())
}

func TestStore_ConcurrentAccess(t *testing.T) {
	t.Parallel()

	s := New()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			s.SetSingleton(n%5, n)
			s.SetRequest("req", n%3, n)
			_, _ = s.Singleton(n % 5)
			_, _ = s.Request("req", n%3)
		}(i)
	}
	wg.Wait()

	assert.Len(t, s.Singletons(), 5)
}
