package bimap_test

import (
	"testing"

	"go.llib.dev/testcase/assert"

	"go.llib.dev/bimap/pkg/bimap"
)

func TestAnyMap(t *testing.T) {
	m := bimap.New[string, int]()
	u := bimap.Untyped(m)

	assert.NoError(t, u.Add("a", 1))
	assert.NoError(t, u.Add("b", 2))
	assert.Equal(t, 2, u.Len())

	t.Run("wrong direct key type", func(t *testing.T) {
		assert.ErrorIs(t, u.Add(42, 3), bimap.ErrInvalidKeyType)
		_, err := u.Get(42)
		assert.ErrorIs(t, err, bimap.ErrInvalidKeyType)
		_, err = u.Contains(42)
		assert.ErrorIs(t, err, bimap.ErrInvalidKeyType)
		assert.ErrorIs(t, u.Remove(42), bimap.ErrInvalidKeyType)
		assert.Equal(t, 2, m.Len())
	})
	t.Run("wrong reverse key type", func(t *testing.T) {
		assert.ErrorIs(t, u.Add("c", "3"), bimap.ErrInvalidKeyType)
		assert.ErrorIs(t, u.Set("a", int64(1)), bimap.ErrInvalidKeyType)
		assert.False(t, m.Direct().ContainsKey("c"))
	})
	t.Run("nil keys", func(t *testing.T) {
		assert.ErrorIs(t, u.Add(nil, 3), bimap.ErrNullArgument)
		assert.ErrorIs(t, u.Add("c", nil), bimap.ErrNullArgument)
		_, err := u.Get(nil)
		assert.ErrorIs(t, err, bimap.ErrNullArgument)
	})
	t.Run("duplicate", func(t *testing.T) {
		assert.ErrorIs(t, u.Add("c", 1), bimap.ErrDuplicateKey)
	})
	t.Run("get", func(t *testing.T) {
		got, err := u.Get("b")
		assert.NoError(t, err)
		assert.Equal[any](t, 2, got)

		_, err = u.Get("x")
		assert.ErrorIs(t, err, bimap.ErrKeyNotFound)
	})
	t.Run("operates on the wrapped bimap", func(t *testing.T) {
		assert.NoError(t, u.Set("a", 10))
		k1, ok := m.Reverse().Lookup(10)
		assert.True(t, ok)
		assert.Equal(t, "a", k1)

		assert.NoError(t, u.Remove("a"))
		ok, err := u.Contains("a")
		assert.NoError(t, err)
		assert.False(t, ok)
		assert.False(t, m.Reverse().ContainsKey(10))
	})
	t.Run("all", func(t *testing.T) {
		var keys []any
		for k1, k2 := range u.All() {
			keys = append(keys, k1)
			assert.Equal[any](t, m.Direct().ToMap()[k1.(string)], k2)
		}
		assert.Equal(t, []any{"b"}, keys)
	})
}
