package bimap_test

import (
	"fmt"
	"testing"

	"go.llib.dev/testcase"
	"go.llib.dev/testcase/assert"

	"go.llib.dev/bimap/pkg/bimap"
)

func TestSynchronized(t *testing.T) {
	s := testcase.NewSpec(t)

	subject := testcase.Let(s, func(t *testcase.T) *bimap.Synchronized[string, int] {
		return &bimap.Synchronized[string, int]{}
	})

	s.Test("zero value", func(t *testcase.T) {
		sm := subject.Get(t)
		t.Must.Equal(0, sm.Len())
		_, ok := sm.Lookup("a")
		t.Must.False(ok)
		_, ok = sm.LookupReverse(1)
		t.Must.False(ok)
		t.Must.Equal(0, sm.Snapshot().Len())
	})

	s.Test("mutations", func(t *testcase.T) {
		sm := subject.Get(t)
		t.Must.NoError(sm.Add("a", 1))
		t.Must.ErrorIs(bimap.ErrDuplicateKey, sm.Add("b", 1))

		added, err := sm.TryAdd("b", 2)
		t.Must.NoError(err)
		t.Must.True(added)

		t.Must.NoError(sm.Set("a", 3))
		k1, ok := sm.LookupReverse(3)
		t.Must.True(ok)
		t.Must.Equal("a", k1)

		removed, err := sm.RemoveReverse(2)
		t.Must.NoError(err)
		t.Must.True(removed)

		removed, err = sm.Remove("a")
		t.Must.NoError(err)
		t.Must.True(removed)
		t.Must.Equal(0, sm.Len())
	})

	s.Test("snapshot is independent", func(t *testcase.T) {
		sm := subject.Get(t)
		t.Must.NoError(sm.Add("a", 1))
		snapshot := sm.Snapshot()
		sm.Clear()
		t.Must.Equal(0, sm.Len())
		t.Must.Equal(1, snapshot.Len())
	})

	s.Test("concurrent access", func(t *testcase.T) {
		sm := bimap.Synchronize(bimap.New[string, int]())
		write := func(offset int) func() {
			return func() {
				for i := 0; i < 64; i++ {
					n := offset + i
					_, _ = sm.TryAdd(fmt.Sprintf("k%d", n), n)
				}
			}
		}
		read := func() {
			for i := 0; i < 64; i++ {
				if k1, ok := sm.LookupReverse(i); ok {
					k2, ok := sm.Lookup(k1)
					assert.True(t, ok)
					assert.Equal(t, i, k2)
				}
			}
		}
		testcase.Race(write(0), write(64), read, func() { _ = sm.Snapshot() })
		t.Must.Equal(128, sm.Len())
		assertBijective(t, sm.Snapshot())
	})
}
