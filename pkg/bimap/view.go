package bimap

import (
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// View is a read-only handle over one direction of a BiMap.
//
// A View shares storage with its BiMap, so it reflects later mutations.
// Views can be read concurrently with each other,
// but not while the owning BiMap is being mutated.
type View[K, V comparable] struct {
	table *table[K, V]
}

// Len returns the number of keys in the table.
func (v View[K, V]) Len() int { return v.table.Len() }

// ContainsKey reports whether key is present.
func (v View[K, V]) ContainsKey(key K) bool {
	if isAbsent(key) {
		return false
	}
	return v.table.Has(key)
}

// Lookup returns the value of key and whether it was found.
func (v View[K, V]) Lookup(key K) (V, bool) {
	if isAbsent(key) {
		var zero V
		return zero, false
	}
	return v.table.Lookup(key)
}

// Get returns the value of key.
// It fails with ErrKeyNotFound when key is not present.
func (v View[K, V]) Get(key K) (V, error) {
	var zero V
	if isAbsent(key) {
		return zero, ErrNullArgument.F("key is nil")
	}
	val, ok := v.table.Lookup(key)
	if !ok {
		return zero, ErrKeyNotFound.F("key not found: %v", key)
	}
	return val, nil
}

// Keys iterates over the keys in insertion order.
func (v View[K, V]) Keys() iter.Seq[K] {
	return func(yield func(K) bool) {
		v.table.All(func(k K, _ V) bool { return yield(k) })
	}
}

// Values iterates over the values in the insertion order of their keys.
func (v View[K, V]) Values() iter.Seq[V] {
	return func(yield func(V) bool) {
		v.table.All(func(_ K, val V) bool { return yield(val) })
	}
}

// All iterates over the key-value pairs in insertion order.
func (v View[K, V]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		v.table.All(yield)
	}
}

// ToMap returns an independent copy of the table as a Go map.
func (v View[K, V]) ToMap() map[K]V {
	out := make(map[K]V, v.Len())
	v.table.All(func(k K, val V) bool {
		out[k] = val
		return true
	})
	return out
}

// ToOrderedMap returns an independent, order preserving copy of the table.
func (v View[K, V]) ToOrderedMap() *orderedmap.OrderedMap[K, V] {
	out := orderedmap.New[K, V](v.Len())
	v.table.All(func(k K, val V) bool {
		out.Set(k, val)
		return true
	})
	return out
}
