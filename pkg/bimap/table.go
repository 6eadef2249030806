package bimap

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// entry keeps the key as it was inserted,
// since the table itself is keyed by the canonical form.
type entry[K comparable, V any] struct {
	Key   K
	Value V
}

// table is one direction of a BiMap.
// It preserves insertion order and resolves key equality through its Comparer.
// Read methods are safe to call on a nil *table.
type table[K comparable, V any] struct {
	cmp   Comparer[K]
	pairs *orderedmap.OrderedMap[K, entry[K, V]]
}

func newTable[K comparable, V any](cmp Comparer[K], capacity int) *table[K, V] {
	if capacity < 0 {
		capacity = 0
	}
	return &table[K, V]{
		cmp:   cmp,
		pairs: orderedmap.New[K, entry[K, V]](capacity),
	}
}

func (t *table[K, V]) canonical(key K) K {
	if t == nil || t.cmp == nil {
		return key
	}
	return t.cmp.Canonical(key)
}

func (t *table[K, V]) Len() int {
	if t == nil {
		return 0
	}
	return t.pairs.Len()
}

func (t *table[K, V]) lookupEntry(key K) (entry[K, V], bool) {
	if t == nil {
		return entry[K, V]{}, false
	}
	return t.pairs.Get(t.canonical(key))
}

func (t *table[K, V]) Lookup(key K) (V, bool) {
	e, ok := t.lookupEntry(key)
	return e.Value, ok
}

func (t *table[K, V]) Has(key K) bool {
	_, ok := t.lookupEntry(key)
	return ok
}

// Insert adds a new key. It never overwrites.
// The returned function removes the inserted key again.
func (t *table[K, V]) Insert(key K, val V) (func(), error) {
	ck := t.canonical(key)
	if _, ok := t.pairs.Get(ck); ok {
		return nil, ErrDuplicateKey.F("key already exists: %v", key)
	}
	t.pairs.Set(ck, entry[K, V]{Key: key, Value: val})
	return func() { t.pairs.Delete(ck) }, nil
}

// Replace changes the value of an existing key while keeping its position.
// The returned function restores the previous value.
func (t *table[K, V]) Replace(key K, val V) (func(), error) {
	pair := t.pairs.GetPair(t.canonical(key))
	if pair == nil {
		return nil, ErrKeyNotFound.F("key not found: %v", key)
	}
	og := pair.Value
	pair.Value = entry[K, V]{Key: og.Key, Value: val}
	return func() { pair.Value = og }, nil
}

// Rekey puts newKey in the place of oldKey, keeping the position in the order.
// The returned function puts oldKey back.
func (t *table[K, V]) Rekey(oldKey, newKey K, val V) (func(), error) {
	oc, nc := t.canonical(oldKey), t.canonical(newKey)
	pair := t.pairs.GetPair(oc)
	if pair == nil {
		return nil, ErrKeyNotFound.F("key not found: %v", oldKey)
	}
	if _, ok := t.pairs.Get(nc); ok {
		return nil, ErrDuplicateKey.F("key already exists: %v", newKey)
	}
	og := pair.Value
	t.pairs.Set(nc, entry[K, V]{Key: newKey, Value: val})
	_ = t.pairs.MoveAfter(nc, oc)
	t.pairs.Delete(oc)
	return func() {
		t.pairs.Set(oc, og)
		_ = t.pairs.MoveAfter(oc, nc)
		t.pairs.Delete(nc)
	}, nil
}

// Remove deletes key and returns the removed entry.
// The returned function puts the entry back to its original position.
func (t *table[K, V]) Remove(key K) (entry[K, V], func(), bool) {
	if t == nil {
		return entry[K, V]{}, nil, false
	}
	ck := t.canonical(key)
	pair := t.pairs.GetPair(ck)
	if pair == nil {
		return entry[K, V]{}, nil, false
	}
	var (
		removed = pair.Value
		prev    = pair.Prev()
		hasPrev = prev != nil
		prevKey K
	)
	if hasPrev {
		prevKey = prev.Key
	}
	t.pairs.Delete(ck)
	return removed, func() {
		t.pairs.Set(ck, removed)
		if hasPrev {
			_ = t.pairs.MoveAfter(ck, prevKey)
		} else {
			_ = t.pairs.MoveToFront(ck)
		}
	}, true
}

func (t *table[K, V]) Clear() {
	t.pairs = orderedmap.New[K, entry[K, V]]()
}

func (t *table[K, V]) All(yield func(K, V) bool) {
	if t == nil {
		return
	}
	for pair := t.pairs.Oldest(); pair != nil; pair = pair.Next() {
		if !yield(pair.Value.Key, pair.Value.Value) {
			return
		}
	}
}
