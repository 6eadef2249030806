// Package bimap implements a bidirectional map,
// a one-to-one association between direct keys and reverse keys
// that can be queried in both directions in constant time.
//
// A BiMap keeps two insertion ordered tables that are exact inverses of each other.
// Every mutation either updates both tables or leaves both untouched.
package bimap

import (
	"iter"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// BiMap is a bijective association between K1 direct keys and K2 reverse keys.
//
// The zero value is an empty BiMap using natural key equality.
// A BiMap is not safe for concurrent mutation, see Synchronized for that.
type BiMap[K1, K2 comparable] struct {
	config  Config[K1, K2]
	direct  *table[K1, K2]
	reverse *table[K2, K1]
}

// Pair is a single direct key to reverse key association.
type Pair[K1, K2 comparable] struct {
	Direct  K1
	Reverse K2
}

// New creates an empty BiMap.
func New[K1, K2 comparable](opts ...Option[K1, K2]) *BiMap[K1, K2] {
	m := &BiMap[K1, K2]{config: toConfig(opts)}
	m.init()
	return m
}

// FromMap builds a BiMap from a one-way mapping.
// The mapping must be injective, otherwise ErrDuplicateKey is returned and no BiMap is made.
// A nil mapping results in ErrNullArgument.
//
// Go maps are unordered, so the enumeration order of the result follows map iteration.
// Use FromOrderedMap or FromPairs when order matters.
func FromMap[K1, K2 comparable](mapping map[K1]K2, opts ...Option[K1, K2]) (*BiMap[K1, K2], error) {
	if mapping == nil {
		return nil, ErrNullArgument.F("mapping is nil")
	}
	m := New(append([]Option[K1, K2]{Config[K1, K2]{Capacity: len(mapping)}}, opts...)...)
	for k1, k2 := range mapping {
		if err := m.Add(k1, k2); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// FromOrderedMap builds a BiMap from an ordered one-way mapping, keeping its order.
// It fails the same way as FromMap.
func FromOrderedMap[K1, K2 comparable](mapping *orderedmap.OrderedMap[K1, K2], opts ...Option[K1, K2]) (*BiMap[K1, K2], error) {
	if mapping == nil {
		return nil, ErrNullArgument.F("mapping is nil")
	}
	m := New(append([]Option[K1, K2]{Config[K1, K2]{Capacity: mapping.Len()}}, opts...)...)
	for pair := mapping.Oldest(); pair != nil; pair = pair.Next() {
		if err := m.Add(pair.Key, pair.Value); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// FromPairs builds a BiMap from pairs, keeping their order.
func FromPairs[K1, K2 comparable](pairs []Pair[K1, K2], opts ...Option[K1, K2]) (*BiMap[K1, K2], error) {
	m := New(append([]Option[K1, K2]{Config[K1, K2]{Capacity: len(pairs)}}, opts...)...)
	for _, p := range pairs {
		if err := m.Add(p.Direct, p.Reverse); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *BiMap[K1, K2]) init() {
	if m.direct == nil {
		m.direct = newTable[K1, K2](m.config.DirectComparer, m.config.Capacity)
	}
	if m.reverse == nil {
		m.reverse = newTable[K2, K1](m.config.ReverseComparer, m.config.Capacity)
	}
}

// Direct returns a read-only view of the direct key to reverse key table.
func (m *BiMap[K1, K2]) Direct() View[K1, K2] {
	m.init()
	return View[K1, K2]{table: m.direct}
}

// Reverse returns a read-only view of the reverse key to direct key table.
func (m *BiMap[K1, K2]) Reverse() View[K2, K1] {
	m.init()
	return View[K2, K1]{table: m.reverse}
}

// Len returns the number of associations.
func (m *BiMap[K1, K2]) Len() int {
	return m.direct.Len()
}

// All iterates over the direct table in insertion order.
func (m *BiMap[K1, K2]) All() iter.Seq2[K1, K2] {
	return func(yield func(K1, K2) bool) {
		m.direct.All(yield)
	}
}

// Add associates k1 with k2.
// It fails with ErrNullArgument when either key is nil,
// and with ErrDuplicateKey when k1 or k2 is already in use.
// On failure the BiMap is unchanged.
func (m *BiMap[K1, K2]) Add(k1 K1, k2 K2) error {
	if err := checkPair(k1, k2); err != nil {
		return err
	}
	m.init()
	if m.direct.Has(k1) {
		return ErrDuplicateKey.F("%s key already exists: %v", sideDirect, k1)
	}
	if m.reverse.Has(k2) {
		return ErrDuplicateKey.F("%s key already exists: %v", sideReverse, k2)
	}
	return apply(
		insertStep(m.direct, k1, k2),
		insertStep(m.reverse, k2, k1),
	)
}

// TryAdd is the non-failing variant of Add.
// It reports false instead of ErrDuplicateKey when either key is already in use.
// Nil keys are still reported as ErrNullArgument.
func (m *BiMap[K1, K2]) TryAdd(k1 K1, k2 K2) (bool, error) {
	if err := checkPair(k1, k2); err != nil {
		return false, err
	}
	m.init()
	err := apply(
		insertStep(m.direct, k1, k2),
		insertStep(m.reverse, k2, k1),
	)
	if err != nil {
		return false, nil
	}
	return true, nil
}

// Set associates k1 with k2, replacing the previous reverse key of k1.
//
// Both k1 and the new reverse key take the place of the old association in their tables.
// When k1 is not present, Set behaves like Add.
// When k1 is already associated with k2, Set is a no-op.
// When k2 belongs to another direct key, Set fails with ErrDuplicateKey.
func (m *BiMap[K1, K2]) Set(k1 K1, k2 K2) error {
	if err := checkPair(k1, k2); err != nil {
		return err
	}
	m.init()
	current, ok := m.direct.lookupEntry(k1)
	if !ok {
		return m.Add(k1, k2)
	}
	if m.reverse.canonical(current.Value) == m.reverse.canonical(k2) {
		return nil
	}
	if m.reverse.Has(k2) {
		return ErrDuplicateKey.F("%s key already exists: %v", sideReverse, k2)
	}
	return apply(
		replaceStep(m.direct, k1, k2),
		rekeyStep(m.reverse, sideReverse, current.Value, k2, current.Key),
	)
}

// Remove deletes the association of the direct key k1.
// It returns false when k1 is not present.
func (m *BiMap[K1, K2]) Remove(k1 K1) (bool, error) {
	_, ok, err := m.LoadAndRemove(k1)
	return ok, err
}

// LoadAndRemove deletes the association of the direct key k1
// and returns the reverse key it was associated with.
func (m *BiMap[K1, K2]) LoadAndRemove(k1 K1) (K2, bool, error) {
	var k2 K2
	if err := checkKey(sideDirect, k1); err != nil {
		return k2, false, err
	}
	if !m.direct.Has(k1) {
		return k2, false, nil
	}
	if err := apply(
		removeStep(m.direct, sideDirect, k1, &k2),
		removeLazyStep[K2, K1](m.reverse, sideReverse, &k2),
	); err != nil {
		var zero K2
		return zero, false, err
	}
	return k2, true, nil
}

// RemoveReverse deletes the association of the reverse key k2.
// It returns false when k2 is not present.
func (m *BiMap[K1, K2]) RemoveReverse(k2 K2) (bool, error) {
	if err := checkKey(sideReverse, k2); err != nil {
		return false, err
	}
	if !m.reverse.Has(k2) {
		return false, nil
	}
	var k1 K1
	if err := apply(
		removeStep(m.reverse, sideReverse, k2, &k1),
		removeLazyStep[K1, K2](m.direct, sideDirect, &k1),
	); err != nil {
		return false, err
	}
	return true, nil
}

// ContainsPair reports whether k1 is associated exactly with k2.
func (m *BiMap[K1, K2]) ContainsPair(k1 K1, k2 K2) (bool, error) {
	if err := checkPair(k1, k2); err != nil {
		return false, err
	}
	got, ok := m.direct.Lookup(k1)
	if !ok {
		return false, nil
	}
	return m.reverse.canonical(got) == m.reverse.canonical(k2), nil
}

// RemovePair deletes the association only when k1 is associated exactly with k2.
func (m *BiMap[K1, K2]) RemovePair(k1 K1, k2 K2) (bool, error) {
	ok, err := m.ContainsPair(k1, k2)
	if err != nil || !ok {
		return false, err
	}
	return m.Remove(k1)
}

// Clear removes every association.
func (m *BiMap[K1, K2]) Clear() {
	m.init()
	m.direct.Clear()
	m.reverse.Clear()
}

// Clone returns an independent copy with the same comparers and order.
func (m *BiMap[K1, K2]) Clone() *BiMap[K1, K2] {
	config := m.config
	config.Capacity = m.Len()
	out := New[K1, K2](config)
	// each table keeps its own order, so they are copied one by one
	m.direct.All(func(k1 K1, k2 K2) bool {
		_, _ = out.direct.Insert(k1, k2)
		return true
	})
	m.reverse.All(func(k2 K2, k1 K1) bool {
		_, _ = out.reverse.Insert(k2, k1)
		return true
	})
	return out
}

func checkPair[K1, K2 comparable](k1 K1, k2 K2) error {
	if err := checkKey(sideDirect, k1); err != nil {
		return err
	}
	return checkKey(sideReverse, k2)
}
