package bimap

import "golang.org/x/text/cases"

// Comparer decides which keys count as the same key on one side of a BiMap.
//
// Canonical maps a key to the representative under which it is stored and looked up.
// Two keys are equal when their canonical forms are equal.
// Canonical must be deterministic and idempotent.
type Comparer[K comparable] interface {
	Canonical(key K) K
}

// ComparerFunc is a function based Comparer.
type ComparerFunc[K comparable] func(key K) K

func (fn ComparerFunc[K]) Canonical(key K) K { return fn(key) }

// IgnoreCase is a Comparer that treats strings equal under Unicode case folding.
func IgnoreCase() Comparer[string] {
	return ComparerFunc[string](func(key string) string {
		// a Caser holds state, so each call gets its own
		return cases.Fold().String(key)
	})
}

// Option configures a BiMap during construction.
type Option[K1, K2 comparable] interface {
	Configure(*Config[K1, K2])
}

// Config is the construction time configuration of a BiMap.
// Config itself is an Option, so it can be passed directly to the constructors.
type Config[K1, K2 comparable] struct {
	// DirectComparer defines key equality for the direct keys.
	// When nil, natural Go equality is used.
	DirectComparer Comparer[K1]
	// ReverseComparer defines key equality for the reverse keys.
	// When nil, natural Go equality is used.
	ReverseComparer Comparer[K2]
	// Capacity is a size hint for the backing tables.
	Capacity int
}

func (c Config[K1, K2]) Configure(o *Config[K1, K2]) {
	if c.DirectComparer != nil {
		o.DirectComparer = c.DirectComparer
	}
	if c.ReverseComparer != nil {
		o.ReverseComparer = c.ReverseComparer
	}
	if 0 < c.Capacity {
		o.Capacity = c.Capacity
	}
}

// OptionFunc is a function based Option.
type OptionFunc[K1, K2 comparable] func(*Config[K1, K2])

func (fn OptionFunc[K1, K2]) Configure(c *Config[K1, K2]) { fn(c) }

func toConfig[K1, K2 comparable](opts []Option[K1, K2]) Config[K1, K2] {
	var c Config[K1, K2]
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.Configure(&c)
	}
	return c
}
