package bimap

import "sync"

// Synchronized guards a BiMap with a read-write lock.
// It never hands out views, only values and copies,
// so nothing escapes the lock.
//
// The zero value is ready to use.
type Synchronized[K1, K2 comparable] struct {
	mutex sync.RWMutex
	bimap *BiMap[K1, K2]
}

// Synchronize wraps m. The caller must not use m directly afterwards.
func Synchronize[K1, K2 comparable](m *BiMap[K1, K2]) *Synchronized[K1, K2] {
	return &Synchronized[K1, K2]{bimap: m}
}

func (s *Synchronized[K1, K2]) get() *BiMap[K1, K2] {
	if s.bimap == nil {
		s.bimap = New[K1, K2]()
	}
	return s.bimap
}

func (s *Synchronized[K1, K2]) Add(k1 K1, k2 K2) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.get().Add(k1, k2)
}

func (s *Synchronized[K1, K2]) TryAdd(k1 K1, k2 K2) (bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.get().TryAdd(k1, k2)
}

func (s *Synchronized[K1, K2]) Set(k1 K1, k2 K2) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.get().Set(k1, k2)
}

func (s *Synchronized[K1, K2]) Remove(k1 K1) (bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.get().Remove(k1)
}

func (s *Synchronized[K1, K2]) RemoveReverse(k2 K2) (bool, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	return s.get().RemoveReverse(k2)
}

func (s *Synchronized[K1, K2]) Clear() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.get().Clear()
}

// Lookup returns the reverse key of k1.
func (s *Synchronized[K1, K2]) Lookup(k1 K1) (K2, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.bimap == nil {
		var zero K2
		return zero, false
	}
	return View[K1, K2]{table: s.bimap.direct}.Lookup(k1)
}

// LookupReverse returns the direct key of k2.
func (s *Synchronized[K1, K2]) LookupReverse(k2 K2) (K1, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.bimap == nil {
		var zero K1
		return zero, false
	}
	return View[K2, K1]{table: s.bimap.reverse}.Lookup(k2)
}

func (s *Synchronized[K1, K2]) Len() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.bimap == nil {
		return 0
	}
	return s.bimap.Len()
}

// Snapshot returns an independent copy of the current state.
func (s *Synchronized[K1, K2]) Snapshot() *BiMap[K1, K2] {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	if s.bimap == nil {
		return New[K1, K2]()
	}
	return s.bimap.Clone()
}
