package bimap

import (
	"iter"
	"reflect"
)

// AnyMap is an untyped facade over a BiMap for callers that only deal with any values.
// Keys with the wrong dynamic type are rejected with ErrInvalidKeyType.
type AnyMap[K1, K2 comparable] struct {
	m *BiMap[K1, K2]
}

// Untyped wraps m into an AnyMap. The AnyMap operates on m directly.
func Untyped[K1, K2 comparable](m *BiMap[K1, K2]) AnyMap[K1, K2] {
	return AnyMap[K1, K2]{m: m}
}

func (u AnyMap[K1, K2]) Len() int { return u.m.Len() }

func (u AnyMap[K1, K2]) Add(directKey, reverseKey any) error {
	k1, k2, err := castPair[K1, K2](directKey, reverseKey)
	if err != nil {
		return err
	}
	return u.m.Add(k1, k2)
}

func (u AnyMap[K1, K2]) Set(directKey, reverseKey any) error {
	k1, k2, err := castPair[K1, K2](directKey, reverseKey)
	if err != nil {
		return err
	}
	return u.m.Set(k1, k2)
}

// Get returns the reverse key of directKey, or ErrKeyNotFound.
func (u AnyMap[K1, K2]) Get(directKey any) (any, error) {
	k1, err := castKey[K1](sideDirect, directKey)
	if err != nil {
		return nil, err
	}
	k2, err := u.m.Direct().Get(k1)
	if err != nil {
		return nil, err
	}
	return k2, nil
}

func (u AnyMap[K1, K2]) Contains(directKey any) (bool, error) {
	k1, err := castKey[K1](sideDirect, directKey)
	if err != nil {
		return false, err
	}
	return u.m.Direct().ContainsKey(k1), nil
}

// Remove deletes directKey. A missing key is not an error.
func (u AnyMap[K1, K2]) Remove(directKey any) error {
	k1, err := castKey[K1](sideDirect, directKey)
	if err != nil {
		return err
	}
	_, err = u.m.Remove(k1)
	return err
}

func (u AnyMap[K1, K2]) All() iter.Seq2[any, any] {
	return func(yield func(any, any) bool) {
		for k1, k2 := range u.m.All() {
			if !yield(k1, k2) {
				return
			}
		}
	}
}

func castPair[K1, K2 comparable](directKey, reverseKey any) (K1, K2, error) {
	var (
		k1  K1
		k2  K2
		err error
	)
	k1, err = castKey[K1](sideDirect, directKey)
	if err != nil {
		return k1, k2, err
	}
	k2, err = castKey[K2](sideReverse, reverseKey)
	return k1, k2, err
}

func castKey[K comparable](s side, v any) (K, error) {
	var zero K
	if v == nil {
		return zero, ErrNullArgument.F("%s key is nil", s)
	}
	k, ok := v.(K)
	if !ok {
		return zero, ErrInvalidKeyType.F("%s key type is incorrect: expected %s, got %T",
			s, reflect.TypeOf((*K)(nil)).Elem(), v)
	}
	return k, nil
}
