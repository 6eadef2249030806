package bimap

// step is a single table mutation within a BiMap operation.
// On success, it returns the function that reverts it.
type step func() (undo func(), err error)

// apply runs the steps in order.
// When a step fails, the already applied steps are reverted in reverse order
// before the error is returned, so the operation takes effect on both tables or on neither.
func apply(steps ...step) error {
	var undos []func()
	for _, s := range steps {
		undo, err := s()
		if err != nil {
			for i := len(undos) - 1; 0 <= i; i-- {
				undos[i]()
			}
			return err
		}
		if undo != nil {
			undos = append(undos, undo)
		}
	}
	return nil
}

func insertStep[K comparable, V any](t *table[K, V], key K, val V) step {
	return func() (func(), error) { return t.Insert(key, val) }
}

func replaceStep[K comparable, V any](t *table[K, V], key K, val V) step {
	return func() (func(), error) { return t.Replace(key, val) }
}

// removeStep removes key from t and stores the removed value into out.
// A missing key means the tables drifted apart.
func removeStep[K comparable, V any](t *table[K, V], s side, key K, out *V) step {
	return func() (func(), error) {
		e, undo, ok := t.Remove(key)
		if !ok {
			return nil, ErrInconsistentState.F("%s key is missing from its table: %v", s, key)
		}
		if out != nil {
			*out = e.Value
		}
		return undo, nil
	}
}

// removeLazyStep is a removeStep where the key is only known once the previous steps ran.
func removeLazyStep[K comparable, V any](t *table[K, V], s side, key *K) step {
	return func() (func(), error) {
		return removeStep[K, V](t, s, *key, nil)()
	}
}

// rekeyStep swaps oldKey for newKey in place.
// A missing oldKey means the tables drifted apart.
func rekeyStep[K comparable, V any](t *table[K, V], s side, oldKey, newKey K, val V) step {
	return func() (func(), error) {
		if !t.Has(oldKey) {
			return nil, ErrInconsistentState.F("%s key is missing from its table: %v", s, oldKey)
		}
		return t.Rekey(oldKey, newKey, val)
	}
}
