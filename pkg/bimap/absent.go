package bimap

import "reflect"

// isAbsent reports whether key is the nil sentinel of its type.
// Keys of value kinds such as int or string are never absent, their zero value is a real key.
func isAbsent[K comparable](key K) bool {
	v := any(key)
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Chan, reflect.Func, reflect.Map, reflect.Slice, reflect.UnsafePointer:
		return rv.IsNil()
	default:
		return false
	}
}

func checkKey[K comparable](s side, key K) error {
	if isAbsent(key) {
		return ErrNullArgument.F("%s key is nil", s)
	}
	return nil
}
