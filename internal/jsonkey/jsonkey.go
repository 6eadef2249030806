// Package jsonkey converts between Go map keys and JSON object member names
// following the rules encoding/json applies to map keys.
package jsonkey

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"

	"go.llib.dev/bimap/pkg/errorkit"
)

const ErrUnsupportedKey errorkit.Error = "ErrUnsupportedKey"

var (
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
)

// CheckEncode reports whether K can be written as a JSON object key.
func CheckEncode[K any]() error {
	typ := reflect.TypeOf((*K)(nil)).Elem()
	if isBasicKey(typ) || typ.Implements(textMarshalerType) {
		return nil
	}
	return ErrUnsupportedKey.F("%s cannot be used as a JSON object key", typ)
}

// CheckDecode reports whether K can be read from a JSON object key.
func CheckDecode[K any]() error {
	typ := reflect.TypeOf((*K)(nil)).Elem()
	if isBasicKey(typ) || reflect.PointerTo(typ).Implements(textUnmarshalerType) {
		return nil
	}
	return ErrUnsupportedKey.F("%s cannot be used as a JSON object key", typ)
}

func isBasicKey(typ reflect.Type) bool {
	switch typ.Kind() {
	case reflect.String,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	default:
		return false
	}
}

// Encode returns the object member name for key.
// Keys of string kind are used as they are, even when they implement encoding.TextMarshaler.
func Encode[K any](key K) (string, error) {
	rv := reflect.ValueOf(&key).Elem()
	if rv.Kind() == reflect.String {
		return rv.String(), nil
	}
	if tm, ok := any(key).(encoding.TextMarshaler); ok {
		if rv.Kind() == reflect.Pointer && rv.IsNil() {
			return "", nil
		}
		text, err := tm.MarshalText()
		if err != nil {
			return "", err
		}
		return string(text), nil
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return strconv.FormatUint(rv.Uint(), 10), nil
	}
	return "", ErrUnsupportedKey.F("%s cannot be used as a JSON object key", rv.Type())
}

// Decode parses an object member name into K.
func Decode[K any](name string) (K, error) {
	var key K
	rv := reflect.ValueOf(&key).Elem()
	typ := rv.Type()
	if reflect.PointerTo(typ).Implements(textUnmarshalerType) {
		if err := rv.Addr().Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(name)); err != nil {
			return key, err
		}
		return key, nil
	}
	switch typ.Kind() {
	case reflect.String:
		rv.SetString(name)
		return key, nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(name, 10, typ.Bits())
		if err != nil {
			return key, fmt.Errorf("invalid %s key %q: %w", typ, name, err)
		}
		rv.SetInt(n)
		return key, nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n, err := strconv.ParseUint(name, 10, typ.Bits())
		if err != nil {
			return key, fmt.Errorf("invalid %s key %q: %w", typ, name, err)
		}
		rv.SetUint(n)
		return key, nil
	}
	return key, ErrUnsupportedKey.F("%s cannot be used as a JSON object key", typ)
}
