package logging

import (
	"errors"
	"reflect"

	"go.llib.dev/bimap/pkg/errorkit"
)

// Detail is a logging detail that enriches the log entry with contextual information.
type Detail interface {
	addTo(l *Logger, e entry)
}

// Field creates a single key value pair logging detail.
func Field(key string, value any) Detail {
	return field{Key: key, Value: value}
}

type field struct {
	Key   string
	Value any
}

func (f field) addTo(l *Logger, e entry) {
	e[l.formatKey(f.Key)] = l.toFieldValue(f.Value)
}

// Fields is a collection of fields that you can add to your logging record.
type Fields map[string]any

func (fields Fields) addTo(l *Logger, e entry) {
	for k, v := range fields {
		Field(k, v).addTo(l, e)
	}
}

// LazyDetail is evaluated only when the entry is actually logged.
// Useful for debug details that take effort to calculate.
type LazyDetail func() Detail

func (df LazyDetail) addTo(l *Logger, e entry) {
	if df == nil {
		return
	}
	if d := df(); d != nil {
		d.addTo(l, e)
	}
}

// ErrField logs err under the "error" key.
// When err carries an errorkit.Error kind, it is logged as well.
func ErrField(err error) Detail {
	if err == nil {
		return nullDetail{}
	}
	details := Fields{"message": err.Error()}
	var kind errorkit.Error
	if errors.As(err, &kind) {
		details["kind"] = kind.Error()
	}
	return Field("error", details)
}

func (l *Logger) toFieldValue(val any) any {
	if val == nil {
		return nil
	}
	switch val := val.(type) {
	case entry:
		vs := map[string]any{}
		for k, v := range val {
			vs[l.formatKey(k)] = l.toFieldValue(v)
		}
		return vs
	case Fields:
		le := entry{}
		val.addTo(l, le)
		return map[string]any(le)
	case []Detail:
		le := entry{}
		for _, d := range val {
			d.addTo(l, le)
		}
		return map[string]any(le)
	case error:
		return val.Error()
	}
	rv := reflect.ValueOf(val)
	switch rv.Kind() {
	case reflect.Pointer:
		if rv.IsNil() {
			return nil
		}
		return l.toFieldValue(rv.Elem().Interface())
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return val
		}
		vs := map[string]any{}
		for iter := rv.MapRange(); iter.Next(); {
			vs[l.formatKey(iter.Key().String())] = l.toFieldValue(iter.Value().Interface())
		}
		return vs
	default:
		return val
	}
}

type entry map[string]any

type nullDetail struct{}

func (nullDetail) addTo(*Logger, entry) {}
