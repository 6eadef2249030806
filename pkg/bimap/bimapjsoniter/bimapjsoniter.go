// Package bimapjsoniter encodes and decodes BiMap values with json-iterator streams.
//
// The wire format is the same as the encoding/json one of bimap.BiMap:
// a JSON object of direct key to reverse key members in insertion order, or null.
package bimapjsoniter

import (
	"errors"
	"io"

	jsoniter "github.com/json-iterator/go"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"go.llib.dev/bimap/internal/jsonkey"
	"go.llib.dev/bimap/pkg/bimap"
	"go.llib.dev/bimap/pkg/errorkit"
)

const ErrTrailingData errorkit.Error = "ErrTrailingData"

// Marshal encodes m with the given json-iterator configuration.
func Marshal[K1, K2 comparable](api jsoniter.API, m *bimap.BiMap[K1, K2]) ([]byte, error) {
	stream := api.BorrowStream(nil)
	defer api.ReturnStream(stream)
	WriteTo(stream, m)
	if stream.Error != nil {
		return nil, stream.Error
	}
	return append([]byte(nil), stream.Buffer()...), nil
}

// Unmarshal decodes data into a new BiMap.
// A JSON null yields a nil BiMap, and a non injective object yields bimap.ErrDuplicateKey.
// Anything but whitespace after the value yields ErrTrailingData.
func Unmarshal[K1, K2 comparable](api jsoniter.API, data []byte, opts ...bimap.Option[K1, K2]) (*bimap.BiMap[K1, K2], error) {
	iter := api.BorrowIterator(data)
	defer api.ReturnIterator(iter)
	m, err := ReadFrom(iter, opts...)
	if err != nil {
		return nil, err
	}
	// only whitespace may follow, which ends in EOF
	iter.WhatIsNext()
	if iter.Error == nil {
		return nil, ErrTrailingData.F("bytes left after unmarshal")
	}
	return m, nil
}

// WriteTo writes m into stream. Errors are reported through stream.Error.
func WriteTo[K1, K2 comparable](stream *jsoniter.Stream, m *bimap.BiMap[K1, K2]) {
	if m == nil {
		stream.WriteNil()
		return
	}
	if err := jsonkey.CheckEncode[K1](); err != nil {
		stream.Error = err
		return
	}
	stream.WriteObjectStart()
	var more bool
	for k1, k2 := range m.All() {
		name, err := jsonkey.Encode(k1)
		if err != nil {
			stream.Error = err
			return
		}
		if more {
			stream.WriteMore()
		}
		more = true
		// the name goes through the configured string encoder, so it is escaped like any map key
		stream.WriteVal(name)
		stream.WriteRaw(":")
		stream.WriteVal(k2)
	}
	stream.WriteObjectEnd()
}

// ReadFrom reads a BiMap from iter.
// Repeated member names behave like in encoding/json, the last value wins.
func ReadFrom[K1, K2 comparable](iter *jsoniter.Iterator, opts ...bimap.Option[K1, K2]) (*bimap.BiMap[K1, K2], error) {
	if iter.WhatIsNext() == jsoniter.NilValue {
		iter.ReadNil()
		return nil, readErr(iter)
	}
	if err := jsonkey.CheckDecode[K1](); err != nil {
		return nil, err
	}
	var (
		mapping = orderedmap.New[K1, K2]()
		keyErr  error
	)
	iter.ReadObjectCB(func(iter *jsoniter.Iterator, name string) bool {
		k1, err := jsonkey.Decode[K1](name)
		if err != nil {
			keyErr = err
			return false
		}
		var k2 K2
		iter.ReadVal(&k2)
		if iter.Error != nil {
			return false
		}
		mapping.Set(k1, k2)
		return true
	})
	if keyErr != nil {
		return nil, keyErr
	}
	if err := readErr(iter); err != nil {
		return nil, err
	}
	return bimap.FromOrderedMap(mapping, opts...)
}

func readErr(iter *jsoniter.Iterator) error {
	if errors.Is(iter.Error, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return iter.Error
}
