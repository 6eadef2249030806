package bimap

import (
	"bytes"
	"encoding/json"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"go.llib.dev/bimap/internal/jsonkey"
)

var (
	_ json.Marshaler   = (*BiMap[string, int])(nil)
	_ json.Unmarshaler = (*BiMap[string, int])(nil)
)

var nullLiteral = []byte("null")

// MarshalJSON encodes the direct table as a JSON object in insertion order.
// Member names follow the encoding/json map key rules,
// so the output equals the encoding of a plain mapping with the same pairs.
// A nil BiMap is encoded as null.
func (m *BiMap[K1, K2]) MarshalJSON() ([]byte, error) {
	if m == nil {
		return nullLiteral, nil
	}
	if err := jsonkey.CheckEncode[K1](); err != nil {
		return nil, err
	}
	var (
		buf bytes.Buffer
		err error
	)
	buf.WriteByte('{')
	m.direct.All(func(k1 K1, k2 K2) bool {
		var name string
		if name, err = jsonkey.Encode(k1); err != nil {
			return false
		}
		var member, value []byte
		if member, err = json.Marshal(name); err != nil {
			return false
		}
		if value, err = json.Marshal(k2); err != nil {
			return false
		}
		if 1 < buf.Len() {
			buf.WriteByte(',')
		}
		buf.Write(member)
		buf.WriteByte(':')
		buf.Write(value)
		return true
	})
	if err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON replaces the content of the BiMap with the decoded JSON object.
// The decoded object must be injective, otherwise ErrDuplicateKey is returned
// and the BiMap is left unchanged. The comparers of the BiMap are kept.
//
// A JSON null leaves the receiver untouched,
// so a *BiMap target decodes null into a nil reference.
func (m *BiMap[K1, K2]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), nullLiteral) {
		return nil
	}
	if err := jsonkey.CheckDecode[K1](); err != nil {
		return err
	}
	mapping := orderedmap.New[K1, K2]()
	if err := mapping.UnmarshalJSON(data); err != nil {
		return err
	}
	decoded, err := FromOrderedMap[K1, K2](mapping, m.config)
	if err != nil {
		return err
	}
	m.replace(decoded)
	return nil
}

// replace swaps in the tables of oth while keeping the table identity,
// so views handed out earlier keep observing m.
func (m *BiMap[K1, K2]) replace(oth *BiMap[K1, K2]) {
	m.init()
	*m.direct = *oth.direct
	*m.reverse = *oth.reverse
}
