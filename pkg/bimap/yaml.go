package bimap

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

var (
	_ yaml.Marshaler   = (*BiMap[string, int])(nil)
	_ yaml.Unmarshaler = (*BiMap[string, int])(nil)
)

// MarshalYAML encodes the direct table as a YAML mapping in insertion order.
func (m *BiMap[K1, K2]) MarshalYAML() (any, error) {
	if m == nil {
		return nil, nil
	}
	node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	var err error
	m.direct.All(func(k1 K1, k2 K2) bool {
		var key, value yaml.Node
		if err = key.Encode(k1); err != nil {
			return false
		}
		if err = value.Encode(k2); err != nil {
			return false
		}
		node.Content = append(node.Content, &key, &value)
		return true
	})
	if err != nil {
		return nil, err
	}
	return node, nil
}

// UnmarshalYAML replaces the content of the BiMap with the decoded YAML mapping,
// with the same guarantees as UnmarshalJSON.
func (m *BiMap[K1, K2]) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind == yaml.ScalarNode && node.Tag == "!!null" {
		return nil
	}
	if node.Kind != yaml.MappingNode {
		return fmt.Errorf("yaml: line %d: cannot decode a bimap from a non-mapping node", node.Line)
	}
	pairs := make([]Pair[K1, K2], 0, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		var p Pair[K1, K2]
		if err := node.Content[i].Decode(&p.Direct); err != nil {
			return err
		}
		if err := node.Content[i+1].Decode(&p.Reverse); err != nil {
			return err
		}
		pairs = append(pairs, p)
	}
	decoded, err := FromPairs[K1, K2](pairs, m.config)
	if err != nil {
		return err
	}
	m.replace(decoded)
	return nil
}
