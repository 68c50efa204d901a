package loader

import (
	"errors"
	"fmt"
	"strings"

	"go.yaml.in/yaml/v4"
)

// resolveAlias follows alias nodes to the anchored node they point at.
func resolveAlias(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// mapValue returns the value stored under key in a mapping node, or nil.
func mapValue(n *yaml.Node, key string) *yaml.Node {
	n = resolveAlias(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return resolveAlias(n.Content[i+1])
		}
	}
	return nil
}

// scalarString returns the value of a scalar node, or "" for anything else.
func scalarString(n *yaml.Node) string {
	n = resolveAlias(n)
	if n == nil || n.Kind != yaml.ScalarNode {
		return ""
	}
	return n.Value
}

// pairs calls fn for every key/value pair of a mapping node, in order.
func pairs(n *yaml.Node, fn func(key string, val *yaml.Node) error) error {
	n = resolveAlias(n)
	if n == nil || n.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(n.Content); i += 2 {
		if err := fn(n.Content[i].Value, resolveAlias(n.Content[i+1])); err != nil {
			return err
		}
	}
	return nil
}

// scalarValue converts a scalar node to bool, int64, float64, string or nil,
// using the resolved YAML tag. Timestamps and binary values keep their text.
func scalarValue(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var v bool
		err := n.Decode(&v)
		return v, err
	case "!!int":
		var v int64
		if err := n.Decode(&v); err == nil {
			return v, nil
		}
		var f float64
		err := n.Decode(&f)
		return f, err
	case "!!float":
		var f float64
		err := n.Decode(&f)
		return f, err
	default:
		return n.Value, nil
	}
}

// value converts any node to a Go value. Scalars follow scalarValue;
// sequences and mappings decode to []any and map[string]any.
func value(n *yaml.Node) (any, error) {
	n = resolveAlias(n)
	if n.Kind == yaml.ScalarNode {
		return scalarValue(n)
	}
	var v any
	err := n.Decode(&v)
	return v, err
}

// buildChildPath appends key to a JSON path, using bracket notation for keys
// that would otherwise be ambiguous.
func buildChildPath(parent, key string) string {
	if needsBracketNotation(key) {
		escaped := strings.ReplaceAll(key, "'", "\\'")
		return fmt.Sprintf("%s['%s']", parent, escaped)
	}
	if parent == "" {
		return key
	}
	return parent + "." + key
}

// buildIndexPath appends a sequence index to a JSON path.
func buildIndexPath(parent string, i int) string {
	return fmt.Sprintf("%s[%d]", parent, i)
}

func needsBracketNotation(key string) bool {
	if len(key) == 0 {
		return true
	}
	for i, r := range key {
		if i == 0 && r >= '0' && r <= '9' {
			return true
		}
		switch r {
		case '.', '[', ']', '\'', '"', ' ', '\t', '\n', '\r':
			return true
		}
	}
	return false
}

// errStop ends a pairs walk early without reporting an error.
var errStop = errors.New("stop walking")
