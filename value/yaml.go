package value

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"go.yaml.in/yaml/v4"
)

// ParseYAML decodes a single YAML document, keeping mapping keys in source
// order. Integers and floats become float64, !!timestamp scalars become
// dates and !!binary scalars become [Binary]. Aliases are expanded. An empty
// input decodes to nil.
func ParseYAML(data []byte) (any, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, fmt.Errorf("value: parse YAML: %w", err)
	}
	v, err := FromNode(&node)
	if err != nil {
		return nil, fmt.Errorf("value: parse YAML: %w", err)
	}
	return v, nil
}

// Parse decodes JSON or YAML. Input whose first non-space byte is '{' or
// '[' is treated as JSON; everything else as YAML.
func Parse(data []byte) (any, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return ParseJSON(trimmed)
	}
	return ParseYAML(data)
}

// ParseDocument is like [Parse] but requires the top-level value to be a
// document.
func ParseDocument(data []byte) (*Document, error) {
	v, err := Parse(data)
	if err != nil {
		return nil, err
	}
	d, ok := v.(*Document)
	if !ok {
		return nil, fmt.Errorf("value: expected a document, got %s", Classify(v))
	}
	return d, nil
}

// FromNode converts a yaml.Node tree into the document model.
func FromNode(n *yaml.Node) (any, error) {
	if n == nil {
		return nil, nil
	}

	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return nil, nil
		}
		return FromNode(n.Content[0])

	case yaml.AliasNode:
		return FromNode(n.Alias)

	case yaml.MappingNode:
		d := &Document{m: make(map[string]any, len(n.Content)/2), keys: make([]string, 0, len(n.Content)/2)}
		for i := 0; i+1 < len(n.Content); i += 2 {
			k := n.Content[i]
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("line %d: mapping keys must be scalars", k.Line)
			}
			v, err := FromNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			d.Set(k.Value, v)
		}
		return fromExtended(d)

	case yaml.SequenceNode:
		out := make([]any, 0, len(n.Content))
		for _, c := range n.Content {
			v, err := FromNode(c)
			if err != nil {
				return nil, err
			}
			out = append(out, v)
		}
		return &Array{s: out}, nil

	case yaml.ScalarNode:
		return scalarValue(n)
	}
	return nil, fmt.Errorf("line %d: unsupported YAML node kind %v", n.Line, n.Kind)
}

func scalarValue(n *yaml.Node) (any, error) {
	switch n.ShortTag() {
	case "!!null":
		return nil, nil
	case "!!bool":
		var b bool
		if err := n.Decode(&b); err != nil {
			return nil, err
		}
		return b, nil
	case "!!int", "!!float":
		var f float64
		if err := n.Decode(&f); err != nil {
			return nil, err
		}
		return f, nil
	case "!!timestamp":
		var t time.Time
		if err := n.Decode(&t); err != nil {
			return nil, err
		}
		return t, nil
	case "!!binary":
		b, err := base64.StdEncoding.DecodeString(strings.Join(strings.Fields(n.Value), ""))
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid !!binary: %w", n.Line, err)
		}
		return Binary(b), nil
	}
	return n.Value, nil
}

// MarshalYAML emits the document as an ordered mapping node.
func (d *Document) MarshalYAML() (any, error) {
	return ToNode(d)
}

// MarshalYAML emits the array as a sequence node.
func (a *Array) MarshalYAML() (any, error) {
	return ToNode(a)
}

// MarshalYAML encodes any model value as YAML.
func MarshalYAML(v any) ([]byte, error) {
	node, err := ToNode(v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

// ToNode converts a model value into a yaml.Node. Leaf kinds YAML has no
// tag for use the same extended mappings as JSON.
func ToNode(v any) (*yaml.Node, error) {
	switch val := v.(type) {
	case nil, UndefinedType:
		return scalarNode("!!null", "null"), nil
	case bool:
		return scalarNode("!!bool", strconv.FormatBool(val)), nil
	case string:
		return scalarNode("!!str", val), nil
	case time.Time:
		return scalarNode("!!timestamp", val.Format(time.RFC3339Nano)), nil
	case Binary:
		return scalarNode("!!binary", base64.StdEncoding.EncodeToString(val)), nil
	case []byte:
		return scalarNode("!!binary", base64.StdEncoding.EncodeToString(val)), nil
	case ObjectID:
		return mappingNode("$type", scalarNode("!!str", "oid"), "$value", scalarNode("!!str", val.Hex())), nil
	case *Regex:
		return mappingNode("$regexp", scalarNode("!!str", val.Pattern), "$flags", scalarNode("!!str", val.Options)), nil
	case Code:
		return mappingNode("$code", scalarNode("!!str", string(val))), nil
	case int:
		return scalarNode("!!int", strconv.Itoa(val)), nil
	case int32:
		return scalarNode("!!int", strconv.FormatInt(int64(val), 10)), nil
	case int64:
		return scalarNode("!!int", strconv.FormatInt(val, 10)), nil

	case *Document:
		if val == nil {
			return scalarNode("!!null", "null"), nil
		}
		node := &yaml.Node{Kind: yaml.MappingNode, Content: make([]*yaml.Node, 0, 2*len(val.keys))}
		for _, k := range val.keys {
			child, err := ToNode(val.m[k])
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, scalarNode("!!str", k), child)
		}
		return node, nil

	case *Array:
		if val == nil {
			return scalarNode("!!null", "null"), nil
		}
		node := &yaml.Node{Kind: yaml.SequenceNode, Content: make([]*yaml.Node, 0, len(val.s))}
		for _, e := range val.s {
			child, err := ToNode(e)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	}

	if f, ok := ToFloat(v); ok {
		if f == math.Trunc(f) && math.Abs(f) < 1e15 {
			return scalarNode("!!int", strconv.FormatFloat(f, 'f', -1, 64)), nil
		}
		return scalarNode("!!float", formatFloat(f)), nil
	}
	switch c := canonical(v); c.(type) {
	case *Document, *Array:
		return ToNode(c)
	}

	node := &yaml.Node{}
	if err := node.Encode(v); err != nil {
		return nil, fmt.Errorf("value: encode %T as YAML: %w", v, err)
	}
	return node, nil
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return ".nan"
	case math.IsInf(f, 1):
		return ".inf"
	case math.IsInf(f, -1):
		return "-.inf"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func scalarNode(tag, value string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value}
}

func mappingNode(pairs ...any) *yaml.Node {
	node := &yaml.Node{Kind: yaml.MappingNode}
	for i := 0; i+1 < len(pairs); i += 2 {
		node.Content = append(node.Content, scalarNode("!!str", pairs[i].(string)), pairs[i+1].(*yaml.Node))
	}
	return node
}
