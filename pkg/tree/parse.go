package tree

import (
	"errors"
	"fmt"
	"io"
	"io/fs"

	"gopkg.in/yaml.v3"
)

var (
	ErrMalformedDocument = errors.New("malformed document")
	ErrDuplicateKey      = errors.New("duplicate mapping key")
	ErrUnsupportedKey    = errors.New("unsupported mapping key")
)

// Parse reads a structured-text document into a tree. An empty document
// yields an empty Mapping.
func Parse(data []byte) (Node, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}
	if doc.Kind == 0 || (doc.Kind == yaml.DocumentNode && len(doc.Content) == 0) {
		return NewMapping(), nil
	}
	n, err := fromYAMLNode(&doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedDocument, err)
	}
	return n, nil
}

// ParseFile reads and parses name from fsys.
func ParseFile(fsys fs.FS, name string) (Node, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	n, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return n, nil
}

func fromYAMLNode(n *yaml.Node) (Node, error) {
	switch n.Kind {
	case yaml.DocumentNode:
		if len(n.Content) == 0 {
			return NewMapping(), nil
		}
		return fromYAMLNode(n.Content[0])
	case yaml.AliasNode:
		return fromYAMLNode(n.Alias)
	case yaml.ScalarNode:
		var v any
		if err := n.Decode(&v); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		return NewScalar(v), nil
	case yaml.SequenceNode:
		seq := NewSequence()
		for _, c := range n.Content {
			item, err := fromYAMLNode(c)
			if err != nil {
				return nil, err
			}
			seq.Append(item)
		}
		return seq, nil
	case yaml.MappingNode:
		m := NewMapping()
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i], n.Content[i+1]
			if k.Kind == yaml.AliasNode {
				k = k.Alias
			}
			if k.Kind != yaml.ScalarNode {
				return nil, fmt.Errorf("%w at line %d", ErrUnsupportedKey, k.Line)
			}
			if m.Has(k.Value) {
				return nil, fmt.Errorf("%w %q at line %d", ErrDuplicateKey, k.Value, k.Line)
			}
			val, err := fromYAMLNode(v)
			if err != nil {
				return nil, err
			}
			m.Set(k.Value, val)
		}
		return m, nil
	default:
		return nil, fmt.Errorf("unknown node kind %d at line %d", n.Kind, n.Line)
	}
}

// ToPlain converts a tree into plain Go values: map[string]any, []any and
// scalar values. Key order is lost.
func ToPlain(n Node) any {
	switch t := n.(type) {
	case *Mapping:
		out := make(map[string]any, t.Len())
		t.Range(func(k string, v Node) bool {
			out[k] = ToPlain(v)
			return true
		})
		return out
	case *Sequence:
		out := make([]any, 0, t.Len())
		for _, it := range t.Items() {
			out = append(out, ToPlain(it))
		}
		return out
	case *Scalar:
		return t.Value
	default:
		return nil
	}
}
