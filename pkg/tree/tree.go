package tree

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Kind identifies which of the three node variants a Node is.
type Kind int

const (
	ScalarKind Kind = iota
	SequenceKind
	MappingKind
)

func (k Kind) String() string {
	switch k {
	case ScalarKind:
		return "scalar"
	case SequenceKind:
		return "sequence"
	case MappingKind:
		return "mapping"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Node is a document value. The only implementations are *Scalar, *Sequence
// and *Mapping.
type Node interface {
	Kind() Kind
	// Clone returns a deep copy of the node.
	Clone() Node

	sealed()
}

///////////////////////////////////////////////////////////////////////////////
// scalars
///////////////////////////////////////////////////////////////////////////////

// Scalar is a leaf value. Value holds a string, bool, int, int64, uint64,
// float64 or nil as produced by Parse; anything else is rendered through its
// generic textual form.
type Scalar struct {
	Value any
}

// NewScalar wraps v in a Scalar.
func NewScalar(v any) *Scalar {
	return &Scalar{Value: v}
}

func (s *Scalar) Kind() Kind { return ScalarKind }
func (s *Scalar) sealed()    {}

func (s *Scalar) Clone() Node {
	return &Scalar{Value: s.Value}
}

// IsString reports whether the scalar holds a string.
func (s *Scalar) IsString() bool {
	_, ok := s.Value.(string)
	return ok
}

// String returns the natural textual form of the value, without quoting.
func (s *Scalar) String() string {
	switch v := s.Value.(type) {
	case nil:
		return "null"
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return formatFloat(v)
	case float32:
		return formatFloat(float64(v))
	default:
		return fmt.Sprint(v)
	}
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
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if strings.ContainsAny(s, ".eE") {
		return s
	}
	// keep integral floats distinguishable from ints when re-read
	return s + ".0"
}

///////////////////////////////////////////////////////////////////////////////
// sequences
///////////////////////////////////////////////////////////////////////////////

// Sequence is an ordered list of nodes.
type Sequence struct {
	items []Node
}

// NewSequence creates a sequence holding items, in order.
func NewSequence(items ...Node) *Sequence {
	return &Sequence{items: append([]Node(nil), items...)}
}

func (s *Sequence) Kind() Kind { return SequenceKind }
func (s *Sequence) sealed()    {}

func (s *Sequence) Len() int { return len(s.items) }

// Items returns the elements of the sequence. The slice must not be modified.
func (s *Sequence) Items() []Node { return s.items }

// Append adds n at the end of the sequence.
func (s *Sequence) Append(n Node) {
	s.items = append(s.items, n)
}

func (s *Sequence) Clone() Node {
	out := &Sequence{items: make([]Node, len(s.items))}
	for i, it := range s.items {
		out.items[i] = it.Clone()
	}
	return out
}

///////////////////////////////////////////////////////////////////////////////
// mappings
///////////////////////////////////////////////////////////////////////////////

// Mapping is an ordered set of unique string keys and their values.
// Keys are enumerated in insertion order.
type Mapping struct {
	keys   []string
	values map[string]Node
}

// NewMapping returns an empty mapping.
func NewMapping() *Mapping {
	return &Mapping{values: make(map[string]Node)}
}

func (m *Mapping) Kind() Kind { return MappingKind }
func (m *Mapping) sealed()    {}

func (m *Mapping) Len() int { return len(m.keys) }

// Keys returns the keys in declaration order.
func (m *Mapping) Keys() []string {
	return append([]string(nil), m.keys...)
}

// Get returns the value stored under key.
func (m *Mapping) Get(key string) (Node, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Has reports whether key is present.
func (m *Mapping) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Set stores v under key. An existing key keeps its position; a new key is
// appended.
func (m *Mapping) Set(key string, v Node) {
	if m.values == nil {
		m.values = make(map[string]Node)
	}
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = v
}

// Delete removes key. It returns false if the key was not present.
func (m *Mapping) Delete(key string) bool {
	if _, ok := m.values[key]; !ok {
		return false
	}
	delete(m.values, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// Range calls fn for every entry in order, stopping when fn returns false.
func (m *Mapping) Range(fn func(key string, v Node) bool) {
	for _, k := range m.keys {
		if !fn(k, m.values[k]) {
			return
		}
	}
}

func (m *Mapping) Clone() Node {
	out := &Mapping{
		keys:   append([]string(nil), m.keys...),
		values: make(map[string]Node, len(m.values)),
	}
	for k, v := range m.values {
		out.values[k] = v.Clone()
	}
	return out
}

// CloneMapping is Clone with the concrete type.
func (m *Mapping) CloneMapping() *Mapping {
	return m.Clone().(*Mapping)
}

///////////////////////////////////////////////////////////////////////////////
// type tests
///////////////////////////////////////////////////////////////////////////////

func IsScalar(n Node) bool   { return n != nil && n.Kind() == ScalarKind }
func IsSequence(n Node) bool { return n != nil && n.Kind() == SequenceKind }
func IsMapping(n Node) bool  { return n != nil && n.Kind() == MappingKind }

// AsMapping returns n as a *Mapping when it is one.
func AsMapping(n Node) (*Mapping, bool) {
	m, ok := n.(*Mapping)
	return m, ok && m != nil
}

// AsSequence returns n as a *Sequence when it is one.
func AsSequence(n Node) (*Sequence, bool) {
	s, ok := n.(*Sequence)
	return s, ok && s != nil
}

// AsScalar returns n as a *Scalar when it is one.
func AsScalar(n Node) (*Scalar, bool) {
	s, ok := n.(*Scalar)
	return s, ok && s != nil
}
