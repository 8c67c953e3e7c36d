package yaml

import (
	"strconv"
	"strings"

	"github.com/Ymmmsick/shared-versions/pkg/tree"
)

// IndentWidth is the number of spaces per nesting level.
const IndentWidth = 2

// Options controls how trees are serialized.
type Options struct {
	// Indent is the number of spaces per nesting level. Values below 2 are
	// raised to 2 so that sequence markers stay valid.
	Indent int
}

// Option is a functional option for Marshal.
type Option func(*Options)

// WithIndent sets the number of spaces per nesting level.
func WithIndent(n int) Option {
	return func(o *Options) { o.Indent = n }
}

func defaultOptions() Options {
	return Options{Indent: IndentWidth}
}

// Marshal serializes n as block-style structured text. The output starts
// with a newline, string scalars are always double-quoted and other scalars
// use their natural textual form.
func Marshal(n tree.Node, opts ...Option) []byte {
	options := defaultOptions()
	for _, opt := range opts {
		opt(&options)
	}
	if options.Indent < 2 {
		options.Indent = 2
	}

	e := &encoder{unit: options.Indent}
	e.writeNode(0, n)

	var b strings.Builder
	b.WriteByte('\n')
	for _, ln := range e.lines {
		b.WriteString(ln)
		b.WriteByte('\n')
	}
	return []byte(b.String())
}

type encoder struct {
	unit  int
	lines []string
}

func (e *encoder) indent(level int) string {
	return strings.Repeat(" ", level*e.unit)
}

func (e *encoder) writeLine(level int, line string) {
	e.lines = append(e.lines, e.indent(level)+line)
}

func (e *encoder) writeNode(level int, n tree.Node) {
	switch t := n.(type) {
	case *tree.Mapping:
		if t.Len() == 0 {
			e.writeLine(level, "{}")
			return
		}
		e.writeMap(level, t)
	case *tree.Sequence:
		if t.Len() == 0 {
			e.writeLine(level, "[]")
			return
		}
		e.writeList(level, t)
	case *tree.Scalar:
		e.writeLine(level, formatScalar(t))
	default:
		e.writeLine(level, "null")
	}
}

func (e *encoder) writeMap(level int, m *tree.Mapping) {
	m.Range(func(k string, v tree.Node) bool {
		key := formatKey(k)
		switch t := v.(type) {
		case *tree.Mapping:
			if t.Len() == 0 {
				e.writeLine(level, key+": {}")
				return true
			}
			e.writeLine(level, key+":")
			e.writeMap(level+1, t)
		case *tree.Sequence:
			if t.Len() == 0 {
				e.writeLine(level, key+": []")
				return true
			}
			e.writeLine(level, key+":")
			e.writeList(level+1, t)
		case *tree.Scalar:
			e.writeLine(level, key+": "+formatScalar(t))
		default:
			e.writeLine(level, key+": null")
		}
		return true
	})
}

// writeList emits one "- " entry per item. Nested collections are rendered
// one level deeper and their first line is folded onto the marker.
func (e *encoder) writeList(level int, s *tree.Sequence) {
	marker := "-" + strings.Repeat(" ", e.unit-1)
	for _, it := range s.Items() {
		if sc, ok := tree.AsScalar(it); ok {
			e.writeLine(level, marker+formatScalar(sc))
			continue
		}
		nested := &encoder{unit: e.unit}
		nested.writeNode(level+1, it)
		first := strings.TrimPrefix(nested.lines[0], nested.indent(level+1))
		e.writeLine(level, marker+first)
		e.lines = append(e.lines, nested.lines[1:]...)
	}
}

func formatScalar(s *tree.Scalar) string {
	if v, ok := s.Value.(string); ok {
		return quote(v)
	}
	return s.String()
}

// quote double-quotes v. The escapes produced by strconv.Quote are all valid
// in double-quoted YAML scalars.
func quote(v string) string {
	return strconv.Quote(v)
}

func formatKey(k string) string {
	if needsQuoting(k) {
		return quote(k)
	}
	return k
}

func needsQuoting(str string) bool {
	s := strings.TrimSpace(str)
	if s == "" || s != str {
		return true
	}
	switch strings.ToLower(s) {
	case "y", "yes", "n", "no", "true", "false", "on", "off", "null", "~":
		return true
	}
	if strings.ContainsAny(s[:1], "-?'!&*|>%@`") {
		return true
	}
	return strings.ContainsAny(s, ":#{}[],\"\\\n\r\t")
}
