package yaml

import (
	"strings"
	"unicode/utf8"

	"github.com/Ymmmsick/shared-versions/pkg/tree"
)

// LineCount returns the number of lines Layout produces for m: one per
// non-mapping entry, and one header line plus the nested count per mapping
// entry.
func LineCount(m *tree.Mapping) int {
	if m == nil {
		return 0
	}
	count := 0
	m.Range(func(_ string, v tree.Node) bool {
		if nested, ok := tree.AsMapping(v); ok {
			count += 1 + LineCount(nested)
		} else {
			count++
		}
		return true
	})
	return count
}

// Layout flattens m into single-line "key: value" strings. A nested mapping
// contributes a "key:" header followed by its own lines one level deeper.
// Every line at a given level is left-padded by level*IndentWidth+indent
// spaces.
func Layout(m *tree.Mapping, indent, level int) []string {
	lines := make([]string, 0, LineCount(m))
	return appendLayout(lines, m, indent, level)
}

// LayoutSection is Layout preceded by a "rootKey:" header at level, with the
// entries of m one level deeper.
func LayoutSection(rootKey string, m *tree.Mapping, indent, level int) []string {
	lines := make([]string, 0, LineCount(m)+1)
	lines = append(lines, padLine(rootKey+":", indent, level))
	return appendLayout(lines, m, indent, level+1)
}

func appendLayout(lines []string, m *tree.Mapping, indent, level int) []string {
	if m == nil {
		return lines
	}
	m.Range(func(k string, v tree.Node) bool {
		if nested, ok := tree.AsMapping(v); ok {
			lines = append(lines, padLine(k+":", indent, level))
			lines = appendLayout(lines, nested, indent, level+1)
			return true
		}
		lines = append(lines, padLine(k+": "+inline(v), indent, level))
		return true
	})
	return lines
}

// padLine right-justifies text so that it ends at
// level*IndentWidth + width(text) + indent.
func padLine(text string, indent, level int) string {
	return PadLeft(text, level*IndentWidth+Width(text)+indent)
}

// inline renders a value on a single line: scalars unquoted, collections in
// flow style.
func inline(n tree.Node) string {
	switch t := n.(type) {
	case *tree.Scalar:
		return t.String()
	case *tree.Sequence:
		parts := make([]string, 0, t.Len())
		for _, it := range t.Items() {
			parts = append(parts, inline(it))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *tree.Mapping:
		parts := make([]string, 0, t.Len())
		t.Range(func(k string, v tree.Node) bool {
			parts = append(parts, k+": "+inline(v))
			return true
		})
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return "null"
	}
}

// Width is the display width of s in columns, counted in runes.
func Width(s string) int {
	return utf8.RuneCountInString(s)
}

// PadLeft prefixes s with spaces until it is width columns wide.
func PadLeft(s string, width int) string {
	if n := width - Width(s); n > 0 {
		return strings.Repeat(" ", n) + s
	}
	return s
}

// PadRight appends spaces to s until it is width columns wide.
func PadRight(s string, width int) string {
	if n := width - Width(s); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}
