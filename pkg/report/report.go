// Package report renders side-by-side "before -> after" views of dependency
// sections for the console.
package report

import (
	"strings"

	"github.com/fatih/color"

	"github.com/Ymmmsick/shared-versions/pkg/deps"
	"github.com/Ymmmsick/shared-versions/pkg/tree"
	"github.com/Ymmmsick/shared-versions/pkg/yaml"
)

// Arrow separates the two columns of a row.
const Arrow = " -> "

// Palette decorates the plain text of each column.
type Palette struct {
	Removed func(string) string
	Added   func(string) string
}

// NewPalette returns red for removed lines and bold green for added lines.
// Color output is forced on or off regardless of the terminal.
func NewPalette(enabled bool) Palette {
	removed := color.New(color.FgRed)
	added := color.New(color.FgGreen, color.Bold)
	if enabled {
		removed.EnableColor()
		added.EnableColor()
	} else {
		removed.DisableColor()
		added.DisableColor()
	}
	return Palette{
		Removed: func(s string) string { return removed.Sprint(s) },
		Added:   func(s string) string { return added.Sprint(s) },
	}
}

// PlainPalette leaves text untouched.
func PlainPalette() Palette {
	return Palette{Removed: identity, Added: identity}
}

func identity(s string) string { return s }

// Options controls rendering.
type Options struct {
	Palette Palette
	// Summary appends the section summary line when rendering merge results.
	Summary bool
}

// Option is a functional option for Render and Sections.
type Option func(*Options)

// WithPalette sets the palette. The default follows the terminal.
func WithPalette(p Palette) Option {
	return func(o *Options) { o.Palette = p }
}

// WithColor is WithPalette(NewPalette(enabled)).
func WithColor(enabled bool) Option {
	return WithPalette(NewPalette(enabled))
}

// WithSummary appends a summary line per section.
func WithSummary(enabled bool) Option {
	return func(o *Options) { o.Summary = enabled }
}

func newOptions(opts ...Option) Options {
	o := Options{Palette: NewPalette(!color.NoColor)}
	for _, opt := range opts {
		opt(&o)
	}
	if o.Palette.Removed == nil {
		o.Palette.Removed = identity
	}
	if o.Palette.Added == nil {
		o.Palette.Added = identity
	}
	return o
}

// Table is the plain-text layout of both sides, before any decoration.
type Table struct {
	From []string
	To   []string
	// FromWidth is the width of the widest line in From.
	FromWidth int
}

// NewTable lays out both mappings under their root keys.
func NewTable(fromKey string, from *tree.Mapping, toKey string, to *tree.Mapping) *Table {
	t := &Table{
		From: yaml.LayoutSection(fromKey, from, 0, 0),
		To:   yaml.LayoutSection(toKey, to, 0, 0),
	}
	for _, ln := range t.From {
		if w := yaml.Width(ln); w > t.FromWidth {
			t.FromWidth = w
		}
	}
	return t
}

// Rows returns the number of rows the table occupies.
func (t *Table) Rows() int {
	return max(len(t.From), len(t.To))
}

// Row returns the columns of row i. from or to is empty when that side has
// no line in the row. The separator places every "to" line at the same
// column: FromWidth plus the arrow. The "to" line is the last column and is
// returned without trailing padding; rows end at their last visible rune.
func (t *Table) Row(i int) (from, sep, to string) {
	fromLen := 0
	if i < len(t.From) {
		from = t.From[i]
		fromLen = yaml.Width(from)
	}
	if i < len(t.To) {
		to = t.To[i]
		sep = yaml.PadLeft(Arrow, t.FromWidth+yaml.Width(Arrow)-fromLen)
	}
	return from, sep, to
}

// Render writes the table one row per line. Padding is computed on the
// plain text first; the palette decorates each column afterwards.
func (t *Table) Render(p Palette) string {
	var b strings.Builder
	for i := 0; i < t.Rows(); i++ {
		from, sep, to := t.Row(i)
		if from != "" {
			b.WriteString(p.Removed(from))
		}
		if to != "" {
			b.WriteString(sep)
			b.WriteString(p.Added(to))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Render lays out from and to side by side.
func Render(fromKey string, from *tree.Mapping, toKey string, to *tree.Mapping, opts ...Option) string {
	o := newOptions(opts...)
	return NewTable(fromKey, from, toKey, to).Render(o.Palette)
}

// Sections renders every section of a merge result, separated by a blank
// line. The left column holds the source's pins and the right column the
// merged section, so entries the target already had show as additions only.
func Sections(res *deps.Result, opts ...Option) string {
	o := newOptions(opts...)
	parts := make([]string, 0, len(res.Sections))
	for _, sec := range res.Sections {
		out := NewTable(sec.Key, sec.Source, sec.Key, sec.After).Render(o.Palette)
		if o.Summary {
			out += sec.Summary() + "\n"
		}
		parts = append(parts, out)
	}
	return strings.Join(parts, "\n")
}
