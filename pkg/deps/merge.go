package deps

import (
	"errors"
	"fmt"
	"strings"

	"dario.cat/mergo"

	"github.com/Ymmmsick/shared-versions/pkg/tree"
	"github.com/Ymmmsick/shared-versions/pkg/yaml"
)

// SectionKey is the root key holding the dependency mapping.
const SectionKey = "dependencies"

// ErrNotMapping is returned when a document root or section holds a value
// other than a mapping.
var ErrNotMapping = errors.New("not a mapping")

// Options controls which sections are merged.
type Options struct {
	// Sections lists the root keys merged, in order. Defaults to SectionKey.
	Sections []string
}

// Option is a functional option for Merge.
type Option func(*Options)

// WithSections sets the root keys to merge, replacing the default.
func WithSections(keys ...string) Option {
	return func(o *Options) { o.Sections = append([]string(nil), keys...) }
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{Sections: []string{SectionKey}}
}

func newOptions(opts ...Option) (Options, error) {
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}
	if err := mergo.Merge(&o, DefaultOptions()); err != nil {
		return Options{}, err
	}
	return o, nil
}

// Section is the outcome of merging one root key.
type Section struct {
	Key string
	// Source is the source document's mapping, the pins being applied.
	Source *tree.Mapping
	// Before is the target's mapping prior to the merge.
	Before *tree.Mapping
	// After is the merged mapping now stored in the target.
	After *tree.Mapping

	// Added holds keys only the source declared.
	Added []string
	// Overridden holds keys both declared with different values; the target's
	// value was kept.
	Overridden []string
	// Unchanged holds keys both declared with equal values.
	Unchanged []string
	// Retained holds keys only the target declared.
	Retained []string
}

// Changed reports whether the merge added anything to the target.
func (s *Section) Changed() bool {
	return len(s.Added) > 0
}

// Summary returns a one-line account of the section, such as
// "dependencies: 2 added, 1 overridden, 0 unchanged, 3 retained".
func (s *Section) Summary() string {
	return fmt.Sprintf("%s: %d added, %d overridden, %d unchanged, %d retained",
		s.Key, len(s.Added), len(s.Overridden), len(s.Unchanged), len(s.Retained))
}

// Result holds the per-section outcomes of Merge, in option order.
type Result struct {
	Sections []*Section
}

// Section returns the result for key, or nil.
func (r *Result) Section(key string) *Section {
	for _, s := range r.Sections {
		if s.Key == key {
			return s
		}
	}
	return nil
}

// Changed reports whether any section changed.
func (r *Result) Changed() bool {
	for _, s := range r.Sections {
		if s.Changed() {
			return true
		}
	}
	return false
}

func (r *Result) String() string {
	parts := make([]string, 0, len(r.Sections))
	for _, s := range r.Sections {
		parts = append(parts, s.Summary())
	}
	return strings.Join(parts, "; ")
}

// Merge combines the dependency sections of source into target. For every
// section the result is the union of both mappings; on a key collision the
// target's entry wins whole, nested specifiers included. The merged mapping
// replaces the section in target's root. source is never modified.
func Merge(source, target tree.Node, opts ...Option) (*Result, error) {
	options, err := newOptions(opts...)
	if err != nil {
		return nil, err
	}

	srcRoot, ok := tree.AsMapping(source)
	if !ok {
		return nil, fmt.Errorf("source document: %w", ErrNotMapping)
	}
	dstRoot, ok := tree.AsMapping(target)
	if !ok {
		return nil, fmt.Errorf("target document: %w", ErrNotMapping)
	}

	// validate everything before touching the target
	type pair struct{ src, dst *tree.Mapping }
	pairs := make([]pair, len(options.Sections))
	for i, key := range options.Sections {
		s, err := SectionOf(srcRoot, key)
		if err != nil {
			return nil, fmt.Errorf("source document: %w", err)
		}
		d, err := SectionOf(dstRoot, key)
		if err != nil {
			return nil, fmt.Errorf("target document: %w", err)
		}
		pairs[i] = pair{src: s, dst: d}
	}

	res := &Result{Sections: make([]*Section, 0, len(pairs))}
	for i, key := range options.Sections {
		p := pairs[i]
		merged := Mappings(p.src, p.dst)
		dstRoot.Set(key, merged)

		sec := classify(p.src, p.dst)
		sec.Key = key
		sec.Source = p.src
		sec.Before = p.dst
		sec.After = merged
		res.Sections = append(res.Sections, sec)
	}
	return res, nil
}

// Mappings returns the union of source and target, with target's entries
// replacing source's on key collision. Keys keep source order; keys only in
// target follow in target order. Neither input is modified.
func Mappings(source, target *tree.Mapping) *tree.Mapping {
	out := tree.NewMapping()
	if source != nil {
		out = source.CloneMapping()
	}
	if target != nil {
		target.Range(func(k string, v tree.Node) bool {
			out.Set(k, v.Clone())
			return true
		})
	}
	return out
}

// SectionOf returns the mapping stored under key in root. A missing key, or
// a key declared with no value, yields an empty mapping.
func SectionOf(root *tree.Mapping, key string) (*tree.Mapping, error) {
	if root == nil {
		return tree.NewMapping(), nil
	}
	v, ok := root.Get(key)
	if !ok {
		return tree.NewMapping(), nil
	}
	if sc, ok := tree.AsScalar(v); ok && sc.Value == nil {
		return tree.NewMapping(), nil
	}
	m, ok := tree.AsMapping(v)
	if !ok {
		return nil, fmt.Errorf("%w: %q is a %s", ErrNotMapping, key, v.Kind())
	}
	return m, nil
}

func classify(source, target *tree.Mapping) *Section {
	sec := &Section{}
	source.Range(func(k string, sv tree.Node) bool {
		tv, ok := target.Get(k)
		switch {
		case !ok:
			sec.Added = append(sec.Added, k)
		case yaml.Equal(sv, tv):
			sec.Unchanged = append(sec.Unchanged, k)
		default:
			sec.Overridden = append(sec.Overridden, k)
		}
		return true
	})
	target.Range(func(k string, _ tree.Node) bool {
		if !source.Has(k) {
			sec.Retained = append(sec.Retained, k)
		}
		return true
	})
	return sec
}
