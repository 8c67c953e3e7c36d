package syncer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"dario.cat/mergo"
	"go.uber.org/zap"

	"github.com/Ymmmsick/shared-versions/pkg/deps"
	"github.com/Ymmmsick/shared-versions/pkg/report"
	"github.com/Ymmmsick/shared-versions/pkg/tree"
	"github.com/Ymmmsick/shared-versions/pkg/yaml"
)

// CompleteMessage is printed once the target has been written.
const CompleteMessage = "Complete!"

// ErrSamePath is returned when source and target name the same file.
var ErrSamePath = errors.New("source and target are the same file")

// Options controls a synchronization run.
type Options struct {
	// Sections lists the root keys merged. Defaults to deps.SectionKey.
	Sections []string
	// Indent is the number of spaces per level in the written target.
	Indent int
	// DryRun computes the result without writing the target.
	DryRun bool
	// Color enables terminal colors in the report.
	Color bool
	// Summary appends per-section counts to the report.
	Summary bool

	Logger *zap.Logger
}

// Option is a functional option for New.
type Option func(*Options)

// WithSections sets the root keys to merge, replacing the default.
func WithSections(keys ...string) Option {
	return func(o *Options) { o.Sections = append([]string(nil), keys...) }
}

// WithIndent sets the number of spaces per level in the written target.
func WithIndent(n int) Option {
	return func(o *Options) { o.Indent = n }
}

// WithDryRun skips writing the target when set.
func WithDryRun(dryRun bool) Option {
	return func(o *Options) { o.DryRun = dryRun }
}

// WithColor enables terminal colors in the report.
func WithColor(enabled bool) Option {
	return func(o *Options) { o.Color = enabled }
}

// WithSummary appends per-section counts to the report.
func WithSummary(enabled bool) Option {
	return func(o *Options) { o.Summary = enabled }
}

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func defaultOptions() Options {
	return Options{
		Sections: []string{deps.SectionKey},
		Indent:   yaml.IndentWidth,
	}
}

// Syncer runs synchronizations against a filesystem.
type Syncer struct {
	ops  fileOps
	opts Options
}

// New returns a Syncer working on the OS filesystem.
func New(opts ...Option) (*Syncer, error) {
	return newSyncer(osOps{}, opts...)
}

func newSyncer(ops fileOps, opts ...Option) (*Syncer, error) {
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}
	if err := mergo.Merge(&o, defaultOptions()); err != nil {
		return nil, err
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return &Syncer{ops: ops, opts: o}, nil
}

// Outcome describes a finished synchronization.
type Outcome struct {
	Result *deps.Result
	// Output is the serialized target document.
	Output []byte
	// Report is the console report of every merged section.
	Report string
	// Written is true when Output was stored at the target path.
	Written bool
}

// Sync merges the dependency sections of the document at sourcePath into the
// document at targetPath. Unless DryRun is set, the target is rewritten
// atomically. Any read, parse or write failure aborts the run before the
// target is touched.
func (s *Syncer) Sync(ctx context.Context, sourcePath, targetPath string) (*Outcome, error) {
	log := s.opts.Logger.With(zap.String("source", sourcePath), zap.String("target", targetPath))

	if filepath.Clean(sourcePath) == filepath.Clean(targetPath) {
		return nil, fmt.Errorf("%w: %s", ErrSamePath, sourcePath)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	source, _, err := s.load(sourcePath)
	if err != nil {
		return nil, err
	}
	target, st, err := s.load(targetPath)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res, err := deps.Merge(source, target, deps.WithSections(s.opts.Sections...))
	if err != nil {
		return nil, fmt.Errorf("merging %s into %s: %w", sourcePath, targetPath, err)
	}
	for _, sec := range res.Sections {
		for _, k := range sec.Added {
			log.Debug("adding dependency", zap.String("section", sec.Key), zap.String("package", k))
		}
		for _, k := range sec.Overridden {
			log.Warn("keeping target pin over source", zap.String("section", sec.Key), zap.String("package", k))
		}
	}

	out := &Outcome{
		Result: res,
		Output: yaml.Marshal(target, yaml.WithIndent(s.opts.Indent)),
		Report: report.Sections(res, report.WithColor(s.opts.Color), report.WithSummary(s.opts.Summary)),
	}

	if s.opts.DryRun {
		log.Info("dry run, target not written", zap.Bool("changed", res.Changed()))
		return out, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.ops.WriteFileAtomic(targetPath, out.Output, st.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("writing %s: %w", targetPath, err)
	}
	out.Written = true

	log.Info("synchronized dependencies", zap.Stringer("result", res))
	return out, nil
}

func (s *Syncer) load(path string) (tree.Node, fs.FileInfo, error) {
	st, err := assertFileExists(s.ops, path)
	if err != nil {
		return nil, nil, err
	}
	data, err := s.ops.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	n, err := tree.Parse(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}
	return n, st, nil
}
