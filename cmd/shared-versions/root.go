package main

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/Ymmmsick/shared-versions/pkg/deps"
	"github.com/Ymmmsick/shared-versions/pkg/syncer"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "shared-versions [source] [target]",
		Short: "Copy dependency pins from a shared pubspec into a package pubspec",
		Long: `Merges the dependencies of the source document into the target document.
Packages only the source declares are added; entries the target already
declares are kept as they are.`,
		Version:       version,
		Args:          cobra.MaximumNArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runSync,
	}

	cmd.Flags().String("source", "", "Document holding the shared dependency pins")
	cmd.Flags().String("target", "pubspec.yaml", "Document to update")
	cmd.Flags().StringSlice("section", []string{deps.SectionKey}, "Root sections to merge (repeatable)")
	cmd.Flags().Bool("dry-run", false, "Print the merged document instead of writing it")
	cmd.Flags().String("color", "auto", "Colorize the report: auto, always or never")
	cmd.Flags().Bool("summary", false, "Print per-section counts after the report")
	cmd.Flags().BoolP("verbose", "v", false, "Log each merge decision to stderr")

	return cmd
}

func runSync(cmd *cobra.Command, args []string) error {
	source, _ := cmd.Flags().GetString("source")
	target, _ := cmd.Flags().GetString("target")
	if len(args) > 0 {
		source = args[0]
	}
	if len(args) > 1 {
		target = args[1]
	}
	if source == "" {
		return fmt.Errorf("a source document is required")
	}

	sections, _ := cmd.Flags().GetStringSlice("section")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	summary, _ := cmd.Flags().GetBool("summary")
	verbose, _ := cmd.Flags().GetBool("verbose")
	colorMode, _ := cmd.Flags().GetString("color")

	useColor, err := resolveColor(colorMode, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	logger, err := newLogger(verbose)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	s, err := syncer.New(
		syncer.WithSections(sections...),
		syncer.WithDryRun(dryRun),
		syncer.WithColor(useColor),
		syncer.WithSummary(summary),
		syncer.WithLogger(logger),
	)
	if err != nil {
		return err
	}

	out, err := s.Sync(cmd.Context(), source, target)
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprint(w, out.Report)
	if dryRun {
		_, _ = w.Write(out.Output)
		return nil
	}
	if out.Written {
		_, _ = fmt.Fprintln(w, syncer.CompleteMessage)
	}
	return nil
}

func resolveColor(mode string, out io.Writer) (bool, error) {
	switch mode {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto":
		f, ok := out.(*os.File)
		if !ok {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	default:
		return false, fmt.Errorf("invalid --color %q: expected auto, always or never", mode)
	}
}

func newLogger(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.DisableCaller = true
	cfg.EncoderConfig.TimeKey = ""
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}
	return cfg.Build()
}
