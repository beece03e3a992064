// Package cli implements the bldd command-line interface.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dpttk/bldd/internal/config"
	"github.com/dpttk/bldd/internal/constants"
	"github.com/dpttk/bldd/internal/elfprobe"
	"github.com/dpttk/bldd/internal/index"
	"github.com/dpttk/bldd/internal/logging"
	"github.com/dpttk/bldd/internal/report"
	"github.com/dpttk/bldd/internal/scan"
)

// NewRootCmd builds the root command. The scan itself lives on the root:
// bldd is a single-shot tool, not a command tree.
func NewRootCmd() *cobra.Command {
	var (
		libs      []string
		dir       string
		formatStr string
		output    string
		logLevel  string
		quiet     bool
	)

	cmd := &cobra.Command{
		Use:   "bldd",
		Short: "bldd (backward ldd) - find executables that use specific shared libraries",
		Long: `bldd (backward ldd) scans a directory tree for dynamically linked ELF executables and
reports which of them depend on the given shared libraries, grouped by
CPU architecture. It answers the inverse question of ldd: not "what does
this binary need" but "who needs this library".

Examples:
  bldd --lib libc.so.6 --dir /usr/bin --format txt
  bldd --lib pthread --lib m --dir /usr/local/bin
  bldd --lib libc.so.6 --dir /home --format pdf`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Bare invocation prints usage and exits clean.
			if cmd.Flags().NFlag() == 0 && len(args) == 0 {
				return cmd.Help()
			}

			fileCfg, err := config.NewLoader().Load()
			if err != nil {
				return err
			}

			// Flags win; the defaults file only fills unset values.
			flags := cmd.Flags()
			if !flags.Changed("format") && fileCfg.Format != "" {
				formatStr = fileCfg.Format
			}
			if !flags.Changed("output") && fileCfg.Output != "" {
				output = fileCfg.Output
			}
			if !flags.Changed("log-level") && fileCfg.LogLevel != "" {
				logLevel = fileCfg.LogLevel
			}
			if quiet {
				logLevel = "quiet"
			}

			format, err := config.ParseFormat(formatStr)
			if err != nil {
				return err
			}

			opts := &config.Options{
				Libraries: libs,
				Dir:       dir,
				Format:    format,
				Output:    output,
				LogLevel:  logLevel,
			}
			if err := opts.Validate(); err != nil {
				return err
			}

			return run(cmd, opts)
		},
	}

	cmd.Flags().StringSliceVarP(&libs, "lib", "l", nil, "Shared library to search for (can be specified multiple times)")
	cmd.Flags().StringVarP(&dir, "dir", "d", "", "Directory to scan for executables")
	cmd.Flags().StringVarP(&formatStr, "format", "f", string(config.FormatText), "Output report format (txt, pdf, both)")
	cmd.Flags().StringVarP(&output, "output", "o", constants.DefaultOutputBase, "Output file name without extension")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Suppress diagnostics, keep the summary")

	cmd.AddCommand(newVersionCmd())

	return cmd
}

// run executes one configured scan and writes the requested reports.
// Only root inaccessibility aborts after this point; per-file and
// per-format failures degrade to logged diagnostics.
func run(cmd *cobra.Command, opts *config.Options) error {
	logger := logging.New(logging.Config{
		Level:  opts.LogLevel,
		Pretty: true,
		Output: cmd.ErrOrStderr(),
	})

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	prober := elfprobe.New(logger)
	matcher := scan.NewMatcher(opts.Libraries)
	store := index.New(logger, index.DefaultLimits())
	scanner := scan.NewScanner(logger, prober, matcher)

	if err := scanner.Run(ctx, opts.Dir, store); err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	report.Generate(logger, store, opts.Format, opts.Output)

	fmt.Fprintf(cmd.OutOrStdout(), "Summary: Found %d executables across %d architectures\n",
		store.TotalExecutables(), store.ArchitectureCount())

	return nil
}

// Execute runs the root command.
func Execute() error {
	return NewRootCmd().Execute()
}
