// Package config provides run options, validation, and the optional
// per-user defaults file.
package config

import (
	"fmt"
	"os"

	"github.com/dpttk/bldd/internal/constants"
)

// Format selects which report files a run produces.
type Format string

// Supported report formats.
const (
	FormatText Format = "txt"
	FormatPDF  Format = "pdf"
	FormatBoth Format = "both"
)

// ParseFormat validates a user-supplied format value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatPDF, FormatBoth:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unknown format: %s (expected txt, pdf or both)", s)
	}
}

// Text reports whether a plain-text report is requested.
func (f Format) Text() bool { return f == FormatText || f == FormatBoth }

// PDF reports whether a PDF report is requested.
func (f Format) PDF() bool { return f == FormatPDF || f == FormatBoth }

// Options holds a fully resolved run configuration. Flags are
// authoritative; the defaults file only fills in what the user left unset.
type Options struct {
	// Libraries are the raw search terms, in supply order. At least one
	// is required; order decides match attribution.
	Libraries []string

	// Dir is the scan root.
	Dir string

	// Format selects the report format(s).
	Format Format

	// Output is the report base name, extension appended per format.
	Output string

	// LogLevel is one of debug, info, warn, error, quiet.
	LogLevel string
}

// Validate checks the configuration preconditions that must fail the run
// before any scanning starts.
func (o *Options) Validate() error {
	if len(o.Libraries) == 0 {
		return fmt.Errorf("at least one library must be specified with --lib")
	}
	if o.Dir == "" {
		return fmt.Errorf("scan directory must be specified with --dir")
	}

	info, err := os.Stat(o.Dir)
	if err != nil {
		return fmt.Errorf("cannot open directory %s: %w", o.Dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("not a directory: %s", o.Dir)
	}

	if o.Output == "" {
		return fmt.Errorf("output base name must not be empty")
	}
	if len(o.Output) > constants.MaxOutputBase {
		return fmt.Errorf("output filename too long")
	}

	return nil
}
