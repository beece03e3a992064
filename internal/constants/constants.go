// Package constants defines shared configuration constants and defaults.
package constants

const (
	// ConfigFile is the name of the optional defaults file inside DefaultDir.
	ConfigFile = "config.yaml"

	// DefaultDir is the per-user configuration directory.
	DefaultDir = ".bldd"

	// DefaultOutputBase is the report base name when --output is not given.
	DefaultOutputBase = "bldd_report"

	// ReportSeparator brackets architecture headers in reports.
	ReportSeparator = "----------"

	// ProgressInterval controls how often the scanner logs a progress event,
	// counted in classified executables.
	ProgressInterval = 100

	// MaxOutputBase bounds the report base name so that base plus extension
	// stays within a 4096-byte path.
	MaxOutputBase = 4091
)

// Aggregation capacity bounds. Exceeding a bound drops the insert and logs
// a warning; the run continues with a truncated index.
const (
	// MaxArchitectures bounds distinct architecture buckets.
	MaxArchitectures = 16

	// MaxLibrariesPerArch bounds distinct libraries within one architecture.
	MaxLibrariesPerArch = 256

	// MaxExecutablesPerLib bounds distinct executables within one library.
	MaxExecutablesPerLib = 65536
)
