// Package index holds the in-memory aggregation of scan matches:
// architecture → library → set of executable paths.
package index

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/dpttk/bldd/internal/constants"
	"github.com/dpttk/bldd/internal/elfprobe"
)

// Limits bounds the store so a pathological tree cannot exhaust memory.
// Exceeding a bound drops the insert and logs a warning.
type Limits struct {
	Architectures     int
	LibrariesPerArch  int
	ExecutablesPerLib int
}

// DefaultLimits returns the default capacity bounds.
func DefaultLimits() Limits {
	return Limits{
		Architectures:     constants.MaxArchitectures,
		LibrariesPerArch:  constants.MaxLibrariesPerArch,
		ExecutablesPerLib: constants.MaxExecutablesPerLib,
	}
}

// Library groups the executables that depend on one matched library.
// Membership is a set; insertion order is preserved.
type Library struct {
	name  string
	execs []string
	seen  map[string]struct{}
}

// Name returns the canonical library name.
func (l *Library) Name() string { return l.name }

// Executables returns the member paths in first-seen order.
// The returned slice must not be mutated.
func (l *Library) Executables() []string { return l.execs }

// Count returns the number of distinct executables recorded.
func (l *Library) Count() int { return len(l.execs) }

// Architecture owns the libraries recorded under one architecture tag.
type Architecture struct {
	tag    elfprobe.Arch
	libs   []*Library
	byName map[string]*Library
}

// Tag returns the architecture tag.
func (a *Architecture) Tag() elfprobe.Arch { return a.tag }

// Libraries returns the libraries in first-seen order.
func (a *Architecture) Libraries() []*Library { return a.libs }

// LibrariesByUsage returns the libraries sorted by descending executable
// count; equal counts order by name ascending so reports are reproducible.
func (a *Architecture) LibrariesByUsage() []*Library {
	sorted := make([]*Library, len(a.libs))
	copy(sorted, a.libs)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Count() != sorted[j].Count() {
			return sorted[i].Count() > sorted[j].Count()
		}
		return sorted[i].name < sorted[j].name
	})
	return sorted
}

// Store is the grouped index mutated during one scan and consumed by the
// report stage. It is not safe for concurrent use; the scanner is the only
// writer.
type Store struct {
	logger zerolog.Logger
	limits Limits

	archs []*Architecture
	byTag map[elfprobe.Arch]*Architecture

	// total counts insert events, one per distinct (library, executable)
	// pair. An executable matched under two libraries counts twice.
	total int
}

// New creates an empty store with the given capacity bounds.
func New(logger zerolog.Logger, limits Limits) *Store {
	return &Store{
		logger: logger.With().Str("component", "index").Logger(),
		limits: limits,
		byTag:  make(map[elfprobe.Arch]*Architecture),
	}
}

// Record registers that the executable at execPath depends on the library
// libName under the given architecture. Buckets are created on first use;
// re-recording the same triple is a no-op.
func (s *Store) Record(arch elfprobe.Arch, libName, execPath string) {
	a := s.byTag[arch]
	if a == nil {
		if len(s.archs) >= s.limits.Architectures {
			s.logger.Warn().
				Str("arch", string(arch)).
				Int("limit", s.limits.Architectures).
				Msg("Architecture capacity reached, dropping entry")
			return
		}
		a = &Architecture{tag: arch, byName: make(map[string]*Library)}
		s.archs = append(s.archs, a)
		s.byTag[arch] = a
	}

	l := a.byName[libName]
	if l == nil {
		if len(a.libs) >= s.limits.LibrariesPerArch {
			s.logger.Warn().
				Str("arch", string(arch)).
				Str("library", libName).
				Int("limit", s.limits.LibrariesPerArch).
				Msg("Library capacity reached, dropping entry")
			return
		}
		l = &Library{name: libName, seen: make(map[string]struct{})}
		a.libs = append(a.libs, l)
		a.byName[libName] = l
	}

	if _, ok := l.seen[execPath]; ok {
		return
	}
	if len(l.execs) >= s.limits.ExecutablesPerLib {
		s.logger.Warn().
			Str("library", libName).
			Str("exec", execPath).
			Int("limit", s.limits.ExecutablesPerLib).
			Msg("Executable capacity reached, dropping entry")
		return
	}

	l.seen[execPath] = struct{}{}
	l.execs = append(l.execs, execPath)
	s.total++
}

// Architectures returns the architecture buckets in first-seen order.
func (s *Store) Architectures() []*Architecture { return s.archs }

// ArchitectureCount returns the number of distinct architectures recorded.
func (s *Store) ArchitectureCount() int { return len(s.archs) }

// TotalExecutables returns the number of recorded (library, executable)
// pairs across the whole store.
func (s *Store) TotalExecutables() int { return s.total }
