// Package elfprobe inspects ELF binaries for their target architecture and
// dynamic-section NEEDED entries using the standard library's debug/elf,
// without shelling out to external tools.
package elfprobe

import (
	"bytes"
	"debug/elf"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	errs "github.com/dpttk/bldd/internal/errors"
)

// Arch identifies the target CPU instruction set of a binary.
type Arch string

// Known architecture tags. ArchUnknown is reported for any machine type
// outside this set and is never aggregated.
const (
	ArchX8664   Arch = "x86_64"
	ArchX86     Arch = "x86"
	ArchAArch64 Arch = "aarch64"
	ArchARMv7   Arch = "armv7"
	ArchUnknown Arch = "unknown"
)

// Result holds the outcome of probing one binary.
type Result struct {
	// Arch is the detected architecture tag.
	Arch Arch
	// Needed lists the dynamic-section NEEDED entries in file order.
	// Empty for statically linked binaries.
	Needed []string
}

// Prober is the binary-introspection capability consumed by the scanner.
type Prober interface {
	// IsELF reports whether the file starts with the ELF magic number.
	IsELF(path string) bool

	// Probe returns the architecture and direct shared-library
	// dependencies of the file. Transitive dependencies are not resolved.
	Probe(path string) (Result, error)
}

// FileProber implements Prober by parsing the binary directly.
type FileProber struct {
	logger zerolog.Logger
}

// New creates a FileProber.
func New(logger zerolog.Logger) *FileProber {
	return &FileProber{
		logger: logger.With().Str("component", "elfprobe").Logger(),
	}
}

var elfMagic = []byte{0x7f, 'E', 'L', 'F'}

// IsELF reports whether the file's first four bytes are the ELF magic.
// Any read failure classifies as not-ELF.
func (p *FileProber) IsELF(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer errs.DeferClose(p.logger, f, "failed to close file after magic check")

	magic := make([]byte, len(elfMagic))
	if _, err := io.ReadFull(f, magic); err != nil {
		return false
	}
	return bytes.Equal(magic, elfMagic)
}

// Probe opens the file as ELF and extracts its machine type and NEEDED
// entries. A parse or I/O failure is returned to the caller; the caller
// decides whether the failure is fatal (it never is for the scanner).
func (p *FileProber) Probe(path string) (Result, error) {
	f, err := elf.Open(path)
	if err != nil {
		return Result{Arch: ArchUnknown}, fmt.Errorf("failed to open ELF file %s: %w", path, err)
	}
	defer errs.DeferClose(p.logger, f, "failed to close ELF file")

	arch := archFromMachine(f.Machine)
	if arch == ArchUnknown {
		// Not an error: unknown machine types are silently excluded.
		return Result{Arch: ArchUnknown}, nil
	}

	needed, err := f.ImportedLibraries()
	if err != nil {
		return Result{Arch: arch}, fmt.Errorf("failed to read NEEDED entries of %s: %w", path, err)
	}

	p.logger.Debug().
		Str("path", path).
		Str("arch", string(arch)).
		Int("needed", len(needed)).
		Msg("Probed binary")

	return Result{Arch: arch, Needed: needed}, nil
}

// archFromMachine maps an ELF machine type to an architecture tag.
func archFromMachine(machine elf.Machine) Arch {
	switch machine {
	case elf.EM_X86_64:
		return ArchX8664
	case elf.EM_386:
		return ArchX86
	case elf.EM_AARCH64:
		return ArchAArch64
	case elf.EM_ARM:
		return ArchARMv7
	default:
		return ArchUnknown
	}
}
