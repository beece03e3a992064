package report

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/dpttk/bldd/internal/constants"
	"github.com/dpttk/bldd/internal/index"
)

// Title is the first line of every report.
const Title = "Report on dynamic used libraries by ELF executables"

const titleRule = "------------------------------------------------------------"

// WriteText renders the plain-text report into w. Architectures appear in
// first-seen order; libraries in descending executable count; executables
// in first-seen insertion order.
func WriteText(w io.Writer, store *index.Store) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "%s\n", Title)
	fmt.Fprintf(bw, "%s\n", titleRule)

	for _, arch := range store.Architectures() {
		fmt.Fprintf(bw, "%s %s %s\n", constants.ReportSeparator, arch.Tag(), constants.ReportSeparator)

		for _, lib := range arch.LibrariesByUsage() {
			fmt.Fprintf(bw, "%s (%d execs)\n", lib.Name(), lib.Count())
			for _, exec := range lib.Executables() {
				fmt.Fprintf(bw, "-> %s\n", exec)
			}
			fmt.Fprintln(bw)
		}
	}

	return bw.Flush()
}

// SaveText writes the plain-text report to path.
func SaveText(store *index.Store, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("cannot create output file %s: %w", path, err)
	}

	if err := WriteText(f, store); err != nil {
		f.Close()
		return fmt.Errorf("cannot write report to %s: %w", path, err)
	}

	// Close errors matter here: buffered writes may surface only now.
	if err := f.Close(); err != nil {
		return fmt.Errorf("cannot write report to %s: %w", path, err)
	}
	return nil
}
