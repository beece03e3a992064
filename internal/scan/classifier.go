package scan

import (
	"os"

	"golang.org/x/sys/unix"

	"github.com/dpttk/bldd/internal/elfprobe"
)

// Classifier decides whether a filesystem entry is a scan candidate.
type Classifier struct {
	prober elfprobe.Prober
}

// NewClassifier creates a classifier backed by the given prober.
func NewClassifier(prober elfprobe.Prober) *Classifier {
	return &Classifier{prober: prober}
}

// Classify reports whether the path is a regular file, executable by the
// invoking user, and starts with the ELF magic. Any failure along the way
// classifies as false; classification never aborts a walk.
func (c *Classifier) Classify(path string) bool {
	info, err := os.Lstat(path)
	if err != nil || !info.Mode().IsRegular() {
		return false
	}
	if err := unix.Access(path, unix.X_OK); err != nil {
		return false
	}
	return c.prober.IsELF(path)
}
