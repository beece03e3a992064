package index

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpttk/bldd/internal/elfprobe"
	"github.com/dpttk/bldd/internal/testutil"
)

func TestStore_RecordIdempotent(t *testing.T) {
	store := New(testutil.NewTestLogger(t), DefaultLimits())

	store.Record(elfprobe.ArchX8664, "libc.so", "/bin/a")
	store.Record(elfprobe.ArchX8664, "libc.so", "/bin/a")

	archs := store.Architectures()
	require.Len(t, archs, 1)
	libs := archs[0].Libraries()
	require.Len(t, libs, 1)
	assert.Equal(t, 1, libs[0].Count())
	assert.Equal(t, 1, store.TotalExecutables())
}

func TestStore_CrossLibraryCounting(t *testing.T) {
	store := New(testutil.NewTestLogger(t), DefaultLimits())

	// One executable depending on two matched libraries contributes to
	// both counts, and the total counts insert events.
	store.Record(elfprobe.ArchX8664, "libc.so", "/bin/a")
	store.Record(elfprobe.ArchX8664, "libm.so", "/bin/a")

	archs := store.Architectures()
	require.Len(t, archs, 1)
	for _, lib := range archs[0].Libraries() {
		assert.Equal(t, 1, lib.Count(), lib.Name())
	}
	assert.Equal(t, 2, store.TotalExecutables())
}

func TestStore_FirstSeenOrder(t *testing.T) {
	store := New(testutil.NewTestLogger(t), DefaultLimits())

	store.Record(elfprobe.ArchAArch64, "libm.so", "/bin/x")
	store.Record(elfprobe.ArchX8664, "libc.so", "/bin/a")
	store.Record(elfprobe.ArchX8664, "libc.so", "/bin/b")

	archs := store.Architectures()
	require.Len(t, archs, 2)
	assert.Equal(t, elfprobe.ArchAArch64, archs[0].Tag())
	assert.Equal(t, elfprobe.ArchX8664, archs[1].Tag())

	libs := archs[1].Libraries()
	require.Len(t, libs, 1)
	assert.Equal(t, []string{"/bin/a", "/bin/b"}, libs[0].Executables())
}

func TestArchitecture_LibrariesByUsage(t *testing.T) {
	store := New(testutil.NewTestLogger(t), DefaultLimits())

	store.Record(elfprobe.ArchX8664, "libz.so", "/bin/a")
	store.Record(elfprobe.ArchX8664, "libc.so", "/bin/a")
	store.Record(elfprobe.ArchX8664, "libc.so", "/bin/b")
	store.Record(elfprobe.ArchX8664, "liba.so", "/bin/a")

	archs := store.Architectures()
	require.Len(t, archs, 1)

	sorted := archs[0].LibrariesByUsage()
	require.Len(t, sorted, 3)
	// Descending count first, then name ascending for equal counts.
	assert.Equal(t, "libc.so", sorted[0].Name())
	assert.Equal(t, "liba.so", sorted[1].Name())
	assert.Equal(t, "libz.so", sorted[2].Name())

	// Sorting is a snapshot, first-seen order is untouched.
	assert.Equal(t, "libz.so", archs[0].Libraries()[0].Name())
}

func TestStore_ArchitectureCapacity(t *testing.T) {
	limits := DefaultLimits()
	limits.Architectures = 1
	store := New(testutil.NewTestLogger(t), limits)

	store.Record(elfprobe.ArchX8664, "libc.so", "/bin/a")
	store.Record(elfprobe.ArchARMv7, "libc.so", "/bin/b")

	assert.Equal(t, 1, store.ArchitectureCount())
	assert.Equal(t, 1, store.TotalExecutables())
}

func TestStore_LibraryCapacity(t *testing.T) {
	limits := DefaultLimits()
	limits.LibrariesPerArch = 2
	store := New(testutil.NewTestLogger(t), limits)

	store.Record(elfprobe.ArchX8664, "libc.so", "/bin/a")
	store.Record(elfprobe.ArchX8664, "libm.so", "/bin/a")
	store.Record(elfprobe.ArchX8664, "libdl.so", "/bin/a")

	require.Len(t, store.Architectures(), 1)
	assert.Len(t, store.Architectures()[0].Libraries(), 2)
	assert.Equal(t, 2, store.TotalExecutables())

	// An existing library still accepts inserts after the bound is hit.
	store.Record(elfprobe.ArchX8664, "libm.so", "/bin/b")
	assert.Equal(t, 3, store.TotalExecutables())
}

func TestStore_ExecutableCapacity(t *testing.T) {
	limits := DefaultLimits()
	limits.ExecutablesPerLib = 3
	store := New(testutil.NewTestLogger(t), limits)

	for i := 0; i < 5; i++ {
		store.Record(elfprobe.ArchX8664, "libc.so", fmt.Sprintf("/bin/exec%d", i))
	}

	lib := store.Architectures()[0].Libraries()[0]
	assert.Equal(t, 3, lib.Count())
	assert.Equal(t, 3, store.TotalExecutables())
}
