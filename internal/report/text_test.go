package report

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dpttk/bldd/internal/elfprobe"
	"github.com/dpttk/bldd/internal/index"
	"github.com/dpttk/bldd/internal/testutil"
)

func sampleStore(t *testing.T) *index.Store {
	t.Helper()
	store := index.New(testutil.NewTestLogger(t), index.DefaultLimits())
	store.Record(elfprobe.ArchX8664, "libc.so", "/bin/a")
	store.Record(elfprobe.ArchX8664, "libc.so", "/bin/b")
	store.Record(elfprobe.ArchX8664, "libm.so", "/bin/b")
	store.Record(elfprobe.ArchARMv7, "libc.so", "/opt/armbin")
	return store
}

func TestWriteText(t *testing.T) {
	var sb strings.Builder
	require.NoError(t, WriteText(&sb, sampleStore(t)))

	want := strings.Join([]string{
		"Report on dynamic used libraries by ELF executables",
		"------------------------------------------------------------",
		"---------- x86_64 ----------",
		"libc.so (2 execs)",
		"-> /bin/a",
		"-> /bin/b",
		"",
		"libm.so (1 execs)",
		"-> /bin/b",
		"",
		"---------- armv7 ----------",
		"libc.so (1 execs)",
		"-> /opt/armbin",
		"",
		"",
	}, "\n")
	assert.Equal(t, want, sb.String())
}

func TestWriteText_EmptyStore(t *testing.T) {
	store := index.New(testutil.NewTestLogger(t), index.DefaultLimits())

	var sb strings.Builder
	require.NoError(t, WriteText(&sb, store))

	lines := strings.Split(strings.TrimRight(sb.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, Title, lines[0])
}

func TestWriteText_DescendingLibraryOrder(t *testing.T) {
	store := index.New(testutil.NewTestLogger(t), index.DefaultLimits())
	store.Record(elfprobe.ArchX8664, "libz.so", "/bin/one")
	store.Record(elfprobe.ArchX8664, "libbig.so", "/bin/one")
	store.Record(elfprobe.ArchX8664, "libbig.so", "/bin/two")

	var sb strings.Builder
	require.NoError(t, WriteText(&sb, store))

	out := sb.String()
	assert.Less(t, strings.Index(out, "libbig.so"), strings.Index(out, "libz.so"))
}
