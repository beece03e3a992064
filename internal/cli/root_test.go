package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execute runs the root command with hermetic config and captured output.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("BLDD_CONFIG", t.TempDir())

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRoot_NoArgsPrintsHelp(t *testing.T) {
	out, errOut, err := execute(t)
	require.NoError(t, err)
	assert.Contains(t, out+errOut, "backward ldd")
	assert.Contains(t, out+errOut, "--lib")
}

func TestRoot_MissingLib(t *testing.T) {
	_, _, err := execute(t, "--dir", t.TempDir())
	assert.ErrorContains(t, err, "--lib")
}

func TestRoot_MissingDir(t *testing.T) {
	_, _, err := execute(t, "--lib", "c")
	assert.ErrorContains(t, err, "--dir")
}

func TestRoot_UnknownFormat(t *testing.T) {
	_, _, err := execute(t, "--lib", "c", "--dir", t.TempDir(), "--format", "html")
	assert.ErrorContains(t, err, "unknown format")
}

func TestRoot_InaccessibleDir(t *testing.T) {
	_, _, err := execute(t, "--lib", "c", "--dir", filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestRoot_ScanWritesReportAndSummary(t *testing.T) {
	scanDir := t.TempDir()
	// A shell script is executable but not ELF; it must be classified
	// out without failing the run.
	script := filepath.Join(scanDir, "tool.sh")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/sh\n"), 0o755))

	workDir := t.TempDir()
	base := filepath.Join(workDir, "report")

	out, errOut, err := execute(t,
		"--lib", "c",
		"--dir", scanDir,
		"--output", base,
		"--quiet",
	)
	require.NoError(t, err)

	assert.FileExists(t, base+".txt")
	assert.Contains(t, out+errOut, "Summary: Found 0 executables across 0 architectures")
}

func TestRoot_ConfigFileDefaults(t *testing.T) {
	cfgDir := t.TempDir()
	base := filepath.Join(t.TempDir(), "from_config")
	require.NoError(t, os.WriteFile(
		filepath.Join(cfgDir, "config.yaml"),
		[]byte("output: "+base+"\nlog_level: quiet\n"),
		0o644,
	))
	t.Setenv("BLDD_CONFIG", cfgDir)

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs([]string{"--lib", "c", "--dir", t.TempDir()})

	require.NoError(t, cmd.Execute())
	assert.FileExists(t, base+".txt")
}

func TestVersionCmd(t *testing.T) {
	out, errOut, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out+errOut, "bldd version")
}
