package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/Carmen-Shannon/oxy-responsive/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRejectsUnknownFlag(t *testing.T) {
	var stderr bytes.Buffer
	assert.Equal(t, exitUsage, run([]string{"-fullscreen"}, &stderr))
	assert.Contains(t, stderr.String(), "-fullscreen")
}

func TestRunFailsOnInvalidConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("renderer:\n  present_mode: mailbox\n"), 0o644))

	var stderr bytes.Buffer
	assert.Equal(t, exitSetup, run([]string{"-config", path}, &stderr))
	assert.Contains(t, stderr.String(), "present mode")
}

func TestRunFailsOnInvalidLogLevelFlag(t *testing.T) {
	var stderr bytes.Buffer
	missing := filepath.Join(t.TempDir(), "none.yaml")
	assert.Equal(t, exitSetup, run([]string{"-config", missing, "-log-level", "chatty"}, &stderr))
	assert.Contains(t, stderr.String(), "log level")
}

func TestRunFailsOnMissingShaderFile(t *testing.T) {
	t.Cleanup(func() { common.SetLogger(nil) })

	var stderr bytes.Buffer
	dir := t.TempDir()
	args := []string{"-config", filepath.Join(dir, "none.yaml"), "-shader", filepath.Join(dir, "missing.wgsl")}
	assert.Equal(t, exitSetup, run(args, &stderr))
	assert.Contains(t, stderr.String(), "failed to load shader")
}
