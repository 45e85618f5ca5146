package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunSendCopiesScriptIntoCommandFile(t *testing.T) {
	dir := t.TempDir()
	scriptPath := filepath.Join(dir, "script.rs")
	require.NoError(t, os.WriteFile(scriptPath, []byte("rover . move right 1 ;"), 0o644))

	commandFile = filepath.Join(dir, "cmd.txt")
	defer func() { commandFile = "" }()

	require.NoError(t, runSend(nil, []string{scriptPath}))

	content, err := os.ReadFile(commandFile)
	require.NoError(t, err)
	assert.Equal(t, "rover . move right 1 ;", string(content))
}

func TestRunSendReportsMissingScript(t *testing.T) {
	dir := t.TempDir()
	commandFile = filepath.Join(dir, "cmd.txt")
	defer func() { commandFile = "" }()

	err := runSend(nil, []string{filepath.Join(dir, "missing.rs")})
	assert.Error(t, err)
}

func TestRunSendOverwritesPreviousCommand(t *testing.T) {
	dir := t.TempDir()
	commandFile = filepath.Join(dir, "cmd.txt")
	defer func() { commandFile = "" }()
	require.NoError(t, os.WriteFile(commandFile, []byte("stale"), 0o644))

	scriptPath := filepath.Join(dir, "script.rs")
	require.NoError(t, os.WriteFile(scriptPath, []byte("rover . scan ;"), 0o644))

	require.NoError(t, runSend(nil, []string{scriptPath}))

	content, err := os.ReadFile(commandFile)
	require.NoError(t, err)
	assert.Equal(t, "rover . scan ;", string(content))
}
