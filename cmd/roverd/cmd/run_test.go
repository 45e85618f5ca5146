package cmd

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roverscript/roverscript/internal/pipeline"
	"github.com/roverscript/roverscript/internal/roverr"
	"github.com/roverscript/roverscript/internal/token"
)

func resetFlags() {
	configPath, roverName, mapPath, commandFile, logLevel = "", "", "", "", "info"
	watchDebounce = 250 * time.Millisecond
}

func TestResolveConfigRequiresConfigOrAdHocFlags(t *testing.T) {
	resetFlags()
	defer resetFlags()
	_, err := resolveConfig()
	assert.Error(t, err)
}

func TestResolveConfigBuildsSingleRoverFromAdHocFlags(t *testing.T) {
	resetFlags()
	defer resetFlags()
	roverName, mapPath, commandFile = "scout1", "map.txt", "cmd.txt"

	cfg, err := resolveConfig()
	require.NoError(t, err)
	require.Len(t, cfg.Rovers, 1)
	assert.Equal(t, "scout1", cfg.Rovers[0].Name)
	assert.Equal(t, "map.txt", cfg.Rovers[0].MapPath)
	assert.Equal(t, "cmd.txt", cfg.Rovers[0].CommandFile)
}

func TestResolveConfigFromMissingFilePropagatesError(t *testing.T) {
	resetFlags()
	defer resetFlags()
	configPath = "/nonexistent/rovers.yaml"
	_, err := resolveConfig()
	assert.Error(t, err)
}

func discardEntry() (*logrus.Entry, *bytes.Buffer) {
	var buf bytes.Buffer
	l := logrus.New()
	l.SetOutput(&buf)
	l.SetLevel(logrus.WarnLevel)
	return l.WithField("rover", "test"), &buf
}

func TestLogCommandErrorFormatsEachUnderlyingError(t *testing.T) {
	log, buf := discardEntry()
	compileErr := &pipeline.CompileError{
		Stage: "check",
		Errors: []error{
			roverr.NewUndefinedError(token.Position{Line: 1, Col: 1}, "x = y ;", "y"),
		},
	}
	logCommandError(log, compileErr)
	assert.Contains(t, buf.String(), `undefined variable "y"`)
}

func TestLogCommandErrorFallsBackForPlainErrors(t *testing.T) {
	log, buf := discardEntry()
	logCommandError(log, errors.New("boom"))
	assert.Contains(t, buf.String(), "boom")
}
