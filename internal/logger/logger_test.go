package logger

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileMigratedFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf)

	l.FileMigrated("in.md", "out.md", 3, "#flashcards/JP")

	out := buf.String()
	assert.Contains(t, out, "file migrated")
	assert.Contains(t, out, "cards=3")
	assert.Contains(t, out, "#flashcards/JP")
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithLevel(&buf, log.WarnLevel)

	l.FileSkipped("a.md", "unchanged")
	assert.Empty(t, buf.String())

	l.FileError("a.md", errors.New("boom"))
	assert.Contains(t, buf.String(), "boom")
}

func TestParseLevel(t *testing.T) {
	level, err := ParseLevel("debug")
	require.NoError(t, err)
	assert.Equal(t, log.DebugLevel, level)

	_, err = ParseLevel("loud")
	assert.Error(t, err)
}

func TestNewFileLogger(t *testing.T) {
	path := filepath.Join(t.TempDir(), "migrate.log")

	l, cleanup, err := NewFileLogger(path, log.InfoLevel)
	require.NoError(t, err)
	defer cleanup()

	l.BatchStarted("run-1", "src", "dst")
	assert.FileExists(t, path)
}
