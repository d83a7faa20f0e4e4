package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLoggingFile(t *testing.T) {
	dir := t.TempDir()

	file, err := GetLoggingFile(filepath.Join(dir, "communityhub.log"))
	require.NoError(t, err)
	defer file.Close()

	name := filepath.Base(file.Name())
	assert.True(t, strings.HasPrefix(name, "communityhub-"))
	assert.True(t, strings.HasSuffix(name, ".log"))

	noExt, err := GetLoggingFile(filepath.Join(dir, "hub"))
	require.NoError(t, err)
	defer noExt.Close()
	assert.True(t, strings.HasSuffix(noExt.Name(), ".log"))
}

func TestLoggerWritesToFile(t *testing.T) {
	dir := t.TempDir()

	logger := Logger(filepath.Join(dir, "hub.log"))
	logger.Info("community created")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	content, err := os.ReadFile(filepath.Join(dir, entries[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(content), "community created")
}
