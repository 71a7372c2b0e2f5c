package prefs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/resto-crm/api/internal/prefs"
)

func TestMissingFileReadsAsDefaults(t *testing.T) {
	s := prefs.Open(filepath.Join(t.TempDir(), "prefs.yaml"))
	assert.False(t, s.DarkMode())
}

func TestSetDarkModePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")

	s := prefs.Open(path)
	require.NoError(t, s.SetDarkMode(true))
	assert.True(t, s.DarkMode())

	// A fresh store reads the written value back.
	assert.True(t, prefs.Open(path).DarkMode())

	require.NoError(t, s.SetDarkMode(false))
	assert.False(t, prefs.Open(path).DarkMode())
}

func TestMalformedFileReadsAsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("{not yaml"), 0o644))

	s := prefs.Open(path)
	assert.False(t, s.DarkMode())
}
