package session_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kivosy/factory/internal/session"
)

func statePath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "session.json")
}

func TestSaveAndLoad(t *testing.T) {
	t.Parallel()

	path := statePath(t)
	id := uuid.New()
	require.NoError(t, session.SaveLastAppID(path, id))

	got, err := session.LoadLastAppID(path)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, id, *got)
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	got, err := session.LoadLastAppID(statePath(t))
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLoad_EmptyFile(t *testing.T) {
	t.Parallel()

	path := statePath(t)
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))

	got, err := session.LoadLastAppID(path)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestLoad_MalformedID(t *testing.T) {
	t.Parallel()

	path := statePath(t)
	require.NoError(t, os.WriteFile(path, []byte("not-a-uuid"), 0o644))

	_, err := session.LoadLastAppID(path)
	assert.Error(t, err)
}

func TestClear(t *testing.T) {
	t.Parallel()

	path := statePath(t)
	require.NoError(t, session.SaveLastAppID(path, uuid.New()))
	require.NoError(t, session.ClearLastAppID(path))

	got, err := session.LoadLastAppID(path)
	require.NoError(t, err)
	assert.Nil(t, got)

	// Clearing again is a no-op.
	require.NoError(t, session.ClearLastAppID(path))
}
