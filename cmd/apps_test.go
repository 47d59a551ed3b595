package cmd

import (
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kivosy/factory/internal/appstore"
	"github.com/kivosy/factory/internal/session"
)

func TestResolveAppID_FullUUID(t *testing.T) {
	t.Parallel()

	id := uuid.New()
	got, err := resolveAppID(nil, "", []string{id.String()})
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestResolveAppID_Prefix(t *testing.T) {
	t.Parallel()

	first := uuid.MustParse("aaaaaaaa-0000-4000-8000-000000000001")
	second := uuid.MustParse("bbbbbbbb-0000-4000-8000-000000000002")
	index := []appstore.IndexEntry{
		{UUID: first.String()},
		{UUID: second.String()},
	}

	got, err := resolveAppID(index, "", []string{"aaaa"})
	require.NoError(t, err)
	assert.Equal(t, first, got)

	_, err = resolveAppID(index, "", []string{"cccc"})
	assert.Error(t, err)
}

func TestResolveAppID_AmbiguousPrefix(t *testing.T) {
	t.Parallel()

	index := []appstore.IndexEntry{
		{UUID: "aaaaaaaa-0000-4000-8000-000000000001"},
		{UUID: "aaaaaaaa-0000-4000-8000-000000000002"},
	}

	_, err := resolveAppID(index, "", []string{"aaaa"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ambiguous")
}

func TestResolveAppID_SessionFallback(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	id := uuid.New()
	require.NoError(t, session.SaveLastAppID(path, id))

	got, err := resolveAppID(nil, path, nil)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestResolveAppID_NoSessionState(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.json")
	_, err := resolveAppID(nil, path, nil)
	assert.Error(t, err)
}

func TestShortID(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("abcdef01-2345-4678-8901-234567890123")
	assert.Equal(t, "abcdef01", shortID(id))
}
