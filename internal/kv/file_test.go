package kv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFileStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "store.json")

	s, err := OpenFileStore(path)
	require.NoError(t, err)

	_, ok, err := s.Get("missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set("attendance_organizations", `[{"id":"abc"}]`))

	v, ok, err := s.Get("attendance_organizations")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[{"id":"abc"}]`, v)

	has, err := s.Has("attendance_organizations")
	require.NoError(t, err)
	require.True(t, has)

	// Reopen and verify the data survived.
	s2, err := OpenFileStore(path)
	require.NoError(t, err)
	v, ok, err = s2.Get("attendance_organizations")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[{"id":"abc"}]`, v)
}

func TestFileStore_Delete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	s, err := OpenFileStore(path)
	require.NoError(t, err)

	require.NoError(t, s.Set("k", "v"))
	require.NoError(t, s.Delete("k"))
	require.NoError(t, s.Delete("k")) // absent key is not an error

	has, err := s.Has("k")
	require.NoError(t, err)
	require.False(t, has)
}

func TestOpenFileStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := OpenFileStore(path)
	require.Error(t, err)
}
