package filestore_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/DrewAMSD/lifting-log/session"
	"github.com/DrewAMSD/lifting-log/session/filestore"
	"github.com/DrewAMSD/lifting-log/token"
	"github.com/stretchr/testify/require"
)

func testSession() *session.Session {
	exp := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &session.Session{
		Identity:     session.Identity{Username: "alice"},
		AccessToken:  token.Token{Value: "access", ExpiresAt: exp.Unix()},
		RefreshToken: token.Token{Value: "refresh", ExpiresAt: exp.Add(7 * 24 * time.Hour).Unix()},
	}
}

func newStore(t *testing.T) (*filestore.Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state", "session.json")
	store, err := filestore.New(path)
	require.NoError(t, err)
	return store, path
}

func TestNewRequiresPath(t *testing.T) {
	_, err := filestore.New("")
	require.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	store, _ := newStore(t)

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	store, _ := newStore(t)
	saved := testSession()

	require.NoError(t, store.Save(saved))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, saved, loaded)
}

func TestSaveRestrictsPermissions(t *testing.T) {
	store, path := newStore(t)
	require.NoError(t, store.Save(testSession()))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestLoadCorruptFileReadsAsLoggedOut(t *testing.T) {
	store, path := newStore(t)
	require.NoError(t, store.Save(testSession()))

	// Simulate a truncated write from a crashed process.
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data[:len(data)/2], 0o600))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Nil(t, loaded)
}

func TestClear(t *testing.T) {
	store, path := newStore(t)
	require.NoError(t, store.Save(testSession()))

	require.NoError(t, store.Clear())
	_, err := os.Stat(path)
	require.True(t, os.IsNotExist(err))

	// Clearing twice is fine.
	require.NoError(t, store.Clear())
}

func TestSaveOverwrites(t *testing.T) {
	store, _ := newStore(t)
	first := testSession()
	require.NoError(t, store.Save(first))

	second := testSession()
	second.AccessToken.Value = "rotated-access"
	require.NoError(t, store.Save(second))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "rotated-access", loaded.AccessToken.Value)
}
