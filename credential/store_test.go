package credential_test

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/sagarc03/tinifycli"
	"github.com/sagarc03/tinifycli/credential"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDirFor(t *testing.T) {
	assert.Equal(t, filepath.Join("/home/alice", ".tinifycli"), credential.DirFor("/home/alice"))
	assert.Equal(t, filepath.Join(".", ".tinifycli"), credential.DirFor(""))
}

func TestDefaultDir_UsesHome(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "plan9" {
		t.Skip("home directory is not read from HOME on this platform")
	}
	home := t.TempDir()
	t.Setenv("HOME", home)

	assert.Equal(t, filepath.Join(home, ".tinifycli"), credential.DefaultDir())
}

func TestDefaultDir_FallsBackToWorkingDirectory(t *testing.T) {
	if runtime.GOOS == "windows" || runtime.GOOS == "plan9" {
		t.Skip("home directory is not read from HOME on this platform")
	}
	t.Setenv("HOME", "")

	assert.Equal(t, filepath.Join(".", ".tinifycli"), credential.DefaultDir())
}

func TestStore_Path(t *testing.T) {
	store := credential.NewStore("/tmp/cfg")
	assert.Equal(t, "/tmp/cfg", store.Dir())
	assert.Equal(t, filepath.Join("/tmp/cfg", "key"), store.Path())
}

func TestStore_SaveLoad(t *testing.T) {
	tests := []struct {
		name string
		key  string
		want string
	}{
		{name: "plain key", key: "abc123", want: "abc123"},
		{name: "surrounding whitespace", key: "  abc123\n", want: "abc123"},
		{name: "tabs and newlines", key: "\t\nkey-with-dash\r\n", want: "key-with-dash"},
		{name: "inner spaces kept", key: " a b ", want: "a b"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store := credential.NewStore(filepath.Join(t.TempDir(), ".tinifycli"))

			require.NoError(t, store.Save(tc.key))

			got, err := store.Load()
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestStore_Save_CreatesNestedDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", ".tinifycli")
	store := credential.NewStore(dir)

	require.NoError(t, store.Save("key"))

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestStore_Save_Overwrites(t *testing.T) {
	store := credential.NewStore(filepath.Join(t.TempDir(), ".tinifycli"))

	require.NoError(t, store.Save("first-key-that-is-long"))
	require.NoError(t, store.Save("second"))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "second", got)
}

func TestStore_Save_OwnerOnlyPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no permission bits on windows")
	}
	store := credential.NewStore(filepath.Join(t.TempDir(), ".tinifycli"))

	require.NoError(t, os.MkdirAll(store.Dir(), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte("old"), 0o644))

	require.NoError(t, store.Save("new"))

	info, err := os.Stat(store.Path())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestStore_Save_DirectoryIsAFile(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, ".tinifycli")
	require.NoError(t, os.WriteFile(blocker, []byte("not a dir"), 0o600))

	err := credential.NewStore(blocker).Save("key")
	assert.Error(t, err)
}

func TestStore_Load_NotFound(t *testing.T) {
	store := credential.NewStore(filepath.Join(t.TempDir(), ".tinifycli"))

	_, err := store.Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, tinifycli.ErrNotFound))
}

func TestStore_Load_OtherErrorIsNotNotFound(t *testing.T) {
	dir := filepath.Join(t.TempDir(), ".tinifycli")
	store := credential.NewStore(dir)

	// a directory where the key file should be fails to read with a non-ENOENT error
	require.NoError(t, os.MkdirAll(store.Path(), 0o700))

	_, err := store.Load()
	require.Error(t, err)
	assert.False(t, errors.Is(err, tinifycli.ErrNotFound))
}
