package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	prefs := Load(t.TempDir())

	require.Equal(t, DefaultPrefs(), prefs)
	require.True(t, prefs.SidebarVisible)
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()

	prefs := &Prefs{
		LastDAO:        "0xd40",
		Followed:       []string{"0xd40", "0xd41"},
		SidebarVisible: false,
	}
	require.NoError(t, Save(dir, prefs))

	loaded := Load(dir)
	require.Equal(t, prefs, loaded)
}

func TestLoad_CorruptFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "prefs.json"), []byte("{not json"), 0644))

	require.Equal(t, DefaultPrefs(), Load(dir))
}

func TestToggleFollow(t *testing.T) {
	prefs := DefaultPrefs()

	require.True(t, prefs.ToggleFollow("0xd40"))
	require.True(t, prefs.IsFollowed("0xd40"))

	require.False(t, prefs.ToggleFollow("0xd40"))
	require.False(t, prefs.IsFollowed("0xd40"))
	require.Empty(t, prefs.Followed)
}

func TestSave_CreatesDataDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	require.NoError(t, Save(dir, DefaultPrefs()))
	require.FileExists(t, filepath.Join(dir, "prefs.json"))
}
