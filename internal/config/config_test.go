package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// chdir moves the test into a temp dir so project-local config lookups
// don't pick up files from the repo checkout.
func chdir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	orig, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(orig) })
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, ".daoterm", cfg.DataDir)
	require.Equal(t, "info", cfg.LogLevel)
	require.Empty(t, cfg.DefaultDAO)
	require.Empty(t, cfg.RPCURL, "rpc_url has no default, it is required")
	require.NotEmpty(t, cfg.ExplorerURL)
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdir(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("DAOTERM_RPC_URL", "https://rpc.testnet.example:443")
	t.Setenv("DAOTERM_DEFAULT_DAO", "0xd40")
	t.Setenv("DAOTERM_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "https://rpc.testnet.example:443", cfg.RPCURL)
	require.Equal(t, "0xd40", cfg.DefaultDAO)
	require.Equal(t, "debug", cfg.LogLevel)
}

func TestLoad_ProjectConfigOverridesGlobal(t *testing.T) {
	dir := chdir(t)
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)

	globalDir := filepath.Join(xdg, "daoterm")
	require.NoError(t, os.MkdirAll(globalDir, 0755))
	require.NoError(t, os.WriteFile(
		filepath.Join(globalDir, "daoterm.yml"),
		[]byte("rpc_url: https://global.example\ndefault_dao: \"0x1\"\n"), 0644))

	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "daoterm.yml"),
		[]byte("default_dao: \"0x2\"\n"), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	// Project value wins, global fills the rest.
	require.Equal(t, "0x2", cfg.DefaultDAO)
	require.Equal(t, "https://global.example", cfg.RPCURL)
}

func TestWriteAndReadProject(t *testing.T) {
	chdir(t)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := &Config{
		RPCURL:     "https://rpc.example",
		DefaultDAO: "0xabc",
		DataDir:    ".daoterm",
		LogLevel:   "warn",
	}
	require.NoError(t, WriteProject(cfg))
	require.True(t, Exists())

	loaded, err := Load()
	require.NoError(t, err)
	require.Equal(t, "https://rpc.example", loaded.RPCURL)
	require.Equal(t, "0xabc", loaded.DefaultDAO)
	require.Equal(t, "warn", loaded.LogLevel)
}

func TestGlobalPath_UsesXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg-test")
	require.Equal(t, filepath.Join("/tmp/xdg-test", "daoterm", "daoterm.yml"), GlobalPath())
}
