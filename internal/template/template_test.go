package template

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender_ReplacesAllPlaceholders(t *testing.T) {
	out := Render("{{name}} / {{dao}} / {{kind}} / {{date}}", Variables{
		Name: "Grants Q3",
		DAO:  "Nebula",
		Kind: "transfer",
		Date: "2026-08-29",
	})
	require.Equal(t, "Grants Q3 / Nebula / transfer / 2026-08-29", out)
}

func TestRender_LeavesUnknownPlaceholders(t *testing.T) {
	out := Render("{{name}} {{unknown}}", Variables{Name: "x"})
	require.Equal(t, "x {{unknown}}", out)
}

func TestForKind_BuiltIns(t *testing.T) {
	for _, kind := range []string{"transfer", "config", "deps", "vesting"} {
		tmpl := ForKind("", kind)
		require.Contains(t, tmpl, "{{name}}", "kind %s", kind)
		require.Contains(t, tmpl, "## Summary", "kind %s", kind)
	}
}

func TestForKind_UnknownFallsBackToGeneric(t *testing.T) {
	require.Equal(t, genericTemplate, ForKind("", "mystery"))
}

func TestForKind_CustomOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "templates"), 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "templates", "transfer.md"),
		[]byte("custom {{dao}} skeleton"), 0o644))

	out := Seed(dir, "transfer", Variables{DAO: "Nebula"})
	require.Equal(t, "custom Nebula skeleton", out)
}

func TestSeed_FillsKind(t *testing.T) {
	out := Seed("", "mystery", Variables{Name: "N", DAO: "D", Date: "2026-08-29"})
	require.Contains(t, out, "A mystery proposal for D")
}
