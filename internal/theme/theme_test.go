package theme

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProcessImports_NoImports(t *testing.T) {
	css := `.alert-banner { color: red; }`
	assert.Equal(t, css, ProcessImports(css, "", nil))
}

func TestProcessImports_NestedImports(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "_grandchild.css", `.grandchild { color: blue; }`)
	writeFile(t, dir, "_child.css", "@import \"_grandchild.css\";\n.child { color: green; }")

	result := ProcessImports("@import \"_child.css\";\n.main { color: red; }", dir, nil)

	assert.Contains(t, result, "/* imported: _child.css */")
	assert.Contains(t, result, "/* imported: _grandchild.css */")
	assert.Contains(t, result, ".grandchild")
	assert.Contains(t, result, ".main")
}

func TestProcessImports_CircularPrevention(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "_a.css", "@import \"_b.css\";\n.a { color: red; }")
	writeFile(t, dir, "_b.css", "@import \"_a.css\";\n.b { color: blue; }")

	result := ProcessImports(`@import "_a.css";`, dir, nil)

	assert.Contains(t, result, "/* imported: _b.css */")
	assert.Contains(t, result, "/* circular import prevented: _a.css */")
}

func TestProcessImports_EmbeddedFallbacks(t *testing.T) {
	result := ProcessImports(`@import "_base.css";`, "/nonexistent/path", nil)
	assert.Contains(t, result, "/* imported (embedded): _base.css */")

	result = ProcessImports(`@import "default.css";`, "/nonexistent/path", nil)
	assert.Contains(t, result, "/* imported (embedded): default.css */")
	assert.Contains(t, result, ".alert-title")

	result = ProcessImports(`@import "nonexistent.css";`, "/tmp", nil)
	assert.Contains(t, result, "/* import failed: nonexistent.css")
}

func TestImportRegex(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{`@import "file.css";`, "file.css"},
		{`@import 'file.css';`, "file.css"},
		{`@import url("file.css");`, "file.css"},
		{`@import url( "file.css" );`, "file.css"},
		{`@import "_partial.css"`, "_partial.css"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			matches := importRegex.FindStringSubmatch(tt.input)
			require.Len(t, matches, 2)
			assert.Equal(t, tt.expected, matches[1])
		})
	}
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "default.css", `.alert-banner { color: hotpink; }`)
	writeFile(t, dir, "mine.css", `.alert-banner { color: teal; }`)

	th, err := Resolve("default", dir)
	require.NoError(t, err)
	assert.False(t, th.Bundled, "user file overrides bundled theme")
	assert.Contains(t, th.CSS, "hotpink")

	th, err = Resolve("minimal", dir)
	require.NoError(t, err)
	assert.True(t, th.Bundled)

	th, err = Resolve("", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultThemeName, th.Name)

	th, err = Resolve("missing", dir)
	assert.Error(t, err)
	require.NotNil(t, th)
	assert.Equal(t, DefaultThemeName, th.Name)
}

func TestTheme_Reload(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "test.css", `.alert-banner { color: red; }`)

	th, err := NewTheme("test", path)
	require.NoError(t, err)

	writeFile(t, dir, "_new.css", `:root { --new-color: blue; }`)
	writeFile(t, dir, "test.css", "@import \"_new.css\";\n.alert-banner { color: var(--new-color); }")
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	changed, err := th.Reload()
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Contains(t, th.CSS, "--new-color: blue")

	changed, err = th.Reload()
	require.NoError(t, err)
	assert.False(t, changed)

	bundled, err := Resolve("default", "")
	require.NoError(t, err)
	changed, err = bundled.Reload()
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestListAvailable(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "minimal.css", `.x {}`)
	writeFile(t, dir, "neon.css", `.x {}`)
	writeFile(t, dir, "_partial.css", `.x {}`)

	themes, err := ListAvailable(dir)
	require.NoError(t, err)

	byName := map[string]Info{}
	for _, th := range themes {
		byName[th.Name] = th
	}
	assert.True(t, byName["default"].Bundled)
	assert.False(t, byName["minimal"].Bundled)
	assert.Equal(t, filepath.Join(dir, "neon.css"), byName["neon"].Path)
	assert.NotContains(t, byName, "_partial")

	themes, err = ListAvailable(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.Len(t, themes, len(BundledThemes))
}
