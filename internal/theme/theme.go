package theme

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// importRegex matches @import "file.css"; or @import 'file.css'; or @import url("file.css");
var importRegex = regexp.MustCompile(`@import\s+(?:url\s*\(\s*)?["']([^"']+)["']\s*\)?;?`)

// Theme is a CSS theme with its imports inlined.
type Theme struct {
	Name    string
	Path    string // Empty for bundled themes
	CSS     string
	ModTime time.Time
	Bundled bool
}

// ThemesDir returns the user themes directory.
func ThemesDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "alertkit", "themes"), nil
}

// NewTheme loads a theme from a CSS file, inlining its imports.
func NewTheme(name, path string) (*Theme, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	css, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	return &Theme{
		Name:    name,
		Path:    path,
		CSS:     ProcessImports(string(css), filepath.Dir(path), nil),
		ModTime: info.ModTime(),
	}, nil
}

// Resolve finds a theme by name. A file in dir takes precedence over a
// bundled theme of the same name. An unknown name falls back to the default
// theme and reports an error alongside it.
func Resolve(name, dir string) (*Theme, error) {
	if name == "" {
		name = DefaultThemeName
	}

	var userErr error
	if dir != "" {
		path := filepath.Join(dir, name+".css")
		if _, err := os.Stat(path); err == nil {
			t, err := NewTheme(name, path)
			if err == nil {
				return t, nil
			}
			userErr = fmt.Errorf("failed to load user theme %q: %w", name, err)
		}
	}

	if css, found := GetEmbeddedTheme(name); found {
		return &Theme{Name: name, CSS: ProcessImports(css, "", nil), Bundled: true}, userErr
	}

	css, _ := GetEmbeddedTheme(DefaultThemeName)
	fallback := &Theme{Name: DefaultThemeName, CSS: ProcessImports(css, "", nil), Bundled: true}
	return fallback, errors.Join(userErr, fmt.Errorf("theme %q not found, using %s", name, DefaultThemeName))
}

// ProcessImports resolves and inlines @import statements in CSS. Imports
// are resolved relative to baseDir, then against bundled partials and
// themes. seen guards against circular imports.
func ProcessImports(css string, baseDir string, seen map[string]bool) string {
	if seen == nil {
		seen = make(map[string]bool)
	}

	return importRegex.ReplaceAllStringFunc(css, func(match string) string {
		submatch := importRegex.FindStringSubmatch(match)
		if len(submatch) < 2 {
			return match
		}
		importPath := submatch[1]

		fullPath := importPath
		if !filepath.IsAbs(importPath) {
			fullPath = filepath.Join(baseDir, importPath)
		}
		if seen[fullPath] {
			return "/* circular import prevented: " + importPath + " */"
		}
		seen[fullPath] = true

		imported, err := os.ReadFile(fullPath)
		if err != nil {
			baseName := filepath.Base(importPath)
			if strings.HasPrefix(baseName, "_") {
				if embedded, found := GetEmbeddedPartial(baseName); found {
					return "/* imported (embedded): " + importPath + " */\n" + embedded
				}
			}
			if embedded, found := GetEmbeddedTheme(strings.TrimSuffix(baseName, ".css")); found {
				return "/* imported (embedded): " + importPath + " */\n" + ProcessImports(embedded, "", seen)
			}
			return "/* import failed: " + importPath + " - " + err.Error() + " */"
		}

		return "/* imported: " + importPath + " */\n" + ProcessImports(string(imported), filepath.Dir(fullPath), seen)
	})
}

// Reload re-reads a user theme from disk. It reports whether the CSS
// changed. Bundled themes never change.
func (t *Theme) Reload() (bool, error) {
	if t.Bundled || t.Path == "" {
		return false, nil
	}

	info, err := os.Stat(t.Path)
	if err != nil {
		return false, err
	}
	if !info.ModTime().After(t.ModTime) {
		return false, nil
	}

	css, err := os.ReadFile(t.Path)
	if err != nil {
		return false, err
	}

	old := t.CSS
	t.CSS = ProcessImports(string(css), filepath.Dir(t.Path), nil)
	t.ModTime = info.ModTime()
	return old != t.CSS, nil
}

// Info describes an available theme.
type Info struct {
	Name    string
	Path    string
	Bundled bool
}

// ListAvailable lists bundled themes followed by user themes in dir. A user
// theme with a bundled name replaces the bundled entry.
func ListAvailable(dir string) ([]Info, error) {
	index := make(map[string]int)
	var themes []Info

	for _, name := range ListEmbeddedThemes() {
		index[name] = len(themes)
		themes = append(themes, Info{Name: name, Bundled: true})
	}

	if dir == "" {
		return themes, nil
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return themes, nil
		}
		return themes, err
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || filepath.Ext(name) != ".css" || strings.HasPrefix(name, "_") {
			continue
		}
		info := Info{Name: strings.TrimSuffix(name, ".css"), Path: filepath.Join(dir, name)}
		if i, ok := index[info.Name]; ok {
			themes[i] = info
			continue
		}
		index[info.Name] = len(themes)
		themes = append(themes, info)
	}
	return themes, nil
}
