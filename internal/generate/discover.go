package generate

import (
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/samber/lo"
)

// skipDirs are top-level directories never treated as packs.
var skipDirs = []string{
	".git",
	".github",
	"node_modules",
	"vendor",
	"docs",
	"scripts",
	"dist",
	"build",
	".venv",
	".idea",
	".vscode",
}

func shouldSkipDir(name string) bool {
	if strings.HasPrefix(name, ".") && name != "." {
		return true
	}
	for _, s := range skipDirs {
		if strings.EqualFold(name, s) {
			return true
		}
	}
	return false
}

// Discover finds the pack directories under root: every directory holding a
// file that matches glob (the pack is the glob's first path segment), plus
// every top-level directory with a skills/ or agents/ subdirectory. Names are
// returned sorted.
func Discover(root, glob string) ([]string, error) {
	fsys := os.DirFS(root)
	var found []string

	if glob != "" {
		matches, err := doublestar.Glob(fsys, glob)
		if err != nil {
			return nil, err
		}
		for _, m := range matches {
			dir, _, _ := strings.Cut(m, "/")
			if dir != m && !shouldSkipDir(dir) {
				found = append(found, dir)
			}
		}
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if !e.IsDir() || shouldSkipDir(e.Name()) {
			continue
		}
		if isDir(root, path.Join(e.Name(), "skills")) || isDir(root, path.Join(e.Name(), "agents")) {
			found = append(found, e.Name())
		}
	}

	found = lo.Uniq(found)
	sort.Strings(found)
	return found, nil
}

func isDir(root, rel string) bool {
	info, err := os.Stat(filepath.Join(root, filepath.FromSlash(rel)))
	return err == nil && info.IsDir()
}
