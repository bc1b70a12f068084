package runner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// makefileNames are the file names Make itself searches for, in its
// search order.
var makefileNames = map[string]bool{
	"GNUmakefile": true,
	"makefile":    true,
	"Makefile":    true,
}

// skipDirs are directories never worth descending into.
var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
	"vendor":       true,
	".cache":       true,
}

// collectFiles expands the path arguments: files pass through, and
// directories are walked for Makefiles and *.mk fragments. The result is
// deduplicated and sorted.
func collectFiles(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string

	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		if !info.IsDir() {
			add(path)
			continue
		}

		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if p != path && skipDirs[d.Name()] {
					return filepath.SkipDir
				}
				return nil
			}
			if makefileNames[d.Name()] || strings.HasSuffix(d.Name(), ".mk") {
				add(p)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walking %s: %w", path, err)
		}
	}

	sort.Strings(files)
	return files, nil
}
