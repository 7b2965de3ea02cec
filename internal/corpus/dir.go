package corpus

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// MarkdownExtensions lists the file extensions the directory provider picks up.
var MarkdownExtensions = map[string]bool{
	".md":       true,
	".markdown": true,
}

// FromDir walks root and collects Markdown files as (logical path, text)
// pairs. Logical paths are slash-separated and relative to root, sorted so
// that runs over the same tree are deterministic. Hidden directories
// (dot-prefixed) are skipped.
func FromDir(root string) ([]File, error) {
	fsys := os.DirFS(root)

	var paths []string
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != "." && strings.HasPrefix(d.Name(), ".") {
				return fs.SkipDir
			}
			return nil
		}
		if MarkdownExtensions[strings.ToLower(filepath.Ext(p))] {
			paths = append(paths, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", root, err)
	}
	sort.Strings(paths)

	files := make([]File, 0, len(paths))
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		files = append(files, File{Path: p, Text: string(data)})
	}
	return files, nil
}

// IsMarkdown reports whether a filename has a Markdown extension.
func IsMarkdown(name string) bool {
	return MarkdownExtensions[strings.ToLower(filepath.Ext(name))]
}
