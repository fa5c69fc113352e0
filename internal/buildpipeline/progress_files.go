package buildpipeline

import (
	"path/filepath"
	"strings"

	"redux/internal/project"
)

// OutputExt is the extension of generated files.
const OutputExt = ".ais"

// displayName makes file relative to baseDir when it lies underneath it.
func displayName(file, baseDir string) string {
	path := filepath.Clean(file)
	base := strings.TrimSpace(baseDir)
	if base == "" {
		return filepath.ToSlash(path)
	}
	if abs, err := filepath.Abs(base); err == nil {
		base = abs
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	if rel, err := filepath.Rel(base, path); err == nil && rel != "." && !strings.HasPrefix(rel, "..") {
		path = rel
	}
	return filepath.ToSlash(path)
}

// DisplayNames maps sources to the names used in progress events.
func DisplayNames(files []string, baseDir string) []string {
	names := make([]string, len(files))
	for i, file := range files {
		names[i] = displayName(file, baseDir)
	}
	return names
}

// OutputPath returns where the generated text for src is written. With an
// empty outDir the file lands next to its source; otherwise the source's
// path relative to baseDir is mirrored under outDir.
func OutputPath(src, outDir, baseDir string) string {
	name := strings.TrimSuffix(src, project.SourceExt) + OutputExt
	if outDir == "" {
		return name
	}
	rel := displayName(name, baseDir)
	if filepath.IsAbs(filepath.FromSlash(rel)) {
		// источник вне baseDir: кладём плоско
		rel = filepath.Base(name)
	}
	return filepath.Join(outDir, filepath.FromSlash(rel))
}
