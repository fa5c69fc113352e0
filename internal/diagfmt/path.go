package diagfmt

import (
	"path/filepath"

	"redux/internal/source"
)

func displayPath(f *source.File, mode PathMode, baseDir string) string {
	if f.Flags&source.FileVirtual != 0 {
		return f.Path
	}
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return abs
		}
	case PathModeRelative:
		base := baseDir
		if base == "" {
			base = "."
		}
		absBase, err1 := filepath.Abs(base)
		absPath, err2 := filepath.Abs(f.Path)
		if err1 == nil && err2 == nil {
			if rel, err := filepath.Rel(absBase, absPath); err == nil {
				return rel
			}
		}
	case PathModeBasename:
		return filepath.Base(f.Path)
	}
	return f.Path
}
