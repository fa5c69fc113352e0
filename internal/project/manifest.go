package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"redux/internal/builtins"
	"redux/internal/types"
)

// SourceExt is the extension of redux sources; required paths without it
// get it appended.
const SourceExt = ".redux"

// Manifest is a decoded redux.toml.
type Manifest struct {
	Path    string
	Root    string
	Name    string
	Sources []string
	OutDir  string
	Jobs    int
	Cache   bool
	Globals map[string]types.Type
}

var (
	// ErrPackageSectionMissing indicates that [package] is missing in the manifest.
	ErrPackageSectionMissing = errors.New("missing [package]")
	// ErrNoSources indicates that [build].sources is missing or empty.
	ErrNoSources = errors.New("missing [build].sources")
	// ErrBadGlobal indicates an unsupported type in [globals].
	ErrBadGlobal = errors.New("unsupported global type")
)

type manifestFile struct {
	Package struct {
		Name string `toml:"name"`
	} `toml:"package"`
	Build struct {
		Sources []string `toml:"sources"`
		OutDir  string   `toml:"out_dir"`
		Jobs    int      `toml:"jobs"`
		Cache   *bool    `toml:"cache"`
	} `toml:"build"`
	Globals map[string]string `toml:"globals"`
}

// LoadManifest parses redux.toml at path. Relative paths in it are
// resolved against the manifest's directory.
func LoadManifest(path string) (*Manifest, error) {
	var cfg manifestFile
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if !meta.IsDefined("package") {
		return nil, fmt.Errorf("%s: %w", path, ErrPackageSectionMissing)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%s: unknown key %q", path, undecoded[0].String())
	}
	if len(cfg.Build.Sources) == 0 {
		return nil, fmt.Errorf("%s: %w", path, ErrNoSources)
	}
	root := filepath.Dir(path)
	m := &Manifest{
		Path:    path,
		Root:    root,
		Name:    strings.TrimSpace(cfg.Package.Name),
		Jobs:    cfg.Build.Jobs,
		Cache:   cfg.Build.Cache == nil || *cfg.Build.Cache,
		Globals: make(map[string]types.Type, len(cfg.Globals)),
	}
	if m.Name == "" {
		m.Name = filepath.Base(root)
	}
	for _, src := range cfg.Build.Sources {
		m.Sources = append(m.Sources, resolve(root, src))
	}
	if cfg.Build.OutDir != "" {
		m.OutDir = resolve(root, cfg.Build.OutDir)
	}
	for name, typeName := range cfg.Globals {
		t, ok := builtins.ParseGlobalType(typeName)
		if !ok {
			return nil, fmt.Errorf("%s: [globals].%s = %q: %w", path, name, typeName, ErrBadGlobal)
		}
		m.Globals[name] = t
	}
	return m, nil
}

func resolve(root, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(root, p)
}

// SourceFiles expands directories in the manifest's sources to the redux
// files they contain, sorted and without duplicates.
func (m *Manifest) SourceFiles() ([]string, error) {
	return ExpandSources(m.Sources)
}

// ExpandSources replaces each directory in paths with the *.redux files
// found under it.
func ExpandSources(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && filepath.Ext(path) == SourceExt {
				out = append(out, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	slices.Sort(out)
	return slices.Compact(out), nil
}
