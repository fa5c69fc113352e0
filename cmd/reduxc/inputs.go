package main

import (
	"fmt"
	"os"

	"redux/internal/builtins"
	"redux/internal/project"
)

// buildInputs is what a command compiles: explicit arguments, or the
// sources of the nearest redux.toml.
type buildInputs struct {
	files    []string
	baseDir  string
	manifest *project.Manifest
}

func (in *buildInputs) host() *builtins.Host {
	if in.manifest == nil || len(in.manifest.Globals) == 0 {
		return builtins.Default()
	}
	return builtins.Default().WithGlobals(in.manifest.Globals)
}

func resolveInputs(args []string) (*buildInputs, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	if len(args) > 0 {
		// явные файлы обходят манифест
		files, err := project.ExpandSources(args)
		if err != nil {
			return nil, err
		}
		return &buildInputs{files: files, baseDir: cwd}, nil
	}

	path, ok, err := project.FindManifest(cwd)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no input files and no %s found", project.ManifestName)
	}
	m, err := project.LoadManifest(path)
	if err != nil {
		return nil, err
	}
	files, err := m.SourceFiles()
	if err != nil {
		return nil, err
	}
	return &buildInputs{files: files, baseDir: m.Root, manifest: m}, nil
}

// hostFor returns the predeclared globals for a single-file command run
// from inside a project.
func hostFor() *builtins.Host {
	cwd, err := os.Getwd()
	if err != nil {
		return builtins.Default()
	}
	path, ok, err := project.FindManifest(cwd)
	if err != nil || !ok {
		return builtins.Default()
	}
	m, err := project.LoadManifest(path)
	if err != nil {
		return builtins.Default()
	}
	return (&buildInputs{manifest: m}).host()
}
