package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"redux/internal/diag"
	"redux/internal/diagfmt"
	"redux/internal/source"
)

var useColor bool

func setupColor(cmd *cobra.Command) error {
	mode, err := cmd.Root().PersistentFlags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "on":
		useColor = true
	case "off":
		useColor = false
	case "", "auto":
		useColor = isTerminal(os.Stderr)
	default:
		return fmt.Errorf("invalid --color value %q (expected auto|on|off)", mode)
	}
	color.NoColor = !useColor
	return nil
}

// printDiagnostics writes bag to stderr in the format chosen by
// --diagnostics and reports whether it held errors.
func printDiagnostics(cmd *cobra.Command, bag *diag.Bag, fs *source.FileSet) (bool, error) {
	if bag == nil || bag.Len() == 0 {
		return false, nil
	}
	format, err := cmd.Root().PersistentFlags().GetString("diagnostics")
	if err != nil {
		return false, fmt.Errorf("failed to get diagnostics flag: %w", err)
	}
	out := cmd.ErrOrStderr()
	switch format {
	case "short":
		err = diagfmt.Short(out, bag, fs)
	case "pretty":
		cwd, _ := os.Getwd()
		diagfmt.Pretty(out, bag, fs, diagfmt.PrettyOpts{
			Color:     useColor,
			PathMode:  diagfmt.PathModeRelative,
			BaseDir:   cwd,
			ShowNotes: true,
		})
	case "json":
		err = diagfmt.JSON(out, bag, fs, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: true})
	default:
		return false, fmt.Errorf("unknown diagnostics format: %s", format)
	}
	return bag.HasErrors(), err
}

func maxDiagnostics(cmd *cobra.Command) (int, error) {
	n, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return 0, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	return n, nil
}
