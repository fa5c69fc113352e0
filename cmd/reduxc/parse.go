package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"redux/internal/ast"
	"redux/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.redux",
	Short: "Parse a redux source file and print its tree",
	Long:  `Parse runs the front end and require resolution and prints the resulting tree`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStage(cmd, args[0], driver.StageParse, func(res *driver.Result) error {
			return ast.Dump(cmd.OutOrStdout(), res.Program)
		})
	},
}

var checkCmd = &cobra.Command{
	Use:   "check [flags] file.redux",
	Short: "Type-check a redux source file",
	Long:  `Check runs the pipeline through type annotation and reports diagnostics without generating code`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStage(cmd, args[0], driver.StageAnalyze, nil)
	},
}

// runStage compiles path up to stage; show runs only on success.
func runStage(cmd *cobra.Command, path string, stage driver.Stage, show func(*driver.Result) error) error {
	maxDiags, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}

	res, err := driver.Compile(cmd.Context(), path, &driver.Options{
		Stage:          stage,
		MaxDiagnostics: maxDiags,
		Host:           hostFor(),
		EnableTimings:  timings,
	})
	if err != nil {
		return err
	}
	failed, err := printDiagnostics(cmd, res.Bag, res.FileSet)
	if err != nil {
		return err
	}
	if failed {
		return errReported
	}
	if show != nil {
		return show(res)
	}
	return nil
}
