package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"redux/internal/prof"
)

// setupProfiling starts the profilers requested on the command line; the
// returned function stops them and writes the heap profile.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	flags := cmd.Root().PersistentFlags()
	cpuPath, err := flags.GetString("cpuprofile")
	if err != nil {
		return nil, fmt.Errorf("failed to get cpuprofile flag: %w", err)
	}
	memPath, err := flags.GetString("memprofile")
	if err != nil {
		return nil, fmt.Errorf("failed to get memprofile flag: %w", err)
	}
	tracePath, err := flags.GetString("runtime-trace")
	if err != nil {
		return nil, fmt.Errorf("failed to get runtime-trace flag: %w", err)
	}

	if cpuPath != "" {
		if err := prof.StartCPU(cpuPath); err != nil {
			return nil, fmt.Errorf("cpu profile: %w", err)
		}
	}
	if tracePath != "" {
		if err := prof.StartTrace(tracePath); err != nil {
			prof.StopCPU()
			return nil, fmt.Errorf("runtime trace: %w", err)
		}
	}
	return func() {
		prof.StopTrace()
		prof.StopCPU()
		if memPath != "" {
			if err := prof.WriteMem(memPath); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "mem profile: %v\n", err)
			}
		}
	}, nil
}
