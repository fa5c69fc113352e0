package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"redux/internal/buildpipeline"
	"redux/internal/driver"
	"redux/internal/project"
	"redux/internal/ui"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [files or directories...]",
	Short: "Compile redux sources to AIS",
	Long: `Build compiles every given file (directories are searched for *.redux)
into an .ais file. Without arguments the sources listed in the nearest
redux.toml are built.`,
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().String("out-dir", "", "directory for generated files (default: next to each source)")
	buildCmd.Flags().Int("jobs", 0, "max parallel units (0=auto)")
	buildCmd.Flags().Bool("no-cache", false, "do not read or write the output cache")
	buildCmd.Flags().Bool("stdout", false, "write generated code to stdout instead of files")
	buildCmd.Flags().String("ui", "auto", "progress output (auto|tui|plain)")
}

func runBuild(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	outDir, err := flags.GetString("out-dir")
	if err != nil {
		return fmt.Errorf("failed to get out-dir flag: %w", err)
	}
	jobs, err := flags.GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	noCache, err := flags.GetBool("no-cache")
	if err != nil {
		return fmt.Errorf("failed to get no-cache flag: %w", err)
	}
	toStdout, err := flags.GetBool("stdout")
	if err != nil {
		return fmt.Errorf("failed to get stdout flag: %w", err)
	}
	uiValue, err := flags.GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiValue)
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	timings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	maxDiags, err := maxDiagnostics(cmd)
	if err != nil {
		return err
	}

	in, err := resolveInputs(args)
	if err != nil {
		return err
	}
	if len(in.files) == 0 {
		return fmt.Errorf("no %s sources to build", project.SourceExt)
	}

	useCache := !noCache
	if in.manifest != nil {
		if outDir == "" {
			outDir = in.manifest.OutDir
		}
		if jobs == 0 {
			jobs = in.manifest.Jobs
		}
		useCache = useCache && in.manifest.Cache
	}
	var cache *driver.DiskCache
	if useCache {
		// кэш необязателен: при ошибке просто собираем без него
		if c, cacheErr := driver.OpenDiskCache("reduxc"); cacheErr == nil {
			cache = c
		}
	}

	req := &buildpipeline.BuildRequest{
		Files:          in.files,
		BaseDir:        in.baseDir,
		OutDir:         outDir,
		Jobs:           jobs,
		MaxDiagnostics: maxDiags,
		Host:           in.host(),
		Cache:          cache,
		EnableTimings:  timings,
	}
	if toStdout {
		req.Stdout = cmd.OutOrStdout()
	}

	var res buildpipeline.BuildResult
	switch {
	case !quiet && !toStdout && shouldUseTUI(mode):
		title := "building"
		if in.manifest != nil && in.manifest.Name != "" {
			title = "building " + in.manifest.Name
		}
		res, err = runBuildWithUI(cmd.Context(), title, req)
	default:
		if !quiet && !toStdout {
			req.Progress = ui.NewPlainSink(cmd.OutOrStdout())
		}
		res, err = buildpipeline.Build(cmd.Context(), req)
	}

	for _, unit := range res.Units {
		if _, printErr := printDiagnostics(cmd, unit.Bag, unit.FileSet); printErr != nil {
			return printErr
		}
	}
	if timings {
		printStageTimings(cmd.ErrOrStderr(), res.Timings)
	}
	if errors.Is(err, buildpipeline.ErrUnitsFailed) {
		return errReported
	}
	return err
}
