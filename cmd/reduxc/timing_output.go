package main

import (
	"fmt"
	"io"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"redux/internal/buildpipeline"
)

func printStageTimings(out io.Writer, timings *buildpipeline.Timings) {
	if out == nil || timings == nil {
		return
	}
	title := cases.Title(language.English)
	for _, stage := range buildpipeline.Stages {
		if !timings.Has(stage) {
			continue
		}
		fmt.Fprintf(out, "%-8s %7.1f ms\n", title.String(string(stage)), toMillis(timings.Duration(stage)))
	}
	fmt.Fprintf(out, "%-8s %7.1f ms\n", "Total", toMillis(timings.Sum(buildpipeline.Stages...)))
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
