// Package format renders stored benchmark runs for the terminal.
package format

import (
	"fmt"

	"benchlog/internal/model"
	"benchlog/internal/timeunit"
)

// DateLayout is the ISO-8601 layout used for run dates.
const DateLayout = "2006-01-02T15:04:05-07:00"

// BlockLines is the number of lines FormatRun produces, separator included.
const BlockLines = 8

const noContext = "<none>"

// FormatRun renders run as a block of lines terminated by a blank separator.
// Timing values are converted with unit.
func FormatRun(run model.RunRecord, unit timeunit.TimeUnit) []string {
	context := run.Context
	if context == "" {
		context = noContext
	}

	return []string{
		fmt.Sprintf("run %s", run.ID),
		"Date:    " + run.Date.Format(DateLayout),
		"Branch:  " + run.Branch,
		"Context: " + context,
		fmt.Sprintf("Scale:   %d subjects, %d iterations, %d revolutions", run.Subjects, run.Iterations, run.Revolutions),
		fmt.Sprintf(
			"Summary: (best [mean] worst) = %s [%s] %s (%s)",
			timeunit.Number(unit.ToDestUnit(run.MinTime), 3),
			timeunit.Number(unit.ToDestUnit(run.MeanTime), 3),
			timeunit.Number(unit.ToDestUnit(run.MaxTime), 3),
			unit.DestSuffix(),
		),
		fmt.Sprintf(
			"         ⅀T: %s μRSD/r: %s%%",
			unit.Format(run.TotalTime, -1, timeunit.ModeTime),
			timeunit.Number(run.MeanRelStDev, 3),
		),
		"",
	}
}
