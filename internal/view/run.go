// Package view renders the run history of a storage for the log command.
package view

import (
	"fmt"
	"io"
	"os"
	"strings"

	"benchlog/internal/format"
	"benchlog/internal/logger"
	"benchlog/internal/model"
	"benchlog/internal/pager"
	"benchlog/internal/timeunit"
)

// Options defines the configurable parameters for rendering the history.
type Options struct {
	Format   string
	Unit     timeunit.TimeUnit
	Paginate bool
	Out      io.Writer
	OutFile  *os.File
	In       io.Reader
	InFile   *os.File
	// Prompter overrides the prompter built from In; used when In is not
	// a terminal but answers are still expected.
	Prompter pager.Prompter
	// TerminalHeight overrides the queried height when positive.
	TerminalHeight int
}

// Run renders history according to the provided options.
func Run(history model.History, opts Options) error {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}

	formatMode := strings.ToLower(opts.Format)
	if formatMode == "" {
		formatMode = "text"
	}

	switch formatMode {
	case "text":
		return runPaginated(history, opts)
	case "table", "json", "jsonl":
		return format.WriteRuns(opts.Out, history, opts.Unit, formatMode)
	default:
		return fmt.Errorf("unsupported format: %s", opts.Format)
	}
}

func runPaginated(history model.History, opts Options) error {
	height := opts.TerminalHeight
	if height <= 0 {
		_, height = pager.TerminalSize(opts.OutFile)
	}

	prompter := resolvePrompter(opts)
	log := logger.Component("view")
	log.WithField("height", height).WithField("interactive", prompter != nil).Debug("render history")

	p := &pager.Paginator{
		Out:        opts.Out,
		Prompter:   prompter,
		PageHeight: pager.PageHeightFor(height),
		Paginate:   opts.Paginate && height > 0,
		Unit:       opts.Unit,
	}
	return p.Run(history)
}

// resolvePrompter returns nil unless answers can be read interactively.
func resolvePrompter(opts Options) pager.Prompter {
	if opts.Prompter != nil {
		return opts.Prompter
	}
	if opts.In == nil || !pager.IsTerminal(opts.InFile) || !pager.IsTerminal(opts.OutFile) {
		return nil
	}
	return pager.NewLinePrompter(opts.In, opts.Out)
}
