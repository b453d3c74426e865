// Package pager writes run history to a terminal one page at a time.
package pager

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	"benchlog/internal/format"
	"benchlog/internal/model"
	"benchlog/internal/timeunit"
)

// PageState counts the rows written for the current run of the paginator.
type PageState struct {
	// LinesInPage is the number of rows written since the last prompt.
	LinesInPage int
	// TotalLines is the number of rows on the pages already confirmed.
	TotalLines int
}

// Room returns how many more rows fit on a page of the given height.
func (s PageState) Room(height int) int {
	if s.LinesInPage >= height {
		return 0
	}
	return height - s.LinesInPage
}

// Next starts a fresh page.
func (s PageState) Next() PageState {
	return PageState{TotalLines: s.TotalLines + s.LinesInPage}
}

// PromptText is the question shown when a page is full.
func (s PageState) PromptText() string {
	return fmt.Sprintf("lines %d-%d <return> to continue, <q> to quit", s.TotalLines, s.TotalLines+s.LinesInPage)
}

// PageHeightFor reserves one terminal row for the prompt.
func PageHeightFor(terminalHeight int) int {
	return terminalHeight - 1
}

// Paginator renders each run of a history and waits for confirmation
// whenever a page of PageHeight rows is full.
type Paginator struct {
	Out        io.Writer
	Prompter   Prompter // nil disables prompting
	PageHeight int
	Paginate   bool
	Unit       timeunit.TimeUnit
}

// Run consumes history until it is exhausted or the operator quits.
// Errors produced by history are returned unchanged.
func (p *Paginator) Run(history model.History) error {
	var state PageState

	height := p.PageHeight
	if height <= 0 {
		height = math.MaxInt
	}

	for run, err := range history {
		if err != nil {
			return err
		}

		pending := format.FormatRun(run, p.Unit)
		for len(pending) > 0 {
			n := min(len(pending), state.Room(height))
			if err := p.writeLines(pending[:n]); err != nil {
				return err
			}
			state.LinesInPage += n
			pending = pending[n:]
			if len(pending) == 0 {
				break
			}

			if p.Prompter == nil || !p.Paginate {
				height += state.LinesInPage
				continue
			}

			answer, err := p.Prompter.Ask(state.PromptText())
			if errors.Is(err, io.EOF) {
				return nil
			}
			if err != nil {
				return fmt.Errorf("read pagination answer: %w", err)
			}
			// anything but a bare return means quit
			if strings.ToLower(strings.TrimSpace(answer)) != "" {
				return nil
			}
			// lines of the split block left in pending open the next page
			state = state.Next()
		}
	}

	return nil
}

func (p *Paginator) writeLines(lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(p.Out, line); err != nil {
			return err
		}
	}
	return nil
}
