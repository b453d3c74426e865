package pager

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"benchlog/internal/format"
	"benchlog/internal/model"
	"benchlog/internal/timeunit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptedPrompter struct {
	answers []string
	prompts []string
	err     error
}

func (p *scriptedPrompter) Ask(prompt string) (string, error) {
	p.prompts = append(p.prompts, prompt)
	if p.err != nil {
		return "", p.err
	}
	if len(p.answers) == 0 {
		return "", nil
	}
	answer := p.answers[0]
	p.answers = p.answers[1:]
	return answer, nil
}

// countingHistory yields n runs and records how many were pulled.
func countingHistory(n int, pulled *int) model.History {
	return func(yield func(model.RunRecord, error) bool) {
		for i := 0; i < n; i++ {
			*pulled++
			run := model.RunRecord{
				ID:   fmt.Sprintf("run-%03d", i),
				Date: time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC),
			}
			if !yield(run, nil) {
				return
			}
		}
	}
}

func outputLines(buf *bytes.Buffer) []string {
	text := buf.String()
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

func TestRunSplitsBlocksAcrossPages(t *testing.T) {
	var buf bytes.Buffer
	var pulled int
	prompter := &scriptedPrompter{}
	p := &Paginator{Out: &buf, Prompter: prompter, PageHeight: 10, Paginate: true, Unit: timeunit.Default()}

	require.NoError(t, p.Run(countingHistory(3, &pulled)))

	assert.Equal(t, 3, pulled)
	assert.Equal(t, []string{
		"lines 0-10 <return> to continue, <q> to quit",
		"lines 10-20 <return> to continue, <q> to quit",
	}, prompter.prompts)

	lines := outputLines(&buf)
	require.Len(t, lines, 3*format.BlockLines)
	assert.Equal(t, "run run-000", lines[0])
	assert.Equal(t, "run run-001", lines[format.BlockLines])
	assert.Equal(t, "run run-002", lines[2*format.BlockLines])
}

func TestRunQuitStopsConsumingHistory(t *testing.T) {
	var buf bytes.Buffer
	var pulled int
	prompter := &scriptedPrompter{answers: []string{"q"}}
	p := &Paginator{Out: &buf, Prompter: prompter, PageHeight: 10, Paginate: true, Unit: timeunit.Default()}

	require.NoError(t, p.Run(countingHistory(50, &pulled)))

	assert.Len(t, prompter.prompts, 1)
	assert.Equal(t, 2, pulled)
	assert.Len(t, outputLines(&buf), 10)
}

func TestRunAnyNonBlankAnswerQuits(t *testing.T) {
	for _, answer := range []string{"Q", "no", "  x  "} {
		var buf bytes.Buffer
		var pulled int
		prompter := &scriptedPrompter{answers: []string{answer}}
		p := &Paginator{Out: &buf, Prompter: prompter, PageHeight: 5, Paginate: true, Unit: timeunit.Default()}

		require.NoError(t, p.Run(countingHistory(10, &pulled)))
		assert.Equal(t, 1, pulled, answer)
		assert.Len(t, outputLines(&buf), 5, answer)
	}
}

func TestRunBlankAnswersEmitEverything(t *testing.T) {
	var buf bytes.Buffer
	var pulled int
	prompter := &scriptedPrompter{answers: []string{"", " ", "\t"}}
	p := &Paginator{Out: &buf, Prompter: prompter, PageHeight: 23, Paginate: true, Unit: timeunit.Default()}

	require.NoError(t, p.Run(countingHistory(40, &pulled)))

	assert.Equal(t, 40, pulled)
	assert.Len(t, outputLines(&buf), 40*format.BlockLines)
	for _, prompt := range prompter.prompts {
		assert.True(t, strings.HasPrefix(prompt, "lines "), prompt)
	}
	// 320 rows on pages of 23 rows, no prompt after the last page
	assert.Len(t, prompter.prompts, 13)
}

func TestRunExactFitPromptsBeforeNextRun(t *testing.T) {
	var buf bytes.Buffer
	var pulled int
	prompter := &scriptedPrompter{}
	p := &Paginator{Out: &buf, Prompter: prompter, PageHeight: format.BlockLines, Paginate: true, Unit: timeunit.Default()}

	require.NoError(t, p.Run(countingHistory(2, &pulled)))

	assert.Equal(t, []string{"lines 0-8 <return> to continue, <q> to quit"}, prompter.prompts)
	assert.Len(t, outputLines(&buf), 2*format.BlockLines)
}

func TestRunNoPromptForPartialLastPage(t *testing.T) {
	var buf bytes.Buffer
	var pulled int
	prompter := &scriptedPrompter{}
	p := &Paginator{Out: &buf, Prompter: prompter, PageHeight: 100, Paginate: true, Unit: timeunit.Default()}

	require.NoError(t, p.Run(countingHistory(3, &pulled)))
	assert.Empty(t, prompter.prompts)
	assert.Len(t, outputLines(&buf), 3*format.BlockLines)
}

func TestRunPaginationDisabled(t *testing.T) {
	var buf bytes.Buffer
	var pulled int
	prompter := &scriptedPrompter{answers: []string{"q"}}
	p := &Paginator{Out: &buf, Prompter: prompter, PageHeight: 10, Paginate: false, Unit: timeunit.Default()}

	require.NoError(t, p.Run(countingHistory(100, &pulled)))

	assert.Empty(t, prompter.prompts)
	assert.Len(t, outputLines(&buf), 100*format.BlockLines)
}

func TestRunWithoutPrompter(t *testing.T) {
	var buf bytes.Buffer
	var pulled int
	p := &Paginator{Out: &buf, PageHeight: 3, Paginate: true, Unit: timeunit.Default()}

	require.NoError(t, p.Run(countingHistory(20, &pulled)))
	assert.Len(t, outputLines(&buf), 20*format.BlockLines)
}

func TestRunNonPositiveHeightDisablesPagination(t *testing.T) {
	for _, height := range []int{0, -1, -40} {
		var buf bytes.Buffer
		var pulled int
		prompter := &scriptedPrompter{answers: []string{"q"}}
		p := &Paginator{Out: &buf, Prompter: prompter, PageHeight: height, Paginate: true, Unit: timeunit.Default()}

		require.NoError(t, p.Run(countingHistory(5, &pulled)))
		assert.Empty(t, prompter.prompts)
		assert.Len(t, outputLines(&buf), 5*format.BlockLines)
	}
}

func TestRunEmptyHistory(t *testing.T) {
	var buf bytes.Buffer
	var pulled int
	prompter := &scriptedPrompter{}
	p := &Paginator{Out: &buf, Prompter: prompter, PageHeight: 10, Paginate: true, Unit: timeunit.Default()}

	require.NoError(t, p.Run(countingHistory(0, &pulled)))
	assert.Empty(t, buf.String())
	assert.Empty(t, prompter.prompts)
}

func TestRunPropagatesHistoryError(t *testing.T) {
	boom := errors.New("storage unavailable")
	history := func(yield func(model.RunRecord, error) bool) {
		if !yield(model.RunRecord{ID: "first"}, nil) {
			return
		}
		yield(model.RunRecord{}, boom)
	}

	var buf bytes.Buffer
	p := &Paginator{Out: &buf, PageHeight: 10, Paginate: true, Unit: timeunit.Default()}

	err := p.Run(history)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, "run first", outputLines(&buf)[0])
}

func TestRunClosedInputQuits(t *testing.T) {
	var buf bytes.Buffer
	var pulled int
	p := &Paginator{
		Out:        &buf,
		Prompter:   NewLinePrompter(strings.NewReader(""), &buf),
		PageHeight: 4,
		Paginate:   true,
		Unit:       timeunit.Default(),
	}

	require.NoError(t, p.Run(countingHistory(10, &pulled)))
	assert.Equal(t, 1, pulled)
}

func TestRunPrompterError(t *testing.T) {
	boom := errors.New("tty gone")
	var pulled int
	p := &Paginator{
		Out:        &bytes.Buffer{},
		Prompter:   &scriptedPrompter{err: boom},
		PageHeight: 4,
		Paginate:   true,
		Unit:       timeunit.Default(),
	}

	assert.ErrorIs(t, p.Run(countingHistory(10, &pulled)), boom)
}

func TestPageState(t *testing.T) {
	state := PageState{LinesInPage: 10, TotalLines: 20}
	assert.Equal(t, "lines 20-30 <return> to continue, <q> to quit", state.PromptText())
	assert.Equal(t, 0, state.Room(10))
	assert.Equal(t, 5, state.Room(15))
	assert.Equal(t, PageState{TotalLines: 30}, state.Next())
	assert.Equal(t, 23, PageHeightFor(24))
}
