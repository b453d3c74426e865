package view

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"benchlog/internal/format"
	"benchlog/internal/model"
	"benchlog/internal/pager"
	"benchlog/internal/timeunit"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyOf(n int) model.History {
	return func(yield func(model.RunRecord, error) bool) {
		for i := 0; i < n; i++ {
			run := model.RunRecord{ID: string(rune('a' + i)), Date: time.Date(2025, 10, 1, 0, 0, 0, 0, time.UTC)}
			if !yield(run, nil) {
				return
			}
		}
	}
}

func TestRunTextWithoutTerminalIsUnpaginated(t *testing.T) {
	var buf bytes.Buffer
	err := Run(historyOf(10), Options{Format: "text", Unit: timeunit.Default(), Paginate: true, Out: &buf})
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 10*format.BlockLines)
	assert.NotContains(t, buf.String(), "<return> to continue")
}

func TestRunTextPaginatesWithPrompter(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{
		Unit:           timeunit.Default(),
		Paginate:       true,
		Out:            &buf,
		Prompter:       pager.NewLinePrompter(strings.NewReader("\nq\n"), &buf),
		TerminalHeight: 11,
	}
	require.NoError(t, Run(historyOf(10), opts))

	out := buf.String()
	assert.Contains(t, out, "lines 0-10 <return> to continue, <q> to quit ")
	assert.Contains(t, out, "lines 10-20 <return> to continue, <q> to quit ")
	assert.NotContains(t, out, "lines 20-30")
	assert.NotContains(t, out, "run d")
}

func TestRunTextNoPaginationFlag(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{
		Unit:           timeunit.Default(),
		Paginate:       false,
		Out:            &buf,
		Prompter:       pager.NewLinePrompter(strings.NewReader("q\n"), &buf),
		TerminalHeight: 5,
	}
	require.NoError(t, Run(historyOf(4), opts))
	assert.NotContains(t, buf.String(), "<return> to continue")
	assert.Contains(t, buf.String(), "run d")
}

func TestRunTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Run(historyOf(2), Options{Format: "TABLE", Unit: timeunit.Default(), Out: &buf}))
	assert.Contains(t, buf.String(), "RUN")
}

func TestRunUnsupportedFormat(t *testing.T) {
	err := Run(historyOf(1), Options{Format: "xml", Out: &bytes.Buffer{}})
	assert.Error(t, err)
}
