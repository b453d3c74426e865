package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"benchlog/internal/model"
	"benchlog/internal/timeunit"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// WriteRuns writes the whole history to w in a non-paginated format:
// table, json or jsonl. Errors from the history are returned unchanged.
func WriteRuns(w io.Writer, history model.History, unit timeunit.TimeUnit, format string) error {
	format = strings.ToLower(format)
	switch format {
	case "table":
		return writeRunsTable(w, history, unit)
	case "json":
		return writeRunsJSON(w, history)
	case "jsonl":
		return writeRunsJSONL(w, history)
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

func writeRunsJSON(w io.Writer, history model.History) error {
	runs := make([]model.RunRecord, 0)
	for run, err := range history {
		if err != nil {
			return err
		}
		runs = append(runs, run)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(runs)
}

func writeRunsJSONL(w io.Writer, history model.History) error {
	enc := json.NewEncoder(w)
	for run, err := range history {
		if err != nil {
			return err
		}
		if err := enc.Encode(run); err != nil {
			return err
		}
	}
	return nil
}

func writeRunsTable(w io.Writer, history model.History, unit timeunit.TimeUnit) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.Style().Options.SeparateHeader = true
	tw.Style().Options.DrawBorder = true

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 2, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 3, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 4, Align: text.AlignLeft, AlignHeader: text.AlignCenter},
		{Number: 5, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 6, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 7, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 8, Align: text.AlignRight, AlignHeader: text.AlignCenter},
		{Number: 9, Align: text.AlignRight, AlignHeader: text.AlignCenter},
	})

	tw.AppendHeader(table.Row{"Run", "Date", "Branch", "Context", "Subjects", "Best", "Mean", "Worst", "RSD"})

	count := 0
	for run, err := range history {
		if err != nil {
			return err
		}
		context := run.Context
		if context == "" {
			context = noContext
		}
		tw.AppendRow(table.Row{
			run.ID,
			run.Date.Format(DateLayout),
			run.Branch,
			context,
			run.Subjects,
			unit.Format(run.MinTime, -1, ""),
			unit.Format(run.MeanTime, -1, ""),
			unit.Format(run.MaxTime, -1, ""),
			timeunit.Number(run.MeanRelStDev, 3) + "%",
		})
		count++
	}

	if count == 0 {
		tw.AppendRow(table.Row{"-", "(no runs)", "-", "-", 0, "-", "-", "-", "-"})
	}

	_ = tw.Render()
	return nil
}
