// Package parser reads benchmark runs from JSON Lines input.
package parser

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"benchlog/internal/model"
)

// ErrNoRuns is returned when the input holds no run records.
var ErrNoRuns = errors.New("no runs found in input")

type rawRun struct {
	ID           string  `json:"id"`
	Date         string  `json:"date"`
	Branch       string  `json:"branch"`
	Context      string  `json:"context"`
	Subjects     int     `json:"subjects"`
	Iterations   int     `json:"iterations"`
	Revolutions  int     `json:"revolutions"`
	MinTime      float64 `json:"min_time"`
	MeanTime     float64 `json:"mean_time"`
	MaxTime      float64 `json:"max_time"`
	TotalTime    float64 `json:"total_time"`
	MeanRelStDev float64 `json:"mean_rel_stdev"`
}

// IterateRuns decodes one run per non-blank line of r and calls fn for each.
// Iteration stops at the first error returned by fn.
func IterateRuns(r io.Reader, fn func(model.RunRecord) error) error {
	scanner := newScanner(r)
	lineNo := 0
	count := 0
	for scanner.Scan() {
		lineNo++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}

		run, err := parseRun([]byte(raw))
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		if err := fn(run); err != nil {
			return err
		}
		count++
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan runs: %w", err)
	}
	if count == 0 {
		return ErrNoRuns
	}
	return nil
}

func newScanner(r io.Reader) *bufio.Scanner {
	scanner := bufio.NewScanner(r)
	const maxCapacity = 1024 * 1024
	buf := make([]byte, 1024)
	scanner.Buffer(buf, maxCapacity)
	return scanner
}

func parseRun(raw []byte) (model.RunRecord, error) {
	var rec rawRun
	if err := json.Unmarshal(raw, &rec); err != nil {
		return model.RunRecord{}, fmt.Errorf("parse run: %w", err)
	}

	var date time.Time
	if rec.Date != "" {
		ts, err := parseTimestamp(rec.Date)
		if err != nil {
			return model.RunRecord{}, fmt.Errorf("parse date %q: %w", rec.Date, err)
		}
		date = ts
	}

	return model.RunRecord{
		ID:           rec.ID,
		Date:         date,
		Branch:       rec.Branch,
		Context:      rec.Context,
		Subjects:     rec.Subjects,
		Iterations:   rec.Iterations,
		Revolutions:  rec.Revolutions,
		MinTime:      rec.MinTime,
		MeanTime:     rec.MeanTime,
		MaxTime:      rec.MaxTime,
		TotalTime:    rec.TotalTime,
		MeanRelStDev: rec.MeanRelStDev,
	}, nil
}

// parseTimestamp accepts RFC 3339 and the space separated form
// "2006-01-02 15:04:05" (read as UTC).
func parseTimestamp(value string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return ts, nil
	}
	return time.Parse(time.DateTime, value)
}
