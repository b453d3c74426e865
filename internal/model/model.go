package model

import "time"

// RunRecord holds the aggregate statistics of one stored benchmark run.
// Times are expressed in microseconds.
type RunRecord struct {
	ID           string    `json:"id"`
	Date         time.Time `json:"date"`
	Branch       string    `json:"branch,omitempty"`
	Context      string    `json:"context,omitempty"`
	Subjects     int       `json:"subjects"`
	Iterations   int       `json:"iterations"`
	Revolutions  int       `json:"revolutions"`
	MinTime      float64   `json:"min_time"`
	MeanTime     float64   `json:"mean_time"`
	MaxTime      float64   `json:"max_time"`
	TotalTime    float64   `json:"total_time"`
	MeanRelStDev float64   `json:"mean_rel_stdev"`
}
