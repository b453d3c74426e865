// Package model provides the run record type and the storage abstraction
// shared by the storage drivers and the renderers.
package model

import "iter"

// History is a lazily produced, forward-only sequence of runs, most recent
// first. A non-nil error ends the sequence.
type History = iter.Seq2[RunRecord, error]

// Storage persists benchmark runs and exposes them as a History.
type Storage interface {
	// History returns the stored runs. Records are decoded only as the
	// consumer pulls them.
	History() History

	// Save stores run and returns it as persisted; an empty ID is replaced
	// by a generated one.
	Save(run RunRecord) (RunRecord, error)

	Close() error
}
