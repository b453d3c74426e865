package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"benchlog/internal/logger"
	"benchlog/internal/model"
)

// stampLayout prefixes document names so that names within a day directory
// sort by run time.
const stampLayout = "150405.000000000"

// Archive stores runs as JSON documents laid out as
// YYYY/MM/DD/<hhmmss.nanoseconds>-<run-id>.json, in UTC.
type Archive struct {
	root string
}

// OpenArchive returns the archive rooted at root. The directory is created
// on the first Save.
func OpenArchive(root string) (*Archive, error) {
	if root == "" {
		return nil, model.ErrNoStorage
	}
	return &Archive{root: root}, nil
}

// History lists the run documents most recent first and decodes each one
// only when it is pulled. Unreadable documents are skipped with a warning.
func (a *Archive) History() model.History {
	return func(yield func(model.RunRecord, error) bool) {
		paths, err := a.documents()
		if err != nil {
			yield(model.RunRecord{}, err)
			return
		}

		log := logger.Component("store").WithField("root", a.root)
		log.Debugf("found %d run documents", len(paths))

		for _, path := range paths {
			run, err := readRun(path)
			if err != nil {
				log.WithFields(logger.Fields{"path": path}).Warnf("skip run document: %v", err)
				continue
			}
			if !yield(run, nil) {
				return
			}
		}
	}
}

// Save writes run to the archive. A document stored earlier under the same
// run id is replaced, even when it lives under another date.
func (a *Archive) Save(run model.RunRecord) (model.RunRecord, error) {
	run, err := prepare(run)
	if err != nil {
		return run, err
	}

	previous, err := a.findDocuments(run.ID)
	if err != nil {
		return run, fmt.Errorf("look up run %s: %w", run.ID, err)
	}

	path := a.documentPath(run)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return run, fmt.Errorf("create archive directory: %w", err)
	}

	data, err := json.MarshalIndent(run, "", "  ")
	if err != nil {
		return run, fmt.Errorf("encode run %s: %w", run.ID, err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return run, fmt.Errorf("write run %s: %w", run.ID, err)
	}

	for _, old := range previous {
		if old == path {
			continue
		}
		if err := os.Remove(old); err != nil && !os.IsNotExist(err) {
			return run, fmt.Errorf("remove previous document of run %s: %w", run.ID, err)
		}
	}
	return run, nil
}

// Close is a no-op; documents are opened per read.
func (a *Archive) Close() error { return nil }

func (a *Archive) documentPath(run model.RunRecord) string {
	date := run.Date.UTC()
	return filepath.Join(
		a.root,
		date.Format("2006"),
		date.Format("01"),
		date.Format("02"),
		date.Format(stampLayout)+"-"+run.ID+".json",
	)
}

// findDocuments returns the paths of every document stored for id.
func (a *Archive) findDocuments(id string) ([]string, error) {
	var matched []string
	err := filepath.WalkDir(a.root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrNotExist) {
				return nil
			}
			return walkErr
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".json") && idFromName(d.Name()) == id {
			matched = append(matched, path)
		}
		return nil
	})
	return matched, err
}

// idFromName strips the time prefix and extension from a document name.
// Names without a time prefix are taken as the id itself.
func idFromName(name string) string {
	base := strings.TrimSuffix(name, ".json")
	stamp, id, ok := strings.Cut(base, "-")
	if !ok {
		return base
	}
	if _, err := time.Parse(stampLayout, stamp); err != nil {
		return base
	}
	return id
}

// documents returns the archive's document paths, most recent first.
// Day directories and the time prefix of each name order them chronologically.
func (a *Archive) documents() ([]string, error) {
	info, err := os.Stat(a.root)
	if err != nil {
		return nil, fmt.Errorf("open storage %s: %w", a.root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open storage %s: not a directory", a.root)
	}

	var paths []string
	err = filepath.WalkDir(a.root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			logger.Component("store").WithFields(logger.Fields{"path": path}).Warnf("walk archive: %v", walkErr)
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Sort(sort.Reverse(sort.StringSlice(paths)))
	return paths, nil
}

func readRun(path string) (model.RunRecord, error) {
	var run model.RunRecord
	data, err := os.ReadFile(path)
	if err != nil {
		return run, fmt.Errorf("read run document: %w", err)
	}
	if err := json.Unmarshal(data, &run); err != nil {
		return run, fmt.Errorf("parse run document: %w", err)
	}
	if run.ID == "" {
		run.ID = idFromName(filepath.Base(path))
	}
	return run, nil
}
