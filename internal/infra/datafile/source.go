// Package datafile reads and writes the tracker snapshot files
// (issues.json, milestones.json) that the sync and docs runs consume.
package datafile

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/um-tesoreria/wikisync/internal/domain"
)

// Snapshot file names inside the data directory.
const (
	IssuesFile     = "issues.json"
	MilestonesFile = "milestones.json"
)

// Source implements domain.RecordSource over a data directory.
type Source struct {
	dir string
}

// Ensure Source implements domain.RecordSource.
var _ domain.RecordSource = (*Source)(nil)

// New creates a Source reading from the given directory.
func New(dir string) *Source {
	return &Source{dir: dir}
}

// Load reads both snapshot files. A missing or undecodable file is a
// malformed-input failure: the run cannot tell an empty tracker from a
// broken fetch, so it refuses to publish.
func (s *Source) Load() ([]domain.Issue, []domain.Milestone, error) {
	var issues []domain.Issue
	if err := s.readFile(IssuesFile, &issues); err != nil {
		return nil, nil, err
	}

	var milestones []domain.Milestone
	if err := s.readFile(MilestonesFile, &milestones); err != nil {
		return nil, nil, err
	}

	return issues, milestones, nil
}

func (s *Source) readFile(name string, v any) error {
	path := filepath.Join(s.dir, name)
	data, err := os.ReadFile(path) //nolint:gosec // path comes from configuration
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", domain.ErrMalformedInput, path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: decode %s: %v", domain.ErrMalformedInput, path, err)
	}
	return nil
}

// Write persists freshly fetched records as snapshot files, creating
// the data directory when needed.
func (s *Source) Write(issues []domain.Issue, milestones []domain.Milestone) error {
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return fmt.Errorf("create data directory: %w", err)
	}
	if err := s.writeFile(IssuesFile, issues); err != nil {
		return err
	}
	return s.writeFile(MilestonesFile, milestones)
}

func (s *Source) writeFile(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, append(data, '\n'), 0o640); err != nil { //nolint:gosec // snapshot files are repository data
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
