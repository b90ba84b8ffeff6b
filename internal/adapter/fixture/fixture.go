// Package fixture reads and writes JSON sample fixtures so the pipeline can
// run offline against a previously scraped sample set.
package fixture

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/couchcryptid/landmask-etl/internal/domain"
)

// File is the on-disk fixture layout.
type File struct {
	Source      string          `json:"source,omitempty"`
	GeneratedAt time.Time       `json:"generated_at"`
	Samples     []domain.Sample `json:"samples"`
}

// Source implements pipeline.SampleSource over a fixture file.
type Source struct {
	path string
}

func NewSource(path string) *Source {
	return &Source{path: path}
}

// FetchSamples reads the fixture on every call so edits are picked up between runs.
func (s *Source) FetchSamples(_ context.Context) ([]domain.Sample, error) {
	f, err := Read(s.path)
	if err != nil {
		return nil, err
	}
	return f.Samples, nil
}

// Read loads and validates a fixture.
func Read(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("read fixture: %w", err)
	}
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("decode fixture %s: %w", path, err)
	}
	for i, s := range f.Samples {
		if s.Category != domain.Land && s.Category != domain.Sea {
			return File{}, fmt.Errorf("fixture %s: sample %d has category %s", path, i, s.Category)
		}
	}
	return f, nil
}

// Write stores f as indented JSON.
func Write(path string, f File) error {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("encode fixture: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write fixture: %w", err)
	}
	return nil
}
