// Package fixtures holds the data the in-memory collections are seeded with at start.
package fixtures

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/glekoz/rvdesk/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed seed.yaml
var embedded []byte

var ErrDuplicateID = errors.New("duplicate id in fixtures")

type Set struct {
	Notices        []models.Notice        `yaml:"notices"`
	Equipment      []models.Equipment     `yaml:"equipment"`
	Parts          []models.Part          `yaml:"parts"`
	InspectionLogs []models.InspectionLog `yaml:"inspectionLogs"`
	OperationLogs  []models.OperationLog  `yaml:"operationLogs"`
}

// Source отдаёт начальные данные. Реализации: встроенный YAML, файл, Postgres.
type Source interface {
	Seed(ctx context.Context) (Set, error)
}

func Load(r io.Reader) (Set, error) {
	var s Set
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Set{}, fmt.Errorf("decode fixtures: %w", err)
	}
	s.normalize()
	if err := s.Validate(); err != nil {
		return Set{}, err
	}
	return s, nil
}

// Default returns the fixtures compiled into the binary.
func Default() Set {
	s, err := Load(bytes.NewReader(embedded))
	if err != nil {
		panic(fmt.Sprintf("embedded fixtures: %v", err))
	}
	return s
}

func (s *Set) normalize() {
	for i := range s.Parts {
		s.Parts[i].Type = models.ToPartType(string(s.Parts[i].Type))
	}
}

// Validate checks that ids are unique inside every collection.
func (s Set) Validate() error {
	checks := []struct {
		name string
		ids  []int
	}{
		{"notices", idsOf(s.Notices)},
		{"equipment", idsOf(s.Equipment)},
		{"parts", idsOf(s.Parts)},
		{"inspectionLogs", idsOf(s.InspectionLogs)},
		{"operationLogs", idsOf(s.OperationLogs)},
	}
	for _, c := range checks {
		seen := make(map[int]bool, len(c.ids))
		for _, id := range c.ids {
			if seen[id] {
				return fmt.Errorf("%w: %s id %d", ErrDuplicateID, c.name, id)
			}
			seen[id] = true
		}
	}
	return nil
}

func idsOf[T interface{ RecordID() int }](items []T) []int {
	out := make([]int, len(items))
	for i, it := range items {
		out[i] = it.RecordID()
	}
	return out
}

// Embedded serves the compiled-in fixtures.
type Embedded struct{}

func (Embedded) Seed(context.Context) (Set, error) {
	return Default(), nil
}

// File reads fixtures from a YAML file on disk.
type File struct {
	Path string
}

func (f File) Seed(context.Context) (Set, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return Set{}, fmt.Errorf("open fixtures: %w", err)
	}
	defer file.Close()
	return Load(file)
}
