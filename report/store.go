package report

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gofrs/uuid"
	"golang.org/x/sync/errgroup"
)

// ErrOutcomeNotFound is returned when loading an unknown test outcome.
var ErrOutcomeNotFound = errors.New("test outcome not found")

// Store persists test outcomes as JSON files in a directory.
type Store struct {
	dir string
	// loadConcurrency limits parallel file reads in LoadAll
	loadConcurrency int
}

func NewStore(dir string) *Store {
	return &Store{dir: dir, loadConcurrency: 8}
}

func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(id uuid.UUID) string {
	return filepath.Join(s.dir, id.String()+".json")
}

// Save writes the outcome to <dir>/<id>.json.
func (s *Store) Save(outcome *TestOutcome) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating report directory: %w", err)
	}

	data, err := json.MarshalIndent(outcome, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding test outcome: %w", err)
	}

	// Write to a temporary file first so readers never see partial outcomes
	tmp := s.path(outcome.ID) + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing test outcome: %w", err)
	}
	if err := os.Rename(tmp, s.path(outcome.ID)); err != nil {
		return fmt.Errorf("writing test outcome: %w", err)
	}
	return nil
}

// Load reads a single outcome.
func (s *Store) Load(id uuid.UUID) (*TestOutcome, error) {
	return s.load(s.path(id))
}

func (s *Store) load(path string) (*TestOutcome, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrOutcomeNotFound, filepath.Base(path))
		}
		return nil, fmt.Errorf("reading test outcome: %w", err)
	}

	var outcome TestOutcome
	if err := json.Unmarshal(data, &outcome); err != nil {
		return nil, fmt.Errorf("decoding test outcome %s: %w", filepath.Base(path), err)
	}
	return &outcome, nil
}

// LoadAll reads all outcomes concurrently, newest first.
func (s *Store) LoadAll(ctx context.Context) ([]*TestOutcome, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("listing report directory: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".json") {
			paths = append(paths, filepath.Join(s.dir, entry.Name()))
		}
	}

	outcomes := make([]*TestOutcome, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.loadConcurrency)
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcome, err := s.load(path)
			if err != nil {
				return err
			}
			outcomes[i] = outcome
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	slices.SortFunc(outcomes, func(a, b *TestOutcome) int {
		return b.StartedAt.Compare(a.StartedAt)
	})
	return outcomes, nil
}
