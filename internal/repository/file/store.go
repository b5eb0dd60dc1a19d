// Package file implements the state repository on top of a single
// local JSON document. One fixed path holds the whole aggregate;
// writes go through a temp file and rename so a crash mid-write never
// leaves a half-written document behind.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/matchday-app/matchday/internal/model"
	"github.com/matchday-app/matchday/internal/repository"
)

// SchemaVersion is the current on-disk document version. Version 1
// documents predate multi-captain teams and are migrated on load.
const SchemaVersion = 2

// document is the envelope written to disk. State stays raw until the
// version is known so legacy shapes can be upgraded first.
type document struct {
	State   json.RawMessage `json:"state"`
	Version int             `json:"version"`
}

// Store persists game state to a JSON file.
type Store struct {
	path string
	log  zerolog.Logger
}

func New(path string, logger zerolog.Logger) *Store {
	l := logger.With().Str("module", "repository").Str("component", "file").Logger()
	return &Store{path: path, log: l}
}

var _ repository.StateRepository = (*Store)(nil)
var _ repository.Pinger = (*Store)(nil)

// Load reads and migrates the stored document. A missing file surfaces
// repository.ErrNotFound; malformed content surfaces repository.ErrCorrupt.
func (s *Store) Load(ctx context.Context) (model.GameState, error) {
	if err := ctx.Err(); err != nil {
		return model.GameState{}, err
	}
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return model.GameState{}, repository.ErrNotFound
		}
		return model.GameState{}, fmt.Errorf("read state file: %w", err)
	}

	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return model.GameState{}, fmt.Errorf("%w: %v", repository.ErrCorrupt, err)
	}

	state, err := migrate(doc)
	if err != nil {
		return model.GameState{}, err
	}
	if doc.Version < SchemaVersion {
		s.log.Info().Int("from", doc.Version).Int("to", SchemaVersion).Msg("migrated state document")
	}
	return state, nil
}

// Save replaces the stored document with the current state.
func (s *Store) Save(ctx context.Context, state model.GameState) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	rawState, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode state: %w", err)
	}
	raw, err := json.MarshalIndent(document{State: rawState, Version: SchemaVersion}, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace state file: %w", err)
	}
	return nil
}

// Ping reports whether the backing directory is usable, creating it
// when missing so a first run passes the same check Save relies on.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("ensure state dir: %w", err)
	}
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("stat state dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("state path parent %q is not a directory", dir)
	}
	return nil
}
