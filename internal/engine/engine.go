// Package engine holds the game-state engine: roster management, team
// balancing, schedule generation, standings, the match timer and the
// persisted-store lifecycle. All mutation of the aggregate goes
// through the methods here; callers never write fields directly.
package engine

import (
	"context"
	"errors"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"

	"github.com/matchday-app/matchday/internal/model"
	"github.com/matchday-app/matchday/internal/repository"
)

// Outcome is the structured result of a guarded operation. Guards
// reject by returning Success=false with a human-readable reason
// instead of erroring, so callers can surface a message.
type Outcome struct {
	Success bool   `json:"success"`
	Reason  string `json:"reason,omitempty"`
}

func rejected(reason string) Outcome { return Outcome{Reason: reason} }

// Options seed a fresh state on first run, before any document exists.
type Options struct {
	TournamentName string
	Settings       model.GameSettings
}

// Engine owns the authoritative game state. Methods persist after
// every mutation; persistence failures are logged and do not fail the
// operation. A mutex serializes calls so a timer ticker goroutine and
// an interactive caller do not interleave.
type Engine struct {
	mu       sync.Mutex
	state    model.GameState
	repo     repository.StateRepository
	clock    clockwork.Clock
	log      zerolog.Logger
	validate *validator.Validate
}

// New rehydrates state from the repository, migrating as needed. A
// missing document starts the engine empty with the seeded options; a
// corrupt one is logged and likewise starts empty rather than failing
// startup.
func New(ctx context.Context, repo repository.StateRepository, clock clockwork.Clock, logger zerolog.Logger, opts Options) (*Engine, error) {
	l := logger.With().Str("module", "engine").Logger()
	e := &Engine{
		repo:     repo,
		clock:    clock,
		log:      l,
		validate: validator.New(),
	}

	state, err := repo.Load(ctx)
	switch {
	case err == nil:
		e.state = state
		// A hand-edited document can carry settings the engine never
		// wrote. Replace them before any operation sizes slices off
		// them.
		if verr := e.validate.Struct(e.state.Settings); verr != nil {
			l.Warn().Err(verr).Msg("stored settings invalid, using defaults")
			e.state.Settings = model.DefaultSettings()
			e.state.Timer = model.TimerState{TimeRemaining: e.state.Settings.MatchDuration * 60}
		}
	case errors.Is(err, repository.ErrNotFound):
		e.state = e.freshState(opts)
		l.Info().Msg("no stored state, starting fresh")
	case errors.Is(err, repository.ErrCorrupt), errors.Is(err, repository.ErrUnsupportedVersion):
		e.state = e.freshState(opts)
		l.Error().Err(err).Msg("stored state unreadable, starting fresh")
	default:
		return nil, err
	}

	// Standings are derived; recomputing here covers migrated documents
	// that dropped them.
	e.state.Standings = CalculateStandings(e.state.Matches, e.state.Teams, e.state.Settings)
	return e, nil
}

func (e *Engine) freshState(opts Options) model.GameState {
	state := model.NewGameState()
	if opts.TournamentName != "" {
		state.TournamentName = opts.TournamentName
	}
	if err := e.validate.Struct(opts.Settings); err == nil {
		state.Settings = opts.Settings
		state.Timer.TimeRemaining = opts.Settings.MatchDuration * 60
	}
	return state
}

// Snapshot returns a deep copy of the current state for read-only use.
func (e *Engine) Snapshot() model.GameState {
	e.mu.Lock()
	defer e.mu.Unlock()
	return cloneState(e.state)
}

// persist writes the current state. Failures are logged and swallowed:
// the in-memory state stays authoritative and the next mutation tries
// again.
func (e *Engine) persist(ctx context.Context) {
	if err := e.repo.Save(ctx, e.state); err != nil {
		e.log.Error().Err(err).Msg("persist failed")
	}
}

func (e *Engine) recomputeStandings() {
	e.state.Standings = CalculateStandings(e.state.Matches, e.state.Teams, e.state.Settings)
}

func (e *Engine) playerIndex(id string) int {
	for i := range e.state.Players {
		if e.state.Players[i].ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) teamIndex(id string) int {
	for i := range e.state.Teams {
		if e.state.Teams[i].ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) matchIndex(id string) int {
	for i := range e.state.Matches {
		if e.state.Matches[i].ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) skillOf(playerID string) int {
	if i := e.playerIndex(playerID); i >= 0 {
		return e.state.Players[i].SkillLevel
	}
	return 0
}

func (e *Engine) today() string {
	return e.clock.Now().Format("2006-01-02")
}

func cloneState(s model.GameState) model.GameState {
	out := s
	out.Players = append([]model.Player(nil), s.Players...)
	out.Teams = make([]model.Team, len(s.Teams))
	for i, t := range s.Teams {
		out.Teams[i] = t
		out.Teams[i].PlayerIDs = append([]string(nil), t.PlayerIDs...)
		out.Teams[i].CaptainIDs = append([]string(nil), t.CaptainIDs...)
	}
	out.Matches = append([]model.Match(nil), s.Matches...)
	out.Standings = append([]model.Standing(nil), s.Standings...)
	return out
}
