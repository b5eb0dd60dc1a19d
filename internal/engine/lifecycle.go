package engine

import (
	"context"

	"github.com/matchday-app/matchday/internal/model"
	"github.com/matchday-app/matchday/internal/repository"
)

// clearGameData wipes players, teams, matches, standings and the
// current match, resets the timer and stamps the reset date. Settings
// and tournament name are left alone.
func (e *Engine) clearGameData() {
	e.state.Players = []model.Player{}
	e.state.Teams = []model.Team{}
	e.state.Matches = []model.Match{}
	e.state.Standings = []model.Standing{}
	e.state.CurrentMatchID = ""
	e.resetTimerLocked()
	e.state.LastResetDate = e.today()
}

func (e *Engine) activeGuard() (string, bool) {
	for _, m := range e.state.Matches {
		if m.Status == model.MatchInProgress {
			return "a match is in progress", false
		}
	}
	if e.state.Timer.IsRunning {
		return "the match timer is running", false
	}
	return "", true
}

// ResetAllSafe clears all game data unless a match is in progress or
// the timer is running, in which case it refuses with a reason and
// leaves every field untouched. Settings survive the reset.
func (e *Engine) ResetAllSafe(ctx context.Context) Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	if reason, ok := e.activeGuard(); !ok {
		e.log.Warn().Str("reason", reason).Msg("safe reset refused")
		return rejected(reason)
	}
	e.clearGameData()
	e.persist(ctx)
	e.log.Info().Msg("game data reset")
	return Outcome{Success: true}
}

// CheckDailyAutoReset clears game data when the stored reset date is
// not today. It runs once at startup, before any match could be in
// progress, so it skips the active-state guard. Reports whether a
// reset happened.
func (e *Engine) CheckDailyAutoReset(ctx context.Context) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	today := e.today()
	if e.state.LastResetDate == today {
		return false
	}
	previous := e.state.LastResetDate
	e.clearGameData()
	e.persist(ctx)
	e.log.Info().Str("previous", previous).Str("today", today).Msg("daily auto-reset")
	return true
}

// ResetApp is the factory reset: the safe-reset clearing plus default
// settings and tournament name. The same active-state guard applies.
func (e *Engine) ResetApp(ctx context.Context) Outcome {
	e.mu.Lock()
	defer e.mu.Unlock()

	if reason, ok := e.activeGuard(); !ok {
		e.log.Warn().Str("reason", reason).Msg("factory reset refused")
		return rejected(reason)
	}
	e.state.Settings = model.DefaultSettings()
	e.state.TournamentName = model.DefaultTournamentName
	e.clearGameData()
	e.persist(ctx)
	e.log.Info().Msg("factory reset")
	return Outcome{Success: true}
}

// ExportData serializes players, teams, matches, settings and
// standings as a pretty-printed document suitable for hand inspection
// or re-import.
func (e *Engine) ExportData(ctx context.Context) ([]byte, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return repository.EncodeExport(e.state)
}

// ImportData replaces the current collections and settings with the
// parsed document. Import is all-or-nothing: a parse failure is logged
// and returned with the existing state untouched. Missing collections
// import as empty, missing settings as defaults; standings are
// recomputed from the imported matches.
func (e *Engine) ImportData(ctx context.Context, data []byte) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	doc, err := repository.DecodeExport(data)
	if err != nil {
		e.log.Error().Err(err).Msg("import rejected, state unchanged")
		return err
	}

	e.state.Players = doc.Players
	e.state.Teams = doc.Teams
	e.state.Matches = doc.Matches
	e.state.Settings = *doc.Settings
	e.state.CurrentMatchID = ""
	e.resetTimerLocked()
	e.recomputeStandings()
	e.persist(ctx)
	e.log.Info().
		Int("players", len(doc.Players)).
		Int("teams", len(doc.Teams)).
		Int("matches", len(doc.Matches)).
		Msg("data imported")
	return nil
}
