package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/matchday-app/matchday/internal/model"
)

// UpdateSettings validates and stores new game settings. Any settings
// change restarts the match clock at the new duration regardless of
// timer state; this is a deliberate simplification.
func (e *Engine) UpdateSettings(ctx context.Context, settings model.GameSettings) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.validate.Struct(settings); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}
	e.state.Settings = settings
	e.resetTimerLocked()
	e.recomputeStandings()
	e.persist(ctx)
	e.log.Info().
		Int("teams", settings.TeamsCount).
		Int("players_per_team", settings.PlayersPerTeam).
		Int("match_duration", settings.MatchDuration).
		Msg("settings updated")
	return nil
}

// SetTournamentName renames the tournament; blank names are no-ops.
func (e *Engine) SetTournamentName(ctx context.Context, name string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	e.state.TournamentName = name
	e.persist(ctx)
}
