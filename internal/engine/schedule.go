package engine

import (
	"context"

	"github.com/google/uuid"

	"github.com/matchday-app/matchday/internal/model"
)

type teamPair struct {
	a, b string
}

// GenerateSchedule replaces the match list with a round-robin schedule
// over the current teams. All unordered pairs are enumerated in team
// order; the target count is min(pair count, gamesPerTeam*teams/2).
// Slots are filled greedily: each slot takes the first unscheduled
// pair whose teams both rested the previous slot. When a full sweep
// finds no schedulable pair the schedule simply ends shorter than
// requested, which is a partial success rather than an error.
func (e *Engine) GenerateSchedule(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	teams := e.state.Teams
	if len(teams) < 2 {
		e.log.Debug().Int("teams", len(teams)).Msg("generate schedule: need at least two teams")
		return
	}

	var pairs []teamPair
	for i := 0; i < len(teams); i++ {
		for j := i + 1; j < len(teams); j++ {
			pairs = append(pairs, teamPair{a: teams[i].ID, b: teams[j].ID})
		}
	}

	target := e.state.Settings.GamesPerTeam * len(teams) / 2
	if len(pairs) < target {
		target = len(pairs)
	}

	matches := make([]model.Match, 0, target)
	used := make(map[teamPair]bool, len(pairs))
	var prev *teamPair
	for len(matches) < target {
		picked := false
		for _, pair := range pairs {
			if used[pair] || conflictsWithPrev(pair, prev) {
				continue
			}
			matches = append(matches, model.Match{
				ID:         uuid.NewString(),
				GameNumber: len(matches) + 1,
				TeamAID:    pair.a,
				TeamBID:    pair.b,
				Status:     model.MatchScheduled,
				Duration:   e.state.Settings.MatchDuration,
			})
			used[pair] = true
			p := pair
			prev = &p
			picked = true
			break
		}
		if !picked {
			e.log.Info().Int("scheduled", len(matches)).Int("target", target).
				Msg("rest constraint exhausted eligible pairs, schedule ends short")
			break
		}
	}

	e.state.Matches = matches
	e.state.CurrentMatchID = ""
	e.recomputeStandings()
	e.persist(ctx)
	e.log.Info().Int("matches", len(matches)).Msg("schedule generated")
}

// conflictsWithPrev reports whether either team of pair played in the
// immediately preceding slot (rest gap of at least one game).
func conflictsWithPrev(pair teamPair, prev *teamPair) bool {
	if prev == nil {
		return false
	}
	return pair.a == prev.a || pair.a == prev.b || pair.b == prev.a || pair.b == prev.b
}

// AddMatch appends one ad-hoc match. Identical or unknown team ids are
// no-ops; the game number continues from the current maximum.
func (e *Engine) AddMatch(ctx context.Context, teamAID, teamBID string) *model.Match {
	e.mu.Lock()
	defer e.mu.Unlock()

	if teamAID == teamBID {
		e.log.Debug().Str("team_id", teamAID).Msg("add match: teams must differ")
		return nil
	}
	if e.teamIndex(teamAID) < 0 || e.teamIndex(teamBID) < 0 {
		e.log.Debug().Str("team_a", teamAID).Str("team_b", teamBID).Msg("add match: unknown team")
		return nil
	}

	number := 0
	for _, m := range e.state.Matches {
		if m.GameNumber > number {
			number = m.GameNumber
		}
	}
	match := model.Match{
		ID:         uuid.NewString(),
		GameNumber: number + 1,
		TeamAID:    teamAID,
		TeamBID:    teamBID,
		Status:     model.MatchScheduled,
		Duration:   e.state.Settings.MatchDuration,
	}
	e.state.Matches = append(e.state.Matches, match)
	e.persist(ctx)
	e.log.Info().Str("match_id", match.ID).Int("game", match.GameNumber).Msg("match added")
	return &match
}

// SwapTeamsInMatch reassigns the two teams of an existing match. A
// still-scheduled match has its scores reset since any entered result
// belonged to the old teams; a completed match keeps its scores and
// the standings are recomputed because the result now attributes to
// the new teams.
func (e *Engine) SwapTeamsInMatch(ctx context.Context, matchID, newTeamAID, newTeamBID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	mIdx := e.matchIndex(matchID)
	if mIdx < 0 {
		e.log.Debug().Str("match_id", matchID).Msg("swap teams: unknown match")
		return
	}
	if newTeamAID == newTeamBID {
		e.log.Debug().Str("match_id", matchID).Msg("swap teams: teams must differ")
		return
	}
	if e.teamIndex(newTeamAID) < 0 || e.teamIndex(newTeamBID) < 0 {
		e.log.Debug().Str("team_a", newTeamAID).Str("team_b", newTeamBID).Msg("swap teams: unknown team")
		return
	}

	match := &e.state.Matches[mIdx]
	match.TeamAID = newTeamAID
	match.TeamBID = newTeamBID
	if match.Status == model.MatchScheduled {
		match.ScoreA = 0
		match.ScoreB = 0
	}
	e.recomputeStandings()
	e.persist(ctx)
	e.log.Info().Str("match_id", matchID).Msg("match teams swapped")
}

// StartMatch moves a scheduled match in progress, stamps its start
// time, marks it current and rearms the timer for a full period.
func (e *Engine) StartMatch(ctx context.Context, matchID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	mIdx := e.matchIndex(matchID)
	if mIdx < 0 {
		e.log.Debug().Str("match_id", matchID).Msg("start match: unknown match")
		return
	}
	match := &e.state.Matches[mIdx]
	if match.Status != model.MatchScheduled {
		e.log.Debug().Str("match_id", matchID).Str("status", match.Status).Msg("start match: not scheduled")
		return
	}

	now := e.clock.Now()
	match.Status = model.MatchInProgress
	match.StartTime = &now
	e.state.CurrentMatchID = matchID
	e.state.Timer = model.TimerState{TimeRemaining: e.state.Settings.MatchDuration * 60}
	e.persist(ctx)
	e.log.Info().Str("match_id", matchID).Msg("match started")
}

// UpdateScore records a result. Negative scores are rejected. Any
// positive score completes the match and stamps its end time; a 0-0
// line keeps the match open, so a genuine goalless draw cannot be
// recorded as completed (known quirk, kept intentionally). Standings
// are recomputed synchronously before returning.
func (e *Engine) UpdateScore(ctx context.Context, matchID string, scoreA, scoreB int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	mIdx := e.matchIndex(matchID)
	if mIdx < 0 {
		e.log.Debug().Str("match_id", matchID).Msg("update score: unknown match")
		return
	}
	if scoreA < 0 || scoreB < 0 {
		e.log.Debug().Str("match_id", matchID).Msg("update score: negative score")
		return
	}

	match := &e.state.Matches[mIdx]
	match.ScoreA = scoreA
	match.ScoreB = scoreB
	if scoreA > 0 || scoreB > 0 {
		if match.Status != model.MatchCompleted {
			now := e.clock.Now()
			match.EndTime = &now
		}
		match.Status = model.MatchCompleted
		if e.state.CurrentMatchID == matchID {
			e.state.CurrentMatchID = ""
		}
	}

	e.recomputeStandings()
	e.persist(ctx)
	e.log.Info().Str("match_id", matchID).Int("score_a", scoreA).Int("score_b", scoreB).Msg("score updated")
}
