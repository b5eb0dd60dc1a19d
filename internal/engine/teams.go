package engine

import (
	"context"
	"fmt"
	"math"
	"sort"

	"github.com/matchday-app/matchday/internal/model"
)

// GenerateTeams rebuilds all teams from the active roster via snake
// draft. Active players are sorted by skill descending (signup order
// breaks ties) and dealt across the teams forward then backward,
// reversing direction at each end, which balances aggregate skill
// better than a plain round-robin deal. Players beyond
// teamsCount*playersPerTeam are flagged onto the waitlist. With zero
// eligible players the call is a logged no-op.
func (e *Engine) GenerateTeams(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	var active []model.Player
	for _, p := range e.state.Players {
		if !p.IsWaitlist {
			active = append(active, p)
		}
	}
	if len(active) == 0 {
		e.log.Debug().Msg("generate teams: no eligible players")
		return
	}

	sort.SliceStable(active, func(i, j int) bool {
		return active[i].SkillLevel > active[j].SkillLevel
	})

	count := e.state.Settings.TeamsCount
	teams := make([]model.Team, count)
	for i := range teams {
		preset := model.TeamPalette[i%len(model.TeamPalette)]
		teams[i] = model.Team{
			ID:         fmt.Sprintf("team-%d", i+1),
			Name:       preset.Name,
			Color:      preset.Color,
			PlayerIDs:  []string{},
			CaptainIDs: []string{},
		}
	}

	capacity := count * e.state.Settings.PlayersPerTeam
	selected := active
	if len(active) > capacity {
		selected = active[:capacity]
		for _, p := range active[capacity:] {
			if i := e.playerIndex(p.ID); i >= 0 {
				e.state.Players[i].IsWaitlist = true
			}
		}
		e.log.Info().Int("overflow", len(active)-capacity).Msg("roster exceeds capacity, overflow waitlisted")
	}

	// Snake draft: bounce at the ends so edge teams pick twice in a row.
	idx, dir := 0, 1
	for _, p := range selected {
		teams[idx].PlayerIDs = append(teams[idx].PlayerIDs, p.ID)
		next := idx + dir
		if next < 0 || next >= count {
			dir = -dir
		} else {
			idx = next
		}
	}

	e.state.Teams = teams
	for i := range e.state.Teams {
		team := &e.state.Teams[i]
		e.electCaptain(team)
		e.recomputeAverage(team)
	}

	e.recomputeStandings()
	e.persist(ctx)
	e.log.Info().Int("teams", count).Int("placed", len(selected)).Msg("teams generated")
}

// MovePlayer moves a player between teams; an empty toTeamID sends
// them to the waitlist. The player is removed from every team that
// holds them, keeping the one-team-per-player invariant even if state
// had drifted. fromTeamID is advisory only. Unknown player or
// destination team ids are no-ops.
func (e *Engine) MovePlayer(ctx context.Context, playerID, fromTeamID, toTeamID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pIdx := e.playerIndex(playerID)
	if pIdx < 0 {
		e.log.Debug().Str("player_id", playerID).Msg("move player: unknown id")
		return
	}
	destIdx := -1
	if toTeamID != "" {
		destIdx = e.teamIndex(toTeamID)
		if destIdx < 0 {
			e.log.Debug().Str("team_id", toTeamID).Msg("move player: unknown destination team")
			return
		}
	}

	for i := range e.state.Teams {
		team := &e.state.Teams[i]
		if !removeID(&team.PlayerIDs, playerID) {
			continue
		}
		removeID(&team.CaptainIDs, playerID)
		e.reelectCaptain(team)
		e.recomputeAverage(team)
	}

	if destIdx < 0 {
		e.state.Players[pIdx].IsWaitlist = true
	} else {
		dest := &e.state.Teams[destIdx]
		dest.PlayerIDs = append(dest.PlayerIDs, playerID)
		e.state.Players[pIdx].IsWaitlist = false
		if len(dest.CaptainIDs) == 0 {
			dest.CaptainIDs = []string{playerID}
		}
		e.recomputeAverage(dest)
	}

	e.persist(ctx)
	e.log.Info().
		Str("player_id", playerID).
		Str("from", fromTeamID).
		Str("to", toTeamID).
		Msg("player moved")
}

// SetTeamCaptain toggles a player's membership in the team's captain
// set. Teams support multiple simultaneous captains; removing the last
// captain of a non-empty team is rejected.
func (e *Engine) SetTeamCaptain(ctx context.Context, teamID, playerID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	tIdx := e.teamIndex(teamID)
	if tIdx < 0 {
		e.log.Debug().Str("team_id", teamID).Msg("set captain: unknown team")
		return
	}
	team := &e.state.Teams[tIdx]
	if !containsID(team.PlayerIDs, playerID) {
		e.log.Debug().Str("team_id", teamID).Str("player_id", playerID).Msg("set captain: player not on team")
		return
	}

	if containsID(team.CaptainIDs, playerID) {
		if len(team.CaptainIDs) == 1 && len(team.PlayerIDs) > 0 {
			e.log.Debug().Str("team_id", teamID).Msg("set captain: refusing to remove last captain")
			return
		}
		removeID(&team.CaptainIDs, playerID)
	} else {
		team.CaptainIDs = append(team.CaptainIDs, playerID)
	}
	e.persist(ctx)
}

// electCaptain picks the initial captain after generation: the first
// player flagged as a captain preference in team order, else the
// highest-skill player, first occurrence winning ties.
func (e *Engine) electCaptain(team *model.Team) {
	if len(team.PlayerIDs) == 0 {
		team.CaptainIDs = []string{}
		return
	}
	for _, id := range team.PlayerIDs {
		if i := e.playerIndex(id); i >= 0 && e.state.Players[i].IsCaptain {
			team.CaptainIDs = []string{id}
			return
		}
	}
	team.CaptainIDs = []string{e.bestSkillID(team)}
}

// reelectCaptain restores the captain invariant after a removal: a
// non-empty team whose captain set emptied gets its highest-skill
// player as sole captain.
func (e *Engine) reelectCaptain(team *model.Team) {
	if len(team.PlayerIDs) == 0 {
		team.CaptainIDs = []string{}
		return
	}
	if len(team.CaptainIDs) > 0 {
		return
	}
	team.CaptainIDs = []string{e.bestSkillID(team)}
}

func (e *Engine) bestSkillID(team *model.Team) string {
	best := team.PlayerIDs[0]
	bestSkill := e.skillOf(best)
	for _, id := range team.PlayerIDs[1:] {
		if s := e.skillOf(id); s > bestSkill {
			best, bestSkill = id, s
		}
	}
	return best
}

func (e *Engine) recomputeAverage(team *model.Team) {
	if len(team.PlayerIDs) == 0 {
		team.AverageSkill = 0
		return
	}
	sum := 0
	for _, id := range team.PlayerIDs {
		sum += e.skillOf(id)
	}
	mean := float64(sum) / float64(len(team.PlayerIDs))
	team.AverageSkill = math.Round(mean*10) / 10
}
