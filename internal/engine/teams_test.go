package engine_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/matchday-app/matchday/internal/model"
)

// teamOf returns the ids of teams holding the player.
func teamOf(state model.GameState, playerID string) []string {
	var out []string
	for _, team := range state.Teams {
		for _, id := range team.PlayerIDs {
			if id == playerID {
				out = append(out, team.ID)
			}
		}
	}
	return out
}

func TestGenerateTeams_SnakeDraftScenario(t *testing.T) {
	// 10 players with skills [5,4,4,3,3,3,2,2,1,1] into 2 teams of 5
	// must land within 0.4 average skill of each other, captained by
	// their highest-skill member.
	eng, _, _ := newTestEngine(t)
	ctx := context.Background()
	require.NoError(t, eng.UpdateSettings(ctx, settings(2, 5, 3)))
	addSquad(t, eng, 5, 4, 4, 3, 3, 3, 2, 2, 1, 1)

	eng.GenerateTeams(ctx)
	state := eng.Snapshot()
	require.Len(t, state.Teams, 2)
	for _, team := range state.Teams {
		require.Len(t, team.PlayerIDs, 5)
		require.Len(t, team.CaptainIDs, 1)

		bestSkill := 0
		for _, id := range team.PlayerIDs {
			for _, p := range state.Players {
				if p.ID == id && p.SkillLevel > bestSkill {
					bestSkill = p.SkillLevel
				}
			}
		}
		for _, p := range state.Players {
			if p.ID == team.CaptainIDs[0] {
				require.Equal(t, bestSkill, p.SkillLevel, "captain is the highest-skill member")
			}
		}
	}
	diff := math.Abs(state.Teams[0].AverageSkill - state.Teams[1].AverageSkill)
	require.LessOrEqual(t, diff, 0.4)
}

func TestGenerateTeams_CountBalanceProperty(t *testing.T) {
	cases := []struct {
		name    string
		players int
		teams   int
		perTeam int
	}{
		{"even split", 12, 3, 4},
		{"uneven split", 11, 3, 4},
		{"more teams than players", 3, 5, 4},
		{"single player", 1, 2, 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			eng, _, _ := newTestEngine(t)
			ctx := context.Background()
			s := settings(tc.teams, tc.perTeam, 3)
			if s.TeamsCount < 2 {
				s.TeamsCount = 2
			}
			require.NoError(t, eng.UpdateSettings(ctx, s))
			skills := make([]int, tc.players)
			for i := range skills {
				skills[i] = 1 + i%10
			}
			addSquad(t, eng, skills...)

			eng.GenerateTeams(ctx)
			state := eng.Snapshot()

			minLen, maxLen := math.MaxInt, 0
			seen := map[string]bool{}
			for _, team := range state.Teams {
				if len(team.PlayerIDs) < minLen {
					minLen = len(team.PlayerIDs)
				}
				if len(team.PlayerIDs) > maxLen {
					maxLen = len(team.PlayerIDs)
				}
				for _, id := range team.PlayerIDs {
					require.False(t, seen[id], "player on more than one team")
					seen[id] = true
				}
				if len(team.PlayerIDs) > 0 {
					require.NotEmpty(t, team.CaptainIDs)
				}
			}
			require.LessOrEqual(t, maxLen-minLen, 1, "per-team counts differ by at most 1")
		})
	}
}

func TestGenerateTeams_NoEligiblePlayersIsNoop(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	ctx := context.Background()
	p := eng.AddPlayer(ctx, "Wally", 5, true)
	require.NotNil(t, p)

	eng.GenerateTeams(ctx)
	require.Empty(t, eng.Snapshot().Teams)
}

func TestGenerateTeams_OverflowGoesToWaitlist(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	ctx := context.Background()
	require.NoError(t, eng.UpdateSettings(ctx, settings(2, 2, 3)))
	addSquad(t, eng, 9, 8, 7, 6, 5, 4) // capacity 4, two weakest overflow

	eng.GenerateTeams(ctx)
	state := eng.Snapshot()

	placed := 0
	for _, team := range state.Teams {
		placed += len(team.PlayerIDs)
	}
	require.Equal(t, 4, placed)

	waitlisted := 0
	for _, p := range state.Players {
		if p.IsWaitlist {
			waitlisted++
			require.LessOrEqual(t, p.SkillLevel, 5, "only the weakest overflow")
			require.Empty(t, teamOf(state, p.ID))
		}
	}
	require.Equal(t, 2, waitlisted)
}

func TestGenerateTeams_PrefersCaptainFlag(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	ctx := context.Background()
	require.NoError(t, eng.UpdateSettings(ctx, settings(2, 2, 3)))
	ids := addSquad(t, eng, 9, 8, 3, 2)
	eng.TogglePlayerCaptain(ctx, ids[2]) // low-skill player wants the armband

	eng.GenerateTeams(ctx)
	state := eng.Snapshot()
	for _, team := range state.Teams {
		if containsString(team.PlayerIDs, ids[2]) {
			require.Equal(t, []string{ids[2]}, team.CaptainIDs)
		}
	}
}

func TestGenerateTeams_PaletteCycles(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	ctx := context.Background()
	count := len(model.TeamPalette) // palette has 8 entries, settings cap at 8
	require.NoError(t, eng.UpdateSettings(ctx, settings(count, 1, 3)))
	skills := make([]int, count)
	for i := range skills {
		skills[i] = 5
	}
	addSquad(t, eng, skills...)

	eng.GenerateTeams(ctx)
	state := eng.Snapshot()
	require.Len(t, state.Teams, count)
	for i, team := range state.Teams {
		require.Equal(t, model.TeamPalette[i%len(model.TeamPalette)].Name, team.Name)
		require.Equal(t, model.TeamPalette[i%len(model.TeamPalette)].Color, team.Color)
	}
}

func TestMovePlayer_OneTeamPerPlayer(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	ctx := context.Background()
	require.NoError(t, eng.UpdateSettings(ctx, settings(3, 2, 3)))
	ids := addSquad(t, eng, 6, 5, 4, 3, 2, 1)
	eng.GenerateTeams(ctx)

	// Arbitrary move sequence; the invariant must hold throughout.
	moves := []struct{ player, to string }{
		{ids[0], "team-2"},
		{ids[0], "team-3"},
		{ids[3], "team-1"},
		{ids[0], ""},
		{ids[5], "team-1"},
		{ids[0], "team-1"},
	}
	for _, mv := range moves {
		eng.MovePlayer(ctx, mv.player, "", mv.to)
		state := eng.Snapshot()
		for _, p := range state.Players {
			require.LessOrEqual(t, len(teamOf(state, p.ID)), 1, "player %s on multiple teams", p.Name)
		}
		for _, team := range state.Teams {
			if len(team.PlayerIDs) > 0 {
				require.NotEmpty(t, team.CaptainIDs)
			}
			for _, capID := range team.CaptainIDs {
				require.True(t, containsString(team.PlayerIDs, capID), "captain must be on the team")
			}
		}
	}
}

func TestMovePlayer_ToWaitlist(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	ctx := context.Background()
	ids := addSquad(t, eng, 5, 4)
	eng.GenerateTeams(ctx)

	eng.MovePlayer(ctx, ids[0], "team-1", "")
	state := eng.Snapshot()
	require.Empty(t, teamOf(state, ids[0]))
	require.True(t, state.Players[0].IsWaitlist)
}

func TestMovePlayer_IncomingCaptainOnCaptainlessTeam(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	ctx := context.Background()
	require.NoError(t, eng.UpdateSettings(ctx, settings(2, 3, 3)))
	ids := addSquad(t, eng, 5, 4, 3)
	eng.GenerateTeams(ctx)

	// Empty team-2 completely, then move someone in: they take the armband.
	state := eng.Snapshot()
	for _, id := range state.Teams[1].PlayerIDs {
		eng.MovePlayer(ctx, id, "team-2", "")
	}
	eng.MovePlayer(ctx, ids[0], "team-1", "team-2")

	state = eng.Snapshot()
	require.Equal(t, []string{ids[0]}, state.Teams[1].CaptainIDs)
	require.False(t, state.Players[0].IsWaitlist, "joining a team clears the waitlist flag")
}

func TestMovePlayer_UnknownIDsAreNoops(t *testing.T) {
	eng, repo, _ := newTestEngine(t)
	ctx := context.Background()
	ids := addSquad(t, eng, 5, 4)
	eng.GenerateTeams(ctx)
	before := repo.saves
	beforeState := eng.Snapshot()

	eng.MovePlayer(ctx, "ghost", "", "team-1")
	eng.MovePlayer(ctx, ids[0], "", "team-99")

	require.Equal(t, before, repo.saves)
	require.Equal(t, beforeState, eng.Snapshot())
}

func TestSetTeamCaptain(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	ctx := context.Background()
	require.NoError(t, eng.UpdateSettings(ctx, settings(2, 3, 3)))
	addSquad(t, eng, 6, 5, 4, 3, 2, 1)
	eng.GenerateTeams(ctx)

	state := eng.Snapshot()
	team := state.Teams[0]
	captain := team.CaptainIDs[0]
	var other string
	for _, id := range team.PlayerIDs {
		if id != captain {
			other = id
			break
		}
	}

	// Multiple simultaneous captains are allowed.
	eng.SetTeamCaptain(ctx, team.ID, other)
	require.Len(t, eng.Snapshot().Teams[0].CaptainIDs, 2)

	// Toggling one off works while another remains.
	eng.SetTeamCaptain(ctx, team.ID, captain)
	got := eng.Snapshot().Teams[0].CaptainIDs
	require.Equal(t, []string{other}, got)

	// Removing the last captain of a non-empty team is rejected.
	eng.SetTeamCaptain(ctx, team.ID, other)
	require.Equal(t, []string{other}, eng.Snapshot().Teams[0].CaptainIDs)
}

func TestSetTeamCaptain_RequiresMembership(t *testing.T) {
	eng, _, _ := newTestEngine(t)
	ctx := context.Background()
	require.NoError(t, eng.UpdateSettings(ctx, settings(2, 1, 3)))
	addSquad(t, eng, 5, 4)
	eng.GenerateTeams(ctx)

	before := eng.Snapshot()
	eng.SetTeamCaptain(ctx, "team-1", before.Teams[1].PlayerIDs[0])
	require.Equal(t, before.Teams[0].CaptainIDs, eng.Snapshot().Teams[0].CaptainIDs)
}

func containsString(in []string, want string) bool {
	for _, v := range in {
		if v == want {
			return true
		}
	}
	return false
}
