package engine

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/matchday-app/matchday/internal/model"
)

// AddPlayer registers a player with a fresh id and the next signup
// order. Names are trimmed; an empty name is a no-op. Duplicate names
// are allowed, names are not a key. Returns nil on rejection.
func (e *Engine) AddPlayer(ctx context.Context, name string, skillLevel int, waitlist bool) *model.Player {
	e.mu.Lock()
	defer e.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		e.log.Debug().Msg("add player rejected: empty name")
		return nil
	}
	if skillLevel < 1 {
		skillLevel = 1
	}
	if skillLevel > 10 {
		skillLevel = 10
	}

	order := 0
	for _, p := range e.state.Players {
		if p.SignupOrder > order {
			order = p.SignupOrder
		}
	}

	player := model.Player{
		ID:          uuid.NewString(),
		Name:        name,
		SkillLevel:  skillLevel,
		IsWaitlist:  waitlist,
		SignupOrder: order + 1,
		CreatedAt:   e.clock.Now(),
	}
	e.state.Players = append(e.state.Players, player)
	e.persist(ctx)
	e.log.Info().Str("player_id", player.ID).Str("name", name).Int("skill", skillLevel).Msg("player added")
	return &player
}

// RemovePlayer drops a player from the roster and from any team,
// re-electing a captain on a team left captainless. Unknown ids no-op.
func (e *Engine) RemovePlayer(ctx context.Context, playerID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.playerIndex(playerID)
	if idx < 0 {
		e.log.Debug().Str("player_id", playerID).Msg("remove player: unknown id")
		return
	}
	e.state.Players = append(e.state.Players[:idx], e.state.Players[idx+1:]...)

	for i := range e.state.Teams {
		team := &e.state.Teams[i]
		if !removeID(&team.PlayerIDs, playerID) {
			continue
		}
		removeID(&team.CaptainIDs, playerID)
		e.reelectCaptain(team)
		e.recomputeAverage(team)
	}
	e.persist(ctx)
	e.log.Info().Str("player_id", playerID).Msg("player removed")
}

// TogglePlayerWaitlist flips the waitlist flag. Team membership is
// deliberately untouched: a rostered player may sit on the waitlist
// without leaving their team (product decision pending confirmation).
func (e *Engine) TogglePlayerWaitlist(ctx context.Context, playerID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.playerIndex(playerID)
	if idx < 0 {
		e.log.Debug().Str("player_id", playerID).Msg("toggle waitlist: unknown id")
		return
	}
	e.state.Players[idx].IsWaitlist = !e.state.Players[idx].IsWaitlist
	e.persist(ctx)
}

// TogglePlayerCaptain flips the user-designated captain preference,
// consumed by team generation. It does not touch any team's captain set.
func (e *Engine) TogglePlayerCaptain(ctx context.Context, playerID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	idx := e.playerIndex(playerID)
	if idx < 0 {
		e.log.Debug().Str("player_id", playerID).Msg("toggle captain flag: unknown id")
		return
	}
	e.state.Players[idx].IsCaptain = !e.state.Players[idx].IsCaptain
	e.persist(ctx)
}

// removeID deletes id from ids preserving order; reports whether it
// was present.
func removeID(ids *[]string, id string) bool {
	for i, v := range *ids {
		if v == id {
			*ids = append((*ids)[:i], (*ids)[i+1:]...)
			return true
		}
	}
	return false
}

func containsID(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
