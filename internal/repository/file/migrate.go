package file

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/matchday-app/matchday/internal/model"
	"github.com/matchday-app/matchday/internal/repository"
)

// migrate upgrades a stored document to the current schema. Legacy
// handling stays isolated here; the rest of the codebase only ever
// sees current-shape records.
func migrate(doc document) (model.GameState, error) {
	switch {
	case doc.Version > SchemaVersion:
		return model.GameState{}, fmt.Errorf("%w: %d", repository.ErrUnsupportedVersion, doc.Version)
	case doc.Version < SchemaVersion:
		return upgradeV1(doc.State)
	}
	var state model.GameState
	if err := json.Unmarshal(doc.State, &state); err != nil {
		return model.GameState{}, fmt.Errorf("%w: %v", repository.ErrCorrupt, err)
	}
	normalize(&state)
	return state, nil
}

// Version 1 documents used camelCase keys, carried dates as plain
// strings and a single captainId per team. upgradeV1 converts them to
// the current shape in one pass; standings are dropped and recomputed
// by the engine after load.
type v1Player struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	SkillLevel  int    `json:"skillLevel"`
	IsWaitlist  bool   `json:"isWaitlist"`
	IsCaptain   bool   `json:"isCaptain"`
	SignupOrder int    `json:"signupOrder"`
	CreatedAt   string `json:"createdAt"`
}

type v1Team struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Color        string   `json:"color"`
	Players      []string `json:"players"`
	CaptainID    string   `json:"captainId"`
	CaptainIDs   []string `json:"captainIds"`
	AverageSkill float64  `json:"averageSkill"`
}

type v1Match struct {
	ID         string `json:"id"`
	GameNumber int    `json:"gameNumber"`
	TeamAID    string `json:"teamAId"`
	TeamBID    string `json:"teamBId"`
	ScoreA     int    `json:"scoreA"`
	ScoreB     int    `json:"scoreB"`
	Status     string `json:"status"`
	Duration   int    `json:"duration"`
	StartTime  string `json:"startTime,omitempty"`
	EndTime    string `json:"endTime,omitempty"`
}

type v1Settings struct {
	TeamsCount     *int `json:"teamsCount"`
	PlayersPerTeam *int `json:"playersPerTeam"`
	GamesPerTeam   *int `json:"gamesPerTeam"`
	MatchDuration  *int `json:"matchDuration"`
	WinPoints      *int `json:"winPoints"`
	DrawPoints     *int `json:"drawPoints"`
	LossPoints     *int `json:"lossPoints"`
}

type v1State struct {
	Players        []v1Player  `json:"players"`
	Teams          []v1Team    `json:"teams"`
	Matches        []v1Match   `json:"matches"`
	Settings       *v1Settings `json:"settings"`
	TournamentName string      `json:"tournamentName"`
	CurrentMatchID string      `json:"currentMatchId"`
	LastResetDate  string      `json:"lastResetDate"`
}

func upgradeV1(raw json.RawMessage) (model.GameState, error) {
	var old v1State
	if err := json.Unmarshal(raw, &old); err != nil {
		return model.GameState{}, fmt.Errorf("%w: %v", repository.ErrCorrupt, err)
	}

	state := model.NewGameState()
	state.TournamentName = old.TournamentName
	state.CurrentMatchID = old.CurrentMatchID
	state.LastResetDate = old.LastResetDate

	for _, p := range old.Players {
		state.Players = append(state.Players, model.Player{
			ID:          p.ID,
			Name:        p.Name,
			SkillLevel:  p.SkillLevel,
			IsWaitlist:  p.IsWaitlist,
			IsCaptain:   p.IsCaptain,
			SignupOrder: p.SignupOrder,
			CreatedAt:   parseV1Time(p.CreatedAt),
		})
	}
	for _, t := range old.Teams {
		state.Teams = append(state.Teams, model.Team{
			ID:           t.ID,
			Name:         t.Name,
			Color:        t.Color,
			PlayerIDs:    orEmpty(t.Players),
			CaptainIDs:   migrateCaptains(t),
			AverageSkill: t.AverageSkill,
		})
	}
	for _, m := range old.Matches {
		state.Matches = append(state.Matches, model.Match{
			ID:         m.ID,
			GameNumber: m.GameNumber,
			TeamAID:    m.TeamAID,
			TeamBID:    m.TeamBID,
			ScoreA:     m.ScoreA,
			ScoreB:     m.ScoreB,
			Status:     migrateStatus(m.Status),
			Duration:   m.Duration,
			StartTime:  parseV1TimePtr(m.StartTime),
			EndTime:    parseV1TimePtr(m.EndTime),
		})
	}
	if s := old.Settings; s != nil {
		applyIf(&state.Settings.TeamsCount, s.TeamsCount)
		applyIf(&state.Settings.PlayersPerTeam, s.PlayersPerTeam)
		applyIf(&state.Settings.GamesPerTeam, s.GamesPerTeam)
		applyIf(&state.Settings.MatchDuration, s.MatchDuration)
		applyIf(&state.Settings.WinPoints, s.WinPoints)
		applyIf(&state.Settings.DrawPoints, s.DrawPoints)
		applyIf(&state.Settings.LossPoints, s.LossPoints)
	}
	state.Timer.TimeRemaining = state.Settings.MatchDuration * 60
	return state, nil
}

// migrateCaptains prefers the multi-captain list when present, falls
// back to the legacy single captainId, and defaults to an empty set.
func migrateCaptains(t v1Team) []string {
	if len(t.CaptainIDs) > 0 {
		return t.CaptainIDs
	}
	if t.CaptainID != "" {
		return []string{t.CaptainID}
	}
	return []string{}
}

func migrateStatus(s string) string {
	// v1 used a hyphenated in-progress status.
	if s == "in-progress" {
		return model.MatchInProgress
	}
	return s
}

func parseV1Time(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts
		}
	}
	return time.Time{}
}

func parseV1TimePtr(s string) *time.Time {
	ts := parseV1Time(s)
	if ts.IsZero() {
		return nil
	}
	return &ts
}

func applyIf(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func orEmpty(in []string) []string {
	if in == nil {
		return []string{}
	}
	return in
}

// normalize fills nil collections on current-shape documents so the
// engine never trips over a hand-edited file.
func normalize(state *model.GameState) {
	if state.Players == nil {
		state.Players = []model.Player{}
	}
	if state.Teams == nil {
		state.Teams = []model.Team{}
	}
	for i := range state.Teams {
		if state.Teams[i].PlayerIDs == nil {
			state.Teams[i].PlayerIDs = []string{}
		}
		if state.Teams[i].CaptainIDs == nil {
			state.Teams[i].CaptainIDs = []string{}
		}
	}
	if state.Matches == nil {
		state.Matches = []model.Match{}
	}
	if state.Standings == nil {
		state.Standings = []model.Standing{}
	}
}
