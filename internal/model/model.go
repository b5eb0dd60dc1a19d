// Package model contains domain entities shared across layers.
// I keep it lean and focused on data shapes without behavior.
package model

import "time"

// Match status values. A match becomes completed only once a result
// with at least one positive score has been recorded.
const (
	MatchScheduled  = "scheduled"
	MatchInProgress = "in_progress"
	MatchCompleted  = "completed"
)

// Player is a registered participant. IDs are unique and never reused;
// SignupOrder is assigned once at creation and stays stable.
type Player struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SkillLevel  int       `json:"skill_level"`
	IsWaitlist  bool      `json:"is_waitlist"`
	IsCaptain   bool      `json:"is_captain"` // user-designated preference, independent of team captaincy
	SignupOrder int       `json:"signup_order"`
	CreatedAt   time.Time `json:"created_at"`
}

// Team holds an ordered list of player ids. CaptainIDs is always a
// subset of PlayerIDs and non-empty whenever the team has players.
type Team struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Color        string   `json:"color"`
	PlayerIDs    []string `json:"player_ids"`
	CaptainIDs   []string `json:"captain_ids"`
	AverageSkill float64  `json:"average_skill"`
}

// Match is one scheduled or played game between two distinct teams.
type Match struct {
	ID         string     `json:"id"`
	GameNumber int        `json:"game_number"`
	TeamAID    string     `json:"team_a_id"`
	TeamBID    string     `json:"team_b_id"`
	ScoreA     int        `json:"score_a"`
	ScoreB     int        `json:"score_b"`
	Status     string     `json:"status"`
	Duration   int        `json:"duration"` // minutes
	StartTime  *time.Time `json:"start_time,omitempty"`
	EndTime    *time.Time `json:"end_time,omitempty"`
}

// Standing is one row of the league table, derived entirely from
// completed matches and never mutated independently.
type Standing struct {
	TeamID         string `json:"team_id"`
	Played         int    `json:"played"`
	Won            int    `json:"won"`
	Drawn          int    `json:"drawn"`
	Lost           int    `json:"lost"`
	GoalsFor       int    `json:"goals_for"`
	GoalsAgainst   int    `json:"goals_against"`
	GoalDifference int    `json:"goal_difference"`
	Points         int    `json:"points"`
}

// GameSettings drives team generation, scheduling and scoring.
type GameSettings struct {
	TeamsCount     int `json:"teams_count" validate:"min=2,max=8"`
	PlayersPerTeam int `json:"players_per_team" validate:"min=1,max=15"`
	GamesPerTeam   int `json:"games_per_team" validate:"min=1,max=20"`
	MatchDuration  int `json:"match_duration" validate:"min=1,max=120"` // minutes
	WinPoints      int `json:"win_points" validate:"min=0"`
	DrawPoints     int `json:"draw_points" validate:"min=0"`
	LossPoints     int `json:"loss_points" validate:"min=0"`
}

// TimerState is the countdown clock. IsRunning and IsPaused are
// mutually exclusive; both false means idle.
type TimerState struct {
	TimeRemaining int  `json:"time_remaining"` // seconds
	IsRunning     bool `json:"is_running"`
	IsPaused      bool `json:"is_paused"`
}

// GameState is the aggregate root persisted after every mutation.
type GameState struct {
	Players        []Player     `json:"players"`
	Teams          []Team       `json:"teams"`
	Matches        []Match      `json:"matches"`
	Settings       GameSettings `json:"settings"`
	Standings      []Standing   `json:"standings"`
	Timer          TimerState   `json:"timer"`
	TournamentName string       `json:"tournament_name"`
	CurrentMatchID string       `json:"current_match_id"`
	LastResetDate  string       `json:"last_reset_date"` // YYYY-MM-DD
}

// TeamPreset is a fixed name/color pair used when generating teams.
type TeamPreset struct {
	Name  string
	Color string
}

// TeamPalette is the fixed set of presets teams are generated from,
// cycled when the configured team count exceeds it.
var TeamPalette = []TeamPreset{
	{Name: "Red Foxes", Color: "red"},
	{Name: "Blue Sharks", Color: "blue"},
	{Name: "Green Geckos", Color: "green"},
	{Name: "Yellow Hornets", Color: "yellow"},
	{Name: "Purple Pumas", Color: "purple"},
	{Name: "Orange Owls", Color: "orange"},
	{Name: "Black Wolves", Color: "black"},
	{Name: "White Falcons", Color: "white"},
}

// DefaultSettings returns the out-of-the-box game settings.
func DefaultSettings() GameSettings {
	return GameSettings{
		TeamsCount:     2,
		PlayersPerTeam: 5,
		GamesPerTeam:   3,
		MatchDuration:  10,
		WinPoints:      3,
		DrawPoints:     1,
		LossPoints:     0,
	}
}

// DefaultTournamentName is restored by a factory reset.
const DefaultTournamentName = "Pickup League"

// NewGameState returns an empty aggregate with default settings.
func NewGameState() GameState {
	s := DefaultSettings()
	return GameState{
		Players:        []Player{},
		Teams:          []Team{},
		Matches:        []Match{},
		Settings:       s,
		Standings:      []Standing{},
		Timer:          TimerState{TimeRemaining: s.MatchDuration * 60},
		TournamentName: DefaultTournamentName,
	}
}
