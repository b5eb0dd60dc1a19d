// Package config wires file and environment configuration for the app.
package config

import (
	"github.com/matchday-app/matchday/internal/logger"
	"github.com/matchday-app/matchday/internal/model"
)

// Store configures where the game state document lives on disk.
type Store struct {
	Path string `mapstructure:"path" validate:"required"`
}

// Game mirrors model.GameSettings with config-file keys. Kept separate
// so the domain type does not carry decoding concerns.
type Game struct {
	TeamsCount     int `mapstructure:"teams_count"`
	PlayersPerTeam int `mapstructure:"players_per_team"`
	GamesPerTeam   int `mapstructure:"games_per_team"`
	MatchDuration  int `mapstructure:"match_duration"`
	WinPoints      int `mapstructure:"win_points"`
	DrawPoints     int `mapstructure:"draw_points"`
	LossPoints     int `mapstructure:"loss_points"`
}

// Settings converts the config shape to the domain settings type.
func (g Game) Settings() model.GameSettings {
	return model.GameSettings{
		TeamsCount:     g.TeamsCount,
		PlayersPerTeam: g.PlayersPerTeam,
		GamesPerTeam:   g.GamesPerTeam,
		MatchDuration:  g.MatchDuration,
		WinPoints:      g.WinPoints,
		DrawPoints:     g.DrawPoints,
		LossPoints:     g.LossPoints,
	}
}

// Config is the root application configuration.
type Config struct {
	Logger         logger.Config `mapstructure:"logger"`
	Store          Store         `mapstructure:"store"`
	TournamentName string        `mapstructure:"tournament_name"`
	Game           Game          `mapstructure:"game"`
}
