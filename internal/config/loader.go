package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/viper"

	"github.com/matchday-app/matchday/internal/model"
)

// Load reads the config file at path and applies APP_ environment
// overrides. A missing file is not an error: defaults carry the app.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &config, nil
}

func setDefaults(v *viper.Viper) {
	s := model.DefaultSettings()
	v.SetDefault("store.path", "matchday-state.json")
	v.SetDefault("tournament_name", model.DefaultTournamentName)
	v.SetDefault("game.teams_count", s.TeamsCount)
	v.SetDefault("game.players_per_team", s.PlayersPerTeam)
	v.SetDefault("game.games_per_team", s.GamesPerTeam)
	v.SetDefault("game.match_duration", s.MatchDuration)
	v.SetDefault("game.win_points", s.WinPoints)
	v.SetDefault("game.draw_points", s.DrawPoints)
	v.SetDefault("game.loss_points", s.LossPoints)
}
