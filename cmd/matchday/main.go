// Command matchday is the terminal shell around the game-state engine:
// roster edits, team generation, scheduling, scores, the match timer
// and store lifecycle, all persisted to a local state file.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/matchday-app/matchday/internal/config"
	"github.com/matchday-app/matchday/internal/engine"
	"github.com/matchday-app/matchday/internal/logger"
	"github.com/matchday-app/matchday/internal/repository/file"
)

type app struct {
	cfg    *config.Config
	log    zerolog.Logger
	engine *engine.Engine
}

var cfgPath string

func main() {
	_ = godotenv.Load(".env")

	var a app
	root := &cobra.Command{
		Use:           "matchday",
		Short:         "Pickup-sports event manager",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.bootstrap(cmd.Context())
		},
	}
	root.PersistentFlags().StringVar(&cfgPath, "config", "config.yaml", "config file path")

	registerCommands(root, &a)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (a *app) bootstrap(ctx context.Context) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	a.cfg = cfg

	log, err := logger.New(&cfg.Logger, nil)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	a.log = log

	store := file.New(cfg.Store.Path, log)
	if err := store.Ping(ctx); err != nil {
		return fmt.Errorf("state store not ready at %s: %w", cfg.Store.Path, err)
	}
	eng, err := engine.New(ctx, store, clockwork.NewRealClock(), log, engine.Options{
		TournamentName: cfg.TournamentName,
		Settings:       cfg.Game.Settings(),
	})
	if err != nil {
		return fmt.Errorf("init engine: %w", err)
	}
	a.engine = eng

	if a.engine.CheckDailyAutoReset(ctx) {
		log.Info().Msg("new day, game data cleared")
	}
	return nil
}
