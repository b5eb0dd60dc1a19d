package main

import (
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/spf13/cobra"

	"github.com/matchday-app/matchday/internal/engine"
)

func registerCommands(root *cobra.Command, a *app) {
	root.AddCommand(
		runCmd(a),
		playerCmd(a),
		teamsCmd(a),
		scheduleCmd(a),
		matchCmd(a),
		timerCmd(a),
		standingsCmd(a),
		exportCmd(a),
		importCmd(a),
		resetCmd(a),
	)
}

// runCmd drives the one-second timer cadence until interrupted. The
// engine itself never owns a ticker; this loop is the external clock
// source.
func runCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run the timer loop until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			clock := clockwork.NewRealClock()
			ticker := clock.NewTicker(time.Second)
			defer ticker.Stop()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
			a.log.Info().Msg("timer loop running, ctrl-c to exit")
			for {
				select {
				case <-ticker.Chan():
					a.engine.Tick(ctx)
				case <-stop:
					return nil
				case <-ctx.Done():
					return nil
				}
			}
		},
	}
}

func playerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "player", Short: "Manage the roster"}

	var skill int
	var waitlist bool
	add := &cobra.Command{
		Use:   "add NAME",
		Short: "Register a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.engine.AddPlayer(cmd.Context(), args[0], skill, waitlist)
			if p == nil {
				return fmt.Errorf("player not added")
			}
			fmt.Printf("added %s (%s), signup #%d\n", p.Name, p.ID, p.SignupOrder)
			return nil
		},
	}
	add.Flags().IntVar(&skill, "skill", 5, "skill level 1-10")
	add.Flags().BoolVar(&waitlist, "waitlist", false, "register onto the waitlist")

	remove := &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a player",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.engine.RemovePlayer(cmd.Context(), args[0])
			return nil
		},
	}
	waitlistToggle := &cobra.Command{
		Use:   "waitlist ID",
		Short: "Toggle a player's waitlist flag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.engine.TogglePlayerWaitlist(cmd.Context(), args[0])
			return nil
		},
	}
	captain := &cobra.Command{
		Use:   "captain ID",
		Short: "Toggle a player's captain preference",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.engine.TogglePlayerCaptain(cmd.Context(), args[0])
			return nil
		},
	}
	list := &cobra.Command{
		Use:   "list",
		Short: "List the roster",
		RunE: func(cmd *cobra.Command, args []string) error {
			state := a.engine.Snapshot()
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tNAME\tSKILL\tWAITLIST\tCAPTAIN")
			for _, p := range state.Players {
				fmt.Fprintf(w, "%s\t%s\t%d\t%v\t%v\n", p.ID, p.Name, p.SkillLevel, p.IsWaitlist, p.IsCaptain)
			}
			return w.Flush()
		},
	}

	cmd.AddCommand(add, remove, waitlistToggle, captain, list)
	return cmd
}

func teamsCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "teams", Short: "Generate and adjust teams"}

	generate := &cobra.Command{
		Use:   "generate",
		Short: "Rebuild teams from the active roster (snake draft)",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.engine.GenerateTeams(cmd.Context())
			return printTeams(a)
		},
	}
	var from, to string
	move := &cobra.Command{
		Use:   "move PLAYER_ID",
		Short: "Move a player between teams (empty --to sends to waitlist)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.engine.MovePlayer(cmd.Context(), args[0], from, to)
			return nil
		},
	}
	move.Flags().StringVar(&from, "from", "", "source team id")
	move.Flags().StringVar(&to, "to", "", "destination team id")

	captain := &cobra.Command{
		Use:   "captain TEAM_ID PLAYER_ID",
		Short: "Toggle a player's team captaincy",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.engine.SetTeamCaptain(cmd.Context(), args[0], args[1])
			return nil
		},
	}
	list := &cobra.Command{
		Use:   "list",
		Short: "Show current teams",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printTeams(a)
		},
	}

	cmd.AddCommand(generate, move, captain, list)
	return cmd
}

func printTeams(a *app) error {
	state := a.engine.Snapshot()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tCOLOR\tPLAYERS\tCAPTAINS\tAVG SKILL")
	for _, t := range state.Teams {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.1f\n", t.ID, t.Name, t.Color, len(t.PlayerIDs), len(t.CaptainIDs), t.AverageSkill)
	}
	return w.Flush()
}

func scheduleCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "schedule", Short: "Generate and extend the schedule"}

	generate := &cobra.Command{
		Use:   "generate",
		Short: "Build a round-robin schedule with rest gaps",
		RunE: func(cmd *cobra.Command, args []string) error {
			a.engine.GenerateSchedule(cmd.Context())
			return printMatches(a)
		},
	}
	add := &cobra.Command{
		Use:   "add TEAM_A TEAM_B",
		Short: "Append one ad-hoc match",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if m := a.engine.AddMatch(cmd.Context(), args[0], args[1]); m != nil {
				fmt.Printf("game %d: %s vs %s\n", m.GameNumber, m.TeamAID, m.TeamBID)
			}
			return nil
		},
	}
	list := &cobra.Command{
		Use:   "list",
		Short: "Show the schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printMatches(a)
		},
	}

	cmd.AddCommand(generate, add, list)
	return cmd
}

func printMatches(a *app) error {
	state := a.engine.Snapshot()
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "GAME\tID\tTEAM A\tTEAM B\tSCORE\tSTATUS")
	for _, m := range state.Matches {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%d-%d\t%s\n", m.GameNumber, m.ID, m.TeamAID, m.TeamBID, m.ScoreA, m.ScoreB, m.Status)
	}
	return w.Flush()
}

func matchCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "match", Short: "Run and score matches"}

	start := &cobra.Command{
		Use:   "start MATCH_ID",
		Short: "Start a scheduled match",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.engine.StartMatch(cmd.Context(), args[0])
			return nil
		},
	}
	score := &cobra.Command{
		Use:   "score MATCH_ID SCORE_A SCORE_B",
		Short: "Record a result",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			scoreA, err := strconv.Atoi(args[1])
			if err != nil {
				return fmt.Errorf("score_a: %w", err)
			}
			scoreB, err := strconv.Atoi(args[2])
			if err != nil {
				return fmt.Errorf("score_b: %w", err)
			}
			a.engine.UpdateScore(cmd.Context(), args[0], scoreA, scoreB)
			return nil
		},
	}
	swap := &cobra.Command{
		Use:   "swap MATCH_ID TEAM_A TEAM_B",
		Short: "Reassign the teams of a match",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a.engine.SwapTeamsInMatch(cmd.Context(), args[0], args[1], args[2])
			return nil
		},
	}

	cmd.AddCommand(start, score, swap)
	return cmd
}

func timerCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{Use: "timer", Short: "Control the match timer"}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "start",
			Short: "Start or resume the countdown",
			RunE: func(cmd *cobra.Command, args []string) error {
				a.engine.StartTimer(cmd.Context())
				return nil
			},
		},
		&cobra.Command{
			Use:   "pause",
			Short: "Pause the countdown",
			RunE: func(cmd *cobra.Command, args []string) error {
				a.engine.PauseTimer(cmd.Context())
				return nil
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Reset the countdown to the full match duration",
			RunE: func(cmd *cobra.Command, args []string) error {
				a.engine.ResetTimer(cmd.Context())
				return nil
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Show the timer state",
			RunE: func(cmd *cobra.Command, args []string) error {
				t := a.engine.Snapshot().Timer
				fmt.Printf("%02d:%02d running=%v paused=%v\n", t.TimeRemaining/60, t.TimeRemaining%60, t.IsRunning, t.IsPaused)
				return nil
			},
		},
	)
	return cmd
}

func standingsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "standings",
		Short: "Show the league table",
		RunE: func(cmd *cobra.Command, args []string) error {
			state := a.engine.Snapshot()
			names := make(map[string]string, len(state.Teams))
			for _, t := range state.Teams {
				names[t.ID] = t.Name
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "TEAM\tP\tW\tD\tL\tGF\tGA\tGD\tPTS")
			for _, row := range state.Standings {
				fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%d\t%d\t%d\t%d\n",
					names[row.TeamID], row.Played, row.Won, row.Drawn, row.Lost,
					row.GoalsFor, row.GoalsAgainst, row.GoalDifference, row.Points)
			}
			return w.Flush()
		},
	}
}

func exportCmd(a *app) *cobra.Command {
	var out string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export game data as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := a.engine.ExportData(cmd.Context())
			if err != nil {
				return err
			}
			if out == "" {
				fmt.Println(string(data))
				return nil
			}
			return os.WriteFile(out, data, 0o644)
		},
	}
	cmd.Flags().StringVarP(&out, "output", "o", "", "write to file instead of stdout")
	return cmd
}

func importCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import previously exported game data",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return err
			}
			return a.engine.ImportData(cmd.Context(), data)
		},
	}
}

func resetCmd(a *app) *cobra.Command {
	var factory bool
	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Clear game data (refuses while a match or the timer is active)",
		RunE: func(cmd *cobra.Command, args []string) error {
			var outcome engine.Outcome
			if factory {
				outcome = a.engine.ResetApp(cmd.Context())
			} else {
				outcome = a.engine.ResetAllSafe(cmd.Context())
			}
			if !outcome.Success {
				return fmt.Errorf("reset refused: %s", outcome.Reason)
			}
			fmt.Println("reset complete")
			return nil
		},
	}
	cmd.Flags().BoolVar(&factory, "factory", false, "also restore default settings and tournament name")
	return cmd
}
