// Package main is the entry point for the combat simulator.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cory-johannsen/dfcombat/internal/config"
	"github.com/cory-johannsen/dfcombat/internal/game/combat"
	"github.com/cory-johannsen/dfcombat/internal/observability"
	"github.com/cory-johannsen/dfcombat/internal/sim"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "combatsim",
	Short: "Daggerfall-style combat simulator",
	Long: `combatsim resolves attacks between content archetypes using the combat
engine, the Lua override mods and, optionally, records every attack to PostgreSQL.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "configs/dev.yaml", "path to configuration file")
	rootCmd.AddCommand(duelCmd)
	rootCmd.AddCommand(skirmishCmd)
	rootCmd.AddCommand(formulasCmd)
	rootCmd.AddCommand(soakCmd)
	rootCmd.AddCommand(calcCmd)
}

// loadRuntime reads the configuration and builds a runtime whose combat
// messages are written to out.
func loadRuntime(out io.Writer) (*sim.Runtime, *zap.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		return nil, nil, err
	}
	notifier := combat.NotifierFunc(func(msg string) { fmt.Fprintf(out, "    %s\n", msg) })
	rt, err := sim.NewRuntime(cfg, logger, notifier)
	if err != nil {
		_ = logger.Sync()
		return nil, nil, err
	}
	return rt, logger, nil
}

// withRuntime runs fn against a freshly loaded runtime and releases it.
func withRuntime(cmd *cobra.Command, fn func(rt *sim.Runtime)) error {
	rt, logger, err := loadRuntime(cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	defer rt.Close()
	fn(rt)
	return nil
}

func printEvent(out io.Writer) func(combat.RoundEvent) {
	return func(ev combat.RoundEvent) {
		if ev.Result != nil && ev.Result.Hit {
			fmt.Fprintf(out, "[%2d] %s (%d%% to hit)\n", ev.Round, ev.Narrative, ev.Result.Chance)
			for _, id := range ev.Result.Effects {
				fmt.Fprintf(out, "     -> %s\n", id)
			}
			return
		}
		fmt.Fprintf(out, "[%2d] %s\n", ev.Round, ev.Narrative)
	}
}

func printSummary(out io.Writer, rep sim.Report) {
	fmt.Fprintf(out, "\nAfter %d round(s):\n", rep.Rounds)
	for _, c := range rep.Combatants {
		state := "standing"
		if c.IsDead() {
			state = "dead"
		}
		fmt.Fprintf(out, "  %-28s %3d/%-3d %s\n", c.ID, c.CurrentHealth, c.MaxHealth, state)
	}
	if rep.Winner != "" {
		fmt.Fprintf(out, "Winner: %s\n", rep.Winner)
	} else {
		fmt.Fprintln(out, "No winner.")
	}
}
