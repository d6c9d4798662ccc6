package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/dfcombat/internal/server"
	"github.com/cory-johannsen/dfcombat/internal/sim"
	"github.com/cory-johannsen/dfcombat/internal/storage/postgres"
)

var (
	soakMatchups []string
	soakRounds   int
	soakSeed     uint64
	soakDuels    int
	soakDuration time.Duration
	soakRecord   bool
)

var soakCmd = &cobra.Command{
	Use:   "soak",
	Short: "Fight matchups repeatedly and report win rates",
	Long: `Cycle through the given matchups, fighting one duel after another until
--duels duels are fought, --duration elapses or the process is interrupted.

  Example: combatsim soak --matchup knight:rat --matchup nightblade:werewolf --duels 500`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		matchups, err := parseMatchups(soakMatchups)
		if err != nil {
			return err
		}
		rt, logger, err := loadRuntime(io.Discard)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
		defer rt.Close()

		ctx := cmd.Context()
		if soakDuration > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, soakDuration)
			defer cancel()
		}

		var sink func(sim.Matchup, sim.Report) error
		if soakRecord {
			if !rt.Config.Database.Enabled {
				return errors.New("--record needs database.enabled in the config")
			}
			pool, err := postgres.NewPool(ctx, rt.Config.Database)
			if err != nil {
				return err
			}
			defer pool.Close()
			if err := pool.Ready(ctx); err != nil {
				return err
			}
			repo := pool.AttackLog()
			sink = func(_ sim.Matchup, rep sim.Report) error {
				rounds, results := rep.Results()
				entries := make([]postgres.AttackEntry, len(results))
				for i, r := range results {
					entries[i] = postgres.EntryFromResult(rounds[i], r)
				}
				return repo.RecordAll(ctx, entries)
			}
		}

		soak, err := sim.NewSoak(rt, matchups, soakRounds, soakSeed, soakDuels, sink)
		if err != nil {
			return err
		}
		lc := server.NewLifecycle(logger)
		lc.Add("soak", soak)
		runErr := lc.Run(ctx)
		printTallies(out, soak)
		return runErr
	},
}

func init() {
	f := soakCmd.Flags()
	f.StringArrayVar(&soakMatchups, "matchup", []string{"knight:rat"}, "attacker:target npc template ids, repeatable")
	f.IntVar(&soakRounds, "rounds", 20, "maximum rounds per duel")
	f.Uint64Var(&soakSeed, "seed", 0, "dice seed of the first duel (0 uses combat.seed from the config)")
	f.IntVar(&soakDuels, "duels", 100, "number of duels to fight (0 runs until interrupted)")
	f.DurationVar(&soakDuration, "duration", 0, "stop after this long (0 for no limit)")
	f.BoolVar(&soakRecord, "record", false, "record every attack to the attack log")
}

func parseMatchups(specs []string) ([]sim.Matchup, error) {
	matchups := make([]sim.Matchup, 0, len(specs))
	for _, s := range specs {
		attacker, target, ok := strings.Cut(s, ":")
		if !ok || attacker == "" || target == "" {
			return nil, fmt.Errorf("matchup %q must be attacker:target", s)
		}
		matchups = append(matchups, sim.Matchup{Attacker: attacker, Target: target})
	}
	return matchups, nil
}

func printTallies(out io.Writer, soak *sim.Soak) {
	tallies := soak.Tallies()
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "MATCHUP\tDUELS\tATTACKER\tTARGET\tDRAW\tHIT RATE\tDAMAGE")
	printed := make(map[sim.Matchup]bool)
	for _, m := range soak.Matchups() {
		t, ok := tallies[m]
		if !ok || printed[m] {
			continue
		}
		printed[m] = true
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%.0f%%\t%d\n",
			m, t.Duels, t.AttackerWins, t.TargetWins, t.Draws, 100*t.HitRate(), t.Damage)
	}
	_ = w.Flush()
}
