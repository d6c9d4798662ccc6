package main

import (
	"github.com/spf13/cobra"

	"github.com/cory-johannsen/dfcombat/internal/sim"
)

var duelOpts sim.DuelOptions
var duelRecord bool

var duelCmd = &cobra.Command{
	Use:   "duel",
	Short: "Fight two archetypes until one falls",
	Long: `Spawn an attacker and a target from the npc content table and let them
trade blows for up to --rounds rounds.

  Example: combatsim duel --attacker knight --target vampire --weapon silver_claymore --seed 42`,
	RunE: runDuel,
}

func init() {
	f := duelCmd.Flags()
	f.StringVar(&duelOpts.Attacker, "attacker", "knight", "npc template id of the attacker")
	f.StringVar(&duelOpts.Target, "target", "rat", "npc template id of the target")
	f.StringVar(&duelOpts.Weapon, "weapon", "", "weapon template id replacing the attacker's weapon")
	f.IntVar(&duelOpts.Rounds, "rounds", 20, "maximum number of rounds")
	f.Uint64Var(&duelOpts.Seed, "seed", 0, "dice seed (0 uses combat.seed from the config)")
	f.BoolVar(&duelOpts.AsPlayer, "player", false, "treat the attacker as the player")
	f.BoolVar(&duelRecord, "record", false, "record every attack to the attack log")
}

func runDuel(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	rt, logger, err := loadRuntime(out)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()
	defer rt.Close()

	rep, err := rt.Duel(duelOpts, printEvent(out))
	if err != nil {
		return err
	}
	printSummary(out, rep)

	if duelRecord {
		return record(cmd.Context(), rt, rep, out)
	}
	return nil
}
