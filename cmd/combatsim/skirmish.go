package main

import (
	"github.com/spf13/cobra"
)

var (
	skirmishRed    []string
	skirmishBlue   []string
	skirmishRounds int
	skirmishSeed   uint64
	skirmishRecord bool
)

var skirmishCmd = &cobra.Command{
	Use:   "skirmish",
	Short: "Fight two groups of archetypes",
	Long: `Spawn two sides and let every combatant attack the first living enemy
each round until one side is wiped out.

  Example: combatsim skirmish --red rat,rat,giant_bat --blue knight`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		rt, logger, err := loadRuntime(out)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
		defer rt.Close()

		rep, err := rt.Skirmish(skirmishRed, skirmishBlue, skirmishRounds, skirmishSeed, printEvent(out))
		if err != nil {
			return err
		}
		printSummary(out, rep)
		if skirmishRecord {
			return record(cmd.Context(), rt, rep, out)
		}
		return nil
	},
}

func init() {
	f := skirmishCmd.Flags()
	f.StringSliceVar(&skirmishRed, "red", nil, "npc template ids of the red side")
	f.StringSliceVar(&skirmishBlue, "blue", nil, "npc template ids of the blue side")
	f.IntVar(&skirmishRounds, "rounds", 20, "maximum number of rounds")
	f.Uint64Var(&skirmishSeed, "seed", 0, "dice seed (0 uses combat.seed from the config)")
	f.BoolVar(&skirmishRecord, "record", false, "record every attack to the attack log")
}
