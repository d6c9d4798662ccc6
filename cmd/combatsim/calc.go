package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/dfcombat/internal/sim"
)

var calcCmd = &cobra.Command{
	Use:   "calc",
	Short: "Evaluate the progression formulas",
	Long: `Evaluate a progression formula through the formula registry, so Lua
overrides loaded from the mods directory apply.`,
}

var calcLockpickCmd = &cobra.Command{
	Use:   "lockpick <skill> <lock>",
	Short: "Percent chance to pick a lock",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := intArgs(args)
		if err != nil {
			return err
		}
		return withRuntime(cmd, func(rt *sim.Runtime) {
			fmt.Fprintf(cmd.OutOrStdout(), "%d%%\n", rt.Rules.LockpickingChance(n[0], n[1]))
		})
	},
}

var calcLevelCmd = &cobra.Command{
	Use:   "level <starting-skill-sum> <current-skill-sum>",
	Short: "Character level implied by skill growth",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := intArgs(args)
		if err != nil {
			return err
		}
		return withRuntime(cmd, func(rt *sim.Runtime) {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", rt.Rules.PlayerLevel(n[0], n[1]))
		})
	},
}

var calcAdvanceCmd = &cobra.Command{
	Use:   "advance <skill> <skill-multiplier> <career-percent> <level>",
	Short: "Uses needed to advance a skill",
	Args:  cobra.ExactArgs(4),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := intArgs(args)
		if err != nil {
			return err
		}
		return withRuntime(cmd, func(rt *sim.Runtime) {
			fmt.Fprintf(cmd.OutOrStdout(), "%d\n", rt.Rules.SkillAdvancement(n[0], n[1], n[2], n[3]))
		})
	},
}

func init() {
	calcCmd.AddCommand(calcLockpickCmd)
	calcCmd.AddCommand(calcLevelCmd)
	calcCmd.AddCommand(calcAdvanceCmd)
}

func intArgs(args []string) ([]int, error) {
	n := make([]int, len(args))
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %q is not an integer", i+1, a)
		}
		n[i] = v
	}
	return n, nil
}
