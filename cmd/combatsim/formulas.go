package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cory-johannsen/dfcombat/internal/game/formula"
	"github.com/cory-johannsen/dfcombat/internal/scripting"
)

var formulasAll bool

var formulasCmd = &cobra.Command{
	Use:   "formulas",
	Short: "List the active formula overrides",
	Long: `Load the configured Lua mods and print the override bound to each formula.
With --all every overridable formula is listed, including those running their built-in.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		out := cmd.OutOrStdout()
		rt, logger, err := loadRuntime(out)
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()
		defer rt.Close()

		fmt.Fprintf(out, "Mods loaded: %d\n\n", len(rt.Mods.Mods()))
		tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "FORMULA\tPROVIDER\tPRIORITY\tLUA")
		for _, name := range formula.Names() {
			b, ok := rt.Formulas.Active(name)
			if !ok && !formulasAll {
				continue
			}
			provider, priority := "built-in", "-"
			if ok {
				provider, priority = b.Provider, fmt.Sprint(b.Priority)
			}
			lua := "no"
			if scripting.LuaSupported(name) {
				lua = "yes"
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", name, provider, priority, lua)
		}
		return tw.Flush()
	},
}

func init() {
	formulasCmd.Flags().BoolVar(&formulasAll, "all", false, "list formulas without an override too")
}
