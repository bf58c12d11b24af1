package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [path] [expectedSize]",
	Short: "Print the sub-test plan without running it",
	Args:  cobra.MaximumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		plan, err := buildPlan(args)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(plan) == 0 {
			fmt.Fprintln(out, "Nothing to run.")
			return nil
		}

		w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "#\tLABEL\tCOMMAND\tFOUND")
		fmt.Fprintln(w, "─\t─────\t───────\t─────")
		for i, inv := range plan {
			found := "no"
			if inv.Available() {
				found = "yes"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", i+1, inv.Label, inv, found)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
