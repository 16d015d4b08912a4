package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func listCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List machines and their status",
		RunE: func(cmd *cobra.Command, args []string) error {
			machines, err := client.ListMachines(cmd.Context(), classID)
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tPOS\tNAME\tSTATUS\tWHO")
			for _, m := range machines {
				who := m.BookedBy
				if who == "" {
					who = m.LockedBy
				}
				fmt.Fprintf(w, "%d\t%d,%d\t%s\t%s\t%s\n", m.ID, m.Row, m.Column, m.Name, m.Status, who)
			}
			return w.Flush()
		},
	}
}
