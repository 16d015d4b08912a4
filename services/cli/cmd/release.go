package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func releaseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "release <machine-id> <lock-token>",
		Short: "Release an unconfirmed lock",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			machineID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid machine id %q", args[0])
			}

			if err := client.ReleaseLock(cmd.Context(), machineID, args[1]); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "released lock on machine %d\n", machineID)
			return nil
		},
	}
}
