package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func cancelCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <machine-id>",
		Short: "Cancel a confirmed booking",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			machineID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid machine id %q", args[0])
			}
			if userID == "" {
				return fmt.Errorf("--user is required")
			}

			if err := client.CancelBooking(cmd.Context(), machineID, userID, classID); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "cancelled booking on machine %d\n", machineID)
			return nil
		},
	}
}
