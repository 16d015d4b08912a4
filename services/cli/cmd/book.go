package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func bookCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "book <machine-id> <lock-token>",
		Short: "Confirm a locked machine into a booking",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			machineID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid machine id %q", args[0])
			}
			if userID == "" {
				return fmt.Errorf("--user is required")
			}

			booking, err := client.BookMachine(cmd.Context(), machineID, userID, args[1], classID)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "booked machine %d for %s\n", booking.MachineID, booking.UserID)
			return nil
		},
	}
}
