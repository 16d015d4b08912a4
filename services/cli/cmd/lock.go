package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func lockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lock <machine-id>",
		Short: "Lock a machine for two minutes pending confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			machineID, err := strconv.Atoi(args[0])
			if err != nil {
				return fmt.Errorf("invalid machine id %q", args[0])
			}
			if userID == "" {
				return fmt.Errorf("--user is required")
			}

			lock, err := client.LockMachine(cmd.Context(), machineID, userID, classID)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "locked machine %d until %s\ntoken: %s\n",
				machineID, lock.ExpiresAt.Local().Format("15:04:05"), lock.LockToken)
			return nil
		},
	}
}
