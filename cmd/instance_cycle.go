package cmd

import (
	"github.com/spf13/cobra"
)

var instanceCycleCmd = &cobra.Command{
	Use:   "cycle",
	Short: "Stop the instance, wait, then start it again",
	Long: `Stops the instance and waits until it reports stopped, then starts it and
waits until it reports running. Note that the public IP and DNS name are not
stable across a stop/start cycle unless an elastic IP is attached.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup()
		if err != nil {
			return err
		}
		return warnOnMiss(cycleInstance(cmd.Context(), d))
	},
}

func init() {
	instanceCmd.AddCommand(instanceCycleCmd)
}
