package cmd

import (
	"github.com/spf13/cobra"
)

var instanceInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show the instance's public IP and DNS name",
	Long:  ``,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup()
		if err != nil {
			return err
		}
		return warnOnMiss(showConnectionInfo(cmd.Context(), d))
	},
}

func init() {
	instanceCmd.AddCommand(instanceInfoCmd)
}
