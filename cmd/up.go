package cmd

import (
	"github.com/spf13/cobra"
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Provision the dev environment (runs setup.sh)",
	Long:  ``,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup()
		if err != nil {
			return err
		}
		return d.Flows.Provision(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(upCmd)
}
