package cmd

import (
	"bufio"
	"os"

	"github.com/spf13/cobra"
)

var instanceRebootCmd = &cobra.Command{
	Use:   "reboot",
	Short: "Reboot the instance (fire-and-forget)",
	Long:  ``,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup()
		if err != nil {
			return err
		}
		return warnOnMiss(rebootInstance(cmd.Context(), d, bufio.NewReader(os.Stdin)))
	},
}

func init() {
	instanceCmd.AddCommand(instanceRebootCmd)
}
