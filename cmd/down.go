package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Destroy the dev environment (runs destroy.sh)",
	Long:  `Tears down everything in the terraform state for the dev environment.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup()
		if err != nil {
			return err
		}
		in := bufio.NewReader(os.Stdin)
		if !promptYesNo(in, "Destroy ALL provisioned infrastructure?", false) {
			fmt.Println("Destroy cancelled.")
			return nil
		}
		return d.Flows.Destroy(cmd.Context())
	},
}

func init() {
	rootCmd.AddCommand(downCmd)
}
