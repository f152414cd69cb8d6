package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"cloudrift-driver/tfvars"
)

var varCmd = &cobra.Command{
	Use:   "var",
	Short: "Manage persisted terraform.tfvars values",
	Long:  ``,
}

// varSetCmd upserts a single key in terraform.tfvars, leaving everything
// else in the file untouched.
var varSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a key in the dev terraform.tfvars",
	Long:  ``,
	Args: func(_ *cobra.Command, args []string) error {
		if len(args) != 2 {
			return errors.New("please specify a key and a value")
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := setup()
		if err != nil {
			return err
		}
		if err := tfvars.Upsert(d.Paths.TerraformTfvars, args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Set %s in %s\n", args[0], d.Paths.TerraformTfvars)
		return nil
	},
}

func init() {
	varCmd.AddCommand(varSetCmd)
	rootCmd.AddCommand(varCmd)
}
