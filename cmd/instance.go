package cmd

import (
	"errors"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"cloudrift-driver/instance"
)

// instanceCmd groups the ad-hoc lifecycle operations.
var instanceCmd = &cobra.Command{
	Use:   "instance",
	Short: "Manage the provisioned dev instance",
	Long:  ``,
}

func init() {
	rootCmd.AddCommand(instanceCmd)
}

// warnOnMiss downgrades a missing instance to a warning: an owner with no
// instance yet is an expected situation, not a failure.
func warnOnMiss(err error) error {
	if errors.Is(err, instance.ErrNotFound) {
		klog.Warning(err)
		return nil
	}
	return err
}
