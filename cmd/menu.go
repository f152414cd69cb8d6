package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"cloudrift-driver/flows"
	"cloudrift-driver/instance"
)

// menuCmd is the same loop the bare root command runs, kept as an explicit
// subcommand so `cloudrift-driver menu` also works.
var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Interactive menu for all driver operations",
	Long:  ``,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu(cmd)
	},
}

func init() {
	rootCmd.AddCommand(menuCmd)
}

func runMenu(cmd *cobra.Command) error {
	printHeader()
	d, err := setup()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	in := bufio.NewReader(os.Stdin)
	for {
		fmt.Println("\nMenu")
		fmt.Println("1) Provision / Apply infrastructure (setup.sh)")
		fmt.Println("2) Reboot instance")
		fmt.Println("3) Show instance connection info")
		fmt.Println("4) Stop + start instance")
		fmt.Println("5) Destroy infrastructure (destroy.sh)  [deletes everything in terraform state]")
		fmt.Println("0) Exit")
		fmt.Print("> ")

		line, readErr := in.ReadString('\n')
		if readErr != nil && line == "" {
			fmt.Println("Exiting.")
			return nil
		}

		var opErr error
		switch strings.TrimSpace(line) {
		case "1":
			opErr = d.Flows.Provision(ctx)
		case "2":
			opErr = rebootInstance(ctx, d, in)
		case "3":
			opErr = showConnectionInfo(ctx, d)
		case "4":
			opErr = cycleInstance(ctx, d)
		case "5":
			opErr = d.Flows.Destroy(ctx)
		case "0":
			fmt.Println("Exiting.")
			return nil
		default:
			fmt.Println("Invalid selection. Choose 0-5.")
			continue
		}

		if opErr == nil {
			continue
		}
		if errors.Is(opErr, instance.ErrNotFound) {
			klog.Warning(opErr)
			continue
		}
		fmt.Printf("\nERROR: %v\n", opErr)
		if !promptYesNo(in, "Return to menu?", true) {
			return errors.New("exited after failed operation")
		}
	}
}

func showConnectionInfo(ctx context.Context, d *driver) error {
	info, err := d.Instances.Lookup(ctx)
	if err != nil {
		return err
	}
	flows.PrintConnectionInfo(info)
	return nil
}

func rebootInstance(ctx context.Context, d *driver, in *bufio.Reader) error {
	if !promptYesNo(in, "Reboot the instance now?", false) {
		fmt.Println("Reboot cancelled.")
		return nil
	}
	info, err := d.Instances.Reboot(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Reboot issued for %s. The instance will be back shortly; this is not polled.\n", info.ID)
	return nil
}

func cycleInstance(ctx context.Context, d *driver) error {
	fmt.Println("\nStopping and starting the instance. The public IP/DNS may change unless an elastic IP is attached.")
	info, err := d.Instances.StopStart(ctx)
	if err != nil {
		return err
	}
	flows.PrintConnectionInfo(info)
	return nil
}
