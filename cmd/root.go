package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cloudrift-driver/client"
	"cloudrift-driver/config"
	"cloudrift-driver/flows"
	"cloudrift-driver/instance"
	"cloudrift-driver/runner"
	"cloudrift-driver/topology"
)

const (
	AppName = "cloudrift-driver"
)

var envFile string

// rootCmd represents the base command; without a subcommand it drops into
// the interactive menu.
var rootCmd = &cobra.Command{
	Use:           AppName,
	Short:         "Provision and manage the CloudRift dev instance",
	Long:          ``,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMenu(cmd)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute(version, commit, date string) {
	appVersion = fmt.Sprintf("%s - %s %s %s", AppName, version, commit, date)
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", config.EnvFileName,
		"path to the .env file (default is .env next to the driver)")
}

// driver is the fully initialized toolchain every operation runs against.
type driver struct {
	Settings  *config.Settings
	Paths     *topology.Paths
	Runner    *runner.Runner
	Flows     *flows.Flows
	Instances *instance.Controller
}

// setup loads and validates configuration, resolves the repository topology
// and the bash interpreter, and wires the AWS clients. Any failure here is
// fatal: the driver cannot do anything useful without all of it.
func setup() (*driver, error) {
	envPath, err := filepath.Abs(envFile)
	if err != nil {
		return nil, err
	}

	settings, err := config.Load(envPath)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", config.EnvFileName, err)
	}
	printLoadedConfig(envPath, settings)

	repoRoot, err := topology.FindRepoRoot(filepath.Dir(envPath))
	if err != nil {
		return nil, fmt.Errorf("locating repo: %w", err)
	}
	paths, err := topology.Resolve(repoRoot)
	if err != nil {
		return nil, fmt.Errorf("locating infra scripts: %w", err)
	}
	printDetectedPaths(paths)

	run, err := runner.New(settings)
	if err != nil {
		return nil, fmt.Errorf("locating shell: %w", err)
	}
	fmt.Printf("\nUsing bash: %s\n", run.BashPath)

	controller := instance.NewController(client.EC2Client(settings), settings.Owner)
	return &driver{
		Settings:  settings,
		Paths:     paths,
		Runner:    run,
		Flows:     flows.New(settings, paths, run, client.STSClient(settings), controller),
		Instances: controller,
	}, nil
}

func printHeader() {
	fmt.Println("\nCloudRift Terraform Driver")
	fmt.Println("----------------------------------------------------------------------")
}

func printLoadedConfig(envPath string, s *config.Settings) {
	fmt.Println("\nLoaded configuration from " + config.EnvFileName)
	fmt.Println("----------------------------------------------------------------------")
	fmt.Printf(".env path:         %s\n", envPath)
	fmt.Printf("AWS_REGION:        %s\n", s.Region)
	fmt.Printf("AWS_ACCESS_TOKEN:  %s\n", config.Mask(s.AccessKey))
	fmt.Println("AWS_SECRET_TOKEN:  ************")
	fmt.Printf("AWS_SESSION_TOKEN: %s\n", yesNo(s.SessionToken != ""))
	fmt.Printf("ACCOUNT_ID:        %s\n", s.AccountID)
	fmt.Printf("OWNER:             %s\n", s.Owner)
	fmt.Printf("DEVOPS_REPO_URL:   %s\n", s.DevopsRepoURL)
	fmt.Printf("BACKEND_REPO_URL:  %s\n", s.BackendRepoURL)
	fmt.Printf("FRONTEND_REPO_URL: %s\n", s.FrontendRepoURL)
	fmt.Printf("GIT_USERNAME:      %s\n", s.GitUsername)
	fmt.Printf("GIT_PAT:           %s\n", config.Mask(s.GitPAT))
	fmt.Println("----------------------------------------------------------------------")
}

func printDetectedPaths(p *topology.Paths) {
	fmt.Println("\nDetected paths")
	fmt.Println("----------------------------------------------------------------------")
	fmt.Printf("DevOps repo root:     %s\n", p.RepoRoot)
	fmt.Printf("Infra directory:      %s\n", p.InfraDir)
	fmt.Printf("setup.sh:             %s\n", p.SetupScript)
	fmt.Printf("destroy.sh:           %s\n", p.DestroyScript)
	fmt.Printf("DEV credentials.auto: %s\n", p.CredentialsTfvars)
	fmt.Printf("DEV terraform.tfvars: %s\n", p.TerraformTfvars)
	fmt.Println("----------------------------------------------------------------------")
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
