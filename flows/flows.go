// Package flows composes the provisioning pieces into the operations the
// menu exposes.
package flows

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"k8s.io/klog/v2"

	"cloudrift-driver/config"
	"cloudrift-driver/instance"
	"cloudrift-driver/remote"
	"cloudrift-driver/runner"
	"cloudrift-driver/tfvars"
	"cloudrift-driver/topology"
)

// destroyApproveEnv is forwarded from the driver's own environment into the
// destroy script when set.
const destroyApproveEnv = "DESTROY_AUTO_APPROVE"

type ScriptRunner interface {
	RunScript(scriptPath, workDir string, policy runner.ConfirmPolicy, overrides map[string]string) error
}

type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

type Lifecycle interface {
	Lookup(ctx context.Context) (*instance.Info, error)
}

type Flows struct {
	Settings  *config.Settings
	Paths     *topology.Paths
	Runner    ScriptRunner
	STS       STSAPI
	Instances Lifecycle

	// FetchSecret is remote.FetchSecret unless overridden in tests.
	FetchSecret func(endpoint, keyPath string) (string, error)
}

func New(s *config.Settings, paths *topology.Paths, run ScriptRunner, stsAPI STSAPI, lifecycle Lifecycle) *Flows {
	return &Flows{
		Settings:    s,
		Paths:       paths,
		Runner:      run,
		STS:         stsAPI,
		Instances:   lifecycle,
		FetchSecret: remote.FetchSecret,
	}
}

// preflight checks the configured credentials against STS. A failure is
// informational only; terraform gives its own, better error later.
func (f *Flows) preflight(ctx context.Context) {
	out, err := f.STS.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		klog.Warningf("identity preflight failed (continuing): %v", err)
		return
	}
	klog.Infof("acting as %s in account %s", aws.ToString(out.Arn), aws.ToString(out.Account))
}

// Provision regenerates the credentials overlay and runs setup.sh, then
// reports how to reach the instance and tries to collect the one-time setup
// secret.
func (f *Flows) Provision(ctx context.Context) error {
	fmt.Println("\n[Provision] Writing tfvars and running " + topology.SetupScript + "...")
	f.preflight(ctx)

	if err := tfvars.WriteCredentials(f.Paths.CredentialsTfvars, f.Settings); err != nil {
		return fmt.Errorf("writing credentials overlay: %w", err)
	}
	klog.Infof("wrote %s", f.Paths.CredentialsTfvars)

	if err := f.Runner.RunScript(f.Paths.SetupScript, f.Paths.InfraDir, runner.ConfirmNone, runner.CredentialEnv(f.Settings)); err != nil {
		return err
	}

	info, err := f.Instances.Lookup(ctx)
	switch {
	case errors.Is(err, instance.ErrNotFound):
		klog.Warningf("provisioning finished but %v", err)
	case err != nil:
		return err
	default:
		PrintConnectionInfo(info)
		f.collectSecret(info)
	}

	fmt.Println("[Provision] Completed successfully.")
	return nil
}

func (f *Flows) collectSecret(info *instance.Info) {
	endpoint := info.Endpoint()
	if endpoint == "" {
		klog.Warning("instance has no public endpoint yet; skipping setup secret fetch")
		return
	}
	if f.Settings.SSHKeyPath == "" {
		klog.Info("SSH_KEY_PATH not configured; skipping setup secret fetch")
		return
	}

	secret, err := f.FetchSecret(endpoint, f.Settings.SSHKeyPath)
	switch {
	case errors.Is(err, remote.ErrNotPresent):
		fmt.Println("Setup secret not present on the instance (already consumed).")
	case errors.Is(err, remote.ErrTimeout):
		klog.Warningf("setup secret fetch: %v", err)
	case err != nil:
		klog.Warningf("setup secret fetch failed: %v", err)
	default:
		fmt.Printf("One-time setup secret: %s\n", secret)
	}
}

// Destroy regenerates the credentials overlay and runs destroy.sh with
// auto-confirmation, forwarding DESTROY_AUTO_APPROVE from the driver's
// environment when the operator set it.
func (f *Flows) Destroy(ctx context.Context) error {
	fmt.Println("\n[Destroy] Writing tfvars and running " + topology.DestroyScript + " (auto-confirm enabled)...")
	f.preflight(ctx)

	if err := tfvars.WriteCredentials(f.Paths.CredentialsTfvars, f.Settings); err != nil {
		return fmt.Errorf("writing credentials overlay: %w", err)
	}
	klog.Infof("wrote %s", f.Paths.CredentialsTfvars)

	overrides := runner.CredentialEnv(f.Settings)
	if v := os.Getenv(destroyApproveEnv); v != "" {
		overrides[destroyApproveEnv] = v
	}
	if err := f.Runner.RunScript(f.Paths.DestroyScript, f.Paths.InfraDir, runner.ConfirmAutoYes, overrides); err != nil {
		return err
	}
	fmt.Println("[Destroy] Completed successfully.")
	return nil
}

// PrintConnectionInfo reports how to reach the instance. Either address may
// be missing when the instance is not running.
func PrintConnectionInfo(info *instance.Info) {
	fmt.Println("\nInstance connection info")
	fmt.Println("----------------------------------------------------------------------")
	fmt.Printf("Instance ID: %s\n", info.ID)
	fmt.Printf("State:       %s\n", info.State)
	fmt.Printf("Public IP:   %s\n", orNone(info.PublicIP))
	fmt.Printf("Public DNS:  %s\n", orNone(info.PublicDNS))
	if ep := info.Endpoint(); ep != "" {
		fmt.Printf("Endpoint:    %s\n", ep)
	}
	fmt.Println("----------------------------------------------------------------------")
}

func orNone(s string) string {
	if s == "" {
		return "<none>"
	}
	return s
}
