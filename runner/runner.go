// Package runner executes the terraform wrapper scripts through bash with a
// sanitized environment, so the run only ever sees the credentials and
// variables the driver injects.
package runner

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/google/uuid"
	"github.com/kballard/go-shellquote"
	"k8s.io/klog/v2"

	"cloudrift-driver/config"
)

// ConfirmPolicy controls how interactive prompts raised by a script are
// answered.
type ConfirmPolicy int

const (
	// ConfirmNone leaves stdin empty; prompts fail or wait on the operator.
	ConfirmNone ConfirmPolicy = iota
	// ConfirmAutoYes feeds a bounded number of affirmative answers to the
	// script's stdin, enough to satisfy terraform's destroy prompts without
	// parsing any prompt text.
	ConfirmAutoYes
)

// autoConfirmCount bounds how many "yes" lines ConfirmAutoYes provides.
const autoConfirmCount = 200

// droppedEnv lists credential variables removed from the inherited
// environment so terraform only picks up what the driver writes.
var droppedEnv = []string{
	"AWS_ACCESS_KEY_ID",
	"AWS_SECRET_ACCESS_KEY",
	"AWS_SESSION_TOKEN",
	"AWS_PROFILE",
	"AWS_DEFAULT_PROFILE",
}

type Runner struct {
	BashPath string
	Settings *config.Settings
}

// New resolves the bash interpreter the scripts run under. A missing bash is
// fatal at startup, not at first use.
func New(s *config.Settings) (*Runner, error) {
	bash, err := exec.LookPath("bash")
	if err != nil {
		return nil, fmt.Errorf("bash not found in PATH: %w", err)
	}
	return &Runner{BashPath: bash, Settings: s}, nil
}

// Env returns the sanitized subprocess environment: the inherited environment
// minus conflicting credentials, plus the injected terraform variables and
// any operation-specific overrides.
func (r *Runner) Env(overrides map[string]string) []string {
	drop := make(map[string]bool, len(droppedEnv))
	for _, k := range droppedEnv {
		drop[k] = true
	}

	inject := map[string]string{
		"TF_IN_AUTOMATION":         "1",
		"TF_VAR_devops_repo_url":   r.Settings.DevopsRepoURL,
		"TF_VAR_backend_repo_url":  r.Settings.BackendRepoURL,
		"TF_VAR_frontend_repo_url": r.Settings.FrontendRepoURL,
		"TF_VAR_git_username":      r.Settings.GitUsername,
		"TF_VAR_git_pat":           r.Settings.GitPAT,
	}
	if r.Settings.InstanceDNS != "" {
		inject["TF_VAR_instance_dns"] = r.Settings.InstanceDNS
	}
	if r.Settings.WebhookRelayBackendURL != "" {
		inject["TF_VAR_webhook_relay_backend_url"] = r.Settings.WebhookRelayBackendURL
	}
	if r.Settings.WebhookRelayFrontendURL != "" {
		inject["TF_VAR_webhook_relay_frontend_url"] = r.Settings.WebhookRelayFrontendURL
	}
	for k, v := range overrides {
		inject[k] = v
	}

	var env []string
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if drop[name] {
			continue
		}
		if _, ok := inject[name]; ok {
			continue
		}
		env = append(env, kv)
	}
	for k, v := range inject {
		env = append(env, k+"="+v)
	}
	return env
}

// CredentialEnv returns the overrides that hand the configured AWS
// credentials to a subprocess, so the wrapper scripts can call the aws CLI
// under the same identity terraform runs with.
func CredentialEnv(s *config.Settings) map[string]string {
	creds := map[string]string{
		"AWS_ACCESS_KEY_ID":     s.AccessKey,
		"AWS_SECRET_ACCESS_KEY": s.SecretKey,
		"AWS_DEFAULT_REGION":    s.Region,
	}
	if s.SessionToken != "" {
		creds["AWS_SESSION_TOKEN"] = s.SessionToken
	}
	return creds
}

// NormalizeScript rewrites the script in place with LF line endings. Checked
// out CRLF endings otherwise break shell interpretation.
func NormalizeScript(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	normalized := strings.ReplaceAll(string(raw), "\r\n", "\n")
	if normalized == string(raw) {
		return nil
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	return os.WriteFile(path, []byte(normalized), info.Mode().Perm())
}

// ConfirmInput returns the stdin payload for the given policy.
func ConfirmInput(policy ConfirmPolicy) string {
	if policy == ConfirmAutoYes {
		return strings.Repeat("yes\n", autoConfirmCount)
	}
	return ""
}

// RunScript executes scriptPath in workDir with the given prompt policy and
// optional environment overrides. Output streams through to the operator
// unmodified; any non-zero exit is returned as an error carrying the code.
func (r *Runner) RunScript(scriptPath, workDir string, policy ConfirmPolicy, overrides map[string]string) error {
	if _, err := os.Stat(scriptPath); err != nil {
		return fmt.Errorf("script not found: %s", scriptPath)
	}
	if err := NormalizeScript(scriptPath); err != nil {
		return fmt.Errorf("normalizing %s: %w", scriptPath, err)
	}

	runID := uuid.NewString()[:8]
	command := shellquote.Join("bash", scriptPath)
	klog.Infof("[%s] executing in %s: %s", runID, workDir, command)

	cmd := exec.Command(r.BashPath, "-lc", command)
	cmd.Dir = workDir
	cmd.Env = r.Env(overrides)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if payload := ConfirmInput(policy); payload != "" {
		cmd.Stdin = strings.NewReader(payload)
	}

	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return fmt.Errorf("%s failed with exit code %d", scriptPath, exitErr.ExitCode())
		}
		return fmt.Errorf("%s failed: %w", scriptPath, err)
	}
	klog.Infof("[%s] completed", runID)
	return nil
}
