// Package tfvars writes the generated terraform variable files. The
// credentials overlay is regenerated wholesale on every run, while
// terraform.tfvars is only ever patched key-by-key so operator-maintained
// content survives.
package tfvars

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"cloudrift-driver/config"
)

// CredentialsContent renders the full credentials overlay for the given
// settings. All dynamic and sensitive variables live here; as an
// .auto.tfvars file it overrides everything else terraform reads.
func CredentialsContent(s *config.Settings) string {
	lines := []string{
		fmt.Sprintf("aws_access_key = %q", s.AccessKey),
		fmt.Sprintf("aws_secret_key = %q", s.SecretKey),
		fmt.Sprintf("region = %q", s.Region),
		fmt.Sprintf("account_id = %q", s.AccountID),
		fmt.Sprintf("owner = %q", s.Owner),
		fmt.Sprintf("devops_repo_url = %q", s.DevopsRepoURL),
		fmt.Sprintf("backend_repo_url = %q", s.BackendRepoURL),
		fmt.Sprintf("frontend_repo_url = %q", s.FrontendRepoURL),
		fmt.Sprintf("git_username = %q", s.GitUsername),
		fmt.Sprintf("git_pat = %q", s.GitPAT),
	}
	if s.SessionToken != "" {
		lines = append(lines, fmt.Sprintf("aws_session_token = %q", s.SessionToken))
	}
	if s.InstanceDNS != "" {
		lines = append(lines, fmt.Sprintf("instance_dns = %q", s.InstanceDNS))
	}
	return strings.Join(lines, "\n") + "\n"
}

// WriteCredentials overwrites the credentials overlay at path so it exactly
// reflects the current settings.
func WriteCredentials(path string, s *config.Settings) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, []byte(CredentialsContent(s)), 0o600)
}

// Upsert updates key in the tfvars file at path, replacing an existing
// assignment in place or appending a new one. All unrelated content is
// preserved byte for byte, so applying the same key and value twice is a
// no-op.
func Upsert(path, key, value string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	var text string
	if raw, err := os.ReadFile(path); err == nil {
		text = string(raw)
	} else if !os.IsNotExist(err) {
		return err
	}

	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}

	pattern := regexp.MustCompile(`(?m)^\s*` + regexp.QuoteMeta(key) + `\s*=\s*(".*?"|[^\n#]+)\s*(#.*)?$`)
	newLine := fmt.Sprintf("%s = %q", key, value)

	if pattern.MatchString(text) {
		text = pattern.ReplaceAllLiteralString(text, newLine)
		if !strings.HasSuffix(text, "\n") {
			text += "\n"
		}
	} else {
		text += newLine + "\n"
	}

	return os.WriteFile(path, []byte(text), 0o644)
}
