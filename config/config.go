package config

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

const EnvFileName = ".env"

// Settings holds everything loaded from the .env file. It is built once at
// startup and never mutated afterwards.
type Settings struct {
	// Region is the AWS region the dev environment lives in
	Region string
	// AccessKey is the AWS access key ID used for terraform and the EC2 API
	AccessKey string
	// SecretKey is the AWS secret access key
	SecretKey string
	// SessionToken is only set when temporary credentials are in use
	SessionToken string
	// AccountID is the AWS account the instance is provisioned into
	AccountID string
	// Owner must match the Owner tag terraform puts on the instance
	Owner string

	DevopsRepoURL   string
	BackendRepoURL  string
	FrontendRepoURL string

	GitUsername string
	GitPAT      string

	// InstanceDNS overrides the DNS name terraform configures for the instance
	InstanceDNS string
	// Webhook relay endpoints forwarded to terraform when set
	WebhookRelayBackendURL  string
	WebhookRelayFrontendURL string

	// SSHKeyPath is the local private key used to fetch the one-time setup
	// secret after provisioning. Optional; the fetch is skipped without it.
	SSHKeyPath string
}

// annotated matches the python-like form: NAME: str = VALUE
var annotated = regexp.MustCompile(`^\s*([A-Za-z_][A-Za-z0-9_]*)\s*:\s*[A-Za-z_][A-Za-z0-9_]*\s*=\s*(.+?)\s*$`)

// Parse reads a dotenv-style source. Two line forms are accepted and may be
// mixed freely: KEY=VALUE (quoted or not, optional "export " prefix, inline
// comments) and the annotated NAME: <type> = VALUE form.
func Parse(source string) map[string]string {
	data := make(map[string]string)
	for _, raw := range strings.Split(source, "\n") {
		line := strings.TrimSpace(strings.TrimSuffix(raw, "\r"))
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		if len(line) > 7 && strings.EqualFold(line[:7], "export ") {
			line = strings.TrimSpace(line[7:])
		}

		var key, val string
		if m := annotated.FindStringSubmatch(line); m != nil {
			key, val = m[1], m[2]
		} else if k, v, ok := strings.Cut(line, "="); ok {
			key, val = strings.TrimSpace(k), strings.TrimSpace(v)
		} else {
			continue
		}

		data[key] = unquote(stripInlineComment(val))
	}
	return data
}

// stripInlineComment drops everything from the first '#' that is not inside
// single or double quotes.
func stripInlineComment(s string) string {
	var inSingle, inDouble bool
	for i, ch := range s {
		switch {
		case ch == '\'' && !inDouble:
			inSingle = !inSingle
		case ch == '"' && !inSingle:
			inDouble = !inDouble
		case ch == '#' && !inSingle && !inDouble:
			return strings.TrimSpace(s[:i])
		}
	}
	return strings.TrimSpace(s)
}

func unquote(s string) string {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1]
		}
	}
	return s
}

// pick returns the first non-empty value among the alias spellings, tried in
// order.
func pick(data map[string]string, names ...string) string {
	for _, n := range names {
		if v := strings.TrimSpace(data[n]); v != "" {
			return v
		}
	}
	return ""
}

// Load reads and validates the .env file at envPath. Validation reports every
// missing required key at once rather than failing on the first.
func Load(envPath string) (*Settings, error) {
	raw, err := os.ReadFile(envPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("missing %s next to the driver: %s", EnvFileName, envPath)
		}
		return nil, err
	}
	return FromSource(string(raw))
}

// FromSource builds a Settings from raw .env content.
func FromSource(source string) (*Settings, error) {
	data := Parse(source)

	s := &Settings{
		Region:          pick(data, "AWS_REGION", "aws_region"),
		AccessKey:       pick(data, "AWS_ACCESS_TOKEN", "aws_access_token", "AWS_ACCESS", "aws_access"),
		SecretKey:       pick(data, "AWS_SECRET_TOKEN", "aws_secret_token", "AWS_SECRET", "aws_secret"),
		SessionToken:    pick(data, "AWS_SESSION_TOKEN", "aws_session_token"),
		AccountID:       pick(data, "ACCOUNT_ID", "account_id"),
		Owner:           pick(data, "OWNER", "owner"),
		DevopsRepoURL:   pick(data, "DEVOPS_REPO_URL", "devops_repo_url"),
		BackendRepoURL:  pick(data, "BACKEND_REPO_URL", "backend_repo_url", "API_REPO_URL", "api_repo_url"),
		FrontendRepoURL: pick(data, "FRONTEND_REPO_URL", "frontend_repo_url"),
		GitUsername:     pick(data, "GITHUB_USER", "GIT_USERNAME", "git_username"),
		GitPAT:          pick(data, "GITHUB_PAT", "GIT_PAT", "git_pat"),
		InstanceDNS:     pick(data, "INSTANCE_DNS", "instance_dns"),

		WebhookRelayBackendURL:  pick(data, "WEBHOOK_RELAY_BACKEND_URL", "webhook_relay_backend_url"),
		WebhookRelayFrontendURL: pick(data, "WEBHOOK_RELAY_FRONTEND_URL", "webhook_relay_frontend_url"),

		SSHKeyPath: pick(data, "SSH_KEY_PATH", "ssh_key_path"),
	}

	var missing []string
	for _, req := range []struct{ name, value string }{
		{"AWS_REGION", s.Region},
		{"AWS_ACCESS_TOKEN", s.AccessKey},
		{"AWS_SECRET_TOKEN", s.SecretKey},
		{"ACCOUNT_ID", s.AccountID},
		{"OWNER", s.Owner},
		{"DEVOPS_REPO_URL", s.DevopsRepoURL},
		{"BACKEND_REPO_URL (or API_REPO_URL)", s.BackendRepoURL},
		{"FRONTEND_REPO_URL", s.FrontendRepoURL},
	} {
		if req.value == "" {
			missing = append(missing, req.name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%s is missing required keys: %s", EnvFileName, strings.Join(missing, ", "))
	}

	return s, nil
}

// Mask keeps the last four characters of a secret for display.
func Mask(s string) string {
	if s == "" {
		return "<empty>"
	}
	if len(s) <= 4 {
		return strings.Repeat("*", len(s))
	}
	return strings.Repeat("*", len(s)-4) + s[len(s)-4:]
}
