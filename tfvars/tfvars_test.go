package tfvars

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudrift-driver/config"
)

func testSettings() *config.Settings {
	return &config.Settings{
		Region:          "us-east-1",
		AccessKey:       "AKIAEXAMPLE1234",
		SecretKey:       "sekrit",
		AccountID:       "123456789012",
		Owner:           "alice",
		DevopsRepoURL:   "https://example.com/devops.git",
		BackendRepoURL:  "https://example.com/backend.git",
		FrontendRepoURL: "https://example.com/frontend.git",
		GitUsername:     "alice",
		GitPAT:          "ghp_example",
	}
}

func TestCredentialsContent(t *testing.T) {
	got := CredentialsContent(testSettings())

	want := `aws_access_key = "AKIAEXAMPLE1234"
aws_secret_key = "sekrit"
region = "us-east-1"
account_id = "123456789012"
owner = "alice"
devops_repo_url = "https://example.com/devops.git"
backend_repo_url = "https://example.com/backend.git"
frontend_repo_url = "https://example.com/frontend.git"
git_username = "alice"
git_pat = "ghp_example"
`
	assert.Equal(t, want, got)
	assert.NotContains(t, got, "aws_session_token")
	assert.NotContains(t, got, "instance_dns")
}

func TestCredentialsContent_OptionalFields(t *testing.T) {
	s := testSettings()
	s.SessionToken = "tok123"
	s.InstanceDNS = "dev.example.com"

	got := CredentialsContent(s)
	assert.Contains(t, got, "aws_session_token = \"tok123\"\n")
	assert.Contains(t, got, "instance_dns = \"dev.example.com\"\n")
	assert.True(t, got[len(got)-1] == '\n')
}

func TestWriteCredentials_CreatesParents(t *testing.T) {
	path := filepath.Join(t.TempDir(), "environments", "dev", "credentials.auto.tfvars")
	require.NoError(t, WriteCredentials(path, testSettings()))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, CredentialsContent(testSettings()), string(raw))
}

func TestUpsert(t *testing.T) {
	type test struct {
		name     string
		existing string
		key      string
		value    string
		want     string
	}
	tests := []test{
		{
			name:  "append to missing file",
			key:   "instance_type",
			value: "t3.large",
			want:  "instance_type = \"t3.large\"\n",
		},
		{
			name:     "append preserves existing lines",
			existing: "region = \"us-east-1\"\n# keep me\n",
			key:      "instance_type",
			value:    "t3.large",
			want:     "region = \"us-east-1\"\n# keep me\ninstance_type = \"t3.large\"\n",
		},
		{
			name:     "replace quoted value in place",
			existing: "a = \"1\"\ninstance_type = \"t2.micro\"\nb = \"2\"\n",
			key:      "instance_type",
			value:    "t3.large",
			want:     "a = \"1\"\ninstance_type = \"t3.large\"\nb = \"2\"\n",
		},
		{
			name:     "replace bare token with trailing comment",
			existing: "count = 2   # nodes\n",
			key:      "count",
			value:    "3",
			want:     "count = \"3\"\n",
		},
		{
			name:     "normalizes crlf",
			existing: "a = \"1\"\r\ninstance_type = \"t2.micro\"\r\n",
			key:      "instance_type",
			value:    "t3.large",
			want:     "a = \"1\"\ninstance_type = \"t3.large\"\n",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "terraform.tfvars")
			if tc.existing != "" {
				require.NoError(t, os.WriteFile(path, []byte(tc.existing), 0o644))
			}
			require.NoError(t, Upsert(path, tc.key, tc.value))

			raw, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(raw))
		})
	}
}

func TestUpsert_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "terraform.tfvars")
	require.NoError(t, os.WriteFile(path, []byte("region = \"us-east-1\"\n"), 0o644))

	require.NoError(t, Upsert(path, "instance_type", "t3.large"))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, Upsert(path, "instance_type", "t3.large"))
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}
