// Package remote fetches the one-time setup secret the provisioning run
// leaves on the instance.
package remote

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	sshclient "github.com/helloyi/go-sshclient"
)

const (
	// RemoteUser is the login user baked into the instance image.
	RemoteUser = "ubuntu"
	// SecretPath is where setup.sh drops the one-time secret.
	SecretPath = "/home/ubuntu/setup_secret.txt"

	sshPort = "22"

	// DefaultTimeout bounds the whole dial-and-read session.
	DefaultTimeout = 30 * time.Second
)

// ErrNotPresent means the instance is reachable but the secret file does not
// exist. That is a normal outcome: the secret is removed after first use.
var ErrNotPresent = errors.New("setup secret not present on instance")

// ErrTimeout means the session did not finish within Timeout.
var ErrTimeout = errors.New("timed out fetching setup secret")

type fetchResult struct {
	secret string
	err    error
}

// FetchSecret reads the one-time setup secret from endpoint using key-based
// authentication. The session is bounded by DefaultTimeout; the SSH library
// offers no cancellation, so on timeout the session goroutine is abandoned.
func FetchSecret(endpoint, keyPath string) (string, error) {
	return fetchSecret(endpoint, keyPath, DefaultTimeout, fetch)
}

func fetchSecret(endpoint, keyPath string, timeout time.Duration, fetchFn func(endpoint, keyPath string) fetchResult) (string, error) {
	done := make(chan fetchResult, 1)
	go func() {
		done <- fetchFn(endpoint, keyPath)
	}()

	select {
	case res := <-done:
		return res.secret, res.err
	case <-time.After(timeout):
		return "", fmt.Errorf("%w after %s", ErrTimeout, timeout)
	}
}

func fetch(endpoint, keyPath string) fetchResult {
	client, err := sshclient.DialWithKey(net.JoinHostPort(endpoint, sshPort), RemoteUser, keyPath)
	if err != nil {
		return fetchResult{err: fmt.Errorf("ssh dial %s: %w", endpoint, err)}
	}
	defer func() {
		_ = client.Close()
	}()

	// test -f first so a missing file is distinguishable from cat failing
	if err := client.Cmd("test -f " + SecretPath).Run(); err != nil {
		return fetchResult{err: ErrNotPresent}
	}

	out, err := client.Cmd("cat " + SecretPath).Output()
	if err != nil {
		return fetchResult{err: fmt.Errorf("reading %s: %w", SecretPath, err)}
	}
	return fetchResult{secret: strings.TrimSpace(string(out))}
}
