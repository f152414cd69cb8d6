package remote

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchSecret_ReturnsSessionResult(t *testing.T) {
	fetchFn := func(endpoint, keyPath string) fetchResult {
		assert.Equal(t, "203.0.113.10", endpoint)
		assert.Equal(t, "/home/dev/.ssh/id_ed25519", keyPath)
		return fetchResult{secret: "s3cret-token"}
	}

	secret, err := fetchSecret("203.0.113.10", "/home/dev/.ssh/id_ed25519", time.Second, fetchFn)
	require.NoError(t, err)
	assert.Equal(t, "s3cret-token", secret)
}

func TestFetchSecret_PropagatesSessionError(t *testing.T) {
	fetchFn := func(endpoint, keyPath string) fetchResult {
		return fetchResult{err: ErrNotPresent}
	}

	_, err := fetchSecret("203.0.113.10", "key", time.Second, fetchFn)
	assert.ErrorIs(t, err, ErrNotPresent)
}

func TestFetchSecret_TimesOut(t *testing.T) {
	block := make(chan struct{})
	defer close(block)
	fetchFn := func(endpoint, keyPath string) fetchResult {
		<-block
		return fetchResult{secret: "too late"}
	}

	_, err := fetchSecret("203.0.113.10", "key", 10*time.Millisecond, fetchFn)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrTimeout)
}
