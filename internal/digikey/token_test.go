package digikey

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"digikey-mcp/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenProvider_CachesToken(t *testing.T) {
	fake := newFakeDigiKey(t)
	p := NewTokenProvider(fake.config(), WithTokenHTTPClient(fake.server.Client()))

	first, err := p.Token(context.Background())
	require.NoError(t, err)
	second, err := p.Token(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "test-access-token", first)
	assert.Equal(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fake.tokenCalls))
}

func TestTokenProvider_RefetchesAfterExpiry(t *testing.T) {
	fake := newFakeDigiKey(t)
	p := NewTokenProvider(fake.config(), WithTokenHTTPClient(fake.server.Client()))

	_, err := p.Token(context.Background())
	require.NoError(t, err)

	p.now = func() time.Time { return time.Now().Add(time.Hour) }
	_, err = p.Token(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int32(2), atomic.LoadInt32(&fake.tokenCalls))
}

func TestTokenProvider_SetCredentials(t *testing.T) {
	fake := newFakeDigiKey(t)
	cfg := fake.config()
	p := NewTokenProvider(cfg, WithTokenHTTPClient(fake.server.Client()))

	_, err := p.Token(context.Background())
	require.NoError(t, err)

	p.SetCredentials(cfg.ClientID, cfg.ClientSecret)
	_, err = p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fake.tokenCalls), "unchanged credentials keep the token")

	p.SetCredentials("rotated-id", "rotated-secret")
	_, err = p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&fake.tokenCalls))

	p.SetCredentials("", "")
	_, err = p.Token(context.Background())
	assert.True(t, IsConfigError(err))
}

func TestTokenProvider_ConcurrentFirstCallsShareExchange(t *testing.T) {
	fake := newFakeDigiKey(t)
	fake.tokenGate = make(chan struct{})
	p := NewTokenProvider(fake.config(), WithTokenHTTPClient(fake.server.Client()))

	const callers = 8
	var wg sync.WaitGroup
	tokens := make([]string, callers)
	errs := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tokens[i], errs[i] = p.Token(context.Background())
		}(i)
	}

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&fake.tokenCalls) == 1
	}, 2*time.Second, 5*time.Millisecond)
	// Give the remaining callers time to join the in-flight exchange.
	time.Sleep(20 * time.Millisecond)
	close(fake.tokenGate)
	wg.Wait()

	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, "test-access-token", tokens[i])
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&fake.tokenCalls))
}

func TestTokenProvider_CancelledCallerDoesNotFailOthers(t *testing.T) {
	fake := newFakeDigiKey(t)
	fake.tokenGate = make(chan struct{})
	p := NewTokenProvider(fake.config(), WithTokenHTTPClient(fake.server.Client()))

	firstCtx, cancelFirst := context.WithCancel(context.Background())
	firstErr := make(chan error, 1)
	go func() {
		_, err := p.Token(firstCtx)
		firstErr <- err
	}()

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&fake.tokenCalls) == 1
	}, 2*time.Second, 5*time.Millisecond)

	type result struct {
		token string
		err   error
	}
	second := make(chan result, 1)
	go func() {
		tok, err := p.Token(context.Background())
		second <- result{tok, err}
	}()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	select {
	case err := <-firstErr:
		assert.True(t, errors.Is(err, context.Canceled))
		assert.False(t, IsAuthError(err))
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled caller kept waiting for the token")
	}

	close(fake.tokenGate)
	select {
	case res := <-second:
		require.NoError(t, res.err)
		assert.Equal(t, "test-access-token", res.token)
	case <-time.After(2 * time.Second):
		t.Fatal("second caller did not receive the token")
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&fake.tokenCalls))
}

func TestTokenProvider_RotationDuringFetchIsNotCached(t *testing.T) {
	fake := newFakeDigiKey(t)
	fake.tokenGate = make(chan struct{})
	p := NewTokenProvider(fake.config(), WithTokenHTTPClient(fake.server.Client()))

	done := make(chan error, 1)
	go func() {
		_, err := p.Token(context.Background())
		done <- err
	}()

	require.Eventually(t, func() bool {
		return atomic.LoadInt32(&fake.tokenCalls) == 1
	}, 2*time.Second, 5*time.Millisecond)

	p.SetCredentials("rotated-id", "rotated-secret")
	close(fake.tokenGate)
	require.NoError(t, <-done)

	_, err := p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&fake.tokenCalls), "token for the old credentials must not be reused")

	_, err = p.Token(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&fake.tokenCalls))
}

func TestTokenProvider_MissingCredentials(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		secret  string
		missing []string
	}{
		{"both missing", "", "", []string{config.EnvClientID, config.EnvClientSecret}},
		{"secret missing", "id", "", []string{config.EnvClientSecret}},
		{"id missing", "", "secret", []string{config.EnvClientID}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := newFakeDigiKey(t)
			cfg := fake.config()
			cfg.ClientID = tt.id
			cfg.ClientSecret = tt.secret
			p := NewTokenProvider(cfg, WithTokenHTTPClient(fake.server.Client()))

			_, err := p.Token(context.Background())

			var cfgErr *ConfigError
			require.True(t, errors.As(err, &cfgErr))
			assert.Equal(t, tt.missing, cfgErr.Missing)
			assert.True(t, IsConfigError(err))
			assert.Equal(t, int32(0), atomic.LoadInt32(&fake.tokenCalls))
		})
	}
}

func TestTokenProvider_AuthFailure(t *testing.T) {
	fake := newFakeDigiKey(t)
	fake.tokenStatus = http.StatusUnauthorized
	fake.tokenBody = `{"error":"invalid_client","error_description":"The client credentials are invalid"}`
	p := NewTokenProvider(fake.config(), WithTokenHTTPClient(fake.server.Client()))

	_, err := p.Token(context.Background())

	var authErr *AuthError
	require.True(t, errors.As(err, &authErr))
	assert.Equal(t, http.StatusUnauthorized, authErr.StatusCode)
	assert.Contains(t, authErr.Body, "invalid_client")
	assert.True(t, IsAuthError(err))

	// Failures are not cached.
	_, err = p.Token(context.Background())
	require.Error(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&fake.tokenCalls))
}

func TestClientIDPrefix(t *testing.T) {
	assert.Equal(t, "short", clientIDPrefix("short"))
	assert.Equal(t, "0123456789", clientIDPrefix("0123456789abcdef"))
}
