package digikey

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"digikey-mcp/internal/config"
	"digikey-mcp/pkg/logging"
	pkgstrings "digikey-mcp/pkg/strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/singleflight"
)

// tokenFetchTimeout bounds one token exchange, which runs detached from the
// contexts of the callers waiting on it.
const tokenFetchTimeout = 30 * time.Second

// TokenProvider obtains and caches the DigiKey bearer token.
//
// The first call performs an OAuth2 client-credentials exchange; later calls
// reuse the cached token without network I/O. A token is only fetched again
// once the expiry reported by the token endpoint has passed. Concurrent first
// calls share a single exchange.
type TokenProvider struct {
	clientID     string
	clientSecret string
	tokenURL     string
	environment  string
	httpClient   *http.Client

	mu         sync.RWMutex
	token      *oauth2.Token
	generation uint64

	group singleflight.Group
	now   func() time.Time
}

// TokenOption configures a TokenProvider.
type TokenOption func(*TokenProvider)

// WithTokenHTTPClient sets the HTTP client used for the token exchange.
func WithTokenHTTPClient(httpClient *http.Client) TokenOption {
	return func(p *TokenProvider) {
		p.httpClient = httpClient
	}
}

// NewTokenProvider creates a provider for the credentials and environment in cfg.
// Missing credentials are reported on the first Token call, not here.
func NewTokenProvider(cfg config.DigiKeyConfig, opts ...TokenOption) *TokenProvider {
	p := &TokenProvider{
		clientID:     cfg.ClientID,
		clientSecret: cfg.ClientSecret,
		tokenURL:     cfg.TokenURL(),
		environment:  cfg.Environment(),
		httpClient:   http.DefaultClient,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// SetCredentials replaces the client credentials. A cached token issued for
// the previous credentials is dropped when they change, and a request still in
// flight for them will not be cached.
func (p *TokenProvider) SetCredentials(clientID, clientSecret string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.clientID == clientID && p.clientSecret == clientSecret {
		return
	}
	p.clientID = clientID
	p.clientSecret = clientSecret
	p.generation++
	p.token = nil
	p.group.Forget("token")
}

// Token returns the cached access token, fetching it on first use.
//
// The exchange is shared by every concurrent caller and is not tied to any
// one caller's context: a caller whose ctx ends stops waiting and gets
// ctx.Err(), while the others still receive the token.
func (p *TokenProvider) Token(ctx context.Context) (string, error) {
	if err := p.checkCredentials(); err != nil {
		return "", err
	}

	if tok := p.cached(); tok != nil {
		return tok.AccessToken, nil
	}

	fetchCtx := context.WithoutCancel(ctx)
	ch := p.group.DoChan("token", func() (interface{}, error) {
		// Another caller may have stored a token while we waited.
		if tok := p.cached(); tok != nil {
			return tok, nil
		}

		clientID, clientSecret, generation := p.snapshot()

		ctx, cancel := context.WithTimeout(fetchCtx, tokenFetchTimeout)
		defer cancel()

		tok, err := p.fetch(ctx, clientID, clientSecret)
		if err != nil {
			return nil, err
		}

		p.mu.Lock()
		if p.generation == generation {
			p.token = tok
		} else {
			logging.Debug("TokenProvider", "Credentials changed during token request, not caching the token")
		}
		p.mu.Unlock()
		return tok, nil
	})

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		if res.Shared {
			logging.Debug("TokenProvider", "Reused in-flight token request")
		}
		return res.Val.(*oauth2.Token).AccessToken, nil
	}
}

func (p *TokenProvider) credentials() (string, string) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.clientID, p.clientSecret
}

func (p *TokenProvider) snapshot() (string, string, uint64) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.clientID, p.clientSecret, p.generation
}

func (p *TokenProvider) checkCredentials() error {
	clientID, clientSecret := p.credentials()

	var missing []string
	if clientID == "" {
		missing = append(missing, config.EnvClientID)
	}
	if clientSecret == "" {
		missing = append(missing, config.EnvClientSecret)
	}
	if len(missing) > 0 {
		return &ConfigError{Missing: missing}
	}
	return nil
}

// cached returns the stored token while it is usable. Tokens without an
// expiry never lapse.
func (p *TokenProvider) cached() *oauth2.Token {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.token == nil {
		return nil
	}
	if !p.token.Expiry.IsZero() && !p.now().Before(p.token.Expiry) {
		return nil
	}
	return p.token
}

func (p *TokenProvider) fetch(ctx context.Context, clientID, clientSecret string) (*oauth2.Token, error) {
	logging.Info("TokenProvider", "Requesting token from %s with client id %s...", p.environment, clientIDPrefix(clientID))

	conf := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     p.tokenURL,
		AuthStyle:    oauth2.AuthStyleInParams,
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, p.httpClient)
	tok, err := conf.Token(ctx)
	if err != nil {
		authErr := &AuthError{Err: err}

		var retrieveErr *oauth2.RetrieveError
		if errors.As(err, &retrieveErr) && retrieveErr.Response != nil {
			authErr.StatusCode = retrieveErr.Response.StatusCode
			authErr.Body = string(retrieveErr.Body)
		}

		logging.Error("TokenProvider", err, "OAuth error: %d - %s", authErr.StatusCode,
			pkgstrings.TruncateBody(authErr.Body, pkgstrings.DefaultBodyLogMaxLen))
		return nil, authErr
	}

	logging.Info("TokenProvider", "Successfully obtained access token")
	return tok, nil
}

func clientIDPrefix(id string) string {
	if len(id) <= 10 {
		return id
	}
	return id[:10]
}
