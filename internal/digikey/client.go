package digikey

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"digikey-mcp/internal/config"
	"digikey-mcp/pkg/logging"
	"digikey-mcp/pkg/urlquery"
)

// DefaultCustomerID is sent when no customer id is supplied.
const DefaultCustomerID = "0"

// Client calls the DigiKey Product Information and Order Status APIs.
type Client struct {
	mu  sync.RWMutex
	cfg config.DigiKeyConfig

	baseURL  string
	tokens   *TokenProvider
	executor *Executor
}

// Option configures a Client.
type Option func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
}

// WithHTTPClient sets the HTTP client shared by the token exchange and API calls.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = httpClient
	}
}

// NewClient creates a client for the environment selected in cfg. No network
// I/O happens until the first Invoke or Headers call.
func NewClient(cfg config.DigiKeyConfig, opts ...Option) *Client {
	o := clientOptions{httpClient: http.DefaultClient}
	for _, opt := range opts {
		opt(&o)
	}

	logging.Info("DigiKeyClient", "Using %s environment at %s", cfg.Environment(), cfg.BaseURL())

	return &Client{
		cfg:      cfg,
		baseURL:  strings.TrimRight(cfg.BaseURL(), "/"),
		tokens:   NewTokenProvider(cfg, WithTokenHTTPClient(o.httpClient)),
		executor: NewExecutor(o.httpClient),
	}
}

// HasCredentials reports whether both client credentials are set.
func (c *Client) HasCredentials() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.cfg.HasCredentials()
}

// Reload applies credentials and locale from cfg. The environment and base
// URL are fixed for the lifetime of the client; a change to them is logged and
// ignored.
func (c *Client) Reload(cfg config.DigiKeyConfig) {
	c.mu.Lock()
	if cfg.BaseURL() != c.cfg.BaseURL() {
		logging.Warn("DigiKeyClient", "Ignoring change of API base URL to %s, restart to apply", cfg.BaseURL())
	}
	c.cfg.ClientID = cfg.ClientID
	c.cfg.ClientSecret = cfg.ClientSecret
	c.cfg.Locale = cfg.Locale
	c.mu.Unlock()

	c.tokens.SetCredentials(cfg.ClientID, cfg.ClientSecret)
	logging.Info("DigiKeyClient", "Reloaded credentials for client id %s...", clientIDPrefix(cfg.ClientID))
}

// Headers returns the standard request headers, acquiring a token if needed.
// An empty customerID is sent as DefaultCustomerID.
func (c *Client) Headers(ctx context.Context, customerID string) (http.Header, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}
	if customerID == "" {
		customerID = DefaultCustomerID
	}

	c.mu.RLock()
	cfg := c.cfg
	c.mu.RUnlock()

	h := make(http.Header)
	h.Set("Authorization", "Bearer "+token)
	h.Set("X-DIGIKEY-Client-Id", cfg.ClientID)
	h.Set("Content-Type", "application/json")
	h.Set("X-DIGIKEY-Locale-Site", cfg.Locale.Site)
	h.Set("X-DIGIKEY-Locale-Language", cfg.Locale.Language)
	h.Set("X-DIGIKEY-Locale-Currency", cfg.Locale.Currency)
	h.Set("X-DIGIKEY-Customer-Id", customerID)
	return h, nil
}

// Invoke runs the endpoint registered as name with the given tool arguments and
// returns the response JSON verbatim. Argument errors are reported before any
// network I/O.
func (c *Client) Invoke(ctx context.Context, name string, args map[string]interface{}) (json.RawMessage, error) {
	ep, ok := LookupEndpoint(name)
	if !ok {
		return nil, fmt.Errorf("unknown DigiKey endpoint %q", name)
	}

	resolved, err := ep.ResolveArgs(args)
	if err != nil {
		return nil, err
	}

	customerID := ""
	path := ep.Path
	var query urlquery.Values
	for _, p := range ep.Params {
		value, ok := resolved[p.Name]
		if !ok {
			continue
		}
		switch p.In {
		case InPath:
			path = strings.ReplaceAll(path, "{"+p.Name+"}", url.PathEscape(formatValue(value)))
		case InQuery:
			query.Add(p.Wire, formatValue(value))
		case InCustomerHeader:
			customerID = formatValue(value)
		}
	}

	headers, err := c.Headers(ctx, customerID)
	if err != nil {
		return nil, err
	}

	var body interface{}
	if ep.BuildBody != nil {
		body = ep.BuildBody(resolved)
	}

	return c.executor.Do(ctx, ep.Method, query.AppendTo(c.baseURL+path), headers, body)
}
