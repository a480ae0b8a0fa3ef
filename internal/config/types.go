package config

const (
	// MCPTransportStreamableHTTP is the streamable HTTP transport.
	MCPTransportStreamableHTTP = "streamable-http"
	// MCPTransportSSE is the Server-Sent Events transport.
	MCPTransportSSE = "sse"
	// MCPTransportStdio is the standard I/O transport.
	MCPTransportStdio = "stdio"
)

const (
	sandboxAPIBase    = "https://sandbox-api.digikey.com"
	productionAPIBase = "https://api.digikey.com"
	tokenPath         = "/v1/oauth2/token"
)

// Config is the top-level configuration structure.
type Config struct {
	DigiKey  DigiKeyConfig `yaml:"digikey"`
	Server   ServerConfig  `yaml:"server"`
	LogLevel string        `yaml:"logLevel,omitempty"`
}

// DigiKeyConfig holds the credentials and request options for the DigiKey API.
type DigiKeyConfig struct {
	ClientID     string       `yaml:"clientId,omitempty"`
	ClientSecret string       `yaml:"clientSecret,omitempty"`
	UseSandbox   bool         `yaml:"useSandbox"`
	Locale       LocaleConfig `yaml:"locale"`

	// APIBaseURL overrides the sandbox/production host. Intended for tests and proxies.
	APIBaseURL string `yaml:"apiBaseUrl,omitempty"`
}

// LocaleConfig selects the site, language and currency headers sent with every API call.
type LocaleConfig struct {
	Site     string `yaml:"site,omitempty"`
	Language string `yaml:"language,omitempty"`
	Currency string `yaml:"currency,omitempty"`
}

// ServerConfig defines how the MCP server is exposed.
type ServerConfig struct {
	Transport string `yaml:"transport,omitempty"` // stdio (default), sse or streamable-http
	Host      string `yaml:"host,omitempty"`      // Host to bind HTTP transports to
	Port      int    `yaml:"port,omitempty"`      // Port for HTTP transports
}

// HasCredentials reports whether both the client id and secret are set.
func (d DigiKeyConfig) HasCredentials() bool {
	return d.ClientID != "" && d.ClientSecret != ""
}

// Environment returns "SANDBOX" or "PRODUCTION" for log output.
func (d DigiKeyConfig) Environment() string {
	if d.UseSandbox {
		return "SANDBOX"
	}
	return "PRODUCTION"
}

// BaseURL returns the API host selected at startup.
func (d DigiKeyConfig) BaseURL() string {
	if d.APIBaseURL != "" {
		return d.APIBaseURL
	}
	if d.UseSandbox {
		return sandboxAPIBase
	}
	return productionAPIBase
}

// TokenURL returns the OAuth2 token endpoint for the selected environment.
func (d DigiKeyConfig) TokenURL() string {
	return d.BaseURL() + tokenPath
}
