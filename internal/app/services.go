package app

import (
	"net/http"

	"digikey-mcp/internal/config"
	"digikey-mcp/internal/digikey"
	"digikey-mcp/internal/links"
	"digikey-mcp/internal/server"
	"digikey-mcp/internal/tools"
	"digikey-mcp/pkg/logging"
)

// Services holds the initialised components of the application.
type Services struct {
	// DigiKey is the authenticated API client. It owns the token cache.
	DigiKey *digikey.Client

	// Lists creates MyList links without credentials.
	Lists *links.MyListClient

	// Tools exposes both of the above as MCP tools.
	Tools *tools.Provider

	// Server serves Tools over the configured transport.
	Server *server.Server
}

// serviceOptions lets tests point every outbound client at a fake server.
type serviceOptions struct {
	httpClient *http.Client
}

// InitializeServices builds the clients, tool provider and MCP server.
func InitializeServices(cfg *Config, settings config.Config) (*Services, error) {
	return initializeServices(cfg, settings, serviceOptions{})
}

func initializeServices(cfg *Config, settings config.Config, opts serviceOptions) (*Services, error) {
	var dkOpts []digikey.Option
	var listOpts []links.MyListOption
	if opts.httpClient != nil {
		dkOpts = append(dkOpts, digikey.WithHTTPClient(opts.httpClient))
		listOpts = append(listOpts, links.WithHTTPClient(opts.httpClient))
	}

	dk := digikey.NewClient(settings.DigiKey, dkOpts...)
	lists := links.NewMyListClient(listOpts...)
	provider := tools.NewProvider(dk, lists)

	version := cfg.Version
	if version == "" {
		version = "dev"
	}
	srv := server.New(settings.Server, provider, version)

	if !settings.DigiKey.HasCredentials() {
		logging.Warn("Services", "DigiKey credentials missing; only generate_cart_url and create_mylist_link will work")
	}

	return &Services{
		DigiKey: dk,
		Lists:   lists,
		Tools:   provider,
		Server:  srv,
	}, nil
}
