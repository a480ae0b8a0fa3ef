package app

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"digikey-mcp/internal/config"
	"digikey-mcp/pkg/logging"
)

// Application wires configuration, DigiKey clients and the MCP server together.
//
//	cfg := app.NewConfig(false, "", "", version)
//	application, err := app.NewApplication(cfg)
//	if err != nil {
//	    return fmt.Errorf("failed to create application: %w", err)
//	}
//	return application.Run(ctx)
type Application struct {
	config   *Config
	settings config.Config
	services *Services
}

// NewApplication initialises logging, loads configuration and builds every
// service. Missing DigiKey credentials are not an error here: the server
// starts and authenticated tools fail when called.
func NewApplication(cfg *Config) (*Application, error) {
	var logOutput io.Writer = os.Stderr
	if cfg.LogOutput != nil {
		logOutput = cfg.LogOutput
	}
	logging.InitForCLI(levelFor(cfg, ""), logOutput)

	logging.Info("Bootstrap", "=== STARTING DIGIKEY MCP SERVER ===")

	var settings config.Config
	if cfg.Settings != nil {
		settings = *cfg.Settings
	} else {
		loaded, err := config.Load(cfg.loadOptions())
		if err != nil {
			logging.Error("Bootstrap", err, "Failed to load configuration")
			return nil, fmt.Errorf("failed to load configuration: %w", err)
		}
		settings = loaded
	}

	if level := levelFor(cfg, settings.LogLevel); level != levelFor(cfg, "") {
		logging.InitForCLI(level, logOutput)
	}

	applyOverrides(cfg, &settings)
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	services, err := InitializeServices(cfg, settings)
	if err != nil {
		logging.Error("Bootstrap", err, "Failed to initialize services")
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}

	return &Application{
		config:   cfg,
		settings: settings,
		services: services,
	}, nil
}

// Settings returns the effective configuration.
func (a *Application) Settings() config.Config {
	return a.settings
}

// Services returns the initialised services.
func (a *Application) Services() *Services {
	return a.services
}

// Run serves MCP until ctx is cancelled, SIGINT/SIGTERM arrives or the
// transport exits.
func (a *Application) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	logging.Info("Bootstrap", "=== SERVER READY === (%s environment, %s transport)",
		a.settings.DigiKey.Environment(), a.settings.Server.Transport)

	if a.config.Watch && a.config.Settings == nil {
		watcher, err := a.newWatcher()
		if err != nil {
			return err
		}
		if err := watcher.Start(); err != nil {
			return err
		}
		defer watcher.Stop()
	}

	if err := a.services.Server.Run(ctx); err != nil {
		logging.Error("Bootstrap", err, "Server exited with error")
		return err
	}

	logging.Info("Bootstrap", "Server stopped")
	return nil
}

func (a *Application) newWatcher() (*FileWatcher, error) {
	opts := a.config.loadOptions()
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = config.DefaultEnvFile
	}
	return NewFileWatcher([]string{opts.ConfigFile, envFile}, DefaultDebounceInterval, a.reload)
}

// reload re-reads configuration and hands the DigiKey section to the client.
// A file that fails to load leaves the running configuration in place.
func (a *Application) reload() {
	loaded, err := config.Load(a.config.loadOptions())
	if err != nil {
		logging.Error("Bootstrap", err, "Ignoring configuration change")
		return
	}
	a.services.DigiKey.Reload(loaded.DigiKey)
	if !loaded.DigiKey.HasCredentials() {
		logging.Warn("Bootstrap", "DigiKey credentials are no longer set")
	}
}

func levelFor(cfg *Config, configured string) logging.LogLevel {
	if cfg.Debug {
		return logging.LevelDebug
	}
	if configured == "" {
		return logging.LevelInfo
	}
	return logging.ParseLevel(configured)
}

func applyOverrides(cfg *Config, settings *config.Config) {
	if cfg.Transport != "" {
		settings.Server.Transport = cfg.Transport
	}
	if cfg.Host != "" {
		settings.Server.Host = cfg.Host
	}
	if cfg.Port != 0 {
		settings.Server.Port = cfg.Port
	}
}
