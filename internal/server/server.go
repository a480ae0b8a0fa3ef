package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"sync"
	"time"

	"digikey-mcp/internal/config"
	"digikey-mcp/internal/tools"
	"digikey-mcp/pkg/logging"

	mcpserver "github.com/mark3labs/mcp-go/server"
)

// Name is the MCP server name reported to clients.
const Name = "DigiKey MCP Server"

const shutdownTimeout = 5 * time.Second

// Server serves the DigiKey tools over one MCP transport.
type Server struct {
	cfg       config.ServerConfig
	mcpServer *mcpserver.MCPServer

	stdin  io.Reader
	stdout io.Writer

	mu                   sync.Mutex
	cancelFunc           context.CancelFunc
	sseServer            *mcpserver.SSEServer
	streamableHTTPServer *mcpserver.StreamableHTTPServer
	errCh                chan error
}

// Option configures a Server.
type Option func(*Server)

// WithStdio replaces os.Stdin and os.Stdout for the stdio transport.
func WithStdio(in io.Reader, out io.Writer) Option {
	return func(s *Server) {
		s.stdin = in
		s.stdout = out
	}
}

// New creates a server with every tool of provider registered.
func New(cfg config.ServerConfig, provider tools.ToolProvider, version string, opts ...Option) *Server {
	mcpServer := mcpserver.NewMCPServer(
		Name,
		version,
		mcpserver.WithToolCapabilities(false),
	)
	mcpServer.AddTools(tools.ServerTools(provider)...)

	s := &Server{
		cfg:       cfg,
		mcpServer: mcpServer,
		stdin:     os.Stdin,
		stdout:    os.Stdout,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// MCPServer returns the underlying mcp-go server.
func (s *Server) MCPServer() *mcpserver.MCPServer {
	return s.mcpServer
}

// Addr returns host:port for the HTTP transports.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
}

// Start launches the configured transport in the background. Transport
// failures are reported by Wait.
func (s *Server) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.errCh != nil {
		return fmt.Errorf("server already started")
	}

	runCtx, cancel := context.WithCancel(ctx)
	s.cancelFunc = cancel
	s.errCh = make(chan error, 1)
	errCh := s.errCh
	addr := s.Addr()

	switch s.cfg.Transport {
	case config.MCPTransportSSE:
		logging.Info("Server", "Starting MCP server with SSE transport on %s", addr)
		s.sseServer = mcpserver.NewSSEServer(
			s.mcpServer,
			mcpserver.WithBaseURL(fmt.Sprintf("http://%s", addr)),
			mcpserver.WithSSEEndpoint("/sse"),
			mcpserver.WithMessageEndpoint("/message"),
			mcpserver.WithKeepAlive(true),
			mcpserver.WithKeepAliveInterval(30*time.Second),
		)
		sseServer := s.sseServer
		go func() {
			if err := sseServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logging.Error("Server", err, "SSE server error")
				errCh <- err
				return
			}
			errCh <- nil
		}()

	case config.MCPTransportStreamableHTTP:
		logging.Info("Server", "Starting MCP server with streamable-http transport on %s", addr)
		s.streamableHTTPServer = mcpserver.NewStreamableHTTPServer(s.mcpServer)
		streamableServer := s.streamableHTTPServer
		go func() {
			if err := streamableServer.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logging.Error("Server", err, "Streamable HTTP server error")
				errCh <- err
				return
			}
			errCh <- nil
		}()

	case config.MCPTransportStdio, "":
		logging.Info("Server", "Starting MCP server with stdio transport")
		stdioServer := mcpserver.NewStdioServer(s.mcpServer)
		in, out := s.stdin, s.stdout
		go func() {
			err := stdioServer.Listen(runCtx, in, out)
			if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
				logging.Error("Server", err, "Stdio server error")
				errCh <- err
				return
			}
			errCh <- nil
		}()

	default:
		cancel()
		s.errCh = nil
		return fmt.Errorf("unsupported transport %q", s.cfg.Transport)
	}

	logging.Info("Server", "Server ready")
	return nil
}

// Wait blocks until the transport exits or ctx is done. A clean transport
// exit (stdin closed, server shut down) returns nil.
func (s *Server) Wait(ctx context.Context) error {
	s.mu.Lock()
	errCh := s.errCh
	s.mu.Unlock()
	if errCh == nil {
		return fmt.Errorf("server not started")
	}

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		return nil
	}
}

// Stop shuts the transport down.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	if s.errCh == nil {
		s.mu.Unlock()
		return fmt.Errorf("server not started")
	}
	logging.Info("Server", "Stopping MCP server")

	cancelFunc := s.cancelFunc
	sseServer := s.sseServer
	streamableServer := s.streamableHTTPServer
	s.sseServer = nil
	s.streamableHTTPServer = nil
	s.errCh = nil
	s.mu.Unlock()

	if cancelFunc != nil {
		cancelFunc()
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()

	var errs []error
	if sseServer != nil {
		if err := sseServer.Shutdown(shutdownCtx); err != nil {
			logging.Error("Server", err, "Error shutting down SSE server")
			errs = append(errs, err)
		}
	}
	if streamableServer != nil {
		if err := streamableServer.Shutdown(shutdownCtx); err != nil {
			logging.Error("Server", err, "Error shutting down streamable HTTP server")
			errs = append(errs, err)
		}
	}

	// Stdio stops on context cancellation, no explicit shutdown needed.
	return errors.Join(errs...)
}

// Run starts the server and blocks until ctx is cancelled or the transport
// exits, then shuts it down.
func (s *Server) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}

	waitErr := s.Wait(ctx)
	stopErr := s.Stop(context.Background())
	if waitErr != nil {
		return waitErr
	}
	return stopErr
}
