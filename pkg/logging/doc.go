// Package logging provides the structured logging used across the DigiKey MCP server.
//
// It is a thin layer over log/slog: every entry carries a subsystem attribute so
// output can be filtered by component.
//
//	logging.InitForCLI(logging.LevelInfo, os.Stderr)
//
//	logging.Info("TokenProvider", "Requesting token from %s", env)
//	logging.Debug("Executor", "Headers: %v", logging.RedactHeaders(req.Header))
//	logging.Error("Executor", err, "API error: %d", status)
//
// Logs are written to stderr by the server because the stdio MCP transport
// reserves stdout for protocol frames.
//
// # Redaction
//
// RedactHeaders flattens an http.Header for logging and replaces the value of
// credential headers (Authorization, Proxy-Authorization, Cookie). The bearer
// token obtained from the OAuth2 token endpoint must only ever be logged through it.
package logging
