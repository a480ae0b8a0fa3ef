// Package app bootstraps the DigiKey MCP server.
//
// NewApplication performs the start-up sequence:
//
//  1. Logging is initialised on stderr (stdout belongs to the stdio transport).
//  2. Configuration is loaded from defaults, an optional YAML file, the .env
//     file and the process environment, then command-line overrides apply.
//  3. Services are built: the DigiKey API client with its token cache, the
//     MyList client, the tool provider and the MCP server.
//
// Missing DigiKey credentials do not stop start-up. The server registers all
// tools and authenticated ones report the missing credentials when called.
//
// Application.Run serves until the context is cancelled, SIGINT or SIGTERM is
// received, or the transport exits (for stdio, when the client closes stdin).
package app
