// Package config resolves the runtime configuration of the DigiKey MCP server.
//
// Values are layered, lowest precedence first:
//
//  1. Built-in defaults (sandbox API, US/en/USD locale, stdio transport)
//  2. An optional YAML file passed with --config
//  3. A dotenv file (.env in the working directory unless --env-file is given)
//  4. The process environment
//
// The dotenv file never overrides a variable that is already set in the
// process environment, matching the usual dotenv semantics.
//
// # Environment Variables
//
//   - CLIENT_ID, CLIENT_SECRET: DigiKey OAuth2 application credentials
//   - USE_SANDBOX: "true" (default) selects sandbox-api.digikey.com; any other value selects production
//   - DIGIKEY_LOCALE_SITE, DIGIKEY_LOCALE_LANGUAGE, DIGIKEY_LOCALE_CURRENCY: locale headers
//   - MCP_TRANSPORT, MCP_HOST, MCP_PORT: MCP server transport settings
//   - LOG_LEVEL: debug, info, warn or error
//
// Missing credentials are not a load error. The server must be able to start
// and advertise its tools without them; authenticated tool calls fail instead.
//
// # YAML Example
//
//	digikey:
//	  clientId: my-client-id
//	  useSandbox: false
//	  locale:
//	    site: DE
//	    language: de
//	    currency: EUR
//	server:
//	  transport: streamable-http
//	  host: 0.0.0.0
//	  port: 8090
package config
