// Package digikey is the authenticated client for the DigiKey Product
// Information v4 and Order Status v4 REST APIs.
//
// A Client owns a TokenProvider, which performs the OAuth2 client-credentials
// exchange on first use and caches the bearer token, and an Executor, which
// sends the request and treats anything other than HTTP 200 as an *APIError.
//
// The supported operations are declared once in Endpoints. Each Endpoint lists
// its Params with the location they occupy in the request (path, query, body or
// the customer header) so that Client.Invoke can build every call generically
// and the MCP layer can derive input schemas from the same table:
//
//	c := digikey.NewClient(cfg.DigiKey)
//	raw, err := c.Invoke(ctx, "list_orders", map[string]interface{}{"page_size": 25})
//
// Errors are typed. Missing credentials yield *ConfigError before any network
// I/O, a failed token exchange yields *AuthError, bad tool input yields
// *ArgumentError and a non-200 response yields *APIError.
package digikey
