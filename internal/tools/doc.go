// Package tools exposes DigiKey operations as MCP tools.
//
// Provider implements ToolProvider over the endpoint catalogue in package
// digikey and the link builders in package links. ServerTools turns any
// ToolProvider into mcp-go server tools: input schemas are generated from
// ArgMetadata and every handler converts provider errors into MCP error
// results, so a failed DigiKey call is reported to the client instead of
// aborting the session.
package tools
