package tools

import "context"

// CallToolResult is the provider-side result of a tool call. String content is
// passed through as text; anything else is marshalled to JSON.
type CallToolResult struct {
	Content []interface{} `json:"content"`
	IsError bool          `json:"isError,omitempty"`
}

// ToolMetadata describes a tool that can be exposed over MCP.
type ToolMetadata struct {
	Name        string // e.g. "keyword_search", "generate_cart_url"
	Description string
	Args        []ArgMetadata
}

// ArgMetadata describes a tool argument.
type ArgMetadata struct {
	Name        string
	Type        string // "string", "integer", "boolean", "array"
	Required    bool
	Description string
	Default     interface{}
	// Schema, when set, replaces the type-only schema (used for arrays of objects).
	Schema map[string]interface{}
}

// ToolProvider is implemented by anything that offers tools to the MCP server.
type ToolProvider interface {
	// GetTools returns all tools this provider offers.
	GetTools() []ToolMetadata

	// ExecuteTool executes a tool by name.
	ExecuteTool(ctx context.Context, toolName string, args map[string]interface{}) (*CallToolResult, error)
}
