package tools

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"digikey-mcp/pkg/logging"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// ServerTools converts every tool of provider into an MCP server tool.
func ServerTools(provider ToolProvider) []mcpserver.ServerTool {
	var tools []mcpserver.ServerTool
	for _, toolMeta := range provider.GetTools() {
		tools = append(tools, mcpserver.ServerTool{
			Tool: mcp.Tool{
				Name:        toolMeta.Name,
				Description: toolMeta.Description,
				InputSchema: convertToMCPSchema(toolMeta.Args),
			},
			Handler: createToolHandler(provider, toolMeta.Name),
		})
	}
	return tools
}

// createToolHandler wraps provider.ExecuteTool in an MCP handler. Errors become
// error results rather than protocol errors so the calling model can see them.
func createToolHandler(provider ToolProvider, toolName string) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		args := req.GetArguments()
		if args == nil {
			args = make(map[string]interface{})
		}

		invocationID := uuid.New().String()
		start := time.Now()
		logging.Debug("ToolHandler", "Invoking %s (invocation %s)", toolName, invocationID)

		result, err := provider.ExecuteTool(ctx, toolName, args)
		if err != nil {
			logging.Error("ToolHandler", err, "Tool execution failed for %s (invocation %s)", toolName, invocationID)
			return mcp.NewToolResultError(fmt.Sprintf("Tool execution failed: %v", err)), nil
		}

		logging.Debug("ToolHandler", "Completed %s (invocation %s) in %s", toolName, invocationID, time.Since(start))
		return convertToMCPResult(result), nil
	}
}

// convertToMCPSchema converts arg metadata to an MCP input schema. A detailed
// Schema on an arg takes precedence over its Type.
func convertToMCPSchema(args []ArgMetadata) mcp.ToolInputSchema {
	properties := make(map[string]interface{})
	required := []string{}

	for _, arg := range args {
		var propSchema map[string]interface{}

		if len(arg.Schema) > 0 {
			propSchema = make(map[string]interface{}, len(arg.Schema)+1)
			for key, value := range arg.Schema {
				propSchema[key] = value
			}
			if arg.Description != "" {
				propSchema["description"] = arg.Description
			}
		} else {
			propSchema = map[string]interface{}{
				"type":        arg.Type,
				"description": arg.Description,
			}
		}

		if arg.Default != nil {
			propSchema["default"] = arg.Default
		}

		properties[arg.Name] = propSchema

		if arg.Required {
			required = append(required, arg.Name)
		}
	}

	return mcp.ToolInputSchema{
		Type:       "object",
		Properties: properties,
		Required:   required,
	}
}

// marshalText encodes v as JSON without HTML escaping so URLs keep their
// literal "&" separators.
func marshalText(v interface{}) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// convertToMCPResult turns string content into text content and marshals
// everything else to JSON text.
func convertToMCPResult(result *CallToolResult) *mcp.CallToolResult {
	mcpContent := make([]mcp.Content, len(result.Content))

	for i, content := range result.Content {
		if text, ok := content.(string); ok {
			mcpContent[i] = mcp.NewTextContent(text)
		} else {
			text, err := marshalText(content)
			if err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("failed to encode tool result: %v", err))
			}
			mcpContent[i] = mcp.NewTextContent(text)
		}
	}

	return &mcp.CallToolResult{
		Content: mcpContent,
		IsError: result.IsError,
	}
}
