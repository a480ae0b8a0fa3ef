package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"digikey-mcp/internal/digikey"
	"digikey-mcp/internal/links"
)

const (
	ToolGenerateCartURL  = "generate_cart_url"
	ToolCreateMyListLink = "create_mylist_link"
)

// EndpointInvoker runs a catalogued DigiKey API call. *digikey.Client implements it.
type EndpointInvoker interface {
	Invoke(ctx context.Context, name string, args map[string]interface{}) (json.RawMessage, error)
}

// ListCreator creates MyList links. *links.MyListClient implements it.
type ListCreator interface {
	CreateLink(ctx context.Context, listName string, lines []links.MyListLine, tags string) (links.MyListLink, error)
}

// Provider exposes the DigiKey API endpoints and the credential-free link
// builders as tools.
type Provider struct {
	api   EndpointInvoker
	lists ListCreator
}

// NewProvider creates a provider. Either dependency may be nil, in which case
// calls to its tools fail with an error instead of panicking.
func NewProvider(api EndpointInvoker, lists ListCreator) *Provider {
	return &Provider{api: api, lists: lists}
}

var partsItemSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"part_number":  map[string]interface{}{"type": "string", "description": "DigiKey part number"},
		"quantity":     map[string]interface{}{"type": "integer", "description": "Quantity to add"},
		"customer_ref": map[string]interface{}{"type": "string", "description": "Customer reference (optional)"},
	},
	"required": []string{"part_number", "quantity"},
}

var myListItemSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"part_number":  map[string]interface{}{"type": "string", "description": "DigiKey or manufacturer part number"},
		"quantity":     map[string]interface{}{"type": "integer", "description": "Quantity"},
		"reference":    map[string]interface{}{"type": "string", "description": "Reference designator, e.g. R1,R2"},
		"notes":        map[string]interface{}{"type": "string", "description": "Free-form notes"},
		"manufacturer": map[string]interface{}{"type": "string", "description": "Manufacturer name"},
		"customer_ref": map[string]interface{}{"type": "string", "description": "Customer reference"},
	},
	"required": []string{"part_number", "quantity"},
}

// GetTools returns the API tools in catalogue order followed by the link tools.
func (p *Provider) GetTools() []ToolMetadata {
	tools := make([]ToolMetadata, 0, len(digikey.Endpoints)+2)

	for _, ep := range digikey.Endpoints {
		args := make([]ArgMetadata, 0, len(ep.Params))
		for _, param := range ep.Params {
			args = append(args, ArgMetadata{
				Name:        param.Name,
				Type:        string(param.Type),
				Required:    param.Required,
				Description: param.Description,
				Default:     param.Default,
			})
		}
		tools = append(tools, ToolMetadata{
			Name:        ep.Name,
			Description: ep.Description,
			Args:        args,
		})
	}

	tools = append(tools,
		ToolMetadata{
			Name: ToolGenerateCartURL,
			Description: "Generate a DigiKey FastAdd URL that adds the given parts to the user's cart when opened in a browser. " +
				"Returns {url} plus a warning when the URL is too long for some browsers. No credentials required.",
			Args: []ArgMetadata{
				{
					Name:        "parts",
					Type:        "array",
					Required:    true,
					Description: "Parts to add, in order",
					Schema:      map[string]interface{}{"type": "array", "items": partsItemSchema},
				},
				{Name: "new_cart", Type: "boolean", Description: "Clear the existing cart first (default: true)", Default: true},
			},
		},
		ToolMetadata{
			Name: ToolCreateMyListLink,
			Description: "Create a shareable DigiKey MyList from a parts list and return its single-use URL. " +
				"Returns {error} instead when DigiKey blocks the request. No credentials required.",
			Args: []ArgMetadata{
				{Name: "list_name", Type: "string", Required: true, Description: "Name of the new list"},
				{
					Name:        "parts",
					Type:        "array",
					Required:    true,
					Description: "Parts to include in the list",
					Schema:      map[string]interface{}{"type": "array", "items": myListItemSchema},
				},
				{Name: "tags", Type: "string", Description: "Comma-separated tags for the list"},
			},
		},
	)

	return tools
}

// ExecuteTool runs the named tool.
func (p *Provider) ExecuteTool(ctx context.Context, toolName string, args map[string]interface{}) (*CallToolResult, error) {
	switch toolName {
	case ToolGenerateCartURL:
		return p.handleGenerateCartURL(args)
	case ToolCreateMyListLink:
		return p.handleCreateMyListLink(ctx, args)
	}

	if _, ok := digikey.LookupEndpoint(toolName); !ok {
		return nil, fmt.Errorf("unknown tool: %s", toolName)
	}
	if p.api == nil {
		return nil, fmt.Errorf("DigiKey API client not configured")
	}

	raw, err := p.api.Invoke(ctx, toolName, args)
	if err != nil {
		return nil, err
	}
	return &CallToolResult{Content: []interface{}{string(raw)}}, nil
}

func (p *Provider) handleGenerateCartURL(args map[string]interface{}) (*CallToolResult, error) {
	parts, err := decodeParts(ToolGenerateCartURL, args)
	if err != nil {
		return nil, err
	}
	newCart, err := boolArg(ToolGenerateCartURL, args, "new_cart", true)
	if err != nil {
		return nil, err
	}

	link := links.BuildCartURL(cartLines(parts), newCart)
	return &CallToolResult{Content: []interface{}{link}}, nil
}

func (p *Provider) handleCreateMyListLink(ctx context.Context, args map[string]interface{}) (*CallToolResult, error) {
	listName := stringArg(args, "list_name")
	if listName == "" {
		return nil, &digikey.ArgumentError{Tool: ToolCreateMyListLink, Arg: "list_name", Message: "is required"}
	}
	parts, err := decodeParts(ToolCreateMyListLink, args)
	if err != nil {
		return nil, err
	}
	if p.lists == nil {
		return nil, fmt.Errorf("MyList client not configured")
	}

	link, err := p.lists.CreateLink(ctx, listName, myListLines(parts), stringArg(args, "tags"))
	if err != nil {
		return nil, err
	}
	return &CallToolResult{Content: []interface{}{link}}, nil
}
