package digikey

import (
	"encoding/json"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
)

// ArgType is the JSON type a tool argument is coerced to.
type ArgType string

const (
	ArgString  ArgType = "string"
	ArgInteger ArgType = "integer"
	ArgBoolean ArgType = "boolean"
)

// Location says where a resolved argument ends up in the outgoing request.
type Location int

const (
	// InPath substitutes {Name} in the endpoint path.
	InPath Location = iota
	// InQuery appends Wire=value to the query string.
	InQuery
	// InBody is consumed by the endpoint's BuildBody func.
	InBody
	// InCustomerHeader becomes the X-DIGIKEY-Customer-Id header.
	InCustomerHeader
)

// Param describes one tool argument and how it maps onto the API request.
type Param struct {
	Name        string
	Wire        string
	Type        ArgType
	In          Location
	Required    bool
	Default     interface{}
	Description string
}

// Endpoint is one DigiKey REST operation exposed as a tool.
type Endpoint struct {
	Name        string
	Description string
	Method      string
	Path        string
	// Params are listed in the order query parameters are emitted.
	Params []Param
	// BuildBody produces the JSON body for POST endpoints from resolved arguments.
	BuildBody func(args map[string]interface{}) interface{}
}

const customerIDDescription = `Customer ID for pricing (default: "0")`

// Endpoints is the catalog of authenticated DigiKey tools.
var Endpoints = []Endpoint{
	{
		Name:        "keyword_search",
		Description: "Search DigiKey products by keyword.",
		Method:      http.MethodPost,
		Path:        "/products/v4/search/keyword",
		Params: []Param{
			{Name: "keywords", Wire: "Keywords", Type: ArgString, In: InBody, Required: true, Description: "Search terms or part numbers"},
			{Name: "limit", Wire: "Limit", Type: ArgInteger, In: InBody, Default: 5, Description: "Maximum number of results (default: 5)"},
			{Name: "manufacturer_id", Wire: "ManufacturerId", Type: ArgString, In: InBody, Description: "Filter by specific manufacturer ID"},
			{Name: "category_id", Wire: "CategoryId", Type: ArgString, In: InBody, Description: "Filter by specific category ID"},
			{Name: "search_options", Wire: "SearchOptionList", Type: ArgString, In: InBody, Description: "Comma-delimited filters like LeadFree,RoHSCompliant,InStock"},
			{Name: "sort_field", Type: ArgString, In: InBody, Description: "Field to sort by. Options: None, Packaging, ProductStatus, DigiKeyProductNumber, ManufacturerProductNumber, Manufacturer, MinimumQuantity, QuantityAvailable, Price, Supplier, PriceManufacturerStandardPackage"},
			{Name: "sort_order", Type: ArgString, In: InBody, Default: "Ascending", Description: "Sort direction - Ascending or Descending (default: Ascending)"},
		},
		BuildBody: keywordSearchBody,
	},
	{
		Name:        "product_details",
		Description: "Get detailed information for a specific product.",
		Method:      http.MethodGet,
		Path:        "/products/v4/search/{product_number}/productdetails",
		Params: []Param{
			{Name: "product_number", Type: ArgString, In: InPath, Required: true, Description: "DigiKey or manufacturer part number"},
			{Name: "manufacturer_id", Wire: "manufacturerId", Type: ArgString, In: InQuery, Description: "Optional manufacturer ID for disambiguation"},
			{Name: "customer_id", Type: ArgString, In: InCustomerHeader, Default: "0", Description: customerIDDescription},
		},
	},
	{
		Name:        "search_manufacturers",
		Description: "Search and retrieve all product manufacturers.",
		Method:      http.MethodGet,
		Path:        "/products/v4/search/manufacturers",
	},
	{
		Name:        "search_categories",
		Description: "Search and retrieve all product categories.",
		Method:      http.MethodGet,
		Path:        "/products/v4/search/categories",
	},
	{
		Name:        "get_category_by_id",
		Description: "Get specific category details by ID.",
		Method:      http.MethodGet,
		Path:        "/products/v4/search/categories/{category_id}",
		Params: []Param{
			{Name: "category_id", Type: ArgInteger, In: InPath, Required: true, Description: "The category ID to retrieve"},
		},
	},
	{
		Name:        "search_product_substitutions",
		Description: "Search for product substitutions for a given product.",
		Method:      http.MethodGet,
		Path:        "/products/v4/search/{product_number}/substitutions",
		Params: []Param{
			{Name: "product_number", Type: ArgString, In: InPath, Required: true, Description: "The product to get substitutions for"},
			{Name: "limit", Wire: "limit", Type: ArgInteger, In: InQuery, Default: 10, Description: "Number of substitutions (default: 10)"},
			{Name: "exclude_marketplace", Wire: "excludeMarketPlaceProducts", Type: ArgBoolean, In: InQuery, Default: false, Description: "Exclude marketplace products (default: false)"},
			{Name: "search_options", Wire: "searchOptionList", Type: ArgString, In: InQuery, Description: "Filters like LeadFree,RoHSCompliant,InStock"},
		},
	},
	{
		Name:        "get_product_media",
		Description: "Get media (images, documents, videos) for a product.",
		Method:      http.MethodGet,
		Path:        "/products/v4/search/{product_number}/media",
		Params: []Param{
			{Name: "product_number", Type: ArgString, In: InPath, Required: true, Description: "The product to get media for"},
		},
	},
	{
		Name:        "get_product_pricing",
		Description: "Get detailed pricing information for a product.",
		Method:      http.MethodGet,
		Path:        "/products/v4/search/{product_number}/productpricing",
		Params: []Param{
			{Name: "product_number", Type: ArgString, In: InPath, Required: true, Description: "The product to get pricing for"},
			{Name: "requested_quantity", Wire: "requestedQuantity", Type: ArgInteger, In: InQuery, Default: 1, Description: "Quantity for pricing calculation (default: 1)"},
			{Name: "customer_id", Type: ArgString, In: InCustomerHeader, Default: "0", Description: customerIDDescription},
		},
	},
	{
		Name:        "get_digi_reel_pricing",
		Description: "Get DigiReel pricing for a product.",
		Method:      http.MethodGet,
		Path:        "/products/v4/search/{product_number}/digireelpricing",
		Params: []Param{
			{Name: "product_number", Type: ArgString, In: InPath, Required: true, Description: "DigiKey product number (must be DigiReel compatible)"},
			{Name: "requested_quantity", Wire: "requestedQuantity", Type: ArgInteger, In: InQuery, Required: true, Description: "Quantity for DigiReel pricing"},
			{Name: "customer_id", Type: ArgString, In: InCustomerHeader, Default: "0", Description: customerIDDescription},
		},
	},
	{
		Name:        "list_orders",
		Description: "List DigiKey orders within a date range.",
		Method:      http.MethodGet,
		Path:        "/orderstatus/v4/orders",
		Params: []Param{
			{Name: "page_size", Wire: "PageSize", Type: ArgInteger, In: InQuery, Default: 10, Description: "Results per page, max 25 (default: 10)"},
			{Name: "start_date", Wire: "StartDate", Type: ArgString, In: InQuery, Description: "Range start in YYYY-MM-DD format"},
			{Name: "end_date", Wire: "EndDate", Type: ArgString, In: InQuery, Description: "Range end in YYYY-MM-DD format"},
		},
	},
	{
		Name:        "get_order_status",
		Description: "Get status and details of a specific DigiKey sales order.",
		Method:      http.MethodGet,
		Path:        "/orderstatus/v4/salesorder/{sales_order_id}",
		Params: []Param{
			{Name: "sales_order_id", Type: ArgInteger, In: InPath, Required: true, Description: "The sales order ID to retrieve"},
		},
	},
}

// LookupEndpoint returns the endpoint registered under name.
func LookupEndpoint(name string) (Endpoint, bool) {
	for _, ep := range Endpoints {
		if ep.Name == name {
			return ep, true
		}
	}
	return Endpoint{}, false
}

// ResolveArgs validates raw tool arguments against the endpoint's params.
// The result holds coerced values plus defaults; optional params without a
// default are absent unless supplied. Empty optional strings count as absent.
// Unknown arguments are ignored.
func (ep Endpoint) ResolveArgs(raw map[string]interface{}) (map[string]interface{}, error) {
	resolved := make(map[string]interface{}, len(ep.Params))

	for _, p := range ep.Params {
		value, ok := raw[p.Name]
		if ok && value != nil {
			coerced, err := coerce(p.Type, value)
			if err != nil {
				return nil, &ArgumentError{Tool: ep.Name, Arg: p.Name, Message: err.Error()}
			}
			if s, isString := coerced.(string); !isString || s != "" {
				resolved[p.Name] = coerced
				continue
			}
			if p.Required {
				return nil, &ArgumentError{Tool: ep.Name, Arg: p.Name, Message: "must not be empty"}
			}
		}

		if p.Required {
			return nil, &ArgumentError{Tool: ep.Name, Arg: p.Name, Message: "is required"}
		}
		if p.Default != nil {
			resolved[p.Name] = p.Default
		}
	}

	return resolved, nil
}

func coerce(t ArgType, value interface{}) (interface{}, error) {
	switch t {
	case ArgInteger:
		return toInt(value)
	case ArgBoolean:
		return toBool(value)
	default:
		return toString(value)
	}
}

func toInt(value interface{}) (int, error) {
	switch v := value.(type) {
	case int:
		return v, nil
	case int32:
		return int(v), nil
	case int64:
		return int(v), nil
	case float64:
		if v != math.Trunc(v) || math.IsInf(v, 0) {
			return 0, fmt.Errorf("must be an integer, got %v", v)
		}
		return int(v), nil
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, fmt.Errorf("must be an integer, got %q", v.String())
		}
		return int(n), nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("must be an integer, got %q", v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("must be an integer, got %T", value)
	}
}

func toBool(value interface{}) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case string:
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return false, fmt.Errorf("must be a boolean, got %q", v)
		}
		return b, nil
	default:
		return false, fmt.Errorf("must be a boolean, got %T", value)
	}
}

func toString(value interface{}) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case float64:
		// Numeric ids arrive as JSON numbers from some clients.
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case int:
		return strconv.Itoa(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	default:
		return "", fmt.Errorf("must be a string, got %T", value)
	}
}

// formatValue renders a resolved argument for a path segment or query value.
func formatValue(value interface{}) string {
	switch v := value.(type) {
	case string:
		return v
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return fmt.Sprint(v)
	}
}

// SplitOptions turns "LeadFree, RoHSCompliant,,InStock" into its non-empty trimmed items.
func SplitOptions(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

func keywordSearchBody(args map[string]interface{}) interface{} {
	body := map[string]interface{}{
		"Keywords": args["keywords"],
		"Limit":    args["limit"],
	}
	if v, ok := args["manufacturer_id"]; ok {
		body["ManufacturerId"] = v
	}
	if v, ok := args["category_id"]; ok {
		body["CategoryId"] = v
	}
	if v, ok := args["search_options"].(string); ok {
		if opts := SplitOptions(v); len(opts) > 0 {
			body["SearchOptionList"] = opts
		}
	}
	if field, ok := args["sort_field"]; ok {
		body["SortOptions"] = map[string]interface{}{
			"Field":     field,
			"SortOrder": args["sort_order"],
		}
	}
	return body
}
