package tools

import (
	"encoding/json"
	"fmt"
	"strconv"

	"digikey-mcp/internal/digikey"
	"digikey-mcp/internal/links"
)

// partArg is the wire shape of one entry of the "parts" argument. Quantity is a
// pointer so a missing value can be told apart from zero.
type partArg struct {
	PartNumber   string `json:"part_number"`
	Quantity     *int   `json:"quantity"`
	CustomerRef  string `json:"customer_ref"`
	Reference    string `json:"reference"`
	Notes        string `json:"notes"`
	Manufacturer string `json:"manufacturer"`
}

// decodeParts reads the "parts" argument. Some clients send the array
// JSON-encoded as a string, which is accepted too.
func decodeParts(tool string, args map[string]interface{}) ([]partArg, error) {
	raw, ok := args["parts"]
	if !ok || raw == nil {
		return nil, &digikey.ArgumentError{Tool: tool, Arg: "parts", Message: "is required"}
	}

	var data []byte
	if s, isString := raw.(string); isString {
		data = []byte(s)
	} else {
		encoded, err := json.Marshal(raw)
		if err != nil {
			return nil, &digikey.ArgumentError{Tool: tool, Arg: "parts", Message: err.Error()}
		}
		data = encoded
	}

	var parts []partArg
	if err := json.Unmarshal(data, &parts); err != nil {
		return nil, &digikey.ArgumentError{Tool: tool, Arg: "parts", Message: "must be a list of part objects: " + err.Error()}
	}

	for i, p := range parts {
		if p.PartNumber == "" {
			return nil, &digikey.ArgumentError{Tool: tool, Arg: fmt.Sprintf("parts[%d].part_number", i), Message: "is required"}
		}
		if p.Quantity == nil {
			return nil, &digikey.ArgumentError{Tool: tool, Arg: fmt.Sprintf("parts[%d].quantity", i), Message: "is required"}
		}
	}
	return parts, nil
}

func cartLines(parts []partArg) []links.CartLine {
	lines := make([]links.CartLine, 0, len(parts))
	for _, p := range parts {
		lines = append(lines, links.CartLine{
			PartNumber:  p.PartNumber,
			Quantity:    *p.Quantity,
			CustomerRef: p.CustomerRef,
		})
	}
	return lines
}

func myListLines(parts []partArg) []links.MyListLine {
	lines := make([]links.MyListLine, 0, len(parts))
	for _, p := range parts {
		lines = append(lines, links.MyListLine{
			PartNumber:   p.PartNumber,
			Quantity:     *p.Quantity,
			Reference:    p.Reference,
			Notes:        p.Notes,
			Manufacturer: p.Manufacturer,
			CustomerRef:  p.CustomerRef,
		})
	}
	return lines
}

func stringArg(args map[string]interface{}, name string) string {
	if s, ok := args[name].(string); ok {
		return s
	}
	return ""
}

// boolArg returns the named boolean, or def when it is absent.
func boolArg(tool string, args map[string]interface{}, name string, def bool) (bool, error) {
	raw, ok := args[name]
	if !ok || raw == nil {
		return def, nil
	}
	switch v := raw.(type) {
	case bool:
		return v, nil
	case string:
		if b, err := strconv.ParseBool(v); err == nil {
			return b, nil
		}
	}
	return false, &digikey.ArgumentError{Tool: tool, Arg: name, Message: fmt.Sprintf("must be a boolean, got %v", raw)}
}
