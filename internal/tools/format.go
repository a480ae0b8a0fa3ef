package tools

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// WriteResult prints each content item of result on its own line. JSON is
// indented; anything else is printed as is.
func WriteResult(out io.Writer, result *CallToolResult) error {
	for _, content := range result.Content {
		var raw []byte
		if s, ok := content.(string); ok {
			raw = []byte(s)
		} else {
			text, err := marshalText(content)
			if err != nil {
				return err
			}
			raw = []byte(text)
		}

		var pretty bytes.Buffer
		if err := json.Indent(&pretty, raw, "", "  "); err != nil {
			fmt.Fprintln(out, string(raw))
			continue
		}
		fmt.Fprintln(out, pretty.String())
	}
	return nil
}
