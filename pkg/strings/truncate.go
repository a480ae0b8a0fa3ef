package strings

import (
	"fmt"
	"strings"
)

// DefaultBodyLogMaxLen bounds how much of an upstream response body is written
// to a single log line. Block pages from bot mitigation can run to hundreds of KB.
const DefaultBodyLogMaxLen = 1024

// MinTruncateLen is the smallest maxLen honoured by TruncateBody.
const MinTruncateLen = 16

// TruncateBody flattens s onto a single line and cuts it to at most maxLen runes,
// appending a marker with the number of runes dropped.
//
// maxLen values below MinTruncateLen are clamped to MinTruncateLen.
func TruncateBody(s string, maxLen int) string {
	if maxLen < MinTruncateLen {
		maxLen = MinTruncateLen
	}

	s = strings.Join(strings.Fields(s), " ")

	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return fmt.Sprintf("%s...(%d more chars)", string(runes[:maxLen]), len(runes)-maxLen)
}
