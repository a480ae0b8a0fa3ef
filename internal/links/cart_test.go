package links

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCartURL(t *testing.T) {
	tests := []struct {
		name        string
		lines       []CartLine
		newCart     bool
		contains    []string
		notContains []string
	}{
		{
			name:     "single part",
			lines:    []CartLine{{PartNumber: "296-8875-1-ND", Quantity: 10}},
			newCart:  true,
			contains: []string{"part1=296-8875-1-ND&qty1=10&newcart=true"},
		},
		{
			name: "multiple parts with optional reference",
			lines: []CartLine{
				{PartNumber: "296-8875-1-ND", Quantity: 10, CustomerRef: "R1"},
				{PartNumber: "1050-ABX00052-ND", Quantity: 1},
			},
			newCart:     true,
			contains:    []string{"part1=296-8875-1-ND&qty1=10&cref1=R1&part2=1050-ABX00052-ND&qty2=1&newcart=true"},
			notContains: []string{"cref2"},
		},
		{
			name:        "keep existing cart",
			lines:       []CartLine{{PartNumber: "X", Quantity: 1}},
			newCart:     false,
			contains:    []string{"part1=X&qty1=1"},
			notContains: []string{"newcart"},
		},
		{
			name:     "reference is form encoded",
			lines:    []CartLine{{PartNumber: "X", Quantity: 2, CustomerRef: "R1 & R2"}},
			newCart:  false,
			contains: []string{"cref1=R1+%26+R2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link := BuildCartURL(tt.lines, tt.newCart)

			assert.True(t, strings.HasPrefix(link.URL, FastAddBaseURL+"?"))
			for _, s := range tt.contains {
				assert.Contains(t, link.URL, s)
			}
			for _, s := range tt.notContains {
				assert.NotContains(t, link.URL, s)
			}
			assert.Empty(t, link.Warning)
		})
	}
}

func TestBuildCartURL_OrderBeyondNine(t *testing.T) {
	lines := make([]CartLine, 12)
	for i := range lines {
		lines[i] = CartLine{PartNumber: fmt.Sprintf("P%d", i+1), Quantity: 1}
	}

	link := BuildCartURL(lines, false)

	assert.Less(t, strings.Index(link.URL, "part2="), strings.Index(link.URL, "part10="))
	assert.True(t, strings.HasSuffix(link.URL, "part12=P12&qty12=1"))
}

func TestBuildCartURL_LongURLWarning(t *testing.T) {
	lines := make([]CartLine, 100)
	for i := range lines {
		lines[i] = CartLine{PartNumber: fmt.Sprintf("LONGPARTNUMBER-%d-ND", i), Quantity: i}
	}

	link := BuildCartURL(lines, true)

	assert.Greater(t, len(link.URL), MaxSafeURLLength)
	assert.NotEmpty(t, link.URL)
	assert.Contains(t, link.Warning, fmt.Sprintf("URL is %d chars", len(link.URL)))
}

// partForLength returns a part number that makes a single-line cart URL with
// newcart exactly n characters long.
func partForLength(t *testing.T, n int) string {
	t.Helper()
	overhead := len(BuildCartURL([]CartLine{{PartNumber: "", Quantity: 1}}, true).URL)
	require.Greater(t, n, overhead)
	return strings.Repeat("A", n-overhead)
}

func TestBuildCartURL_WarningThreshold(t *testing.T) {
	tests := []struct {
		name        string
		length      int
		wantWarning bool
	}{
		{name: "one below limit", length: MaxSafeURLLength - 1},
		{name: "exactly at limit", length: MaxSafeURLLength},
		{name: "one over limit", length: MaxSafeURLLength + 1, wantWarning: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			link := BuildCartURL([]CartLine{{PartNumber: partForLength(t, tt.length), Quantity: 1}}, true)

			require.Len(t, link.URL, tt.length)
			if tt.wantWarning {
				assert.Equal(t, fmt.Sprintf("URL is %d chars - browser may truncate. Consider splitting into smaller batches.", tt.length), link.Warning)
			} else {
				assert.Empty(t, link.Warning)
			}
		})
	}
}
