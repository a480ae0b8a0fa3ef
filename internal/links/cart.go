package links

import (
	"fmt"
	"strconv"

	"digikey-mcp/pkg/urlquery"
)

const (
	// FastAddBaseURL is DigiKey's cart import page.
	FastAddBaseURL = "https://www.digikey.com/classic/ordering/fastadd.aspx"

	// MaxSafeURLLength is the longest cart URL browsers reliably accept in a GET.
	MaxSafeURLLength = 1700
)

// CartLine is one part to add to the cart.
type CartLine struct {
	PartNumber  string `json:"part_number"`
	Quantity    int    `json:"quantity"`
	CustomerRef string `json:"customer_ref,omitempty"`
}

// CartLink is the generated FastAdd URL. Warning is set when the URL is long
// enough that a browser may truncate it; the URL is still usable input.
type CartLink struct {
	URL     string `json:"url"`
	Warning string `json:"warning,omitempty"`
}

// BuildCartURL returns a FastAdd URL that adds lines to the cart in order.
// With newCart the existing cart is cleared first.
func BuildCartURL(lines []CartLine, newCart bool) CartLink {
	var q urlquery.Values
	for i, line := range lines {
		n := strconv.Itoa(i + 1)
		q.Add("part"+n, line.PartNumber)
		q.Add("qty"+n, strconv.Itoa(line.Quantity))
		if line.CustomerRef != "" {
			q.Add("cref"+n, line.CustomerRef)
		}
	}
	if newCart {
		q.Add("newcart", "true")
	}

	link := CartLink{URL: FastAddBaseURL + "?" + q.Encode()}
	if len(link.URL) > MaxSafeURLLength {
		link.Warning = fmt.Sprintf("URL is %d chars - browser may truncate. Consider splitting into smaller batches.", len(link.URL))
	}
	return link
}
