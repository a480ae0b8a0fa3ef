package links

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"digikey-mcp/internal/digikey"
	"digikey-mcp/pkg/logging"
	pkgstrings "digikey-mcp/pkg/strings"
	"digikey-mcp/pkg/urlquery"
)

const (
	// MyListEndpoint is DigiKey's third-party list import API.
	MyListEndpoint = "https://www.digikey.com/mylists/api/thirdparty"

	// browserUserAgent is sent because the endpoint rejects obvious non-browser clients.
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"
)

// MyListLine is one part in a saved list. Only PartNumber and Quantity are required.
type MyListLine struct {
	PartNumber   string `json:"part_number"`
	Quantity     int    `json:"quantity"`
	Reference    string `json:"reference,omitempty"`
	Notes        string `json:"notes,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
	CustomerRef  string `json:"customer_ref,omitempty"`
}

// MyListLink is the outcome of a list import. Exactly one of URL or Error is set.
type MyListLink struct {
	URL   string `json:"url,omitempty"`
	Error string `json:"error,omitempty"`
}

// BlockedError describes an HTML response from the MyLists endpoint, which is
// what its bot-mitigation layer returns instead of JSON. It is surfaced as
// MyListLink.Error rather than returned.
type BlockedError struct {
	StatusCode int
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("DigiKey blocked the MyList request (HTTP %d returned an HTML page, likely a bot challenge). "+
		"Try again later or use generate_cart_url instead.", e.StatusCode)
}

type myListQuantity struct {
	Quantity int `json:"quantity"`
}

// myListPart is the record shape the import API expects. The quantity is
// always wrapped in a single-element list.
type myListPart struct {
	RequestedPartNumber string           `json:"requestedPartNumber"`
	ManufacturerName    string           `json:"manufacturerName"`
	ReferenceDesignator string           `json:"referenceDesignator"`
	CustomerReference   string           `json:"customerReference"`
	Notes               string           `json:"notes"`
	Quantities          []myListQuantity `json:"quantities"`
}

// MyListClient creates shareable DigiKey MyList links. It needs no credentials.
type MyListClient struct {
	httpClient *http.Client
	endpoint   string
}

// MyListOption configures a MyListClient.
type MyListOption func(*MyListClient)

// WithHTTPClient sets the HTTP client used for the import request.
func WithHTTPClient(httpClient *http.Client) MyListOption {
	return func(c *MyListClient) {
		c.httpClient = httpClient
	}
}

// WithEndpoint overrides MyListEndpoint.
func WithEndpoint(endpoint string) MyListOption {
	return func(c *MyListClient) {
		c.endpoint = endpoint
	}
}

// NewMyListClient creates a client for the MyLists import API.
func NewMyListClient(opts ...MyListOption) *MyListClient {
	c := &MyListClient{
		httpClient: http.DefaultClient,
		endpoint:   MyListEndpoint,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func buildMyListPayload(lines []MyListLine) []myListPart {
	parts := make([]myListPart, 0, len(lines))
	for _, line := range lines {
		parts = append(parts, myListPart{
			RequestedPartNumber: line.PartNumber,
			ManufacturerName:    line.Manufacturer,
			ReferenceDesignator: line.Reference,
			CustomerReference:   line.CustomerRef,
			Notes:               line.Notes,
			Quantities:          []myListQuantity{{Quantity: line.Quantity}},
		})
	}
	return parts
}

// CreateLink imports lines as a new list called listName and returns its
// single-use URL. An HTML block page yields a MyListLink with Error set and a
// nil error; any other non-2xx response is returned as *digikey.APIError.
func (c *MyListClient) CreateLink(ctx context.Context, listName string, lines []MyListLine, tags string) (MyListLink, error) {
	var q urlquery.Values
	q.Add("listName", listName)
	if tags != "" {
		q.Add("tags", tags)
	}
	target := q.AppendTo(c.endpoint)

	payload, err := json.Marshal(buildMyListPayload(lines))
	if err != nil {
		return MyListLink{}, fmt.Errorf("failed to encode list payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, bytes.NewReader(payload))
	if err != nil {
		return MyListLink{}, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", browserUserAgent)

	logging.Info("MyList", "Creating list %q with %d parts", listName, len(lines))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logging.Error("MyList", err, "POST %s failed", target)
		return MyListLink{}, fmt.Errorf("POST %s: %w", target, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return MyListLink{}, fmt.Errorf("failed to read response from %s: %w", target, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if strings.Contains(strings.ToLower(resp.Header.Get("Content-Type")), "text/html") {
			blocked := &BlockedError{StatusCode: resp.StatusCode}
			logging.Warn("MyList", "Request blocked with HTTP %d HTML response", resp.StatusCode)
			return MyListLink{Error: blocked.Error()}, nil
		}
		logging.Error("MyList", nil, "API error: %d - %s", resp.StatusCode,
			pkgstrings.TruncateBody(string(body), pkgstrings.DefaultBodyLogMaxLen))
		return MyListLink{}, &digikey.APIError{
			Method:     http.MethodPost,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}

	link, err := parseMyListResponse(body)
	if err != nil {
		return MyListLink{}, err
	}
	logging.Info("MyList", "Created list %q", listName)
	return link, nil
}

// parseMyListResponse accepts either a bare JSON string or an object carrying
// singleUseUrl (or url).
func parseMyListResponse(body []byte) (MyListLink, error) {
	var bare string
	if err := json.Unmarshal(body, &bare); err == nil {
		return MyListLink{URL: bare}, nil
	}

	var obj struct {
		SingleUseURL string `json:"singleUseUrl"`
		URL          string `json:"url"`
	}
	if err := json.Unmarshal(body, &obj); err != nil {
		return MyListLink{}, fmt.Errorf("unexpected MyList response %s: %w",
			pkgstrings.TruncateBody(string(body), 200), err)
	}
	switch {
	case obj.SingleUseURL != "":
		return MyListLink{URL: obj.SingleUseURL}, nil
	case obj.URL != "":
		return MyListLink{URL: obj.URL}, nil
	default:
		return MyListLink{}, errors.New("MyList response contained no URL")
	}
}
