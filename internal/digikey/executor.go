package digikey

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"digikey-mcp/pkg/logging"
	pkgstrings "digikey-mcp/pkg/strings"
)

// Executor issues DigiKey API requests and turns non-200 responses into errors.
type Executor struct {
	httpClient *http.Client
}

// NewExecutor creates an executor. A nil client means http.DefaultClient,
// so no timeout beyond the transport defaults is applied.
func NewExecutor(httpClient *http.Client) *Executor {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Executor{httpClient: httpClient}
}

// Do sends a GET, or a POST with body encoded as JSON, and returns the response
// JSON verbatim. Only HTTP 200 counts as success; any other status yields an
// *APIError carrying the status code and response text.
func (e *Executor) Do(ctx context.Context, method, url string, headers http.Header, body interface{}) (json.RawMessage, error) {
	method = strings.ToUpper(method)
	logging.Info("Executor", "Making %s request to %s", method, url)
	if logging.DebugEnabled() {
		logging.Debug("Executor", "Headers: %v", logging.RedactHeaders(headers))
	}

	var reader io.Reader
	if method != http.MethodGet && body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		logging.Debug("Executor", "Request body: %s", payload)
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	for k, v := range headers {
		req.Header[k] = v
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		logging.Error("Executor", err, "%s %s failed", method, url)
		return nil, fmt.Errorf("%s %s: %w", method, url, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response from %s: %w", url, err)
	}

	logging.Info("Executor", "Response status: %d", resp.StatusCode)
	if resp.StatusCode != http.StatusOK {
		apiErr := &APIError{
			Method:     method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       string(respBody),
		}
		logging.Error("Executor", nil, "API error: %d - %s", resp.StatusCode,
			pkgstrings.TruncateBody(apiErr.Body, pkgstrings.DefaultBodyLogMaxLen))
		return nil, apiErr
	}

	if !json.Valid(respBody) {
		return nil, fmt.Errorf("response from %s is not valid JSON: %s", url,
			pkgstrings.TruncateBody(string(respBody), 200))
	}

	return json.RawMessage(respBody), nil
}
