package links

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"digikey-mcp/internal/digikey"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedMyList struct {
	query     string
	userAgent string
	body      []map[string]interface{}
}

func newMyListServer(t *testing.T, status int, contentType, body string) (*httptest.Server, *capturedMyList) {
	t.Helper()
	captured := &capturedMyList{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		captured.query = r.URL.RawQuery
		captured.userAgent = r.Header.Get("User-Agent")
		raw, _ := io.ReadAll(r.Body)
		json.Unmarshal(raw, &captured.body)

		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)
	return server, captured
}

func TestMyListClient_CreateLink(t *testing.T) {
	t.Run("bare string response", func(t *testing.T) {
		server, captured := newMyListServer(t, http.StatusOK, "application/json", `"https://www.digikey.com/mylists/list/ABC123"`)
		c := NewMyListClient(WithHTTPClient(server.Client()), WithEndpoint(server.URL))

		link, err := c.CreateLink(context.Background(), "My BOM", []MyListLine{{PartNumber: "296-8875-1-ND", Quantity: 10}}, "")

		require.NoError(t, err)
		assert.Equal(t, MyListLink{URL: "https://www.digikey.com/mylists/list/ABC123"}, link)
		assert.Equal(t, "listName=My+BOM", captured.query)
		assert.Contains(t, captured.userAgent, "Mozilla/5.0")
	})

	t.Run("object response", func(t *testing.T) {
		server, captured := newMyListServer(t, http.StatusOK, "application/json", `{"singleUseUrl":"https://dk.example/one-time"}`)
		c := NewMyListClient(WithHTTPClient(server.Client()), WithEndpoint(server.URL))

		link, err := c.CreateLink(context.Background(), "BOM", []MyListLine{{PartNumber: "X", Quantity: 1}}, "robot,rev2")

		require.NoError(t, err)
		assert.Equal(t, "https://dk.example/one-time", link.URL)
		assert.Equal(t, "listName=BOM&tags=robot%2Crev2", captured.query)
	})

	t.Run("object response with url field", func(t *testing.T) {
		server, _ := newMyListServer(t, http.StatusOK, "application/json", `{"url":"https://dk.example/list"}`)
		c := NewMyListClient(WithHTTPClient(server.Client()), WithEndpoint(server.URL))

		link, err := c.CreateLink(context.Background(), "BOM", nil, "")

		require.NoError(t, err)
		assert.Equal(t, "https://dk.example/list", link.URL)
	})

	t.Run("payload shape", func(t *testing.T) {
		server, captured := newMyListServer(t, http.StatusOK, "application/json", `"u"`)
		c := NewMyListClient(WithHTTPClient(server.Client()), WithEndpoint(server.URL))

		_, err := c.CreateLink(context.Background(), "BOM", []MyListLine{
			{PartNumber: "296-8875-1-ND", Quantity: 10, Reference: "U1", Notes: "op amp", Manufacturer: "Texas Instruments", CustomerRef: "PO-7"},
			{PartNumber: "1050-ABX00052-ND", Quantity: 1},
		}, "")
		require.NoError(t, err)

		require.Len(t, captured.body, 2)
		assert.Equal(t, map[string]interface{}{
			"requestedPartNumber": "296-8875-1-ND",
			"manufacturerName":    "Texas Instruments",
			"referenceDesignator": "U1",
			"customerReference":   "PO-7",
			"notes":               "op amp",
			"quantities":          []interface{}{map[string]interface{}{"quantity": float64(10)}},
		}, captured.body[0])
		assert.Equal(t, map[string]interface{}{
			"requestedPartNumber": "1050-ABX00052-ND",
			"manufacturerName":    "",
			"referenceDesignator": "",
			"customerReference":   "",
			"notes":               "",
			"quantities":          []interface{}{map[string]interface{}{"quantity": float64(1)}},
		}, captured.body[1])
	})

	t.Run("html block is a soft error", func(t *testing.T) {
		server, _ := newMyListServer(t, http.StatusForbidden, "text/html; charset=utf-8", "<html>Access Denied</html>")
		c := NewMyListClient(WithHTTPClient(server.Client()), WithEndpoint(server.URL))

		link, err := c.CreateLink(context.Background(), "BOM", []MyListLine{{PartNumber: "X", Quantity: 1}}, "")

		require.NoError(t, err)
		assert.Empty(t, link.URL)
		assert.Contains(t, link.Error, "blocked")
		assert.Contains(t, link.Error, "403")
	})

	t.Run("json error is a hard error", func(t *testing.T) {
		server, _ := newMyListServer(t, http.StatusBadRequest, "application/json", `{"message":"invalid list"}`)
		c := NewMyListClient(WithHTTPClient(server.Client()), WithEndpoint(server.URL))

		_, err := c.CreateLink(context.Background(), "BOM", nil, "")

		var apiErr *digikey.APIError
		require.True(t, errors.As(err, &apiErr))
		assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
		assert.Contains(t, apiErr.Body, "invalid list")
	})

	t.Run("success without url", func(t *testing.T) {
		server, _ := newMyListServer(t, http.StatusOK, "application/json", `{"id":7}`)
		c := NewMyListClient(WithHTTPClient(server.Client()), WithEndpoint(server.URL))

		_, err := c.CreateLink(context.Background(), "BOM", nil, "")
		require.Error(t, err)
	})
}
