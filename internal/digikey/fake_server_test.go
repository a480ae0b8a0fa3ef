package digikey

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"

	"digikey-mcp/internal/config"
)

// recordedRequest is what the fake server saw for one API call.
type recordedRequest struct {
	Method   string
	Path     string
	RawQuery string
	Header   http.Header
	Body     []byte
}

// fakeDigiKey serves the token endpoint plus canned API responses.
type fakeDigiKey struct {
	server *httptest.Server

	tokenCalls   int32
	tokenStatus  int
	tokenBody    string
	tokenGate    chan struct{}
	expiresIn    int
	apiStatus    int
	apiBody      string
	apiCallCount int32

	mu       sync.Mutex
	requests []recordedRequest
}

func newFakeDigiKey(t *testing.T) *fakeDigiKey {
	t.Helper()
	f := &fakeDigiKey{
		tokenStatus: http.StatusOK,
		apiStatus:   http.StatusOK,
		apiBody:     `{"ok":true}`,
		expiresIn:   599,
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakeDigiKey) handle(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/v1/oauth2/token" {
		atomic.AddInt32(&f.tokenCalls, 1)
		if f.tokenGate != nil {
			<-f.tokenGate
		}
		if f.tokenStatus != http.StatusOK {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(f.tokenStatus)
			io.WriteString(w, f.tokenBody)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]interface{}{
			"access_token": "test-access-token",
			"token_type":   "Bearer",
			"expires_in":   f.expiresIn,
		})
		return
	}

	atomic.AddInt32(&f.apiCallCount, 1)
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{
		Method:   r.Method,
		Path:     r.URL.EscapedPath(),
		RawQuery: r.URL.RawQuery,
		Header:   r.Header.Clone(),
		Body:     body,
	})
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(f.apiStatus)
	io.WriteString(w, f.apiBody)
}

func (f *fakeDigiKey) lastRequest(t *testing.T) recordedRequest {
	t.Helper()
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.requests) == 0 {
		t.Fatal("no API request recorded")
	}
	return f.requests[len(f.requests)-1]
}

func (f *fakeDigiKey) config() config.DigiKeyConfig {
	return config.DigiKeyConfig{
		ClientID:     "client-id-1234567890",
		ClientSecret: "client-secret",
		UseSandbox:   true,
		Locale: config.LocaleConfig{
			Site:     config.DefaultLocaleSite,
			Language: config.DefaultLocaleLanguage,
			Currency: config.DefaultLocaleCurrency,
		},
		APIBaseURL: f.server.URL,
	}
}

func (f *fakeDigiKey) client() *Client {
	return NewClient(f.config(), WithHTTPClient(f.server.Client()))
}
