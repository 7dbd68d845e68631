package mcp

import (
	"net/http"
	"strings"
	"testing"
)

func TestProxyGet(t *testing.T) {
	ts, rec := newBackend(t, http.StatusOK, `{"version":"0.21.4"}`)
	p := NewProxy(ts.URL, "", testLogger())

	body, err := p.Get(t.Context(), "/api/v0/application")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if string(body) != `{"version":"0.21.4"}` {
		t.Errorf("body = %s", body)
	}
	if rec.APIKey != "" {
		t.Errorf("X-API-Key = %q, want header omitted without a key", rec.APIKey)
	}
}

func TestProxyPostSendsBody(t *testing.T) {
	ts, rec := newBackend(t, http.StatusOK, ``)
	p := NewProxy(ts.URL, "secret", testLogger())

	_, err := p.Post(t.Context(), "/api/v0/searches", map[string]any{"searchText": "foo"})
	if err != nil {
		t.Fatalf("Post() error: %v", err)
	}
	if rec.Method != http.MethodPost {
		t.Errorf("method = %q", rec.Method)
	}
	if rec.APIKey != "secret" {
		t.Errorf("X-API-Key = %q", rec.APIKey)
	}
	if !strings.Contains(string(rec.Body), `"searchText":"foo"`) {
		t.Errorf("body = %s", rec.Body)
	}
}

func TestParseErrorResponse(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   string
	}{
		{"message field", 404, `{"message":"no such search"}`, "slskd returned 404: no such search"},
		{"error field", 500, `{"error":"internal failure"}`, "slskd returned 500: internal failure"},
		{"raw body", 502, `bad gateway`, "slskd returned 502: bad gateway"},
		{"empty body", 401, ``, "slskd returned 401: "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := parseErrorResponse(tt.status, []byte(tt.body))
			if err.Error() != tt.want {
				t.Errorf("parseErrorResponse() = %q, want %q", err.Error(), tt.want)
			}
		})
	}
}
