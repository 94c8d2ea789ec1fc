package genai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func testConfig(baseURL string) *Config {
	return &Config{
		BaseURL:    baseURL,
		APIKey:     "test-key",
		Model:      "test-model",
		Timeout:    2 * time.Second,
		MaxRetries: 1,
		RetryDelay: time.Millisecond,
	}
}

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := NewClient(testConfig(server.URL))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client, server
}

func TestGenerateContentSuccess(t *testing.T) {
	var gotPath, gotKey string
	var gotBody map[string]interface{}

	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("key")
		json.NewDecoder(r.Body).Decode(&gotBody)

		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"hello there"}]}}]}`))
	})

	text, err := client.GenerateContent(context.Background(), "hi")
	if err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}
	if text != "hello there" {
		t.Errorf("text = %q, want %q", text, "hello there")
	}

	if gotPath != "/models/test-model:generateContent" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("key = %q", gotKey)
	}

	// The request envelope is contents -> parts -> text.
	contents, ok := gotBody["contents"].([]interface{})
	if !ok || len(contents) != 1 {
		t.Fatalf("contents = %v", gotBody["contents"])
	}
	parts := contents[0].(map[string]interface{})["parts"].([]interface{})
	if text := parts[0].(map[string]interface{})["text"]; text != "hi" {
		t.Errorf("prompt in envelope = %v, want %q", text, "hi")
	}
}

func TestGenerateContentFailureModes(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		wantErr error
	}{
		{
			name: "server error",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			wantErr: ErrRequestFailed,
		},
		{
			name:    "empty body",
			handler: func(w http.ResponseWriter, r *http.Request) {},
			wantErr: ErrEmptyBody,
		},
		{
			name: "malformed body",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{not json`))
			},
			wantErr: ErrMalformedResponse,
		},
		{
			name: "no candidates",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"candidates":[]}`))
			},
			wantErr: ErrNoCandidates,
		},
		{
			name: "no parts",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"candidates":[{"content":{"parts":[]}}]}`))
			},
			wantErr: ErrNoParts,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, _ := newTestClient(t, tt.handler)

			_, err := client.GenerateContent(context.Background(), "hi")
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestGenerateContentNetworkFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	client, err := NewClient(testConfig(server.URL))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	_, err = client.GenerateContent(context.Background(), "hi")
	if !errors.Is(err, ErrRequestFailed) {
		t.Errorf("err = %v, want ErrRequestFailed", err)
	}
}

func TestGenerateContentRetriesServerErrors(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":"second try"}]}}]}`))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.MaxRetries = 3
	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	text, err := client.GenerateContent(context.Background(), "hi")
	if err != nil {
		t.Fatalf("GenerateContent: %v", err)
	}
	if text != "second try" {
		t.Errorf("text = %q", text)
	}
	if calls.Load() != 2 {
		t.Errorf("calls = %d, want 2", calls.Load())
	}
}

func TestGenerateContentDoesNotRetryMalformed(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.Write([]byte(`{not json`))
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.MaxRetries = 3
	client, err := NewClient(cfg)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	if _, err := client.GenerateContent(context.Background(), "hi"); !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("err = %v", err)
	}
	if calls.Load() != 1 {
		t.Errorf("malformed payloads must not be retried, got %d calls", calls.Load())
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"valid", func(c *Config) {}, true},
		{"missing key", func(c *Config) { c.APIKey = "" }, false},
		{"missing model", func(c *Config) { c.Model = "" }, false},
		{"zero timeout", func(c *Config) { c.Timeout = 0 }, false},
		{"zero retries", func(c *Config) { c.MaxRetries = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig("http://localhost")
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.ok && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if !tt.ok && err == nil {
				t.Error("expected validation error")
			}
		})
	}
}
