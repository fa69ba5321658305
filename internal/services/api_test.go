package services

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/desertthunder/rolodex/internal/shared"
	tu "github.com/desertthunder/rolodex/internal/testing"
)

func TestAPIService(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		t.Run("With Custom BaseURL and Client", func(t *testing.T) {
			customClient := &http.Client{}
			srv := NewAPIService("http://example.com/", customClient)

			if srv.BaseURL() != "http://example.com" {
				t.Errorf("expected trailing slash trimmed, got %s", srv.BaseURL())
			}
			if srv.httpClient != customClient {
				t.Error("expected custom client to be used")
			}
		})

		t.Run("With Empty BaseURL", func(t *testing.T) {
			srv := NewAPIService("", nil)

			if srv.BaseURL() != defaultBaseURL {
				t.Errorf("expected default baseURL %s, got %s", defaultBaseURL, srv.BaseURL())
			}
			if srv.httpClient != http.DefaultClient {
				t.Error("expected http.DefaultClient to be used")
			}
		})

		t.Run("WithRateLimit", func(t *testing.T) {
			srv := NewAPIService("", nil).WithRateLimit(5)
			if srv.limiter == nil {
				t.Fatal("expected limiter to be set")
			}
			if srv.WithRateLimit(0).limiter != nil {
				t.Error("expected zero rate to remove the limiter")
			}
		})
	})

	t.Run("Get", func(t *testing.T) {
		t.Run("Successful Request With JSON Response", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					t.Errorf("expected GET method, got %s", r.Method)
				}
				if r.URL.Path != "/users" {
					t.Errorf("expected path '/users', got %s", r.URL.Path)
				}
				if r.Header.Get("Content-Type") != "" {
					t.Errorf("GET should not send a content type, got %s", r.Header.Get("Content-Type"))
				}

				w.Header().Set("Content-Type", "application/json")
				w.Header().Set("X-Custom-Header", "test-value")
				w.WriteHeader(http.StatusOK)
				json.NewEncoder(w).Encode(map[string]string{"status": "success"})
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil)
			resp, err := srv.Get(context.Background(), "/users")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !resp.OK() {
				t.Errorf("expected status 200, got %d", resp.StatusCode)
			}
			if !resp.IsJSON || resp.JSONData == nil {
				t.Error("expected response to be JSON")
			}
			if resp.Headers.Get("X-Custom-Header") != "test-value" {
				t.Errorf("expected custom header 'test-value', got %s", resp.Headers.Get("X-Custom-Header"))
			}
		})

		t.Run("Non-JSON Response", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusServiceUnavailable)
				w.Write([]byte("plain text response"))
			}))
			defer server.Close()

			resp, err := NewAPIService(server.URL, nil).Get(context.Background(), "/users")

			if err != nil {
				t.Fatalf("non-2xx is not a transport error, got %v", err)
			}
			if resp.OK() {
				t.Error("expected OK() to be false for 503")
			}
			if resp.IsJSON || resp.JSONData != nil {
				t.Error("expected response to not be JSON")
			}
			if string(resp.Body) != "plain text response" {
				t.Errorf("unexpected body %s", string(resp.Body))
			}
		})

		t.Run("Failed Request Creation", func(t *testing.T) {
			_, err := NewAPIService("http://example.com", nil).Get(context.Background(), "/test\x00invalid")

			if err == nil || !strings.Contains(err.Error(), "failed to create request") {
				t.Errorf("expected 'failed to create request' error, got %v", err)
			}
		})

		t.Run("Failed HTTP Request", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(nil, errors.New("connection failed")),
			}

			_, err := NewAPIService("http://example.com", client).Get(context.Background(), "/users")

			if !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected ErrAPIRequest, got %v", err)
			}
			if !strings.Contains(err.Error(), "connection failed") {
				t.Errorf("expected underlying message to be kept, got %v", err)
			}
		})

		t.Run("Failed Response Body Read", func(t *testing.T) {
			client := &http.Client{
				Transport: tu.NewMockRoundTripper(&http.Response{
					StatusCode: http.StatusOK,
					Body:       &tu.FCloser{},
					Header:     http.Header{},
				}, nil),
			}

			_, err := NewAPIService("http://example.com", client).Get(context.Background(), "/users")

			if err == nil || !strings.Contains(err.Error(), "failed to read response") {
				t.Errorf("expected 'failed to read response' error, got %v", err)
			}
		})

		t.Run("With Canceled Context", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			_, err := NewAPIService(server.URL, nil).Get(ctx, "/users")

			if !errors.Is(err, context.Canceled) {
				t.Errorf("expected context.Canceled to be preserved, got %v", err)
			}
		})

		t.Run("Rate Limiter Honors Cancellation", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusOK)
			}))
			defer server.Close()

			srv := NewAPIService(server.URL, nil).WithRateLimit(0.001)
			if _, err := srv.Get(context.Background(), "/users"); err != nil {
				t.Fatalf("first request should use the burst token: %v", err)
			}

			ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
			defer cancel()
			if _, err := srv.Get(ctx, "/users"); !errors.Is(err, shared.ErrAPIRequest) {
				t.Errorf("expected limiter wait to fail, got %v", err)
			}
		})
	})

	t.Run("Writes", func(t *testing.T) {
		tc := []struct {
			name   string
			method string
			call   func(*APIService, []byte) (*APIResponse, error)
		}{
			{name: "Post", method: http.MethodPost, call: func(a *APIService, b []byte) (*APIResponse, error) {
				return a.Post(context.Background(), "/users", b)
			}},
			{name: "Patch", method: http.MethodPatch, call: func(a *APIService, b []byte) (*APIResponse, error) {
				return a.Patch(context.Background(), "/users", b)
			}},
		}

		for _, tt := range tc {
			t.Run(tt.name, func(t *testing.T) {
				server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					if r.Method != tt.method {
						t.Errorf("expected %s method, got %s", tt.method, r.Method)
					}
					if !strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
						t.Errorf("expected JSON content type, got %s", r.Header.Get("Content-Type"))
					}

					body, _ := io.ReadAll(r.Body)
					var data map[string]string
					if err := json.Unmarshal(body, &data); err != nil {
						t.Errorf("failed to unmarshal request body: %v", err)
					}
					if data["name"] != "Jane" {
						t.Errorf("expected name Jane, got %v", data)
					}

					w.WriteHeader(http.StatusCreated)
					w.Write([]byte(`{"id": 11}`))
				}))
				defer server.Close()

				resp, err := tt.call(NewAPIService(server.URL, nil), []byte(`{"name":"Jane"}`))
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				if resp.StatusCode != http.StatusCreated || !resp.IsJSON {
					t.Errorf("unexpected response %+v", resp)
				}
			})
		}

		t.Run("Delete", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodDelete || r.URL.Path != "/users/3" {
					t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
				}
				w.WriteHeader(http.StatusNoContent)
			}))
			defer server.Close()

			resp, err := NewAPIService(server.URL, nil).Delete(context.Background(), "/users/3")
			if err != nil || resp.StatusCode != http.StatusNoContent {
				t.Errorf("unexpected response %+v, err %v", resp, err)
			}
		})
	})
}
