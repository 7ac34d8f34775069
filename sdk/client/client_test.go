package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestNewClient(t *testing.T) {
	// Test with nil config
	client := NewClient(nil)
	if client.config.BaseURL != "http://localhost:8080" {
		t.Errorf("Expected default BaseURL, got %s", client.config.BaseURL)
	}
	if client.client != http.DefaultClient {
		t.Error("Expected default HTTP client")
	}

	// Test with custom config
	customConfig := &Config{
		BaseURL:    "http://example.com",
		Timeout:    5 * time.Second,
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
	client = NewClient(customConfig)
	if client.config.BaseURL != "http://example.com" {
		t.Errorf("Expected custom BaseURL, got %s", client.config.BaseURL)
	}
	if client.client != customConfig.HTTPClient {
		t.Error("Expected custom HTTP client")
	}
}

func TestQuery(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("Expected POST request, got %s", r.Method)
		}
		if r.URL.Path != "/api/query" {
			t.Errorf("Expected /api/query path, got %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Errorf("Expected bearer token, got %q", got)
		}

		var req queryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("Failed to decode request: %v", err)
		}

		w.Header().Set("Content-Type", "application/json")
		switch req.Query {
		case "GET User":
			w.Write([]byte(`{"success":true,"data":[{"id":"u1","username":"alice"}]}`))
		case "DELETE User WHERE id = 'u1'":
			w.Write([]byte(`{"success":true,"data":1}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
			w.Write([]byte(`{"success":false,"data":null,"error":"syntax error at 1:1: unsupported query type: FOO bar"}`))
		}
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, Token: "tok"})
	ctx := context.Background()

	res, err := client.Query(ctx, "GET User")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	records, err := res.Records()
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(records) != 1 || records[0]["username"] != "alice" {
		t.Errorf("Unexpected records: %v", records)
	}

	res, err = client.Query(ctx, "DELETE User WHERE id = 'u1'")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if n, err := res.Affected(); err != nil || n != 1 {
		t.Errorf("Expected 1 affected record, got %d (%v)", n, err)
	}

	_, err = client.Query(ctx, "FOO bar")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", apiErr.StatusCode)
	}
	if apiErr.Message != "syntax error at 1:1: unsupported query type: FOO bar" {
		t.Errorf("Unexpected message: %s", apiErr.Message)
	}

	if _, err := client.Query(ctx, "  "); err == nil {
		t.Error("Expected error for empty query")
	}
}

func TestEdgeOperations(t *testing.T) {
	granted := map[EdgeRequest]bool{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("X-API-Key"); got != "key" {
			t.Errorf("Expected API key header, got %q", got)
		}

		var req EdgeRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/grant":
			granted[req] = true
			w.Write([]byte(`{"success":true,"data":null}`))
		case "/api/revoke":
			delete(granted, req)
			w.Write([]byte(`{"success":true,"data":null}`))
		case "/api/check":
			json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": granted[req]})
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	client := NewClient(&Config{BaseURL: server.URL, APIKey: "key"})
	ctx := context.Background()
	edge := EdgeRequest{UserID: "u1", ResourceID: "doc1", Permission: "read"}

	if err := client.Grant(ctx, edge); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	allowed, err := client.Check(ctx, edge)
	if err != nil || !allowed {
		t.Errorf("Expected allowed after grant, got %v (%v)", allowed, err)
	}

	if err := client.Revoke(ctx, edge); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	allowed, err = client.Check(ctx, edge)
	if err != nil || allowed {
		t.Errorf("Expected denied after revoke, got %v (%v)", allowed, err)
	}

	if _, err := client.Check(ctx, EdgeRequest{UserID: "u1"}); err == nil {
		t.Error("Expected validation error")
	}
}

func TestAPIErrorFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
		w.Write([]byte(`{"status":"unhealthy"}`))
	}))
	defer server.Close()

	_, err := NewClient(&Config{BaseURL: server.URL}).Health(context.Background())

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("Expected APIError, got %v", err)
	}
	if apiErr.Error() != "request failed with status code 503 (Status: 503)" {
		t.Errorf("Unexpected error text: %s", apiErr.Error())
	}
}

func TestAuditLogs(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			t.Errorf("Expected GET request, got %s", r.Method)
		}
		if got := r.URL.RawQuery; got != "limit=2&query_type=GRANT&success=false" {
			t.Errorf("Unexpected query string %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"logs":[{"query_type":"GRANT","query":"GRANT read ON doc1 TO ghost","success":false}],"total":1}`))
	}))
	defer server.Close()

	failed := false
	page, err := NewClient(&Config{BaseURL: server.URL}).AuditLogs(context.Background(), AuditLogFilter{
		QueryType: "GRANT",
		Success:   &failed,
		Limit:     2,
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if page.Total != 1 || len(page.Logs) != 1 || page.Logs[0].Query != "GRANT read ON doc1 TO ghost" {
		t.Errorf("Unexpected page: %+v", page)
	}
}

func TestResultWithoutData(t *testing.T) {
	res := &Result{Success: true}
	if _, err := res.Allowed(); err == nil {
		t.Error("Expected error decoding empty data")
	}
}
