package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Config represents the configuration for the GeneQL client
type Config struct {
	// BaseURL is the base URL of the query service
	BaseURL string
	// HTTPClient is an optional custom HTTP client
	HTTPClient *http.Client
	// Timeout is the default request timeout
	Timeout time.Duration
	// Token is sent as a bearer token when set
	Token string
	// APIKey is sent in the X-API-Key header when set and Token is empty
	APIKey string
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		BaseURL:    "http://localhost:8080",
		HTTPClient: http.DefaultClient,
		Timeout:    10 * time.Second,
	}
}

// Client is the query service client
type Client struct {
	config *Config
	client *http.Client
}

// NewClient creates a new client with the given configuration
func NewClient(config *Config) *Client {
	if config == nil {
		config = DefaultConfig()
	}

	client := config.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}

	return &Client{
		config: config,
		client: client,
	}
}

// Result is the service's rendering of a query outcome
type Result struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error,omitempty"`
}

// Records decodes the rows returned by GET
func (r *Result) Records() ([]map[string]interface{}, error) {
	var records []map[string]interface{}
	if err := r.decode(&records); err != nil {
		return nil, err
	}
	return records, nil
}

// Allowed decodes the outcome of CHECK
func (r *Result) Allowed() (bool, error) {
	var allowed bool
	err := r.decode(&allowed)
	return allowed, err
}

// Affected decodes the number of records changed by UPDATE or DELETE
func (r *Result) Affected() (int, error) {
	var n int
	err := r.decode(&n)
	return n, err
}

func (r *Result) decode(v interface{}) error {
	if len(r.Data) == 0 {
		return errors.New("result carries no data")
	}
	if err := json.Unmarshal(r.Data, v); err != nil {
		return fmt.Errorf("failed to decode result data: %w", err)
	}
	return nil
}

type queryRequest struct {
	Query string `json:"query"`
}

// EdgeRequest addresses one user/resource/permission edge
type EdgeRequest struct {
	UserID     string `json:"user_id"`
	ResourceID string `json:"resource_id"`
	Permission string `json:"permission"`
}

func (r EdgeRequest) validate() error {
	if r.UserID == "" || r.ResourceID == "" || r.Permission == "" {
		return errors.New("user_id, resource_id, and permission are required")
	}
	return nil
}

// Query runs a GeneQL statement. Failed queries are returned as *APIError.
func (c *Client) Query(ctx context.Context, query string) (*Result, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.New("query cannot be empty")
	}

	var resp Result
	if err := c.post(ctx, c.config.BaseURL+"/api/query", queryRequest{Query: query}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Check reports whether the user holds permission on the resource
func (c *Client) Check(ctx context.Context, req EdgeRequest) (bool, error) {
	if err := req.validate(); err != nil {
		return false, err
	}

	var resp Result
	if err := c.post(ctx, c.config.BaseURL+"/api/check", req, &resp); err != nil {
		return false, err
	}
	return resp.Allowed()
}

// Grant adds the permission edge
func (c *Client) Grant(ctx context.Context, req EdgeRequest) error {
	if err := req.validate(); err != nil {
		return err
	}

	var resp Result
	if err := c.post(ctx, c.config.BaseURL+"/api/grant", req, &resp); err != nil {
		return fmt.Errorf("failed to grant permission: %w", err)
	}
	return nil
}

// Revoke removes the permission edge
func (c *Client) Revoke(ctx context.Context, req EdgeRequest) error {
	if err := req.validate(); err != nil {
		return err
	}

	var resp Result
	if err := c.post(ctx, c.config.BaseURL+"/api/revoke", req, &resp); err != nil {
		return fmt.Errorf("failed to revoke permission: %w", err)
	}
	return nil
}

// HealthResponse is the body of GET /health
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Health fetches the service status
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var resp HealthResponse
	if err := c.get(ctx, c.config.BaseURL+"/health", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// AuditLog is one stored query execution
type AuditLog struct {
	ID         string                 `json:"id"`
	Timestamp  time.Time              `json:"timestamp"`
	QueryType  string                 `json:"query_type"`
	Query      string                 `json:"query"`
	Success    bool                   `json:"success"`
	Error      string                 `json:"error,omitempty"`
	DurationMS int64                  `json:"duration_ms"`
	Allowed    *bool                  `json:"allowed,omitempty"`
	Affected   *int                   `json:"affected,omitempty"`
	Subject    string                 `json:"subject"`
	Context    map[string]interface{} `json:"context"`
	RequestID  string                 `json:"request_id"`
}

// AuditLogFilter narrows AuditLogs
type AuditLogFilter struct {
	QueryType string
	Subject   string
	Success   *bool
	Limit     int
	Offset    int
}

// AuditLogPage is one page of audit logs
type AuditLogPage struct {
	Logs  []AuditLog `json:"logs"`
	Total int64      `json:"total"`
}

// AuditLogs lists stored query executions, newest first
func (c *Client) AuditLogs(ctx context.Context, filter AuditLogFilter) (*AuditLogPage, error) {
	params := url.Values{}
	if filter.QueryType != "" {
		params.Set("query_type", filter.QueryType)
	}
	if filter.Subject != "" {
		params.Set("subject", filter.Subject)
	}
	if filter.Success != nil {
		params.Set("success", strconv.FormatBool(*filter.Success))
	}
	if filter.Limit > 0 {
		params.Set("limit", strconv.Itoa(filter.Limit))
	}
	if filter.Offset > 0 {
		params.Set("offset", strconv.Itoa(filter.Offset))
	}

	endpoint := c.config.BaseURL + "/api/audit"
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var page AuditLogPage
	if err := c.get(ctx, endpoint, &page); err != nil {
		return nil, err
	}
	return &page, nil
}

// APIError defines a standardized error response from the API
type APIError struct {
	StatusCode int      `json:"-"`
	Message    string   `json:"error"`
	Details    []string `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("%s: %s (Status: %d)", e.Message, strings.Join(e.Details, ", "), e.StatusCode)
	}
	return fmt.Sprintf("%s (Status: %d)", e.Message, e.StatusCode)
}

// post performs a POST request to the specified endpoint with the given request and unmarshals the response into the specified response object
func (c *Client) post(ctx context.Context, endpoint string, req interface{}, resp interface{}) error {
	reqBody, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	return c.do(ctx, http.MethodPost, endpoint, reqBody, resp)
}

// get performs a GET request to the specified endpoint and unmarshals the response into the specified response object
func (c *Client) get(ctx context.Context, endpoint string, resp interface{}) error {
	return c.do(ctx, http.MethodGet, endpoint, nil, resp)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body []byte, resp interface{}) error {
	// Set up context with timeout
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}
	switch {
	case c.config.Token != "":
		httpReq.Header.Set("Authorization", "Bearer "+c.config.Token)
	case c.config.APIKey != "":
		httpReq.Header.Set("X-API-Key", c.config.APIKey)
	}

	httpResp, err := c.client.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer httpResp.Body.Close()

	// Check for non-success status code
	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		var apiErr APIError
		if err := json.NewDecoder(httpResp.Body).Decode(&apiErr); err != nil || apiErr.Message == "" {
			return &APIError{
				StatusCode: httpResp.StatusCode,
				Message:    fmt.Sprintf("request failed with status code %d", httpResp.StatusCode),
			}
		}

		apiErr.StatusCode = httpResp.StatusCode
		return &apiErr
	}

	if err := json.NewDecoder(httpResp.Body).Decode(resp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
