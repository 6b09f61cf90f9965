package tinify

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sagarc03/tinifycli"
)

const (
	// DefaultEndpoint is the Tinify shrink endpoint.
	DefaultEndpoint = "https://api.tinify.com/shrink"

	// DefaultUserAgent is sent with every request.
	DefaultUserAgent = "Mozilla/5.0 (iPhone; CPU iPhone OS 18_5 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/18.5 Mobile/15E148 Safari/604.1"

	// AcceptEncoding is the fixed Accept-Encoding header value.
	AcceptEncoding = "gzip, deflate, br"

	authUser = "api"
)

// Client talks to the Tinify API. It holds one http.Client that is reused
// for every upload and download.
type Client struct {
	endpoint   string
	userAgent  string
	auth       string
	httpClient *http.Client

	timeout    time.Duration
	hasTimeout bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client. A nil client keeps the default.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithTimeout sets the HTTP client timeout. Zero means no timeout.
// The timeout is applied to a copy, so a client passed to WithHTTPClient is
// never modified.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.timeout = timeout
		c.hasTimeout = true
	}
}

// WithEndpoint overrides the shrink endpoint URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		if endpoint != "" {
			c.endpoint = endpoint
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(userAgent string) Option {
	return func(c *Client) {
		if userAgent != "" {
			c.userAgent = userAgent
		}
	}
}

// New creates a Client authenticating with key.
func New(key string, opts ...Option) *Client {
	c := &Client{
		endpoint:   DefaultEndpoint,
		userAgent:  DefaultUserAgent,
		auth:       Authorization(key),
		httpClient: &http.Client{},
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.hasTimeout {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}

	return c
}

// Authorization returns the Basic authorization header value for key.
func Authorization(key string) string {
	return "Basic " + base64.StdEncoding.EncodeToString([]byte(authUser+":"+key))
}

// Endpoint returns the shrink endpoint the client posts to.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Compress uploads data, then downloads the compressed image the API points
// to. It implements tinifycli.Compressor.
//
// Errors from Shrink are returned unchanged. Download failures are wrapped in
// a *tinifycli.DownloadError.
func (c *Client) Compress(ctx context.Context, data []byte) ([]byte, error) {
	shrunk, err := c.Shrink(ctx, data)
	if err != nil {
		return nil, err
	}

	out, err := c.Download(ctx, shrunk.Output.URL)
	if err != nil {
		return nil, &tinifycli.DownloadError{URL: shrunk.Output.URL, Err: err}
	}

	return out, nil
}

// Shrink uploads data to the shrink endpoint and parses the response.
//
// Transport failures and failures reading the response body are returned as
// they are. A body that is not JSON, or has no output.url, yields an error
// matching tinifycli.ErrNoOutput regardless of the status code.
func (c *Client) Shrink(ctx context.Context, data []byte) (*ShrinkResponse, error) {
	req, err := c.newRequest(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/octet-stream")
	req.ContentLength = int64(len(data))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var shrunk ShrinkResponse
	if err := json.Unmarshal(body, &shrunk); err != nil {
		return nil, &noOutputError{StatusCode: resp.StatusCode, Cause: err}
	}

	shrunk.StatusCode = resp.StatusCode
	if count, convErr := strconv.Atoi(resp.Header.Get("Compression-Count")); convErr == nil {
		shrunk.CompressionCount = count
	}

	if shrunk.Output.URL == "" {
		return nil, &noOutputError{StatusCode: resp.StatusCode, API: shrunk.Error, Message: shrunk.Message}
	}

	slog.Debug("shrink response",
		"status", resp.StatusCode,
		"input_bytes", shrunk.Input.Size,
		"output_bytes", shrunk.Output.Size,
		"compression_count", shrunk.CompressionCount,
	)

	return &shrunk, nil
}

// Download fetches the compressed image at url. Non-2xx responses are
// returned as *APIError.
func (c *Client) Download(ctx context.Context, url string) ([]byte, error) {
	req, err := c.newRequest(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := readBody(resp)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, parseServerError(resp.StatusCode, body)
	}

	return body, nil
}

func (c *Client) newRequest(ctx context.Context, method, url string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Accept", "*/*")
	req.Header.Set("Accept-Encoding", AcceptEncoding)
	req.Header.Set("Authorization", c.auth)
	req.Header.Set("Connection", "keep-alive")
	req.Header.Set("User-Agent", c.userAgent)

	return req, nil
}

// noOutputError carries what the API said when it returned nothing to download.
type noOutputError struct {
	StatusCode int
	API        string
	Message    string
	Cause      error
}

func (e *noOutputError) Error() string {
	var b strings.Builder
	b.WriteString(tinifycli.ErrNoOutput.Error())
	b.WriteString(" (status ")
	b.WriteString(strconv.Itoa(e.StatusCode))
	b.WriteString(")")
	if e.API != "" {
		b.WriteString(": ")
		b.WriteString(e.API)
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Cause != nil {
		b.WriteString(": ")
		b.WriteString(e.Cause.Error())
	}
	return b.String()
}

func (e *noOutputError) Is(target error) bool {
	return target == tinifycli.ErrNoOutput
}

func (e *noOutputError) Unwrap() error {
	return e.Cause
}

// parseServerError extracts error message from server response.
func parseServerError(statusCode int, body []byte) error {
	apiErr := &APIError{
		StatusCode: statusCode,
		Body:       string(body),
	}

	var msg errorResponse
	if err := json.Unmarshal(body, &msg); err == nil {
		apiErr.Code = msg.Error
		apiErr.Message = msg.Message
	}

	return apiErr
}

// APIError represents an error response from the server.
type APIError struct {
	StatusCode int
	Code       string // Tinify error name, e.g. "Unauthorized"
	Message    string
	Body       string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return "server error: " + strconv.Itoa(e.StatusCode) + " - " + e.Code + ": " + e.Message
	}
	return "server error: " + strconv.Itoa(e.StatusCode) + " - " + e.Body
}

// Is reports whether target matches this error.
// It matches if target is an *APIError with the same StatusCode.
func (e *APIError) Is(target error) bool {
	var t *APIError
	ok := errors.As(target, &t)
	if !ok {
		return false
	}
	return t.StatusCode == e.StatusCode
}

// Sentinel errors for common API error conditions.
// Use errors.Is() to check for these conditions.
var (
	// ErrNotFound is returned when the requested resource does not exist (404).
	ErrNotFound = &APIError{StatusCode: http.StatusNotFound}

	// ErrUnauthorized is returned when the API key is rejected (401).
	ErrUnauthorized = &APIError{StatusCode: http.StatusUnauthorized}

	// ErrTooManyRequests is returned when the monthly compression limit is reached (429).
	ErrTooManyRequests = &APIError{StatusCode: http.StatusTooManyRequests}
)
