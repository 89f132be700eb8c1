package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/gimelloc/ignite-gym/pkg/log"
)

const headerRequestID = "X-Request-ID"

// TokenProvider supplies the current access token, or "" when no
// session is active. The token is injected as a bearer header on
// every request.
type TokenProvider interface {
	Token() string
}

// Client is the HTTP client for the Ignite Gym API. All requests go
// through do(), which injects the auth header, tags the request with
// an ID, and logs its outcome.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenProvider
}

// NewClient creates an API client for the given base URL.
func NewClient(baseURL string, timeout time.Duration, tokens TokenProvider) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
	}
}

// BaseURL returns the configured API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues a GET and decodes the JSON response into out.
func (c *Client) Get(ctx context.Context, path string, out any) error {
	return c.do(ctx, http.MethodGet, path, "", nil, out)
}

// Post issues a POST with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body, out any) error {
	r, err := encodeJSON(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPost, path, "application/json", r, out)
}

// Put issues a PUT with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body, out any) error {
	r, err := encodeJSON(body)
	if err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, path, "application/json", r, out)
}

// PatchMultipart issues a PATCH whose body is a prebuilt multipart
// payload. contentType must carry the multipart boundary.
func (c *Client) PatchMultipart(ctx context.Context, path, contentType string, body io.Reader, out any) error {
	return c.do(ctx, http.MethodPatch, path, contentType, body, out)
}

func (c *Client) do(ctx context.Context, method, path, contentType string, body io.Reader, out any) error {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	reqID := uuid.New().String()
	req.Header.Set(headerRequestID, reqID)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if token := c.tokens.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	l := log.Ctx(ctx).With().
		Str(log.FieldRequestID, reqID).
		Str(log.FieldMethod, method).
		Str(log.FieldPath, path).
		Logger()

	resp, err := c.http.Do(req)
	if err != nil {
		l.Warn().Err(err).Msg("request failed")
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	l.Debug().
		Int(log.FieldStatus, resp.StatusCode).
		Float64(log.FieldLatency, float64(time.Since(start).Milliseconds())).
		Msg("request completed")

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp.StatusCode, data)
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}

// decodeError maps a non-2xx response to either an AppError, when the
// body carries a recognized message, or a generic transport error.
func decodeError(status int, data []byte) error {
	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(data, &body); err == nil && body.Message != "" {
		return &AppError{Status: status, Message: body.Message}
	}
	return fmt.Errorf("request failed with status %d", status)
}

func encodeJSON(body any) (io.Reader, error) {
	if body == nil {
		return nil, nil
	}
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(body); err != nil {
		return nil, fmt.Errorf("failed to encode request body: %w", err)
	}
	return buf, nil
}
