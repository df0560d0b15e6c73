// Package webclient is the page-glue toolkit behind the stylist UI: JSON
// request plumbing with anti-forgery headers, transient notifications and
// confirmations, form serialization and validation, and a small expiring
// key/value store. Everything hangs off one constructed Client so the layers
// can be exercised without a rendering environment.
package webclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/cookiejar"
	"strings"
)

const defaultAPIPrefix = "/api/"

// HTTPError is returned for any non-2xx response. The numeric status and
// reason phrase are preserved so the failure can still be routed by a caller.
type HTTPError struct {
	StatusCode int
	Reason     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Reason)
}

func IsHTTPError(err error) bool {
	var target *HTTPError
	return errors.As(err, &target)
}

type Config struct {
	// BaseURL is the server origin, e.g. "http://localhost:8080".
	BaseURL string
	// APIPrefix is prepended by the Get/Post/Put/Delete wrappers. Defaults
	// to "/api/".
	APIPrefix string
	// Token is the resolved anti-forgery token; see ResolveToken. Empty
	// means requests go out without the header.
	Token string
	// HTTPClient defaults to a client with a cookie jar so same-origin
	// cookies ride along.
	HTTPClient *http.Client
	// Logger is the diagnostic channel; defaults to the standard logger.
	Logger *log.Logger

	Surface Surface
	Storage Storage
}

// Client bundles the request layer, the UI feedback layer and the local
// store into one explicit context instead of a shared global namespace.
type Client struct {
	baseURL   string
	apiPrefix string
	token     string
	http      *http.Client
	logger    *log.Logger

	UI    *UI
	Local *Store
}

func New(cfg Config) *Client {
	prefix := cfg.APIPrefix
	if prefix == "" {
		prefix = defaultAPIPrefix
	}
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		jar, _ := cookiejar.New(nil)
		httpClient = &http.Client{Jar: jar}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	storage := cfg.Storage
	if storage == nil {
		storage = NewMemoryStorage()
	}

	return &Client{
		baseURL:   strings.TrimSuffix(cfg.BaseURL, "/"),
		apiPrefix: prefix,
		token:     cfg.Token,
		http:      httpClient,
		logger:    logger,
		UI:        newUI(cfg.Surface, logger),
		Local:     NewStore(storage),
	}
}

// Token reports the anti-forgery token the client was constructed with. It
// is fixed for the client's lifetime.
func (c *Client) Token() string {
	return c.token
}

// Request issues an HTTP call against one of the application's JSON
// endpoints. Caller headers are merged over the defaults. A non-2xx status
// comes back as *HTTPError after being logged; it never resolves with an
// error body silently. A 2xx response resolves to the parsed body.
func (c *Client) Request(ctx context.Context, method, url string, body io.Reader, headers map[string]string) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+url, body)
	if err != nil {
		c.logger.Printf("[webclient] %s %s: building request: %v", method, url, err)
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set(csrfHeader, c.token)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Printf("[webclient] %s %s: %v", method, url, err)
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		httpErr := &HTTPError{
			StatusCode: resp.StatusCode,
			Reason:     reasonPhrase(resp),
		}
		c.logger.Printf("[webclient] %s %s: %v", method, url, httpErr)
		return nil, httpErr
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Printf("[webclient] %s %s: reading body: %v", method, url, err)
		return nil, err
	}
	if len(raw) == 0 {
		return nil, nil
	}

	var payload json.RawMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		c.logger.Printf("[webclient] %s %s: decoding body: %v", method, url, err)
		return nil, err
	}
	return payload, nil
}

// Get issues a GET against the API base path.
func (c *Client) Get(ctx context.Context, endpoint string) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodGet, c.endpointURL(endpoint), nil, nil)
}

// Post JSON-encodes payload and issues a POST against the API base path.
func (c *Client) Post(ctx context.Context, endpoint string, payload any) (json.RawMessage, error) {
	body, err := c.encode(endpoint, payload)
	if err != nil {
		return nil, err
	}
	return c.Request(ctx, http.MethodPost, c.endpointURL(endpoint), body, nil)
}

// Put JSON-encodes payload and issues a PUT against the API base path.
func (c *Client) Put(ctx context.Context, endpoint string, payload any) (json.RawMessage, error) {
	body, err := c.encode(endpoint, payload)
	if err != nil {
		return nil, err
	}
	return c.Request(ctx, http.MethodPut, c.endpointURL(endpoint), body, nil)
}

// Delete issues a DELETE against the API base path.
func (c *Client) Delete(ctx context.Context, endpoint string) (json.RawMessage, error) {
	return c.Request(ctx, http.MethodDelete, c.endpointURL(endpoint), nil, nil)
}

func (c *Client) endpointURL(endpoint string) string {
	return c.apiPrefix + strings.TrimPrefix(endpoint, "/")
}

func (c *Client) encode(endpoint string, payload any) (io.Reader, error) {
	if payload == nil {
		return nil, nil
	}
	body, err := json.Marshal(payload)
	if err != nil {
		c.logger.Printf("[webclient] %s: encoding payload: %v", endpoint, err)
		return nil, err
	}
	return bytes.NewReader(body), nil
}

func reasonPhrase(resp *http.Response) string {
	phrase := strings.TrimSpace(strings.TrimPrefix(resp.Status, fmt.Sprintf("%d", resp.StatusCode)))
	if phrase == "" {
		phrase = http.StatusText(resp.StatusCode)
	}
	return phrase
}
