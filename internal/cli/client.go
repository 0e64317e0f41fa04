package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/subhajit/appointment-booking/internal/session"
)

// Client is an HTTP client for the API that carries the session cookie
type Client struct {
	baseURL    string
	cookie     string
	origin     string
	httpClient *http.Client
}

// NewClient creates a new API client
func NewClient(baseURL, cookie, origin string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		cookie:  cookie,
		origin:  origin,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SessionCookie returns the current session cookie value, updated by server responses
func (c *Client) SessionCookie() string {
	return c.cookie
}

// HTTPError is a non-2xx response. Body is the plain-text error, or the
// message of a JSON error body.
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("HTTP %d", e.Status)
	}
	return fmt.Sprintf("HTTP %d: %s", e.Status, e.Body)
}

// Do performs an HTTP request and returns the response body
func (c *Client) Do(method, path string, body any) ([]byte, error) {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.origin != "" {
		req.Header.Set("Origin", c.origin)
	}
	if c.cookie != "" {
		req.AddCookie(&http.Cookie{Name: session.DefaultName, Value: c.cookie})
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		return nil, &HTTPError{Status: resp.StatusCode, Body: errorMessage(respBody)}
	}

	c.captureCookie(resp)
	return respBody, nil
}

// captureCookie tracks the session cookie the server set or expired
func (c *Client) captureCookie(resp *http.Response) {
	for _, ck := range resp.Cookies() {
		if ck.Name != session.DefaultName {
			continue
		}
		if ck.MaxAge < 0 || ck.Value == "" {
			c.cookie = ""
		} else {
			c.cookie = ck.Value
		}
	}
}

// errorMessage extracts the message from a JSON error body, or returns the text as is
func errorMessage(body []byte) string {
	var apiErr struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &apiErr); err == nil && apiErr.Message != "" {
		return apiErr.Message
	}
	return strings.TrimSpace(string(body))
}

// GetJSON performs a GET request and decodes a JSON response
func (c *Client) GetJSON(path string, result any) error {
	data, err := c.Do(http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// Post performs a POST request and returns the raw response body
func (c *Client) Post(path string, body any) ([]byte, error) {
	return c.Do(http.MethodPost, path, body)
}

// SendJSON performs a request with a JSON body and decodes a JSON response
func (c *Client) SendJSON(method, path string, body, result any) error {
	data, err := c.Do(method, path, body)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// Delete performs a DELETE request
func (c *Client) Delete(path string) error {
	_, err := c.Do(http.MethodDelete, path, nil)
	return err
}
