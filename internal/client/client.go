// Package client is a Go client for the presencechat HTTP API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/vovakirdan/presencechat/internal/proto"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error (status %d, %s): %s", e.StatusCode, e.Code, e.Message)
	}
	return fmt.Sprintf("api error (status %d): %s", e.StatusCode, e.Message)
}

// Client provides REST API access to a presencechat server.
type Client struct {
	baseURL    string
	user       string
	httpClient *http.Client
}

// New creates a client for baseURL, e.g. "http://localhost:5000".
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// SetHTTPClient allows setting a custom HTTP client.
func (c *Client) SetHTTPClient(client *http.Client) {
	if client != nil {
		c.httpClient = client
	}
}

// SetUser sets the participant name sent in the From header.
func (c *Client) SetUser(name string) {
	c.user = name
}

// User returns the participant name the client acts as.
func (c *Client) User() string {
	return c.user
}

// Join registers name as present.
func (c *Client) Join(ctx context.Context, name string) error {
	return c.post(ctx, "/participants", proto.JoinRequest{Name: name}, nil)
}

// Participants lists who is present.
func (c *Client) Participants(ctx context.Context) ([]proto.Participant, error) {
	var resp []proto.Participant
	if err := c.get(ctx, "/participants", &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// Heartbeat refreshes the presence of the current user.
func (c *Client) Heartbeat(ctx context.Context) error {
	return c.post(ctx, "/status", nil, nil)
}

// Send posts a chat line from the current user.
func (c *Client) Send(ctx context.Context, req proto.PostMessageRequest) error {
	return c.post(ctx, "/messages", req, nil)
}

// Messages reads the messages visible to the current user.
// A limit of zero or less asks for the full history.
func (c *Client) Messages(ctx context.Context, limit int) ([]proto.Message, error) {
	path := "/messages"
	if limit > 0 {
		path += "?" + url.Values{proto.QueryLimit: {strconv.Itoa(limit)}}.Encode()
	}

	var resp []proto.Message
	if err := c.get(ctx, path, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// KeepAlive sends a heartbeat every interval until ctx is done or a heartbeat fails.
func (c *Client) KeepAlive(ctx context.Context, interval time.Duration) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := c.Heartbeat(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
		}
	}
}

func (c *Client) post(ctx context.Context, path string, body, dest any) error {
	var bodyReader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return c.do(req, dest)
}

func (c *Client) get(ctx context.Context, path string, dest any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, http.NoBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}

	return c.do(req, dest)
}

func (c *Client) do(req *http.Request, dest any) error {
	if c.user != "" {
		req.Header.Set(proto.HeaderFrom, c.user)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Message: strings.TrimSpace(string(body))}
		var errResp proto.ErrorResponse
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			apiErr.Code = errResp.Code
			apiErr.Message = errResp.Error
		}
		return apiErr
	}

	if dest != nil {
		if err := json.Unmarshal(body, dest); err != nil {
			return fmt.Errorf("unmarshal response: %w", err)
		}
	}

	return nil
}
