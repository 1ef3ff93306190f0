package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"opname/internal/config"
	"opname/models"
)

// ErrSessionNotFound is returned when a session id does not exist on the
// backend.
var ErrSessionNotFound = errors.New("session not found")

// APIError is an application-level failure reported by the backend
// (success:false). Its message is shown to the user verbatim.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend api error: status=%d, message=%s", e.StatusCode, e.Message)
}

// UserMessage translates an error into user-facing text: application errors
// surface the server message verbatim, everything else collapses to the
// provided generic fallback.
func UserMessage(err error, fallback string) string {
	var apiErr *APIError
	if errors.As(err, &apiErr) && strings.TrimSpace(apiErr.Message) != "" {
		return apiErr.Message
	}
	return fallback
}

// Client is a resty-backed client for the remote stock opname API. It is
// the only data access path in the application; no state is cached between
// calls.
type Client struct {
	http *resty.Client
}

// NewClient builds an API client from the provided configuration values.
func NewClient(cfg config.BackendConfig) *Client {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(cfg.BaseURL, "/")).
		SetHeader("Accept", "application/json").
		SetTimeout(cfg.Timeout)

	return &Client{http: restyClient}
}

// envelope is the backend's uniform response wrapper.
type envelope struct {
	Success    bool               `json:"success"`
	Message    string             `json:"message"`
	Data       json.RawMessage    `json:"data"`
	Pagination *models.Pagination `json:"pagination"`
}

func (c *Client) getJSON(ctx context.Context, path string, query map[string]string, out any) (*models.Pagination, error) {
	req := c.http.R().SetContext(ctx)
	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	resp, err := req.Get(path)
	if err != nil {
		return nil, fmt.Errorf("call backend: %w", err)
	}
	return decodeEnvelope(resp, out)
}

func (c *Client) sendJSON(ctx context.Context, method, path string, body, out any) (*models.Pagination, error) {
	req := c.http.R().SetContext(ctx)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	resp, err := req.Execute(method, path)
	if err != nil {
		return nil, fmt.Errorf("call backend: %w", err)
	}
	return decodeEnvelope(resp, out)
}

func decodeEnvelope(resp *resty.Response, out any) (*models.Pagination, error) {
	var env envelope
	if err := json.Unmarshal(resp.Body(), &env); err != nil {
		if resp.IsError() {
			return nil, fmt.Errorf("backend returned status %d", resp.StatusCode())
		}
		return nil, fmt.Errorf("decode backend response: %w", err)
	}
	if !env.Success {
		message := strings.TrimSpace(env.Message)
		if message == "" {
			message = http.StatusText(resp.StatusCode())
		}
		return nil, &APIError{StatusCode: resp.StatusCode(), Message: message}
	}
	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return nil, fmt.Errorf("decode backend data: %w", err)
		}
	}
	return env.Pagination, nil
}

// Download is a streamed binary export. Body must always be closed,
// whether or not the caller finishes reading it.
type Download struct {
	Body        io.ReadCloser
	ContentType string
}

// Close releases the underlying response body.
func (d *Download) Close() error {
	if d == nil || d.Body == nil {
		return nil
	}
	return d.Body.Close()
}

func (c *Client) download(ctx context.Context, path string) (*Download, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetDoNotParseResponse(true).
		Get(path)
	if err != nil {
		return nil, fmt.Errorf("call backend: %w", err)
	}

	body := resp.RawBody()
	if resp.StatusCode() >= http.StatusBadRequest {
		// Exports report failures with the usual JSON envelope.
		raw, _ := io.ReadAll(io.LimitReader(body, 1<<16))
		_ = body.Close()
		var env envelope
		if err := json.Unmarshal(raw, &env); err == nil && strings.TrimSpace(env.Message) != "" {
			return nil, &APIError{StatusCode: resp.StatusCode(), Message: env.Message}
		}
		return nil, fmt.Errorf("backend returned status %d", resp.StatusCode())
	}

	contentType := ""
	if resp.RawResponse != nil {
		contentType = resp.RawResponse.Header.Get("Content-Type")
	}
	return &Download{Body: body, ContentType: contentType}, nil
}
