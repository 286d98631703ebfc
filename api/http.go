package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Backend routes.
const (
	LoginPath             = "/auth/login/"
	RegisterPath          = "/auth/register/"
	ResetPasswordPath     = "/auth/password/reset/"
	CreateNewPasswordPath = "/auth/password/create/"

	RequestIDHeader = "X-Request-Id"
	defaultTimeout  = 10 * time.Second
)

// HTTPClient calls the token-sale backend over HTTP.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	logger     *slog.Logger
}

// NewHTTPClient constructs a backend client for baseURL.
func NewHTTPClient(baseURL string, options ...Option) *HTTPClient {
	ret := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: defaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range options {
		opt(ret)
	}
	if ret.httpClient == nil {
		ret.httpClient = &http.Client{Timeout: ret.timeout}
	}
	return ret
}

func (c *HTTPClient) Login(ctx context.Context, request *Credentials) (*Response, error) {
	return c.post(ctx, LoginPath, request)
}

func (c *HTTPClient) Register(ctx context.Context, request *Registration) (*Response, error) {
	return c.post(ctx, RegisterPath, request)
}

func (c *HTTPClient) ResetPassword(ctx context.Context, request *PasswordReset) (*Response, error) {
	return c.post(ctx, ResetPasswordPath, request)
}

func (c *HTTPClient) CreateNewPassword(ctx context.Context, request *NewPassword) (*Response, error) {
	return c.post(ctx, CreateNewPasswordPath, request)
}

func (c *HTTPClient) post(ctx context.Context, path string, payload any) (*Response, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	requestID := uuid.NewString()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, requestID)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Warn("token sale api request failed", "path", path, "request_id", requestID, "error", err)
		return nil, fmt.Errorf("failed to call %v: %w", path, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %v response: %w", path, err)
	}
	c.logger.Debug("token sale api request", "path", path, "request_id", requestID,
		"status", resp.StatusCode, "elapsed", time.Since(started))

	result := &Payload{}
	decodeErr := decode(body, result)
	if resp.StatusCode >= http.StatusBadRequest {
		if decodeErr != nil {
			c.logger.Debug("unable to decode error body", "path", path, "request_id", requestID, "error", decodeErr)
			result = nil
		}
		return nil, &Error{Status: resp.StatusCode, Data: result}
	}
	if decodeErr != nil {
		return nil, fmt.Errorf("failed to decode %v response: %w", path, decodeErr)
	}
	return &Response{Status: resp.StatusCode, Data: result}, nil
}

func decode(body []byte, target *Payload) error {
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}
	return json.Unmarshal(body, target)
}
