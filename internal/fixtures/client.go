package fixtures

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/blogapp/e2e/internal/models"
	"go.uber.org/zap"
)

// Fixture API endpoints exposed by the blog backend in test mode
const (
	ResetPath = "/api/testing/reset"
	UsersPath = "/api/users"
)

// maxErrorBody caps how much of a failed response is kept in a StatusError
const maxErrorBody = 512

// Client establishes known application state before a scenario
type Client interface {
	Reset(ctx context.Context) error
	CreateUser(ctx context.Context, user models.User) error
}

// StatusError is returned when a fixture endpoint answers with a non-2xx status
type StatusError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s returned status %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// HTTPClient implements Client against the backend's REST API
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPClient creates a fixture client for the API at baseURL
func NewHTTPClient(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPClient {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger.Named("fixtures"),
	}
}

// Reset clears every user and blog in the backend
func (c *HTTPClient) Reset(ctx context.Context) error {
	return c.post(ctx, ResetPath, nil)
}

// CreateUser registers user so a scenario can log in with it
func (c *HTTPClient) CreateUser(ctx context.Context, user models.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("invalid fixture user: %w", err)
	}

	reqBody, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to marshal user: %w", err)
	}

	return c.post(ctx, UsersPath, reqBody)
}

// post sends a POST request and checks the status code
func (c *HTTPClient) post(ctx context.Context, path string, body []byte) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	if err != nil {
		return fmt.Errorf("failed to read response from %s: %w", path, err)
	}

	c.logger.Debug("fixture call",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &StatusError{
			Endpoint:   "POST " + path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(respBody)),
		}
	}

	return nil
}
