package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/sessionguard-dev/sessionguard/internal/requestid"
)

const (
	AuthPath          = "/auth"
	SignupPath        = "/signup"
	ResetPasswordPath = "/try_reset_password"

	// RequestIDHeader carries a per-request ULID for correlating client and server logs.
	RequestIDHeader = "X-Request-ID"

	maxErrorBody    = 4 << 10
	maxResponseBody = 1 << 20
)

// Client represents an HTTP client for the auth service
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client for the service at baseURL
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// BaseURL returns the service root the client talks to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// SignupRequest represents the signup request body
type SignupRequest struct {
	Password string `json:"password"`
	Email    string `json:"email"`
}

type signupResponse struct {
	AccessToken string `json:"access_token"`
}

// Verify asks the auth service whether token is still valid. Any 2xx
// response with a parseable JSON body means yes.
func (c *Client) Verify(ctx context.Context, token string) error {
	req, err := c.newRequest(ctx, http.MethodGet, AuthPath, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return newStatusError(resp)
	}

	var payload json.RawMessage
	return decodeBody(resp, &payload)
}

// Signup registers an account and returns the issued access token
func (c *Client) Signup(ctx context.Context, email, password string) (string, error) {
	jsonData, err := json.Marshal(SignupRequest{Password: password, Email: email})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, SignupPath, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return "", newStatusError(resp)
	}

	var signupResp signupResponse
	if err := decodeBody(resp, &signupResp); err != nil {
		return "", err
	}
	if signupResp.AccessToken == "" {
		return "", ErrMissingToken
	}

	return signupResp.AccessToken, nil
}

// ResetPasswordRequest represents the password reset request body
type ResetPasswordRequest struct {
	Email string `json:"email"`
}

// RequestPasswordReset asks the service to email a reset link. The service
// answers the same way whether or not the address is known.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	jsonData, err := json.Marshal(ResetPasswordRequest{Email: email})
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := c.newRequest(ctx, http.MethodPost, ResetPasswordPath, bytes.NewBuffer(jsonData))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if !isSuccess(resp.StatusCode) {
		return newStatusError(resp)
	}

	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(RequestIDHeader, requestid.FromContext(ctx))
	return req, nil
}

// decodeBody parses the whole body as a single JSON value into v. Trailing
// data after the value is a parse failure.
func decodeBody(resp *http.Response, v any) error {
	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}
