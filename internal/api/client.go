package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultTimeout = 10 * time.Second
	maxBodyBytes   = 1 << 20
	userAgent      = "shopauth/1.0"
)

// Client is the shop backend API client.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: timeout,
		},
	}
}

// Login exchanges credentials for a session token.
func (c *Client) Login(ctx context.Context, email, password string) (string, error) {
	body, err := c.do(ctx, http.MethodPost, PathLogin, "", Credentials{Email: email, Password: password})
	if err != nil {
		return "", err
	}
	token := parseToken(body)
	if token == "" {
		return "", fmt.Errorf("login response did not contain a token")
	}
	return token, nil
}

// Register creates a new, unconfirmed account.
func (c *Client) Register(ctx context.Context, fullName, email, password string) error {
	_, err := c.do(ctx, http.MethodPost, PathRegister, "", Registration{
		FullName: fullName,
		Email:    email,
		Password: password,
	})
	return err
}

// ConfirmEmail submits the code that was emailed after registration.
func (c *Client) ConfirmEmail(ctx context.Context, email, code string) error {
	_, err := c.do(ctx, http.MethodPost, PathConfirmEmail, "", EmailConfirmation{
		Email:            email,
		ConfirmationCode: code,
	})
	return err
}

// ResendConfirmation asks the backend to email a fresh confirmation code.
func (c *Client) ResendConfirmation(ctx context.Context, email string) error {
	_, err := c.do(ctx, http.MethodPost, PathResendConfirmation, "", resendRequest{Email: email})
	return err
}

// GetProfile fetches the profile of the user the token belongs to.
func (c *Client) GetProfile(ctx context.Context, token string) (*Profile, error) {
	body, err := c.do(ctx, http.MethodGet, PathProfile, token, nil)
	if err != nil {
		return nil, err
	}
	var p Profile
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decoding profile: %w", err)
	}
	return &p, nil
}

// do sends a JSON request and returns the response body of a 2xx reply.
// Any other status becomes a *RemoteError.
func (c *Client) do(ctx context.Context, method, path, token string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encoding request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	requestID := uuid.NewString()
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		log.Printf("api: %s %s request_id=%s error=%v", method, path, requestID, err)
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response from %s: %w", path, err)
	}
	log.Printf("api: %s %s request_id=%s status=%d", method, path, requestID, resp.StatusCode)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, newRemoteError(resp.StatusCode, body)
	}
	return body, nil
}

func newRemoteError(status int, body []byte) *RemoteError {
	e := &RemoteError{Status: status, Body: strings.TrimSpace(string(body))}
	var msg messageResponse
	if json.Unmarshal(body, &msg) == nil {
		e.Message = strings.TrimSpace(msg.Message)
	}
	return e
}

// parseToken accepts the backend's {"token": "..."} payload as well as a bare
// JSON string or a plain-text token body.
func parseToken(body []byte) string {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return ""
	}
	switch trimmed[0] {
	case '{':
		var lr loginResponse
		if err := json.Unmarshal(trimmed, &lr); err != nil {
			return ""
		}
		return strings.TrimSpace(lr.Token)
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return ""
		}
		return strings.TrimSpace(s)
	}
	return string(trimmed)
}
