package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/spec-kit/hospital-console/pkg/util"
)

type signinRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type signinResponse struct {
	AccessToken string `json:"accessToken"`
}

// SigninClient exchanges credentials for an access token. It uses its own
// http.Client so that it can exist before the session manager does.
type SigninClient struct {
	endpoint   string
	httpClient *http.Client
}

// NewSigninClient targets baseURL+path. A nil httpClient uses http.DefaultClient.
func NewSigninClient(baseURL, path string, httpClient *http.Client) *SigninClient {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &SigninClient{
		endpoint:   strings.TrimRight(baseURL, "/") + path,
		httpClient: httpClient,
	}
}

// Signin posts the credentials and returns the issued access token. Every
// failure is an AUTHENTICATION_FAILED error carrying the backend message when
// one was sent.
func (c *SigninClient) Signin(ctx context.Context, username, password string) (string, error) {
	body, err := json.Marshal(signinRequest{Username: username, Password: password})
	if err != nil {
		return "", apperrors.NewAuthenticationFailure("", 0, fmt.Errorf("marshal signin: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", apperrors.NewAuthenticationFailure("", 0, fmt.Errorf("build request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.NewAuthenticationFailure("authentication service unreachable", 0, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return "", apperrors.NewAuthenticationFailure("", resp.StatusCode, fmt.Errorf("read signin response: %w", err))
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", apperrors.NewAuthenticationFailure(backendMessage(raw), resp.StatusCode, nil)
	}

	var out signinResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return "", apperrors.NewAuthenticationFailure("", resp.StatusCode, fmt.Errorf("decode signin response: %w", err))
	}
	if out.AccessToken == "" {
		return "", apperrors.NewAuthenticationFailure("authentication service returned no token", resp.StatusCode, nil)
	}
	return out.AccessToken, nil
}
