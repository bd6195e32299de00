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
)

// AuthCookieName is the cookie carrying the JWT issued by the server.
const AuthCookieName = "auth_token"

// Client is the HTTP client used for all API calls. The explicit
// timeout keeps a stuck sync call from hanging the caller past the
// transport default.
var Client = &http.Client{Timeout: 15 * time.Second}

// PostJSON sends a JSON POST request. If token is non-empty, it is passed as auth cookie.
func PostJSON(ctx context.Context, url string, payload any, token string) (*http.Response, []byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(b))
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Cookie", AuthCookieName+"="+token)
	}
	resp, err := Client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp, body, nil
}

// GetJSON sends a GET request with the auth cookie attached.
func GetJSON(ctx context.Context, url string, token string) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, err
	}
	if token != "" {
		req.Header.Set("Cookie", AuthCookieName+"="+token)
	}
	resp, err := Client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp, body, nil
}

// AuthTokenFromResponse extracts the auth cookie set by login/register.
func AuthTokenFromResponse(resp *http.Response) (string, error) {
	for _, c := range resp.Cookies() {
		if c.Name == AuthCookieName && c.Value != "" {
			return c.Value, nil
		}
	}
	return "", fmt.Errorf("no auth cookie in response")
}

// Ping reports whether the server answers its health endpoint. It is
// the connectivity probe used to decide if a sync pass may run.
func Ping(ctx context.Context, baseURL string) bool {
	endpoint := strings.TrimRight(baseURL, "/") + "/ping"
	resp, _, err := GetJSON(ctx, endpoint, "")
	if err != nil {
		return false
	}
	return resp.StatusCode == http.StatusOK
}
