package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/codereviewer/internal/common"
)

// Profile mirrors the server's public user view.
type Profile struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Models mirrors GET /api/models.
type Models struct {
	Default string   `json:"default"`
	Models  []string `json:"models"`
}

type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
	token      string
}

func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
}

// SetToken sets the bearer token sent with authenticated calls. Empty clears it.
func (c *HTTPClient) SetToken(token string) {
	c.token = token
}

func (c *HTTPClient) Register(ctx context.Context, name, email string, password []byte) (*Profile, error) {
	var out Profile
	in := map[string]string{"name": name, "email": email, "password": string(password)}
	if err := c.do(ctx, http.MethodPost, "/auth/register", in, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

// Login authenticates and stores the returned token on the client.
func (c *HTTPClient) Login(ctx context.Context, email string, password []byte) error {
	var out struct {
		Token string `json:"token"`
	}
	in := map[string]string{"email": email, "password": string(password)}
	if err := c.do(ctx, http.MethodPost, "/auth/login", in, &out, false); err != nil {
		return err
	}
	c.token = out.Token
	return nil
}

func (c *HTTPClient) Profile(ctx context.Context) (*Profile, error) {
	var out Profile
	if err := c.do(ctx, http.MethodGet, "/profile", nil, &out, true); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Models(ctx context.Context) (*Models, error) {
	var out Models
	if err := c.do(ctx, http.MethodGet, "/api/models", nil, &out, false); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Review(ctx context.Context, code, model string) (string, error) {
	var out struct {
		Review string `json:"review"`
	}
	in := map[string]string{"code": code, "model": model}
	if err := c.do(ctx, http.MethodPost, "/api/review", in, &out, false); err != nil {
		return "", err
	}
	return out.Review, nil
}

func (c *HTTPClient) Ping(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/ping", nil, nil, false)
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out any, withAuth bool) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withAuth && c.token != "" {
		req.Header.Set(common.AuthorizationHeaderName, common.BearerScheme+" "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return ErrUnauthorized
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var e struct {
			Error string `json:"error"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&e)
		return &APIError{Status: resp.StatusCode, Message: e.Error}
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
