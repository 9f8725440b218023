// Package adminstore is the admin-side client for managing bundles: a REST
// client for the bundle API and a Store that holds the catalog, the bundle list
// and the edit form.
package adminstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/guttosm/bundle-service/internal/catalog"
	"github.com/guttosm/bundle-service/internal/domain/model"
)

// Endpoint paths relative to the API base URL.
const (
	ProductsPath     = "/api/products"
	BundlesPath      = "/api/bundles"
	AdminBundlesPath = "/api/admin/bundles"
	LoginPath        = "/api/auth/login"
)

// ErrNoToken is returned when a login response carries no token.
var ErrNoToken = errors.New("login response has no token")

// HTTPError is returned for any non-2xx response.
type HTTPError struct {
	StatusCode int
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// AuthHeaderProvider supplies the Authorization header for admin calls.
type AuthHeaderProvider interface {
	AuthHeader(ctx context.Context) (string, error)
}

// AuthHeaderFunc adapts a function to AuthHeaderProvider.
type AuthHeaderFunc func(ctx context.Context) (string, error)

// AuthHeader calls f.
func (f AuthHeaderFunc) AuthHeader(ctx context.Context) (string, error) {
	return f(ctx)
}

// BearerToken is a fixed token sent as "Bearer <token>".
type BearerToken string

// AuthHeader returns the bearer header, or nothing for an empty token.
func (t BearerToken) AuthHeader(context.Context) (string, error) {
	if t == "" {
		return "", nil
	}
	return "Bearer " + string(t), nil
}

// API is the set of remote calls the Store depends on.
type API interface {
	ListProducts(ctx context.Context) ([]model.Product, error)
	ListBundles(ctx context.Context) ([]model.Bundle, error)
	CreateBundle(ctx context.Context, bundle model.Bundle) (model.Bundle, error)
	UpdateBundle(ctx context.Context, slug string, bundle model.Bundle) (model.Bundle, error)
	DeleteBundle(ctx context.Context, slug string) error
}

// APIClient talks to the bundle REST API. It never retries.
type APIClient struct {
	baseURL    string
	httpClient *http.Client
	auth       AuthHeaderProvider
}

// ClientOption configures an APIClient.
type ClientOption func(*APIClient)

// WithHTTPClient replaces the default client, which has no timeout.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *APIClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithAuth sets the Authorization header source for admin calls.
func WithAuth(p AuthHeaderProvider) ClientOption {
	return func(c *APIClient) {
		c.auth = p
	}
}

// NewAPIClient creates a client for the API rooted at baseURL.
func NewAPIClient(baseURL string, opts ...ClientOption) *APIClient {
	c := &APIClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListProducts fetches and normalizes the product catalog.
func (c *APIClient) ListProducts(ctx context.Context) ([]model.Product, error) {
	body, err := c.do(ctx, http.MethodGet, ProductsPath, nil, false)
	if err != nil {
		return nil, err
	}
	return catalog.Decode(body), nil
}

// ListBundles fetches all bundles. A body that is not an array yields an empty list.
func (c *APIClient) ListBundles(ctx context.Context) ([]model.Bundle, error) {
	body, err := c.do(ctx, http.MethodGet, BundlesPath, nil, false)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(body) || !gjson.ParseBytes(body).IsArray() {
		return []model.Bundle{}, nil
	}

	var bundles []model.Bundle
	if err := json.Unmarshal(body, &bundles); err != nil {
		return nil, fmt.Errorf("decode bundles: %w", err)
	}
	return bundles, nil
}

// CreateBundle posts a new bundle and returns the stored copy.
func (c *APIClient) CreateBundle(ctx context.Context, bundle model.Bundle) (model.Bundle, error) {
	return c.writeBundle(ctx, http.MethodPost, AdminBundlesPath, bundle)
}

// UpdateBundle replaces the bundle stored under slug.
func (c *APIClient) UpdateBundle(ctx context.Context, slug string, bundle model.Bundle) (model.Bundle, error) {
	return c.writeBundle(ctx, http.MethodPut, bundlePath(slug), bundle)
}

// DeleteBundle removes the bundle stored under slug.
func (c *APIClient) DeleteBundle(ctx context.Context, slug string) error {
	_, err := c.do(ctx, http.MethodDelete, bundlePath(slug), nil, true)
	return err
}

// Login exchanges admin credentials for an access token.
func (c *APIClient) Login(ctx context.Context, email, password string) (string, error) {
	payload, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		return "", fmt.Errorf("encode credentials: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, LoginPath, payload, false)
	if err != nil {
		return "", err
	}
	token := gjson.GetBytes(body, "data.token").String()
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func bundlePath(slug string) string {
	return AdminBundlesPath + "/" + url.PathEscape(slug)
}

func (c *APIClient) writeBundle(ctx context.Context, method, path string, bundle model.Bundle) (model.Bundle, error) {
	payload, err := json.Marshal(bundle)
	if err != nil {
		return model.Bundle{}, fmt.Errorf("encode bundle: %w", err)
	}

	body, err := c.do(ctx, method, path, payload, true)
	if err != nil {
		return model.Bundle{}, err
	}

	var stored model.Bundle
	if err := json.Unmarshal(body, &stored); err != nil {
		return model.Bundle{}, fmt.Errorf("decode bundle: %w", err)
	}
	return stored, nil
}

func (c *APIClient) do(ctx context.Context, method, path string, payload []byte, admin bool) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	if admin && c.auth != nil {
		header, err := c.auth.AuthHeader(ctx)
		if err != nil {
			return nil, err
		}
		if header != "" {
			req.Header.Set("Authorization", header)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, &HTTPError{StatusCode: resp.StatusCode}
	}
	return io.ReadAll(resp.Body)
}
