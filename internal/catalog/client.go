package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/guttosm/bundle-service/internal/circuitbreaker"
	"github.com/guttosm/bundle-service/internal/domain/model"
	"github.com/guttosm/bundle-service/internal/metrics"
	"github.com/guttosm/bundle-service/internal/service/cache"
)

// CacheName labels the product snapshot cache in metrics.
const CacheName = "catalog_products"

const maxBodyBytes = 16 << 20

// ErrUpstreamStatus is wrapped by errors for non-2xx catalog responses.
var ErrUpstreamStatus = errors.New("catalog returned non-success status")

// Client fetches the storefront product listing.
type Client struct {
	url        string
	httpClient *http.Client
	breaker    *circuitbreaker.CircuitBreaker
	cache      cache.Cache[string, []model.Product]
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithCircuitBreaker guards fetches with cb.
func WithCircuitBreaker(cb *circuitbreaker.CircuitBreaker) Option {
	return func(c *Client) {
		c.breaker = cb
	}
}

// WithCache keeps the last successful listing for the cache's TTL.
func WithCache(pc cache.Cache[string, []model.Product]) Option {
	return func(c *Client) {
		c.cache = pc
	}
}

// NewClient creates a client for the products endpoint at url.
func NewClient(url string, opts ...Option) *Client {
	c := &Client{
		url:        url,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchProducts returns the normalized catalog.
func (c *Client) FetchProducts(ctx context.Context) ([]model.Product, error) {
	if c.cache != nil {
		if products, ok := c.cache.Get(c.url); ok {
			return products, nil
		}
	}

	start := time.Now()
	var products []model.Product
	fetch := func() error {
		var err error
		products, err = c.fetch(ctx)
		return err
	}

	var err error
	if c.breaker != nil {
		err = c.breaker.Execute(ctx, fetch)
	} else {
		err = fetch()
	}

	if err != nil {
		metrics.RecordCatalogFetch(time.Since(start), "error")
		log.Warn().Err(err).Str("url", c.url).Msg("Product catalog fetch failed")
		return nil, err
	}

	metrics.RecordCatalogFetch(time.Since(start), "success")
	if c.cache != nil {
		c.cache.Set(c.url, products)
	}
	return products, nil
}

// Invalidate drops the cached listing.
func (c *Client) Invalidate() {
	if c.cache != nil {
		c.cache.Invalidate(c.url)
	}
}

// Stop releases the cache sweeper.
func (c *Client) Stop() {
	if c.cache != nil {
		c.cache.Stop()
	}
}

func (c *Client) fetch(ctx context.Context) ([]model.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch catalog: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: HTTP %d", ErrUpstreamStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Decode(body), nil
}

// Static is a fixed product source used when no upstream catalog is configured.
type Static []model.Product

// FetchProducts returns the fixed products.
func (s Static) FetchProducts(context.Context) ([]model.Product, error) {
	return []model.Product(s), nil
}
