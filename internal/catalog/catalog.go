// Package catalog looks up products on the Shopify catalog platform.
//
// Two protocol strategies exist: a storefront GraphQL search and an admin
// REST title filter. Both normalize results to models.Product and return
// transport, status, and decode failures as errors; the caller decides how
// to degrade.
package catalog

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/zincsforboats/zincfinder/internal/config"
	"github.com/zincsforboats/zincfinder/internal/models"
)

// Client searches the catalog platform for products matching a term.
// An empty term is allowed and forwarded as-is.
type Client interface {
	Search(ctx context.Context, term string) ([]models.Product, error)
}

// HTTPStatusError captures non-2xx upstream responses with status-aware context.
type HTTPStatusError struct {
	StatusCode int
	URL        string
	Body       string
}

func (e *HTTPStatusError) Error() string {
	return fmt.Sprintf("catalog: unexpected status %d from %s: %s", e.StatusCode, e.URL, e.Body)
}

type clientOptions struct {
	baseURL    string
	httpClient *http.Client
}

// Option customizes a catalog client.
type Option func(*clientOptions)

// WithBaseURL overrides the shop base URL (normally derived from the shop name).
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	}
}

// WithHTTPClient overrides the HTTP client used for outbound calls.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = httpClient
	}
}

func resolveOptions(cfg *config.ShopConfig, opts []Option) clientOptions {
	o := clientOptions{
		baseURL: fmt.Sprintf("https://%s.myshopify.com", cfg.Name),
		// Bounded timeout; the platform has none specified upstream.
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New returns the client for the protocol selected in cfg.
func New(cfg *config.ShopConfig, opts ...Option) (Client, error) {
	switch cfg.Protocol {
	case config.ProtocolStorefront:
		return NewStorefrontClient(cfg, opts...), nil
	case config.ProtocolAdmin:
		return NewAdminClient(cfg, opts...), nil
	default:
		return nil, fmt.Errorf("catalog: unknown protocol %q", cfg.Protocol)
	}
}

func doJSONRequest(httpClient *http.Client, req *http.Request, url string) ([]byte, error) {
	res, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		buf, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
		return nil, &HTTPStatusError{
			StatusCode: res.StatusCode,
			URL:        url,
			Body:       string(buf),
		}
	}

	buf, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return buf, nil
}
