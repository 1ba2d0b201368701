package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/zincsforboats/zincfinder/internal/config"
	"github.com/zincsforboats/zincfinder/internal/models"
)

type adminProductsResponse struct {
	Products []struct {
		Title  string `json:"title"`
		Handle string `json:"handle"`
	} `json:"products"`
}

// AdminClient searches products through the admin REST API title filter.
type AdminClient struct {
	baseURL    string
	token      string
	apiVersion string
	httpClient *http.Client
}

// NewAdminClient creates an admin search client from cfg.
func NewAdminClient(cfg *config.ShopConfig, opts ...Option) *AdminClient {
	o := resolveOptions(cfg, opts)
	return &AdminClient{
		baseURL:    o.baseURL,
		token:      cfg.AdminToken,
		apiVersion: cfg.APIVersion,
		httpClient: o.httpClient,
	}
}

// Search lists products whose title matches term. The admin records carry
// more fields than we render; only title and handle are extracted.
func (c *AdminClient) Search(ctx context.Context, term string) ([]models.Product, error) {
	reqURL := fmt.Sprintf("%s/admin/api/%s/products.json?title=%s",
		c.baseURL, c.apiVersion, url.QueryEscape(term))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog: create request: %w", err)
	}
	req.Header.Set("X-Shopify-Access-Token", c.token)

	raw, err := doJSONRequest(c.httpClient, req, reqURL)
	if err != nil {
		return nil, fmt.Errorf("catalog: admin search failed: %w", err)
	}

	var payload adminProductsResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("catalog: decode response: %w", err)
	}

	products := make([]models.Product, 0, len(payload.Products))
	for _, p := range payload.Products {
		products = append(products, models.Product{
			Title:  p.Title,
			Handle: p.Handle,
		})
	}
	return products, nil
}
