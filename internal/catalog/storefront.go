package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/zincsforboats/zincfinder/internal/config"
	"github.com/zincsforboats/zincfinder/internal/models"
)

const searchProductsQuery = `
query searchProducts($query: String!, $first: Int) {
    products(first: $first, query: $query) {
        edges {
            node {
                id
                title
                handle
            }
        }
    }
}`

type graphqlRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables"`
}

type searchProductsResponse struct {
	Data struct {
		Products struct {
			Edges []struct {
				Node struct {
					ID     string `json:"id"`
					Title  string `json:"title"`
					Handle string `json:"handle"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// StorefrontClient searches products through the storefront GraphQL API.
type StorefrontClient struct {
	baseURL    string
	token      string
	apiVersion string
	pageSize   int
	httpClient *http.Client
}

// NewStorefrontClient creates a storefront search client from cfg.
func NewStorefrontClient(cfg *config.ShopConfig, opts ...Option) *StorefrontClient {
	o := resolveOptions(cfg, opts)
	return &StorefrontClient{
		baseURL:    o.baseURL,
		token:      cfg.StorefrontToken,
		apiVersion: cfg.APIVersion,
		pageSize:   cfg.PageSize,
		httpClient: o.httpClient,
	}
}

// Search posts the parameterized product search and returns up to pageSize
// matches ordered by title/keyword relevance.
func (c *StorefrontClient) Search(ctx context.Context, term string) ([]models.Product, error) {
	url := fmt.Sprintf("%s/api/%s/graphql.json", c.baseURL, c.apiVersion)

	body, err := json.Marshal(graphqlRequest{
		Query: searchProductsQuery,
		Variables: map[string]interface{}{
			"query": term,
			"first": c.pageSize,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("catalog: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("catalog: create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Storefront-Access-Token", c.token)

	raw, err := doJSONRequest(c.httpClient, req, url)
	if err != nil {
		return nil, fmt.Errorf("catalog: storefront search failed: %w", err)
	}

	var payload searchProductsResponse
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("catalog: decode response: %w", err)
	}
	if len(payload.Errors) > 0 {
		return nil, fmt.Errorf("catalog: graphql error: %s", payload.Errors[0].Message)
	}

	products := make([]models.Product, 0, len(payload.Data.Products.Edges))
	for _, edge := range payload.Data.Products.Edges {
		products = append(products, models.Product{
			ID:     edge.Node.ID,
			Title:  edge.Node.Title,
			Handle: edge.Node.Handle,
		})
	}
	return products, nil
}
