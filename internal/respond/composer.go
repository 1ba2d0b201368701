// Package respond composes reply messages and runs the query pipeline.
package respond

import (
	"fmt"
	"strings"

	"github.com/zincsforboats/zincfinder/internal/models"
)

const fallbackFormat = "We currently do not have the exact product you're looking for in our system, " +
	"but we may have them in stock. Please visit our [Shopify store](%s) and use the on-site " +
	"search option. Thank you for visiting today, and we appreciate the opportunity to earn your business."

// Composer turns a product list into a reply message. With Paginate set the
// list is sliced into per-page windows and a navigation hint is appended;
// otherwise the full list renders under a plain header.
type Composer struct {
	StoreURL string
	Paginate bool
}

// NewComposer creates a composer linking products under storeURL.
func NewComposer(storeURL string, paginate bool) *Composer {
	return &Composer{StoreURL: strings.TrimRight(storeURL, "/"), Paginate: paginate}
}

// FallbackMessage is the fixed reply for zero matches, pointing at the
// storefront's on-site search.
func (c *Composer) FallbackMessage() string {
	return fmt.Sprintf(fallbackFormat, c.StoreURL)
}

// Compose builds the reply for products. Zero products always yields the
// fallback message, never an empty list rendering. page is 1-indexed; an
// out-of-range page yields a page with no entries, not an error.
func (c *Composer) Compose(products []models.Product, page, perPage int) models.Reply {
	if len(products) == 0 {
		return models.Reply{
			Message:     c.FallbackMessage(),
			TotalPages:  0,
			CurrentPage: page,
		}
	}

	if !c.Paginate {
		return models.Reply{
			Message: "We found the following matches for your query:\n\n" +
				strings.Join(c.links(products), "\n"),
			TotalPages:  1,
			CurrentPage: 1,
		}
	}

	if perPage < 1 {
		perPage = 1
	}
	total := len(products)
	totalPages := (total + perPage - 1) / perPage

	// A page outside 1..totalPages yields an empty window, not an error,
	// in both directions.
	start := (page - 1) * perPage
	end := start + perPage
	if start < 0 {
		start = 0
	}
	if end < 0 {
		end = 0
	}
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	message := fmt.Sprintf("We found the following matches for your query (Page %d of %d):\n\n", page, totalPages) +
		strings.Join(c.links(products[start:end]), "\n") +
		"\n\nUse 'next' or 'prev' to navigate pages."

	return models.Reply{
		Message:     message,
		TotalPages:  totalPages,
		CurrentPage: page,
	}
}

func (c *Composer) links(products []models.Product) []string {
	parts := make([]string, 0, len(products))
	for _, p := range products {
		parts = append(parts, fmt.Sprintf("[%s](%s/products/%s)", p.Title, c.StoreURL, p.Handle))
	}
	return parts
}
