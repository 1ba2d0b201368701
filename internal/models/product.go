// Package models defines core data structures for queries, products, and replies.
package models

// Product is a catalog platform product. It is owned by the platform and
// fetched fresh per request; only the fields this service renders are kept.
// ID is populated by the storefront search only.
type Product struct {
	ID     string `json:"id,omitempty"`
	Title  string `json:"title"`
	Handle string `json:"handle"`
}
