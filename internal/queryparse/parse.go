// Package queryparse extracts coarse product attributes from free-text queries.
package queryparse

import (
	"regexp"

	"github.com/zincsforboats/zincfinder/internal/models"
)

var (
	yearPattern    = regexp.MustCompile(`\b(?:19|20)\d{2}\b`)
	modelPattern   = regexp.MustCompile(`(?i)\bHewescraft\s+\d+\s+\w+\b`)
	productPattern = regexp.MustCompile(`(?i)\b(?:zinc plates?|boat stands?|anodes?|paints?)\b`)
)

// Parse scans query independently for a year, a boat model, and a product
// category. Each field holds the first match of its pattern, or is empty
// when the pattern does not match. There are no error conditions.
func Parse(query string) models.ParsedQuery {
	return models.ParsedQuery{
		Year:    yearPattern.FindString(query),
		Model:   modelPattern.FindString(query),
		Product: productPattern.FindString(query),
	}
}
