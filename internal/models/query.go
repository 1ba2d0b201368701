package models

// ParsedQuery holds the coarse attributes extracted from a raw product query.
// Fields are empty when their pattern did not match; absence is a valid
// outcome, and the fields are matched independently of each other.
type ParsedQuery struct {
	Year    string `json:"year,omitempty"`
	Model   string `json:"model,omitempty"`
	Product string `json:"product,omitempty"`
}

// DefaultPerPage is the page size used when a request does not specify one.
const DefaultPerPage = 10

// PageParams are the pagination parameters of a query request.
type PageParams struct {
	Page    int
	PerPage int
}

// Normalize replaces out-of-range values with defaults. Pages are 1-indexed.
// defaultPerPage replaces a non-positive PerPage; a non-positive
// defaultPerPage falls back to DefaultPerPage.
func (p *PageParams) Normalize(defaultPerPage int) {
	if defaultPerPage < 1 {
		defaultPerPage = DefaultPerPage
	}
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PerPage < 1 {
		p.PerPage = defaultPerPage
	}
}
