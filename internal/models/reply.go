package models

// Reply is the composed response for a product query. TotalPages is 0 when
// no products matched; the message then carries the fixed fallback text.
type Reply struct {
	Message     string `json:"message"`
	TotalPages  int    `json:"total_pages"`
	CurrentPage int    `json:"current_page"`
}
