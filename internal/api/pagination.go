package api

// Pagination describes one page of a list response.
type Pagination struct {
	CurrentPage  int `json:"current_page"`
	TotalPages   int `json:"total_pages"`
	TotalItems   int `json:"total_items"`
	CurrentItems int `json:"current_items"`
	Limit        int `json:"limit"`
}

// NewPagination computes page arithmetic for a page holding currentItems of
// totalItems with the given limit.
func NewPagination(page, limit, currentItems, totalItems int) Pagination {
	totalPages := 0
	if limit > 0 {
		totalPages = (totalItems + limit - 1) / limit
	}
	return Pagination{
		CurrentPage:  page,
		TotalPages:   totalPages,
		TotalItems:   totalItems,
		CurrentItems: currentItems,
		Limit:        limit,
	}
}
