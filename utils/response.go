package utils

// PaginatedResponse is the envelope returned by every list endpoint.
type PaginatedResponse[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
	HasNext    bool  `json:"has_next"`
	HasPrev    bool  `json:"has_prev"`
}

// Paginate wraps a result page in the standard envelope.
func Paginate[T any](items []T, total int64, page, limit int) PaginatedResponse[T] {
	if items == nil {
		items = []T{}
	}
	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return PaginatedResponse[T]{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
		HasNext:    page < totalPages,
		HasPrev:    page > 1,
	}
}
