package models

type PaginatedResponse struct {
	Data     any `json:"data"`
	Total    int `json:"total"`
	Page     int `json:"page"`
	PageSize int `json:"pageSize"`
}

// Paginate returns the [page, size] window of items.
func Paginate[T any](items []T, page, size int) []T {
	if page < 1 || size < 1 {
		return []T{}
	}

	start := (page - 1) * size
	if start >= len(items) {
		return []T{}
	}

	end := min(start+size, len(items))

	return items[start:end]
}
