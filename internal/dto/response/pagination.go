package response

// PaginatedResponse is the list envelope: rows plus paging math.
type PaginatedResponse[T any] struct {
	Rows        []T   `json:"rows"`
	TotalRows   int64 `json:"totalRows"`
	TotalPages  int   `json:"totalPages"`
	CurrentPage int   `json:"currentPage"`
}

func NewPaginatedResponse[T any](rows []T, page, perPage int, total int64) *PaginatedResponse[T] {
	totalPages := 0
	if perPage > 0 {
		totalPages = int((total + int64(perPage) - 1) / int64(perPage))
	}

	return &PaginatedResponse[T]{
		Rows:        rows,
		TotalRows:   total,
		TotalPages:  totalPages,
		CurrentPage: page,
	}
}
