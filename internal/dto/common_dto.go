package dto

// Pagination is attached to every paginated list response.
type Pagination struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// NewPagination derives the page count from the total.
func NewPagination(page, perPage int, total int64) Pagination {
	totalPages := int(total) / perPage
	if int(total)%perPage != 0 {
		totalPages++
	}
	return Pagination{Page: page, PerPage: perPage, Total: total, TotalPages: totalPages}
}

// Mutation is the envelope for create/update/delete responses.
type Mutation struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// OK builds a successful mutation envelope.
func OK(message string, data interface{}) Mutation {
	return Mutation{Success: true, Message: message, Data: data}
}
