package dto

import "hotel-manager/response"

// PaginatedResponse wraps a page of results
type PaginatedResponse[T any] struct {
	Data       T                   `json:"data"`
	Pagination response.Pagination `json:"pagination"`
}

// IDResponse is returned by deletes
type IDResponse struct {
	ID uint `json:"id"`
}
