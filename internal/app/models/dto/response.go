package dto

import "math"

// DataResponse wraps a single payload object.
type DataResponse struct {
	Data interface{} `json:"data"`
}

// CreatedResponse is the payload returned by create endpoints: only the
// generated identifier.
type CreatedResponse struct {
	ID int64 `json:"id"`
}

// PaginationInfo is the pagination block shared by every list endpoint.
type PaginationInfo struct {
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"totalPages"`
}

// ListResponse is the shared list envelope: data plus pagination.
type ListResponse struct {
	Data       interface{}    `json:"data"`
	Pagination PaginationInfo `json:"pagination"`
}

// NewPaginationInfo builds the pagination block. totalPages is
// ceil(total/limit); limit is never zero by the time this is called.
func NewPaginationInfo(page, limit int, total int64) PaginationInfo {
	totalPages := 0
	if total > 0 {
		totalPages = int(math.Ceil(float64(total) / float64(limit)))
	}
	return PaginationInfo{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// NewListResponse wraps rows and pagination into the shared envelope.
func NewListResponse(data interface{}, page, limit int, total int64) ListResponse {
	return ListResponse{
		Data:       data,
		Pagination: NewPaginationInfo(page, limit, total),
	}
}
