package model

// Paginated is one page of an ordered result set. Ephemeral: recomputed on
// every query, never persisted.
type Paginated[T any] struct {
	Items      []T `json:"items"`
	TotalPages int `json:"totalPages"`
}
