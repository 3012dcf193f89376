package domain

import "time"

// BaseModel is the common base struct for all domain models.
// It replaces gorm.Model to avoid the implicit soft delete behavior of DeletedAt.
type BaseModel struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PageRequest holds pagination parameters for list queries.
// Page is 1-based; Limit is the page size.
type PageRequest struct {
	Page  int
	Limit int
}

// Offset returns the zero-based row offset for the request.
func (r PageRequest) Offset() int {
	return (r.Page - 1) * r.Limit
}

// PageResult is a generic paginated result envelope for simple list endpoints.
type PageResult[T any] struct {
	Items      []T   `json:"items"`
	Total      int64 `json:"total"`
	Page       int   `json:"page"`
	Limit      int   `json:"limit"`
	TotalPages int   `json:"total_pages"`
}
