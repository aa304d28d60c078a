package model

import "time"

// Product represents a catalog entry
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Price       float64   `json:"price"`
	InStock     bool      `json:"in_stock"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// ProductPatch holds a partial update; nil fields are left unchanged
type ProductPatch struct {
	Title       *string  `json:"title,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	InStock     *bool    `json:"in_stock,omitempty"`
	Description *string  `json:"description,omitempty"`
}

// Empty returns true if the patch carries no changes
func (p *ProductPatch) Empty() bool {
	return p.Title == nil && p.Price == nil && p.InStock == nil && p.Description == nil
}
