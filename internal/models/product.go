package models

import (
	"time"
)

// Product represents a catalog item. Field names are the wire contract
// the storefront and admin UI depend on; do not rename.
type Product struct {
	ID            string    `json:"id" bson:"_id"`
	Name          string    `json:"name" bson:"name"`
	Price         float64   `json:"price" bson:"price"`
	OriginalPrice float64   `json:"original_price,omitempty" bson:"original_price,omitempty"`
	Image         string    `json:"image" bson:"image"`
	Images        []string  `json:"images" bson:"images"`
	Category      string    `json:"category" bson:"category"`
	CategorySlug  string    `json:"category_slug" bson:"category_slug"`
	Description   string    `json:"description" bson:"description"`
	StockQuantity int       `json:"stock_quantity" bson:"stock_quantity"`
	InStock       bool      `json:"in_stock" bson:"in_stock"`
	IsNew         bool      `json:"is_new" bson:"is_new"`
	IsOnSale      bool      `json:"is_on_sale" bson:"is_on_sale"`
	Discount      int       `json:"discount" bson:"discount"`
	Rating        float64   `json:"rating" bson:"rating"`
	Reviews       int       `json:"reviews" bson:"reviews"`
	CreatedAt     time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" bson:"updated_at"`
}

func (p *Product) RecordID() string      { return p.ID }
func (p *Product) SetRecordID(id string) { p.ID = id }

// Invalid reports whether the product should be swept by the
// invalid-only bulk cleanup: empty name, non-positive price or stock.
func (p *Product) Invalid() bool {
	return p.Name == "" || p.Price <= 0 || p.StockQuantity <= 0
}

// CreateProductRequest represents a request to create a new product
type CreateProductRequest struct {
	Name          string   `json:"name" binding:"required"`
	Price         float64  `json:"price" binding:"required"`
	OriginalPrice float64  `json:"original_price"`
	Image         string   `json:"image"`
	Images        []string `json:"images"`
	Category      string   `json:"category" binding:"required"`
	Description   string   `json:"description"`
	StockQuantity int      `json:"stock_quantity"`
	InStock       *bool    `json:"in_stock"`
	IsNew         bool     `json:"is_new"`
	IsOnSale      bool     `json:"is_on_sale"`
	Discount      int      `json:"discount"`
	Rating        float64  `json:"rating"`
	Reviews       int      `json:"reviews"`
}

// UpdateProductRequest represents a request to update a product.
// Pointer fields distinguish "leave unchanged" from "set to zero".
type UpdateProductRequest struct {
	Name          *string   `json:"name,omitempty"`
	Price         *float64  `json:"price,omitempty"`
	OriginalPrice *float64  `json:"original_price,omitempty"`
	Image         *string   `json:"image,omitempty"`
	Images        *[]string `json:"images,omitempty"`
	Category      *string   `json:"category,omitempty"`
	Description   *string   `json:"description,omitempty"`
	StockQuantity *int      `json:"stock_quantity,omitempty"`
	InStock       *bool     `json:"in_stock,omitempty"`
	IsNew         *bool     `json:"is_new,omitempty"`
	IsOnSale      *bool     `json:"is_on_sale,omitempty"`
	Discount      *int      `json:"discount,omitempty"`
	Rating        *float64  `json:"rating,omitempty"`
	Reviews       *int      `json:"reviews,omitempty"`
}

type ErrorResponse struct {
	Success bool  `json:"success"`
	Error   Error `json:"error"`
}

type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}
