// Package dto defines the catalog's HTTP request and response bodies.
package dto

import (
	"time"

	"shopdesk_backend/internal/feature/product/domain/entity"
)

// ProductForm is the multipart body of create and update. Numbers arrive as
// strings and are parsed by the handler.
type ProductForm struct {
	ProductName string `form:"ProductName" binding:"required"`
	Price       string `form:"price" binding:"required"`
	Qty         string `form:"qty" binding:"required"`
}

// ProductRes keeps the field names existing clients read.
type ProductRes struct {
	ID           string    `json:"_id"`
	ProductName  string    `json:"ProductName"`
	Price        float64   `json:"price"`
	Qty          int       `json:"qty"`
	ProductImage string    `json:"ProductImage"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func NewProductRes(p entity.Product) ProductRes {
	return ProductRes{
		ID:           p.ID,
		ProductName:  p.Name,
		Price:        p.Price.InexactFloat64(),
		Qty:          p.Qty,
		ProductImage: p.Image,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

func NewProductList(ps []entity.Product) []ProductRes {
	out := make([]ProductRes, 0, len(ps))
	for _, p := range ps {
		out = append(out, NewProductRes(p))
	}
	return out
}
