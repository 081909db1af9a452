package adapters

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"shopdesk_backend/internal/feature/product/domain/entity"
)

// ProductModel is the GORM model for the products table.
type ProductModel struct {
	ID        string          `gorm:"primaryKey;size:36"`
	Name      string          `gorm:"size:255;not null"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Qty       int             `gorm:"not null"`
	Image     string          `gorm:"size:1024;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM.
func (ProductModel) TableName() string {
	return "products"
}

// BeforeCreate assigns a UUID when the caller did not.
func (m *ProductModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *ProductModel) toEntity() entity.Product {
	return entity.Product{
		ID:        m.ID,
		Name:      m.Name,
		Price:     m.Price,
		Qty:       m.Qty,
		Image:     m.Image,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func productModelFrom(p *entity.Product) *ProductModel {
	return &ProductModel{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Qty:       p.Qty,
		Image:     p.Image,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
