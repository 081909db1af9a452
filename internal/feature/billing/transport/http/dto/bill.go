// Package dto defines billing request and response bodies.
package dto

import (
	"sort"
	"time"

	"shopdesk_backend/internal/feature/billing/domain"
)

// ItemReq adds a product to the cart. Quantity defaults to 1.
type ItemReq struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  *int   `json:"quantity"`
}

func (r ItemReq) Qty() int {
	if r.Quantity == nil {
		return 1
	}
	return *r.Quantity
}

type QuantityReq struct {
	Quantity int `json:"quantity" binding:"required"`
}

type CustomerReq struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"omitempty,email"`
	Mobile  string `json:"mobile"`
	Address string `json:"address"`
	GST     string `json:"gst"`
}

func (r CustomerReq) ToDomain() domain.Customer {
	return domain.Customer{Name: r.Name, Email: r.Email, Mobile: r.Mobile, Address: r.Address, GST: r.GST}
}

type LineRes struct {
	ID        string  `json:"id"`
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Amount    float64 `json:"amount"`
}

type StockRes struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Available int     `json:"available"`
}

type CustomerRes struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Mobile  string `json:"mobile"`
	Address string `json:"address"`
	GST     string `json:"gst,omitempty"`
}

// BillRes is a draft as the checkout screens render it.
type BillRes struct {
	BillNo    string      `json:"billNo"`
	Stage     int         `json:"stage"`
	StageName string      `json:"stageName"`
	Customer  CustomerRes `json:"customer"`
	Items     []LineRes   `json:"items"`
	Products  []StockRes  `json:"products"`
	Total     float64     `json:"total"`
	CreatedAt time.Time   `json:"createdAt"`
}

func NewBillRes(b *domain.Bill) BillRes {
	items := make([]LineRes, 0, len(b.Lines))
	for _, l := range b.Lines {
		items = append(items, LineRes{
			ID:        l.ID,
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price.InexactFloat64(),
			Quantity:  l.Quantity,
			Amount:    l.Amount().InexactFloat64(),
		})
	}
	products := make([]StockRes, 0, len(b.Stock))
	for id, s := range b.Stock {
		products = append(products, StockRes{ProductID: id, Name: s.Name, Price: s.Price.InexactFloat64(), Available: s.Available})
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })

	return BillRes{
		BillNo:    b.No,
		Stage:     int(b.Stage),
		StageName: b.Stage.String(),
		Customer: CustomerRes{
			Name:    b.Customer.Name,
			Email:   b.Customer.Email,
			Mobile:  b.Customer.Mobile,
			Address: b.Customer.Address,
			GST:     b.Customer.GST,
		},
		Items:     items,
		Products:  products,
		Total:     b.Total.InexactFloat64(),
		CreatedAt: b.CreatedAt,
	}
}
