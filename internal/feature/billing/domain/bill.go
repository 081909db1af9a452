// Package domain holds the billing cart and its four-stage checkout.
//
// A bill works on a snapshot of catalog stock taken when it starts. It never
// writes stock back, so concurrent bills may oversell.
package domain

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Stage is a step of the checkout.
type Stage int

const (
	StageSelect Stage = iota + 1
	StageCustomer
	StageReview
	StageInvoice
)

func (s Stage) String() string {
	switch s {
	case StageSelect:
		return "Select Products"
	case StageCustomer:
		return "Customer Details"
	case StageReview:
		return "Review & Confirm"
	case StageInvoice:
		return "Final Bill"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

// Product is a catalog entry as seen when the bill starts.
type Product struct {
	ID    string
	Name  string
	Price decimal.Decimal
	Qty   int
}

// StockItem is the bill's private copy of one product.
type StockItem struct {
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Available int             `json:"available"`
}

// Line is one product in the cart.
type Line struct {
	ID        string          `json:"id"`
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

// Amount is price times quantity.
func (l Line) Amount() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Customer is who the bill is made out to. GST is optional.
type Customer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Mobile  string `json:"mobile"`
	Address string `json:"address"`
	GST     string `json:"gst"`
}

// Bill is a draft sale. It is serialized whole by the draft stores.
type Bill struct {
	No        string               `json:"billNo"`
	Stage     Stage                `json:"stage"`
	Customer  Customer             `json:"customer"`
	Stock     map[string]StockItem `json:"stock"`
	Lines     []Line               `json:"lines"`
	Total     decimal.Decimal      `json:"total"`
	CreatedAt time.Time            `json:"createdAt"`
	LineSeq   int                  `json:"lineSeq"`
}

// BillNo formats the bill number for t.
func BillNo(t time.Time) string {
	return fmt.Sprintf("BILL-%d", t.UnixMilli())
}

// NewBill starts a bill at product selection with a snapshot of products.
func NewBill(no string, products []Product, now time.Time) *Bill {
	b := &Bill{
		No:        no,
		Stage:     StageSelect,
		Stock:     make(map[string]StockItem, len(products)),
		Lines:     []Line{},
		Total:     decimal.Zero,
		CreatedAt: now,
	}
	for _, p := range products {
		qty := max(p.Qty, 0)
		b.Stock[p.ID] = StockItem{Name: p.Name, Price: p.Price, Available: qty}
	}
	return b
}

// Available is the remaining snapshot stock of a product.
func (b *Bill) Available(productID string) int {
	return b.Stock[productID].Available
}

func (b *Bill) requireStage(s Stage) error {
	if b.Stage != s {
		return fmt.Errorf("%w: bill is at %q", ErrWrongStage, b.Stage)
	}
	return nil
}

func (b *Bill) lineIndex(lineID string) int {
	return slices.IndexFunc(b.Lines, func(l Line) bool { return l.ID == lineID })
}

func (b *Bill) recompute() {
	total := decimal.Zero
	for _, l := range b.Lines {
		total = total.Add(l.Amount())
	}
	b.Total = total
}

// Add puts n units of a product in the cart, merging into an existing line.
// On error neither stock nor cart change.
func (b *Bill) Add(productID string, n int) (Line, error) {
	if err := b.requireStage(StageSelect); err != nil {
		return Line{}, err
	}
	if n < 1 {
		return Line{}, ErrInvalidQuantity
	}
	item, ok := b.Stock[productID]
	if !ok {
		return Line{}, ErrUnknownProduct
	}

	idx := slices.IndexFunc(b.Lines, func(l Line) bool { return l.ProductID == productID })
	switch {
	case item.Available == 0 && idx < 0:
		return Line{}, ErrOutOfStock
	case n > item.Available:
		return Line{}, ErrNotEnoughStock
	}

	item.Available -= n
	b.Stock[productID] = item
	if idx >= 0 {
		b.Lines[idx].Quantity += n
	} else {
		b.LineSeq++
		b.Lines = append(b.Lines, Line{
			ID:        fmt.Sprintf("L%d", b.LineSeq),
			ProductID: productID,
			Name:      item.Name,
			Price:     item.Price,
			Quantity:  n,
		})
		idx = len(b.Lines) - 1
	}
	b.recompute()
	return b.Lines[idx], nil
}

// Remove drops a line and returns its units to stock.
func (b *Bill) Remove(lineID string) error {
	if err := b.requireStage(StageSelect); err != nil {
		return err
	}
	idx := b.lineIndex(lineID)
	if idx < 0 {
		return ErrLineNotFound
	}
	l := b.Lines[idx]
	item := b.Stock[l.ProductID]
	item.Available += l.Quantity
	b.Stock[l.ProductID] = item

	b.Lines = slices.Delete(b.Lines, idx, idx+1)
	b.recompute()
	return nil
}

// SetQuantity changes a line's quantity, checking any increase against the
// remaining stock first.
func (b *Bill) SetQuantity(lineID string, qty int) (Line, error) {
	if err := b.requireStage(StageSelect); err != nil {
		return Line{}, err
	}
	if qty < 1 {
		return Line{}, ErrInvalidQuantity
	}
	idx := b.lineIndex(lineID)
	if idx < 0 {
		return Line{}, ErrLineNotFound
	}
	l := &b.Lines[idx]
	item := b.Stock[l.ProductID]
	delta := qty - l.Quantity
	if delta > item.Available {
		return Line{}, ErrNotEnoughStock
	}

	item.Available -= delta
	b.Stock[l.ProductID] = item
	l.Quantity = qty
	b.recompute()
	return *l, nil
}

// SetCustomer records the customer. Only allowed at customer details.
func (b *Bill) SetCustomer(c Customer) error {
	if err := b.requireStage(StageCustomer); err != nil {
		return err
	}
	b.Customer = Customer{
		Name:    strings.TrimSpace(c.Name),
		Email:   strings.TrimSpace(c.Email),
		Mobile:  strings.TrimSpace(c.Mobile),
		Address: strings.TrimSpace(c.Address),
		GST:     strings.TrimSpace(c.GST),
	}
	return nil
}

// Next moves one stage forward.
func (b *Bill) Next() error {
	switch b.Stage {
	case StageSelect:
		if len(b.Lines) == 0 {
			return ErrEmptyCart
		}
	case StageCustomer:
		if b.Customer.Name == "" {
			return ErrCustomerRequired
		}
	case StageInvoice:
		return fmt.Errorf("%w: already at %q", ErrWrongStage, b.Stage)
	}
	b.Stage++
	return nil
}

// Back moves one stage backward.
func (b *Bill) Back() error {
	if b.Stage <= StageSelect {
		return fmt.Errorf("%w: already at %q", ErrWrongStage, b.Stage)
	}
	b.Stage--
	return nil
}

// ReadyToPrint reports whether the invoice can be produced.
func (b *Bill) ReadyToPrint() error {
	return b.requireStage(StageInvoice)
}
