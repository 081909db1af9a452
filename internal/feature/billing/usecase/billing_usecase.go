package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"shopdesk_backend/internal/feature/billing/domain"
	product "shopdesk_backend/internal/feature/product/domain/entity"
)

// Catalog lists the products a bill snapshots when it starts.
type Catalog interface {
	FindAll(ctx context.Context) ([]product.Product, error)
}

// DraftStore keeps bills between requests. Create fails with ErrBillExists
// when the number is taken; Save replaces the whole bill. Get and Delete
// return ErrBillNotFound for unknown numbers.
type DraftStore interface {
	Create(ctx context.Context, b *domain.Bill) error
	Save(ctx context.Context, b *domain.Bill) error
	Get(ctx context.Context, billNo string) (*domain.Bill, error)
	Delete(ctx context.Context, billNo string) error
}

// startAttempts bounds the search for a free bill number.
const startAttempts = 10

type billingUsecase struct {
	catalog Catalog
	drafts  DraftStore
	now     func() time.Time
}

func NewBillingUsecase(catalog Catalog, drafts DraftStore) *billingUsecase {
	return &billingUsecase{catalog: catalog, drafts: drafts, now: time.Now}
}

// Start opens a bill over the current catalog quantities.
func (u *billingUsecase) Start(ctx context.Context) (*domain.Bill, error) {
	ps, err := u.catalog.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	snapshot := make([]domain.Product, 0, len(ps))
	for _, p := range ps {
		snapshot = append(snapshot, domain.Product{ID: p.ID, Name: p.Name, Price: p.Price, Qty: p.Qty})
	}

	// Bills started in the same millisecond take the next free one.
	now := u.now()
	for i := range startAttempts {
		at := now.Add(time.Duration(i) * time.Millisecond)
		b := domain.NewBill(domain.BillNo(at), snapshot, now)
		err := u.drafts.Create(ctx, b)
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, ErrBillExists) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("no free bill number after %d attempts: %w", startAttempts, ErrBillExists)
}

func (u *billingUsecase) Get(ctx context.Context, billNo string) (*domain.Bill, error) {
	return u.drafts.Get(ctx, billNo)
}

// mutate loads a bill, applies fn and saves it only when fn succeeds.
func (u *billingUsecase) mutate(ctx context.Context, billNo string, fn func(b *domain.Bill) error) (*domain.Bill, error) {
	b, err := u.drafts.Get(ctx, billNo)
	if err != nil {
		return nil, err
	}
	if err := fn(b); err != nil {
		return nil, err
	}
	if err := u.drafts.Save(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (u *billingUsecase) AddItem(ctx context.Context, billNo, productID string, qty int) (*domain.Bill, error) {
	return u.mutate(ctx, billNo, func(b *domain.Bill) error {
		_, err := b.Add(productID, qty)
		return err
	})
}

func (u *billingUsecase) SetQuantity(ctx context.Context, billNo, lineID string, qty int) (*domain.Bill, error) {
	return u.mutate(ctx, billNo, func(b *domain.Bill) error {
		_, err := b.SetQuantity(lineID, qty)
		return err
	})
}

func (u *billingUsecase) RemoveItem(ctx context.Context, billNo, lineID string) (*domain.Bill, error) {
	return u.mutate(ctx, billNo, func(b *domain.Bill) error { return b.Remove(lineID) })
}

func (u *billingUsecase) SetCustomer(ctx context.Context, billNo string, c domain.Customer) (*domain.Bill, error) {
	return u.mutate(ctx, billNo, func(b *domain.Bill) error { return b.SetCustomer(c) })
}

func (u *billingUsecase) Next(ctx context.Context, billNo string) (*domain.Bill, error) {
	return u.mutate(ctx, billNo, (*domain.Bill).Next)
}

func (u *billingUsecase) Back(ctx context.Context, billNo string) (*domain.Bill, error) {
	return u.mutate(ctx, billNo, (*domain.Bill).Back)
}

// Invoice returns the bill when it has reached the final stage.
func (u *billingUsecase) Invoice(ctx context.Context, billNo string) (*domain.Bill, error) {
	b, err := u.drafts.Get(ctx, billNo)
	if err != nil {
		return nil, err
	}
	if err := b.ReadyToPrint(); err != nil {
		return nil, err
	}
	return b, nil
}

// Discard drops the draft. Catalog stock is untouched either way.
func (u *billingUsecase) Discard(ctx context.Context, billNo string) error {
	return u.drafts.Delete(ctx, billNo)
}
