package usecase

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/shopspring/decimal"

	"shopdesk_backend/internal/feature/product/domain/entity"
	"shopdesk_backend/internal/platform/logging"
	"shopdesk_backend/internal/platform/media"
)

// ProductRepository persists products. Implementations return
// ErrProductNotFound for unknown or malformed ids.
type ProductRepository interface {
	Create(ctx context.Context, p *entity.Product) error
	FindAll(ctx context.Context) ([]entity.Product, error)
	FindByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, p *entity.Product) error
	Delete(ctx context.Context, id string) error
}

// MediaStore uploads and removes product images.
type MediaStore interface {
	Upload(ctx context.Context, folder, filename string, r io.Reader) (string, error)
	Delete(ctx context.Context, url string) error
}

// Image is an uploaded file.
type Image struct {
	Filename string
	Content  io.Reader
}

// ProductInput carries create/update fields. Image is optional on update.
type ProductInput struct {
	Name  string
	Price decimal.Decimal
	Qty   int
	Image *Image
}

type productUsecase struct {
	products ProductRepository
	media    MediaStore
}

// NewProductUsecase wires the catalog usecase.
func NewProductUsecase(products ProductRepository, media MediaStore) *productUsecase {
	return &productUsecase{products: products, media: media}
}

func validate(in ProductInput) error {
	switch {
	case strings.TrimSpace(in.Name) == "":
		return fmt.Errorf("%w: ProductName is required", ErrInvalidInput)
	case in.Price.IsNegative():
		return fmt.Errorf("%w: price must be >= 0", ErrInvalidInput)
	case in.Qty < 0:
		return fmt.Errorf("%w: qty must be >= 0", ErrInvalidInput)
	}
	return nil
}

// Create uploads the image and stores a new product.
func (u *productUsecase) Create(ctx context.Context, in ProductInput) (*entity.Product, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	if in.Image == nil {
		return nil, ErrImageRequired
	}

	url, err := u.media.Upload(ctx, media.FolderProducts, in.Image.Filename, in.Image.Content)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrImageUpload, err)
	}

	p := &entity.Product{
		Name:  strings.TrimSpace(in.Name),
		Price: in.Price,
		Qty:   in.Qty,
		Image: url,
	}
	if err := u.products.Create(ctx, p); err != nil {
		u.discard(ctx, url)
		return nil, err
	}
	return p, nil
}

func (u *productUsecase) List(ctx context.Context) ([]entity.Product, error) {
	return u.products.FindAll(ctx)
}

func (u *productUsecase) Get(ctx context.Context, id string) (*entity.Product, error) {
	return u.products.FindByID(ctx, id)
}

// Update replaces name, price and qty. The stored image is kept unless a new
// one is supplied.
func (u *productUsecase) Update(ctx context.Context, id string, in ProductInput) (*entity.Product, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	p, err := u.products.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	oldImage := p.Image
	if in.Image != nil {
		url, err := u.media.Upload(ctx, media.FolderProducts, in.Image.Filename, in.Image.Content)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrImageUpload, err)
		}
		p.Image = url
	}
	p.Name = strings.TrimSpace(in.Name)
	p.Price = in.Price
	p.Qty = in.Qty

	if err := u.products.Update(ctx, p); err != nil {
		if p.Image != oldImage {
			u.discard(ctx, p.Image)
		}
		return nil, err
	}
	if p.Image != oldImage {
		u.discard(ctx, oldImage)
	}
	return p, nil
}

// Delete removes the product, then tries to remove its image. Image cleanup
// never fails the request.
func (u *productUsecase) Delete(ctx context.Context, id string) error {
	p, err := u.products.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := u.products.Delete(ctx, id); err != nil {
		return err
	}
	u.discard(ctx, p.Image)
	return nil
}

func (u *productUsecase) discard(ctx context.Context, url string) {
	if url == "" {
		return
	}
	if err := u.media.Delete(ctx, url); err != nil {
		logging.FromContext(ctx).Warn("product image cleanup failed", slog.String("url", url), slog.Any("error", err))
	}
}
