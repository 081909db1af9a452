package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"shopdesk_backend/internal/feature/product/domain/entity"
	"shopdesk_backend/internal/feature/product/usecase"
)

type productGorm struct {
	db *gorm.DB
}

var _ usecase.ProductRepository = (*productGorm)(nil)

// NewProductGorm stores products in the relational backend.
func NewProductGorm(db *gorm.DB) *productGorm {
	return &productGorm{db: db}
}

func (r *productGorm) Create(ctx context.Context, p *entity.Product) error {
	m := productModelFrom(p)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*p = m.toEntity()
	return nil
}

func (r *productGorm) FindAll(ctx context.Context) ([]entity.Product, error) {
	var models []ProductModel
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Product, len(models))
	for i := range models {
		out[i] = models[i].toEntity()
	}
	return out, nil
}

func (r *productGorm) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	var m ProductModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrProductNotFound
		}
		return nil, err
	}
	p := m.toEntity()
	return &p, nil
}

func (r *productGorm) Update(ctx context.Context, p *entity.Product) error {
	res := r.db.WithContext(ctx).Model(&ProductModel{ID: p.ID}).Updates(map[string]any{
		"name":  p.Name,
		"price": p.Price,
		"qty":   p.Qty,
		"image": p.Image,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrProductNotFound
	}
	return nil
}

func (r *productGorm) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(&ProductModel{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrProductNotFound
	}
	return nil
}
