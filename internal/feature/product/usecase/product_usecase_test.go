package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shopdesk_backend/internal/feature/product/domain/entity"
)

// mockProductRepository keeps products in a map unless a Func override is set.
type mockProductRepository struct {
	items      map[string]entity.Product
	CreateFunc func(p *entity.Product) error
	UpdateFunc func(p *entity.Product) error
	DeleteFunc func(id string) error
}

func newMockRepo(items ...entity.Product) *mockProductRepository {
	m := &mockProductRepository{items: map[string]entity.Product{}}
	for _, p := range items {
		m.items[p.ID] = p
	}
	return m
}

func (m *mockProductRepository) Create(_ context.Context, p *entity.Product) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(p)
	}
	p.ID = "p-new"
	m.items[p.ID] = *p
	return nil
}

func (m *mockProductRepository) FindAll(context.Context) ([]entity.Product, error) {
	out := make([]entity.Product, 0, len(m.items))
	for _, p := range m.items {
		out = append(out, p)
	}
	return out, nil
}

func (m *mockProductRepository) FindByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := m.items[id]
	if !ok {
		return nil, ErrProductNotFound
	}
	return &p, nil
}

func (m *mockProductRepository) Update(_ context.Context, p *entity.Product) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(p)
	}
	m.items[p.ID] = *p
	return nil
}

func (m *mockProductRepository) Delete(_ context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(id)
	}
	delete(m.items, id)
	return nil
}

// mockMediaStore records uploads and deletes.
type mockMediaStore struct {
	UploadErr error
	DeleteErr error
	uploaded  []string
	deleted   []string
}

func (m *mockMediaStore) Upload(_ context.Context, folder, filename string, r io.Reader) (string, error) {
	if m.UploadErr != nil {
		return "", m.UploadErr
	}
	_, _ = io.ReadAll(r)
	url := "https://cdn.test/" + folder + "/" + filename
	m.uploaded = append(m.uploaded, url)
	return url, nil
}

func (m *mockMediaStore) Delete(_ context.Context, url string) error {
	m.deleted = append(m.deleted, url)
	return m.DeleteErr
}

func img(name string) *Image {
	return &Image{Filename: name, Content: strings.NewReader("bytes")}
}

func TestProductUsecase_Create(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		in        ProductInput
		uploadErr error
		wantErr   error
	}{
		{"success", ProductInput{Name: " Pipe ", Price: decimal.NewFromInt(120), Qty: 5, Image: img("pipe.jpg")}, nil, nil},
		{"missing name", ProductInput{Price: decimal.NewFromInt(1), Qty: 1, Image: img("a.jpg")}, nil, ErrInvalidInput},
		{"negative price", ProductInput{Name: "x", Price: decimal.NewFromInt(-1), Qty: 1, Image: img("a.jpg")}, nil, ErrInvalidInput},
		{"negative qty", ProductInput{Name: "x", Price: decimal.Zero, Qty: -1, Image: img("a.jpg")}, nil, ErrInvalidInput},
		{"missing image", ProductInput{Name: "x", Price: decimal.Zero, Qty: 1}, nil, ErrImageRequired},
		{"upload failure", ProductInput{Name: "x", Price: decimal.Zero, Qty: 1, Image: img("a.jpg")}, errors.New("boom"), ErrImageUpload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := newMockRepo()
			ms := &mockMediaStore{UploadErr: tt.uploadErr}
			uc := NewProductUsecase(repo, ms)

			p, err := uc.Create(context.Background(), tt.in)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Empty(t, repo.items)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "Pipe", p.Name)
			assert.Equal(t, "https://cdn.test/products/pipe.jpg", p.Image)
			assert.Contains(t, repo.items, p.ID)
		})
	}
}

func TestProductUsecase_Create_RepoFailureDiscardsUpload(t *testing.T) {
	t.Parallel()

	repo := newMockRepo()
	repo.CreateFunc = func(*entity.Product) error { return errors.New("db down") }
	ms := &mockMediaStore{}

	_, err := NewProductUsecase(repo, ms).Create(context.Background(),
		ProductInput{Name: "x", Price: decimal.Zero, Qty: 1, Image: img("a.jpg")})

	assert.EqualError(t, err, "db down")
	assert.Equal(t, ms.uploaded, ms.deleted)
}

func TestProductUsecase_Update(t *testing.T) {
	t.Parallel()

	existing := entity.Product{ID: "p1", Name: "Old", Price: decimal.NewFromInt(10), Qty: 1, Image: "https://cdn.test/products/old.jpg"}

	t.Run("keeps image when none supplied", func(t *testing.T) {
		t.Parallel()
		repo := newMockRepo(existing)
		ms := &mockMediaStore{}

		p, err := NewProductUsecase(repo, ms).Update(context.Background(), "p1",
			ProductInput{Name: "New", Price: decimal.NewFromInt(12), Qty: 3})
		require.NoError(t, err)
		assert.Equal(t, existing.Image, p.Image)
		assert.Equal(t, "New", repo.items["p1"].Name)
		assert.Equal(t, 3, repo.items["p1"].Qty)
		assert.Empty(t, ms.deleted)
	})

	t.Run("replaces image and removes the old one", func(t *testing.T) {
		t.Parallel()
		repo := newMockRepo(existing)
		ms := &mockMediaStore{}

		p, err := NewProductUsecase(repo, ms).Update(context.Background(), "p1",
			ProductInput{Name: "New", Price: decimal.NewFromInt(12), Qty: 3, Image: img("new.jpg")})
		require.NoError(t, err)
		assert.Equal(t, "https://cdn.test/products/new.jpg", p.Image)
		assert.Equal(t, []string{existing.Image}, ms.deleted)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		_, err := NewProductUsecase(newMockRepo(), &mockMediaStore{}).Update(context.Background(), "nope",
			ProductInput{Name: "New", Price: decimal.Zero, Qty: 0})
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestProductUsecase_Delete(t *testing.T) {
	t.Parallel()

	existing := entity.Product{ID: "p1", Name: "Old", Image: "https://cdn.test/products/old.jpg"}

	t.Run("removes record and image", func(t *testing.T) {
		t.Parallel()
		repo := newMockRepo(existing)
		ms := &mockMediaStore{}

		require.NoError(t, NewProductUsecase(repo, ms).Delete(context.Background(), "p1"))
		assert.NotContains(t, repo.items, "p1")
		assert.Equal(t, []string{existing.Image}, ms.deleted)
	})

	t.Run("image cleanup failure does not block delete", func(t *testing.T) {
		t.Parallel()
		repo := newMockRepo(existing)
		ms := &mockMediaStore{DeleteErr: errors.New("media url has no folder/name")}

		require.NoError(t, NewProductUsecase(repo, ms).Delete(context.Background(), "p1"))
		assert.NotContains(t, repo.items, "p1")
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		err := NewProductUsecase(newMockRepo(), &mockMediaStore{}).Delete(context.Background(), "p1")
		assert.ErrorIs(t, err, ErrProductNotFound)
	})
}
